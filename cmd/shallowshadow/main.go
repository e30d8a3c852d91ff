// Command shallowshadow derives a derandomized sequence of shallow
// measurement circuits for a set of Pauli observables loaded from text
// files, prints a per-observable coverage table, and optionally writes
// the full sequence as JSON.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/hupe1980/shallowshadow"
	"github.com/hupe1980/shallowshadow/pauli"
)

func main() {
	app := &cli.App{
		Name:  "shallowshadow",
		Usage: "derandomize shallow-shadow measurement circuits for a set of Pauli observables",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "observables",
				Aliases:  []string{"o"},
				Usage:    "file with one Pauli string per line (characters I, X, Y, Z)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "weights",
				Aliases: []string{"w"},
				Usage:   "optional file with one positive importance weight per line",
			},
			&cli.IntFlag{
				Name:    "depth",
				Aliases: []string{"d"},
				Usage:   "two-qubit circuit depth",
				Value:   1,
			},
			&cli.Float64Flag{
				Name:  "eta",
				Usage: "confidence-bound exponent rate",
				Value: 0.9,
			},
			&cli.IntFlag{
				Name:  "per-observable",
				Usage: "hit target per unit of observable weight",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  "max-measurements",
				Usage: "cap on the total number of measurement circuits (0 = per-observable times set size)",
			},
			&cli.IntFlag{
				Name:  "parallelism",
				Usage: "workers for the per-observable weight sweeps",
				Value: 1,
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "write the finalized sequence as JSON to this file ('-' for stdout)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every derived measurement",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "shallowshadow:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	observables, err := loadObservables(c.String("observables"))
	if err != nil {
		return err
	}

	var weights []float64
	if path := c.String("weights"); path != "" {
		weights, err = loadWeights(path)
		if err != nil {
			return err
		}
	} else {
		weights = make([]float64, len(observables))
		for i := range weights {
			weights[i] = 1
		}
	}

	set, err := pauli.NewSet(observables, weights)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}

	session, err := shallowshadow.New(set, c.Int("depth"),
		shallowshadow.WithEta(c.Float64("eta")),
		shallowshadow.WithMeasurementsPerObservable(c.Int("per-observable")),
		shallowshadow.WithMaxMeasurements(c.Int("max-measurements")),
		shallowshadow.WithParallelism(c.Int("parallelism")),
		shallowshadow.WithLogger(shallowshadow.NewTextLogger(level)),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := session.Run(ctx)
	if err != nil {
		return err
	}

	printCoverage(set, session.Targets(), result)

	if path := c.String("output"); path != "" {
		if err := writeResult(path, set, c.Int("depth"), result); err != nil {
			return err
		}
	}

	return nil
}

func loadObservables(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var observables []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		observables = append(observables, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return observables, nil
}

func loadWeights(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var weights []float64

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		w, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("weights file %s: %w", path, err)
		}

		weights = append(weights, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return weights, nil
}

func printCoverage(set *pauli.Set, targets []int, result *shallowshadow.Result) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Observable", "Weight", "Target", "Hits", "Covered"})

	for l := 0; l < set.Len(); l++ {
		covered := "no"
		if result.Hits[l] >= float64(targets[l]) {
			covered = "yes"
		}

		table.Append([]string{
			set.Observable(l).String(),
			strconv.FormatFloat(set.Weight(l), 'g', -1, 64),
			strconv.Itoa(targets[l]),
			strconv.FormatFloat(result.Hits[l], 'f', 4, 64),
			covered,
		})
	}

	fmt.Printf("measurements: %d\n", result.Measurements())
	table.Render()
}

func writeResult(path string, set *pauli.Set, depth int, result *shallowshadow.Result) error {
	out := struct {
		Qubits       int `json:"qubits"`
		Depth        int `json:"depth"`
		Measurements int `json:"measurements"`
		*shallowshadow.Result
	}{
		Qubits:       set.Qubits(),
		Depth:        depth,
		Measurements: result.Measurements(),
		Result:       result,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

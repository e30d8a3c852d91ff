package shallowshadow

import (
	"context"
	"math"

	"github.com/hupe1980/shallowshadow/circuit"
	"github.com/hupe1980/shallowshadow/gate"
)

// Result holds the finalized measurement sequence of one run: for each
// measurement the two-qubit structure and the single-qubit rotation
// column, plus the final hit counter.
type Result struct {
	Structures []*circuit.Structure `json:"structures"`
	Rotations  []*circuit.Rotations `json:"rotations"`
	Hits       []float64            `json:"hits"`
}

// Measurements returns the number of finalized circuits.
func (r *Result) Measurements() int {
	return len(r.Structures)
}

// Covered returns how many observables reached their target.
func (r *Result) Covered(targets []int) int {
	covered := 0
	for l, h := range r.Hits {
		if h >= float64(targets[l]) {
			covered++
		}
	}
	return covered
}

// Structure pass alphabet, evaluated in order; earlier candidates win
// cost ties.
var structureCandidates = []gate.TwoQubit{
	gate.TwoQubitIdentity,
	gate.TwoQubitCNOT,
	gate.TwoQubitSwap,
}

// Single-qubit pass alphabet. Identity leads and keeps the slot unless
// another candidate strictly improves the cost; the second entry keeps
// the slot random.
var rotationCandidates = []circuit.RotationSlot{
	circuit.FixedRotation(gate.SingleIdentity),
	circuit.RandomRotation(),
	circuit.FixedRotation(gate.SingleSwapYZ),
	circuit.FixedRotation(gate.SingleSwapXY),
	circuit.FixedRotation(gate.SingleCycleXYZ),
	circuit.FixedRotation(gate.SingleCycleXZY),
	circuit.FixedRotation(gate.SingleHadamard),
}

// Run executes the greedy derandomization: one measurement at a time,
// a structure pass fixing the two-qubit slots, then a single-qubit
// pass fixing the rotation column, then hit-count bookkeeping. The run
// stops at the measurement budget or once every observable reached its
// target. Cancellation is honored between weight sweeps.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	if s.consumed {
		return nil, ErrSessionConsumed
	}
	s.consumed = true

	k := s.set.Len()

	// The future-measurements cost term reads this vector every
	// iteration, so it is computed up front.
	wrand, err := s.structureWeights(ctx, circuit.NewStructure(s.depth, s.n))
	if err != nil {
		s.logger.LogRun(ctx, 0, 0, k, err)
		return nil, err
	}

	hits := make([]float64, k)
	result := &Result{}

	for m := 0; m < s.perObservable*k; m++ {
		if err := ctx.Err(); err != nil {
			s.logger.LogRun(ctx, result.Measurements(), s.covered(hits), k, err)
			return nil, err
		}

		st, err := s.deriveStructure(ctx, m, hits, wrand)
		if err != nil {
			s.logger.LogRun(ctx, result.Measurements(), s.covered(hits), k, err)
			return nil, err
		}

		rot, err := s.deriveRotations(ctx, m, hits, wrand, st)
		if err != nil {
			s.logger.LogRun(ctx, result.Measurements(), s.covered(hits), k, err)
			return nil, err
		}

		all, err := s.fullWeights(ctx, st, rot)
		if err != nil {
			s.logger.LogRun(ctx, result.Measurements(), s.covered(hits), k, err)
			return nil, err
		}

		for l := range hits {
			hits[l] += all[l]
		}

		result.Structures = append(result.Structures, st)
		result.Rotations = append(result.Rotations, rot)

		s.logger.LogMeasurement(ctx, m, s.covered(hits), k)

		if m+1 >= s.maxMeasurements {
			break
		}
		if s.covered(hits) == k {
			break
		}
	}

	result.Hits = hits

	s.logger.LogRun(ctx, result.Measurements(), s.covered(hits), k, nil)

	return result, nil
}

// deriveStructure runs the two-qubit coordinate-descent pass: visit
// the slots row by row, measurement side first, and fix each to the
// candidate gate minimizing the structure-only confidence cost while
// all later slots stay random.
func (s *Session) deriveStructure(ctx context.Context, m int, hits, wrand []float64) (*circuit.Structure, error) {
	st := circuit.NewStructure(s.depth, s.n)

	for l := 0; l < s.depth; l++ {
		for p := 0; p < st.Pairs(); p++ {
			best := structureCandidates[0]
			bestCost := math.Inf(1)

			for _, g := range structureCandidates {
				st.Set(l, p, circuit.FixedSlot(g))

				wpart, err := s.structureWeights(ctx, st)
				if err != nil {
					return nil, err
				}

				c := confidenceCost(s.eta, s.maxMeasurements, m, s.weights, s.targets, hits, wpart, wrand)
				if c < bestCost {
					bestCost = c
					best = g
				}
			}

			st.Set(l, p, circuit.FixedSlot(best))
		}
	}

	return st, nil
}

// deriveRotations runs the single-qubit pass over the finalized
// structure: visit the rotation slots in layout order and keep a
// candidate only on strict cost improvement, so identity wins ties.
func (s *Session) deriveRotations(ctx context.Context, m int, hits, wrand []float64, st *circuit.Structure) (*circuit.Rotations, error) {
	rot := circuit.NewRotations(s.depth, s.n)

	for i := 0; i < rot.Len(); i++ {
		best := rotationCandidates[0]
		bestCost := math.Inf(1)

		for _, cand := range rotationCandidates {
			rot.Set(i, cand)

			wpart, err := s.fullWeights(ctx, st, rot)
			if err != nil {
				return nil, err
			}

			c := confidenceCost(s.eta, s.maxMeasurements, m, s.weights, s.targets, hits, wpart, wrand)
			if c < bestCost-costTieEpsilon {
				bestCost = c
				best = cand
			}
		}

		rot.Set(i, best)
	}

	return rot, nil
}

func (s *Session) covered(hits []float64) int {
	covered := 0
	for l, h := range hits {
		if h >= float64(s.targets[l]) {
			covered++
		}
	}
	return covered
}

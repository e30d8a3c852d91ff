package shallowshadow

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/shallowshadow/circuit"
	"github.com/hupe1980/shallowshadow/gate"
	"github.com/hupe1980/shallowshadow/internal/tensor"
	"github.com/hupe1980/shallowshadow/pauli"
)

// Session owns the state of one derandomization run: the observable
// set, the circuit shape, the confidence-bound parameters, and the two
// weight caches. Sessions are single-use; a second Run returns
// ErrSessionConsumed. Weight caches are never shared across sessions.
//
// A Session is not safe for concurrent use. Parallelism inside the
// per-observable weight sweeps is configured with WithParallelism and
// uses per-worker scratch buffers.
type Session struct {
	set     *pauli.Set
	n       int
	depth   int
	weights []float64
	targets []int

	eta             float64
	perObservable   int
	maxMeasurements int
	parallelism     int
	logger          *Logger

	// Per-observable boundary vectors, fixed at construction.
	sigBoundaries  [][]float64
	fullBoundaries [][]float64

	contractor     *tensor.Contractor
	structureCache map[string][]float64
	fullCache      map[string][]float64
	consumed       bool
}

// New creates a derandomization session for the given observable set
// and two-qubit circuit depth.
func New(set *pauli.Set, depth int, optFns ...Option) (*Session, error) {
	o := applyOptions(optFns)

	if depth < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	if o.eta <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidEta, o.eta)
	}
	if o.perObservable < 1 {
		return nil, fmt.Errorf("%w: measurements per observable %d", ErrInvalidBudget, o.perObservable)
	}
	if o.maxMeasurements < 0 {
		return nil, fmt.Errorf("%w: max measurements %d", ErrInvalidBudget, o.maxMeasurements)
	}
	if o.parallelism < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidParallelism, o.parallelism)
	}

	maxMeasurements := o.maxMeasurements
	if maxMeasurements == 0 {
		maxMeasurements = o.perObservable * set.Len()
	}

	s := &Session{
		set:             set,
		n:               set.Qubits(),
		depth:           depth,
		weights:         set.Weights(),
		targets:         set.Targets(o.perObservable),
		eta:             o.eta,
		perObservable:   o.perObservable,
		maxMeasurements: maxMeasurements,
		parallelism:     o.parallelism,
		logger:          o.logger.WithObservables(set.Len()).WithDepth(depth),
		sigBoundaries:   make([][]float64, set.Len()),
		fullBoundaries:  make([][]float64, set.Len()),
		contractor:      tensor.NewContractor(),
		structureCache:  make(map[string][]float64),
		fullCache:       make(map[string][]float64),
	}

	for l := 0; l < set.Len(); l++ {
		obs := set.Observable(l)
		s.sigBoundaries[l] = signatureBoundary(obs)
		s.fullBoundaries[l] = fullBoundary(obs)
	}

	return s, nil
}

// Depth returns the two-qubit circuit depth.
func (s *Session) Depth() int {
	return s.depth
}

// Qubits returns the register size N.
func (s *Session) Qubits() int {
	return s.n
}

// Targets returns the per-observable hit targets.
func (s *Session) Targets() []int {
	return append([]int(nil), s.targets...)
}

// WeightStructure computes the structure-only shadow weight of obs
// under the two-qubit configuration st. Rotation slots are averaged,
// so the contraction runs in the reduced signature encoding.
func (s *Session) WeightStructure(obs pauli.Observable, st *circuit.Structure) (float64, error) {
	if obs.Len() != s.n {
		return 0, fmt.Errorf("%w: observable %d, session %d", ErrQubitMismatch, obs.Len(), s.n)
	}
	return s.contractor.Contract(s.n, s.depth, signatureBoundary(obs), st.SignatureLayers(), gate.BondSignature)
}

// WeightFull computes the shadow weight of obs under the two-qubit
// configuration st with the single-qubit rotations rot fused in.
func (s *Session) WeightFull(obs pauli.Observable, st *circuit.Structure, rot *circuit.Rotations) (float64, error) {
	if obs.Len() != s.n {
		return 0, fmt.Errorf("%w: observable %d, session %d", ErrQubitMismatch, obs.Len(), s.n)
	}
	dressed, err := circuit.Dress(st, rot)
	if err != nil {
		return 0, err
	}
	return s.contractor.Contract(s.n, s.depth, fullBoundary(obs), dressed, gate.BondFull)
}

// WeightAllObservables computes the full shadow weight of every
// observable in the session's set for the circuit (st, rot).
func (s *Session) WeightAllObservables(ctx context.Context, st *circuit.Structure, rot *circuit.Rotations) ([]float64, error) {
	v, err := s.fullWeights(ctx, st, rot)
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), v...), nil
}

// structureWeights returns the per-observable structure-only weight
// vector for st, memoized on the serialized configuration (random
// slots included).
func (s *Session) structureWeights(ctx context.Context, st *circuit.Structure) ([]float64, error) {
	key := st.Key()
	if v, ok := s.structureCache[key]; ok {
		return v, nil
	}

	v, err := s.sweep(ctx, st.SignatureLayers(), s.sigBoundaries, gate.BondSignature)
	if err != nil {
		return nil, err
	}

	s.structureCache[key] = v

	return v, nil
}

// fullWeights returns the per-observable full weight vector for
// (st, rot), memoized on the rotation column concatenated with the
// structure.
func (s *Session) fullWeights(ctx context.Context, st *circuit.Structure, rot *circuit.Rotations) ([]float64, error) {
	key := rot.Key() + "|" + st.Key()
	if v, ok := s.fullCache[key]; ok {
		return v, nil
	}

	dressed, err := circuit.Dress(st, rot)
	if err != nil {
		return nil, err
	}

	v, err := s.sweep(ctx, dressed, s.fullBoundaries, gate.BondFull)
	if err != nil {
		return nil, err
	}

	s.fullCache[key] = v

	return v, nil
}

// sweep contracts one circuit against every observable boundary.
func (s *Session) sweep(ctx context.Context, gates [][][]float64, boundaries [][]float64, bond int) ([]float64, error) {
	out := make([]float64, len(boundaries))

	if s.parallelism <= 1 {
		for l := range boundaries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			w, err := s.contractor.Contract(s.n, s.depth, boundaries[l], gates, bond)
			if err != nil {
				return nil, err
			}

			out[l] = w
		}

		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < s.parallelism; w++ {
		worker := w

		g.Go(func() error {
			c := tensor.NewContractor()
			for l := worker; l < len(boundaries); l += s.parallelism {
				if err := ctx.Err(); err != nil {
					return err
				}

				v, err := c.Contract(s.n, s.depth, boundaries[l], gates, bond)
				if err != nil {
					return err
				}

				out[l] = v
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// signatureBoundary encodes obs in the reduced encoding: [1,0] on
// identity sites, [0,1] elsewhere.
func signatureBoundary(obs pauli.Observable) []float64 {
	b := make([]float64, obs.Len()*gate.BondSignature)
	for i := 0; i < obs.Len(); i++ {
		if obs.At(i) == pauli.I {
			b[gate.BondSignature*i] = 1
		} else {
			b[gate.BondSignature*i+1] = 1
		}
	}
	return b
}

// fullBoundary encodes obs as one-hot Pauli component vectors.
func fullBoundary(obs pauli.Observable) []float64 {
	b := make([]float64, obs.Len()*gate.BondFull)
	for i := 0; i < obs.Len(); i++ {
		b[gate.BondFull*i+int(obs.At(i))] = 1
	}
	return b
}

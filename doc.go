// Package shallowshadow derandomizes shallow-shadow measurement
// circuits for estimating sets of Pauli observables.
//
// A measurement circuit is a brickwork of two-qubit Clifford gates of
// configurable depth, closed by single-qubit rotations and a
// computational-basis measurement. For each observable the package
// computes its shadow weight, the probability that one run of the
// circuit produces an estimate of that observable, by contracting the
// circuit's Pauli-transfer tensors along the qubit ring.
//
// Derandomization replaces independently sampled random circuits with
// a deterministic sequence chosen by greedy coordinate descent: each
// gate slot is fixed one at a time to the choice that minimizes an
// exponential confidence bound over all observables, so the final
// sequence covers every observable at least as well as the random
// ensemble it replaces.
//
// # Quick Start
//
//	set, err := pauli.NewSet([]string{"XXII", "IIZZ"}, []float64{1, 1})
//	if err != nil {
//	    panic(err)
//	}
//
//	session, err := shallowshadow.New(set, 2,
//	    shallowshadow.WithMeasurementsPerObservable(100),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	result, err := session.Run(context.Background())
//	if err != nil {
//	    panic(err)
//	}
//	for m, st := range result.Structures {
//	    fmt.Println(st, result.Rotations[m])
//	}
//
// # Key Features
//
//   - Exact shadow weights via tensor-network contraction (no sampling)
//   - Signature-reduced contraction for the structure optimization pass
//   - Memoized weight vectors shared across greedy candidate evaluations
//   - Confidence-bound cost with per-observable measurement targets
//   - Optional parallel weight sweeps across observables
package shallowshadow

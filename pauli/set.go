package pauli

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidPauli is returned when a string contains a character
	// outside {I, X, Y, Z}.
	ErrInvalidPauli = errors.New("pauli: invalid character")

	// ErrEmptySet is returned when a set is constructed without
	// observables.
	ErrEmptySet = errors.New("pauli: empty observable set")

	// ErrLengthMismatch is returned when the importance weights do not
	// pair up one-to-one with the observables, or when observables have
	// differing lengths.
	ErrLengthMismatch = errors.New("pauli: length mismatch")

	// ErrOddQubitCount is returned when the observable length is odd or
	// below two; brickwork circuits pair qubits.
	ErrOddQubitCount = errors.New("pauli: qubit count must be even and >= 2")

	// ErrNonPositiveWeight is returned for importance weights <= 0.
	ErrNonPositiveWeight = errors.New("pauli: importance weight must be positive")

	// ErrIdentityObservable is returned for the all-identity string,
	// which carries no information and has no meaningful hit weight.
	ErrIdentityObservable = errors.New("pauli: all-identity observable")
)

// Set is an ordered collection of observables with positive importance
// weights. Immutable once constructed.
type Set struct {
	observables []Observable
	weights     []float64
	n           int
}

// NewSet parses the given Pauli strings into a Set. A nil weights
// slice defaults every importance weight to 1.0; otherwise it must
// pair up one-to-one with the observables.
func NewSet(observables []string, weights []float64) (*Set, error) {
	if len(observables) == 0 {
		return nil, ErrEmptySet
	}
	if weights != nil && len(weights) != len(observables) {
		return nil, fmt.Errorf("%w: %d observables, %d weights", ErrLengthMismatch, len(observables), len(weights))
	}

	parsed := make([]Observable, len(observables))
	n := len(observables[0])
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddQubitCount, n)
	}

	for i, s := range observables {
		obs, err := ParseObservable(s)
		if err != nil {
			return nil, err
		}
		if obs.Len() != n {
			return nil, fmt.Errorf("%w: observable %d has length %d, want %d", ErrLengthMismatch, i, obs.Len(), n)
		}
		if obs.IsIdentity() {
			return nil, fmt.Errorf("%w: observable %d", ErrIdentityObservable, i)
		}
		parsed[i] = obs
	}

	if weights == nil {
		weights = make([]float64, len(observables))
		for i := range weights {
			weights[i] = 1.0
		}
	} else {
		weights = append([]float64(nil), weights...)
		for i, w := range weights {
			if w <= 0 {
				return nil, fmt.Errorf("%w: weight %d is %v", ErrNonPositiveWeight, i, w)
			}
		}
	}

	return &Set{observables: parsed, weights: weights, n: n}, nil
}

// Len returns the number of observables.
func (s *Set) Len() int {
	return len(s.observables)
}

// Qubits returns the number of qubits N.
func (s *Set) Qubits() int {
	return s.n
}

// Observable returns observable i.
func (s *Set) Observable(i int) Observable {
	return s.observables[i]
}

// Weight returns the importance weight of observable i.
func (s *Set) Weight(i int) float64 {
	return s.weights[i]
}

// Weights returns all importance weights. The slice is shared; do not
// mutate.
func (s *Set) Weights() []float64 {
	return s.weights
}

// Targets returns the required hit target per observable,
// floor(weight_i * perObservable).
func (s *Set) Targets(perObservable int) []int {
	targets := make([]int, len(s.weights))
	for i, w := range s.weights {
		targets[i] = int(math.Floor(w * float64(perObservable)))
	}
	return targets
}

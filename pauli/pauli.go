package pauli

import (
	"fmt"
	"strings"
)

// Pauli is a single-site Pauli operator label.
type Pauli uint8

const (
	I Pauli = iota
	X
	Y
	Z
)

func (p Pauli) String() string {
	switch p {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "?"
	}
}

// Observable is an immutable fixed-length Pauli string. The support
// mask (identity vs non-identity per site) is derived once at parse
// time.
type Observable struct {
	ops     []Pauli
	support []bool
}

// ParseObservable parses a string over the alphabet {I, X, Y, Z}
// (lowercase accepted) into an Observable.
func ParseObservable(s string) (Observable, error) {
	ops := make([]Pauli, len(s))
	support := make([]bool, len(s))

	for i, c := range strings.ToUpper(s) {
		switch c {
		case 'I':
			ops[i] = I
		case 'X':
			ops[i] = X
		case 'Y':
			ops[i] = Y
		case 'Z':
			ops[i] = Z
		default:
			return Observable{}, fmt.Errorf("%w: %q at site %d", ErrInvalidPauli, c, i)
		}
		support[i] = ops[i] != I
	}

	return Observable{ops: ops, support: support}, nil
}

// Len returns the number of sites (qubits).
func (o Observable) Len() int {
	return len(o.ops)
}

// At returns the Pauli at site i.
func (o Observable) At(i int) Pauli {
	return o.ops[i]
}

// Support returns the per-site non-identity mask. The slice is shared;
// do not mutate.
func (o Observable) Support() []bool {
	return o.support
}

// IsIdentity reports whether every site is the identity.
func (o Observable) IsIdentity() bool {
	for _, s := range o.support {
		if s {
			return false
		}
	}
	return true
}

func (o Observable) String() string {
	var sb strings.Builder
	sb.Grow(len(o.ops))
	for _, p := range o.ops {
		sb.WriteString(p.String())
	}
	return sb.String()
}

package circuit

import (
	"errors"
	"fmt"

	"github.com/hupe1980/shallowshadow/gate"
)

// ErrShapeMismatch is returned when a rotation layout does not match
// the structure it is dressed onto.
var ErrShapeMismatch = errors.New("circuit: rotation layout does not match structure shape")

// Dress fuses the single-qubit rotations into their adjacent two-qubit
// gates, producing one dressed 4x4x4x4 tensor per (layer, pair),
// aligned with the structure rows (row 0 nearest the measurement),
// ready for the full-weight contraction.
//
// The rotation layout stores its depth+1 layers observable-side
// first; canonicalRotationLayers reverses them and applies the
// parity-dependent cyclic shift so canonical layer i lines up with
// structure row i under the brickwork offset. Every structure
// row absorbs its canonical layer on the trailing leg pair; the last
// row, which the contraction pairs directly with the observable
// boundary, additionally absorbs the leftover canonical layer on its
// leading leg pair. Getting this ordering wrong produces a silently
// incorrect weight, not a crash; the identity-circuit closed forms in
// the tests anchor it.
func Dress(st *Structure, rot *Rotations) ([][][]float64, error) {
	if rot.n != 2*st.pairs || rot.depth != st.depth {
		return nil, fmt.Errorf("%w: rotations %dx%d, structure %dx%d", ErrShapeMismatch, rot.depth+1, rot.n, st.depth, st.pairs)
	}

	canon := canonicalRotationLayers(rot)

	dressed := make([][][]float64, st.depth)
	for l := 0; l < st.depth; l++ {
		row := make([][]float64, st.pairs)
		for p := 0; p < st.pairs; p++ {
			row[p] = dressInputLegs(st.At(l, p).tensor(), canon[l][2*p].matrix(), canon[l][2*p+1].matrix())
		}
		dressed[l] = row
	}

	outer := canon[st.depth]
	last := dressed[st.depth-1]
	for p := 0; p < st.pairs; p++ {
		last[p] = dressOutputLegs(last[p], outer[2*p].matrix(), outer[2*p+1].matrix())
	}

	return dressed, nil
}

// canonicalRotationLayers reorders the rotation layout so layer i
// pairs with structure layer i during dressing: the layers are
// reversed into preparation-first order, then each is cyclically
// shifted left by one on alternating parities, with the shift parity
// flipped once more on the outermost layer to line up with the
// brickwork offset at the measurement boundary.
func canonicalRotationLayers(rot *Rotations) [][]RotationSlot {
	layers := rot.depth + 1
	canon := make([][]RotationSlot, layers)
	for i := 0; i < layers; i++ {
		src := rot.layer(layers - 1 - i)
		shift := i % 2
		if i == layers-1 {
			shift = (i + 1) % 2
		}
		canon[i] = rollLeft(src, shift)
	}
	return canon
}

// rollLeft returns src cyclically shifted left by k positions.
func rollLeft(src []RotationSlot, k int) []RotationSlot {
	out := make([]RotationSlot, len(src))
	copy(out, src[k:])
	copy(out[len(src)-k:], src[:k])
	return out
}

// dressInputLegs contracts the rotation matrices s1, s2 onto the
// trailing leg pair of the two-qubit tensor g:
//
//	d[i,j,k,l] = sum_{a,b} g[i,j,a,b] s1[a,k] s2[b,l]
func dressInputLegs(g, s1, s2 []float64) []float64 {
	d := make([]float64, 256)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				for l := 0; l < 4; l++ {
					var s float64
					for a := 0; a < 4; a++ {
						va := s1[a*4+k]
						if va == 0 {
							continue
						}
						for b := 0; b < 4; b++ {
							vb := s2[b*4+l]
							if vb == 0 {
								continue
							}
							s += g[gate.Idx4(i, j, a, b, 4)] * va * vb
						}
					}
					d[gate.Idx4(i, j, k, l, 4)] = s
				}
			}
		}
	}
	return d
}

// dressOutputLegs contracts the rotation matrices s1, s2 onto the
// leading leg pair of the two-qubit tensor g:
//
//	d[i,j,k,l] = sum_{a,b} s1[i,a] s2[j,b] g[a,b,k,l]
func dressOutputLegs(g, s1, s2 []float64) []float64 {
	d := make([]float64, 256)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				for l := 0; l < 4; l++ {
					var s float64
					for a := 0; a < 4; a++ {
						va := s1[i*4+a]
						if va == 0 {
							continue
						}
						for b := 0; b < 4; b++ {
							vb := s2[j*4+b]
							if vb == 0 {
								continue
							}
							s += va * vb * g[gate.Idx4(a, b, k, l, 4)]
						}
					}
					d[gate.Idx4(i, j, k, l, 4)] = s
				}
			}
		}
	}
	return d
}

package tensor

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrBondDim is returned for a bond dimension factor outside {2, 4}.
	ErrBondDim = errors.New("tensor: unsupported bond dimension factor")

	// ErrDepth is returned for a circuit depth below one.
	ErrDepth = errors.New("tensor: depth must be >= 1")
)

// measurement boundary vectors, indexed by encoding: the full encoding
// accepts I and Z outcomes, the signature encoding weighs the merged
// non-identity index by one third.
var (
	measFull      = []float64{1, 0, 0, 1}
	measSignature = []float64{1, 1.0 / 3.0}
)

func measurementVector(bond int) []float64 {
	if bond == 4 {
		return measFull
	}
	return measSignature
}

// Contractor contracts brickwork circuit networks. Its scratch buffers
// are reused across calls, so a Contractor must not be shared between
// goroutines.
type Contractor struct {
	work [2][]float64
}

// NewContractor returns a Contractor with empty scratch.
func NewContractor() *Contractor {
	return &Contractor{}
}

func (c *Contractor) buffer(i, size int) []float64 {
	if cap(c.work[i]) < size {
		c.work[i] = make([]float64, size)
	}
	return c.work[i][:size]
}

// Contract computes the weight of one observable under one circuit.
//
// boundary encodes the observable as n vectors of length bond,
// flattened (site-major). gates holds one flattened bond^4 transfer
// tensor per (layer, pair); layer 0 is the layer adjacent to the
// measurement, layer depth-1 the one adjacent to the preparation.
// bond must be 2 (identity/non-identity signature encoding) or 4
// (full Pauli encoding).
//
// The returned weight is the trace of the closed network: the
// probability that one shot of the circuit yields a usable estimate of
// the observable.
func (c *Contractor) Contract(n, depth int, boundary []float64, gates [][][]float64, bond int) (float64, error) {
	if bond != 2 && bond != 4 {
		return 0, ErrBondDim
	}
	if depth < 1 {
		return 0, ErrDepth
	}

	pairs := n / 2
	b := bond
	bb := b * b
	parity := depth % 2
	offset := 1 - parity

	// Pair the boundary vectors with the brickwork offset and contract
	// them into the innermost (preparation-side) gate layer, one small
	// matrix per pair. Even total parity transposes the matrices to
	// keep the open legs consistent with the layer loop below.
	cur := c.buffer(0, pairs*bb)
	inner := gates[depth-1]
	for p := 0; p < pairs; p++ {
		s1 := boundary[((2*p+offset)%n)*b:]
		s2 := boundary[((2*p+1+offset)%n)*b:]
		m := cur[p*bb : (p+1)*bb]
		for i := range m {
			m[i] = 0
		}
		g := inner[p]
		for a := 0; a < b; a++ {
			va := s1[a]
			if va == 0 {
				continue
			}
			for e := 0; e < b; e++ {
				ve := s2[e]
				if ve == 0 {
					continue
				}
				w := va * ve
				row := g[(a*b+e)*bb : (a*b+e+1)*bb]
				for k := 0; k < bb; k++ {
					m[k] += w * row[k]
				}
			}
		}
		if parity == 0 {
			transposeSquare(m, b)
		}
	}

	meas := measurementVector(b)

	if depth == 1 {
		prod := 1.0
		for p := 0; p < pairs; p++ {
			m := cur[p*bb : (p+1)*bb]
			var s float64
			for k := 0; k < b; k++ {
				if meas[k] == 0 {
					continue
				}
				for l := 0; l < b; l++ {
					s += meas[k] * meas[l] * m[k*b+l]
				}
			}
			prod *= s
		}
		return prod, nil
	}

	// Per-pair tensor of dims (d1, d2, d3): a temporal leg of size one
	// on the side determined by parity lets the inner layers stack as
	// a minimal MPO chain. d3 stays equal to the bond dimension.
	d1, d2 := 1, b
	if parity == 1 {
		d1, d2 = b, 1
	}
	d3 := b

	// Inner layers, outermost-but-one down to one. The leg-merge side
	// alternates with layer parity; this alternation is what realizes
	// the brickwork topology. Each step multiplies the merged bond by
	// bond^2.
	buf := 1
	for d := depth - 2; d >= 1; d-- {
		layer := gates[d]
		if d%2 == 0 {
			nd1 := d1 * bb
			next := c.buffer(buf, pairs*nd1*d2*b)
			for p := 0; p < pairs; p++ {
				t := cur[p*d1*d2*d3:]
				r := next[p*nd1*d2*b:]
				g := layer[p]
				for i := 0; i < d1; i++ {
					for a := 0; a < b; a++ {
						for e := 0; e < b; e++ {
							ro := (i*b+a)*b + e
							for j := 0; j < d2; j++ {
								for dd := 0; dd < b; dd++ {
									var s float64
									for k := 0; k < d3; k++ {
										s += t[(i*d2+j)*d3+k] * g[((a*b+k)*b+e)*b+dd]
									}
									r[(ro*d2+j)*b+dd] = s
								}
							}
						}
					}
				}
			}
			d1 = nd1
		} else {
			nd2 := d2 * bb
			next := c.buffer(buf, pairs*d1*nd2*b)
			for p := 0; p < pairs; p++ {
				t := cur[p*d1*d2*d3:]
				r := next[p*d1*nd2*b:]
				g := layer[p]
				for i := 0; i < d1; i++ {
					for j := 0; j < d2; j++ {
						for a := 0; a < b; a++ {
							for dd := 0; dd < b; dd++ {
								co := (j*b+a)*b + dd
								for e := 0; e < b; e++ {
									var s float64
									for k := 0; k < d3; k++ {
										s += t[(i*d2+j)*d3+k] * g[((k*b+a)*b+e)*b+dd]
									}
									r[(i*nd2+co)*b+e] = s
								}
							}
						}
					}
				}
			}
			d2 = nd2
		}
		cur = c.work[buf][:pairs*d1*d2*b]
		buf = 1 - buf
	}

	// Close the outermost layer against the measurement vector on both
	// of its open legs, then fold it into the chain. The result is one
	// square matrix per pair.
	rows := d1 * b // == d2 by construction
	out := c.buffer(buf, pairs*rows*d2)
	var dressed [16]float64
	for p := 0; p < pairs; p++ {
		g := gates[0][p]
		for a := 0; a < b; a++ {
			for k := 0; k < b; k++ {
				var s float64
				for kk := 0; kk < b; kk++ {
					if meas[kk] == 0 {
						continue
					}
					for ll := 0; ll < b; ll++ {
						s += meas[kk] * meas[ll] * g[((a*b+k)*b+kk)*b+ll]
					}
				}
				dressed[a*b+k] = s
			}
		}
		t := cur[p*d1*d2*d3:]
		m := out[p*rows*d2:]
		for i := 0; i < d1; i++ {
			for a := 0; a < b; a++ {
				for j := 0; j < d2; j++ {
					var s float64
					for k := 0; k < d3; k++ {
						s += t[(i*d2+j)*d3+k] * dressed[a*b+k]
					}
					m[(i*b+a)*d2+j] = s
				}
			}
		}
	}

	// Multiply the per-pair matrices left to right and take the trace.
	acc := mat.NewDense(rows, rows, out[:rows*rows])
	if pairs > 1 {
		prod := mat.NewDense(rows, rows, nil)
		for p := 1; p < pairs; p++ {
			next := mat.NewDense(rows, rows, out[p*rows*rows:(p+1)*rows*rows])
			prod.Mul(acc, next)
			acc, prod = prod, acc
		}
	}
	return mat.Trace(acc), nil
}

func transposeSquare(m []float64, b int) {
	for k := 0; k < b; k++ {
		for l := k + 1; l < b; l++ {
			m[k*b+l], m[l*b+k] = m[l*b+k], m[k*b+l]
		}
	}
}

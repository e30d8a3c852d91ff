package circuit

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/shallowshadow/gate"
)

// Slot is one two-qubit gate position: either a fixed gate or still
// random (undetermined, averaged over the Clifford group).
type Slot struct {
	g     gate.TwoQubit
	fixed bool
}

// FixedSlot returns a slot committed to g. The averaged placeholder is
// not a committable gate; passing it is a programming error.
func FixedSlot(g gate.TwoQubit) Slot {
	if g == gate.TwoQubitAverage {
		panic("circuit: the averaged placeholder cannot be a fixed gate")
	}
	return Slot{g: g, fixed: true}
}

// RandomSlot returns an undetermined slot.
func RandomSlot() Slot {
	return Slot{}
}

// IsRandom reports whether the slot is still undetermined.
func (s Slot) IsRandom() bool {
	return !s.fixed
}

// Gate returns the committed gate, or false for a random slot.
func (s Slot) Gate() (gate.TwoQubit, bool) {
	return s.g, s.fixed
}

// Code returns the byte encoding used in cache keys and boundary
// output: the gate index, or 3 for a random slot.
func (s Slot) Code() byte {
	if !s.fixed {
		return 3
	}
	return byte(s.g)
}

// signature returns the twirled tensor to contract for this slot: the
// committed gate's, or the averaged placeholder's when still random.
func (s Slot) signature() []float64 {
	if !s.fixed {
		return gate.TwoQubitAverage.Signature()
	}
	return s.g.Signature()
}

// tensor returns the full transfer tensor for this slot.
func (s Slot) tensor() []float64 {
	if !s.fixed {
		return gate.TwoQubitAverage.Tensor()
	}
	return s.g.Tensor()
}

// Structure is the two-qubit gate configuration of one measurement
// circuit: depth rows of N/2 slots, row 0 nearest the measurement.
type Structure struct {
	depth int
	pairs int
	slots []Slot
}

// NewStructure returns an all-random structure for n qubits.
func NewStructure(depth, n int) *Structure {
	return &Structure{
		depth: depth,
		pairs: n / 2,
		slots: make([]Slot, depth*n/2),
	}
}

// Depth returns the number of two-qubit gate layers.
func (st *Structure) Depth() int {
	return st.depth
}

// Pairs returns the number of gate slots per layer (N/2).
func (st *Structure) Pairs() int {
	return st.pairs
}

// At returns the slot at (layer, pair).
func (st *Structure) At(layer, pair int) Slot {
	return st.slots[layer*st.pairs+pair]
}

// Set replaces the slot at (layer, pair).
func (st *Structure) Set(layer, pair int, s Slot) {
	st.slots[layer*st.pairs+pair] = s
}

// Clone returns an independent copy.
func (st *Structure) Clone() *Structure {
	return &Structure{
		depth: st.depth,
		pairs: st.pairs,
		slots: append([]Slot(nil), st.slots...),
	}
}

// FullyFixed reports whether no slot remains random.
func (st *Structure) FullyFixed() bool {
	for _, s := range st.slots {
		if s.IsRandom() {
			return false
		}
	}
	return true
}

// Key serializes the structure, random slots included, for use as a
// cache key.
func (st *Structure) Key() string {
	codes := make([]byte, len(st.slots))
	for i, s := range st.slots {
		codes[i] = s.Code()
	}
	return string(codes)
}

// SignatureLayers returns the twirled tensor per slot, layer 0 nearest
// the measurement, for the structure-only contraction.
func (st *Structure) SignatureLayers() [][][]float64 {
	layers := make([][][]float64, st.depth)
	for l := 0; l < st.depth; l++ {
		row := make([][]float64, st.pairs)
		for p := 0; p < st.pairs; p++ {
			row[p] = st.At(l, p).signature()
		}
		layers[l] = row
	}
	return layers
}

// MarshalJSON encodes the structure as rows of gate codes.
func (st *Structure) MarshalJSON() ([]byte, error) {
	rows := make([][]int, st.depth)
	for l := 0; l < st.depth; l++ {
		row := make([]int, st.pairs)
		for p := 0; p < st.pairs; p++ {
			row[p] = int(st.At(l, p).Code())
		}
		rows[l] = row
	}
	return json.Marshal(rows)
}

func (st *Structure) String() string {
	out := make([]byte, 0, len(st.slots)+st.depth)
	for l := 0; l < st.depth; l++ {
		if l > 0 {
			out = append(out, '/')
		}
		for p := 0; p < st.pairs; p++ {
			out = append(out, '0'+st.At(l, p).Code())
		}
	}
	return fmt.Sprintf("structure(%s)", out)
}

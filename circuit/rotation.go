package circuit

import (
	"encoding/json"

	"github.com/hupe1980/shallowshadow/gate"
)

// RotationSlot is one single-qubit gate position: either a fixed
// rotation or still random (averaged over the Clifford group).
type RotationSlot struct {
	r     gate.SingleQubit
	fixed bool
}

// FixedRotation returns a slot committed to r. The averaged rotation
// is expressed by RandomRotation, not as a fixed choice.
func FixedRotation(r gate.SingleQubit) RotationSlot {
	if r == gate.SingleAverage {
		panic("circuit: the averaged rotation cannot be a fixed gate")
	}
	return RotationSlot{r: r, fixed: true}
}

// RandomRotation returns an undetermined slot.
func RandomRotation() RotationSlot {
	return RotationSlot{}
}

// IsRandom reports whether the slot is still undetermined.
func (s RotationSlot) IsRandom() bool {
	return !s.fixed
}

// Rotation returns the committed rotation, or false for a random slot.
func (s RotationSlot) Rotation() (gate.SingleQubit, bool) {
	return s.r, s.fixed
}

// Code returns the byte encoding used in cache keys and boundary
// output: the rotation index, or 0 for a random slot.
func (s RotationSlot) Code() byte {
	if !s.fixed {
		return 0
	}
	return byte(s.r)
}

// matrix returns the transfer matrix to fuse for this slot.
func (s RotationSlot) matrix() []float64 {
	if !s.fixed {
		return gate.SingleAverage.Matrix()
	}
	return s.r.Matrix()
}

// Rotations is the single-qubit gate configuration of one measurement
// circuit: depth+1 layers of N slots, flattened with the layer at the
// observable boundary first and the measurement-adjacent layer last.
// Descriptions of this flat column disagree on which end comes first;
// the cache keys and the emitted JSON fix the order stated here, and
// the dressing canonicalization owns the mapping onto structure rows.
type Rotations struct {
	depth int
	n     int
	slots []RotationSlot
}

// NewRotations returns an all-random rotation layout for n qubits and
// the given two-qubit depth.
func NewRotations(depth, n int) *Rotations {
	return &Rotations{
		depth: depth,
		n:     n,
		slots: make([]RotationSlot, n*(depth+1)),
	}
}

// Len returns the total number of rotation slots, N*(depth+1).
func (r *Rotations) Len() int {
	return len(r.slots)
}

// At returns slot i of the flattened layout.
func (r *Rotations) At(i int) RotationSlot {
	return r.slots[i]
}

// Set replaces slot i.
func (r *Rotations) Set(i int, s RotationSlot) {
	r.slots[i] = s
}

// Clone returns an independent copy.
func (r *Rotations) Clone() *Rotations {
	return &Rotations{
		depth: r.depth,
		n:     r.n,
		slots: append([]RotationSlot(nil), r.slots...),
	}
}

// Key serializes the layout, random slots included, for use as a cache
// key.
func (r *Rotations) Key() string {
	codes := make([]byte, len(r.slots))
	for i, s := range r.slots {
		codes[i] = s.Code()
	}
	return string(codes)
}

// layer returns the n slots of rotation layer l (0 at the observable
// boundary, depth adjacent to the measurement).
func (r *Rotations) layer(l int) []RotationSlot {
	return r.slots[l*r.n : (l+1)*r.n]
}

// MarshalJSON encodes the layout as a flat list of rotation codes.
func (r *Rotations) MarshalJSON() ([]byte, error) {
	codes := make([]int, len(r.slots))
	for i, s := range r.slots {
		codes[i] = int(s.Code())
	}
	return json.Marshal(codes)
}

package circuit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/shallowshadow/gate"
)

func TestRotationSlot(t *testing.T) {
	random := RandomRotation()
	assert.True(t, random.IsRandom())
	assert.Equal(t, byte(0), random.Code())

	fixed := FixedRotation(gate.SingleHadamard)
	assert.False(t, fixed.IsRandom())
	assert.Equal(t, byte(6), fixed.Code())
	r, ok := fixed.Rotation()
	assert.True(t, ok)
	assert.Equal(t, gate.SingleHadamard, r)

	assert.Panics(t, func() { FixedRotation(gate.SingleAverage) })
}

func TestRotations(t *testing.T) {
	rot := NewRotations(1, 2)
	assert.Equal(t, 4, rot.Len())
	assert.Equal(t, "\x00\x00\x00\x00", rot.Key())

	rot.Set(2, FixedRotation(gate.SingleSwapXY))
	assert.Equal(t, "\x00\x00\x03\x00", rot.Key())

	clone := rot.Clone()
	clone.Set(0, FixedRotation(gate.SingleIdentity))
	assert.True(t, rot.At(0).IsRandom())
	assert.False(t, clone.At(0).IsRandom())
}

func TestRotationsMarshalJSON(t *testing.T) {
	rot := NewRotations(1, 2)
	rot.Set(1, FixedRotation(gate.SingleCycleXYZ))

	out, err := json.Marshal(rot)
	require.NoError(t, err)
	assert.JSONEq(t, "[0,4,0,0]", string(out))
}

package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/shallowshadow/gate"
)

func fullBoundary(paulis []int) []float64 {
	b := make([]float64, len(paulis)*4)
	for i, p := range paulis {
		b[i*4+p] = 1
	}
	return b
}

func sigBoundary(mask []bool) []float64 {
	b := make([]float64, len(mask)*2)
	for i, m := range mask {
		if m {
			b[i*2+1] = 1
		} else {
			b[i*2] = 1
		}
	}
	return b
}

func uniformLayers(depth, pairs int, t []float64) [][][]float64 {
	gates := make([][][]float64, depth)
	for d := range gates {
		layer := make([][]float64, pairs)
		for p := range layer {
			layer[p] = t
		}
		gates[d] = layer
	}
	return gates
}

func TestContractValidation(t *testing.T) {
	c := NewContractor()
	gates := uniformLayers(1, 1, gate.TwoQubitIdentity.Tensor())

	_, err := c.Contract(2, 1, fullBoundary([]int{0, 0}), gates, 3)
	assert.ErrorIs(t, err, ErrBondDim)

	_, err = c.Contract(2, 0, fullBoundary([]int{0, 0}), gates, 4)
	assert.ErrorIs(t, err, ErrDepth)
}

// Identity circuits reveal exactly the Z-basis component of every
// site: observables over {I, Z} contract to one, anything touching X
// or Y to zero. This closed form anchors the layer ordering and
// parity conventions across depths of both parities.
func TestContractIdentityClosedForm(t *testing.T) {
	c := NewContractor()
	id := gate.TwoQubitIdentity.Tensor()

	for _, n := range []int{2, 4, 6} {
		for depth := 1; depth <= 5; depth++ {
			gates := uniformLayers(depth, n/2, id)

			allZ := make([]int, n)
			for i := range allZ {
				allZ[i] = 3
			}
			w, err := c.Contract(n, depth, fullBoundary(allZ), gates, 4)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, w, 1e-12, "allZ n=%d depth=%d", n, depth)

			mixedZI := make([]int, n)
			for i := 0; i < n; i += 2 {
				mixedZI[i] = 3
			}
			w, err = c.Contract(n, depth, fullBoundary(mixedZI), gates, 4)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, w, 1e-12, "ZIZI n=%d depth=%d", n, depth)

			withX := make([]int, n)
			withX[0] = 1
			w, err = c.Contract(n, depth, fullBoundary(withX), gates, 4)
			require.NoError(t, err)
			assert.InDelta(t, 0.0, w, 1e-12, "XII n=%d depth=%d", n, depth)
		}
	}
}

// Signature-encoded contraction of the all-identity structure: every
// non-identity site contributes an independent factor 1/3.
func TestContractSignatureIdentity(t *testing.T) {
	c := NewContractor()
	sig := gate.TwoQubitIdentity.Signature()

	tests := []struct {
		name  string
		n     int
		depth int
		mask  []bool
		want  float64
	}{
		{"OneSite", 2, 1, []bool{true, false}, 1.0 / 3.0},
		{"TwoSites", 2, 1, []bool{true, true}, 1.0 / 9.0},
		{"TwoOfFour", 4, 2, []bool{true, false, true, false}, 1.0 / 9.0},
		{"FourSitesDeep", 4, 3, []bool{true, true, true, true}, 1.0 / 81.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gates := uniformLayers(tt.depth, tt.n/2, sig)
			w, err := c.Contract(tt.n, tt.depth, sigBoundary(tt.mask), gates, 2)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, w, 1e-12)
		})
	}
}

// The CNOT signature weight of ZZ at depth one is 17/81 and of the
// averaged placeholder 1/5; both exceed identity's 1/9, which is why
// the structure pass prefers entangling gates for correlators.
func TestContractSignatureSpotValues(t *testing.T) {
	c := NewContractor()
	mask := sigBoundary([]bool{true, true})

	w, err := c.Contract(2, 1, mask, uniformLayers(1, 1, gate.TwoQubitCNOT.Signature()), 2)
	require.NoError(t, err)
	assert.InDelta(t, 17.0/81.0, w, 1e-12)

	w, err = c.Contract(2, 1, mask, uniformLayers(1, 1, gate.TwoQubitAverage.Signature()), 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/5.0, w, 1e-12)

	w, err = c.Contract(2, 1, mask, uniformLayers(1, 1, gate.TwoQubitSwap.Signature()), 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/9.0, w, 1e-12)
}

// Scratch buffers are reused across calls of different shapes; results
// must not depend on what ran before.
func TestContractorReuse(t *testing.T) {
	c := NewContractor()
	id := gate.TwoQubitIdentity.Tensor()

	first, err := c.Contract(4, 3, fullBoundary([]int{3, 3, 3, 3}), uniformLayers(3, 2, id), 4)
	require.NoError(t, err)

	_, err = c.Contract(6, 5, fullBoundary([]int{3, 0, 3, 0, 3, 0}), uniformLayers(5, 3, id), 4)
	require.NoError(t, err)

	_, err = c.Contract(2, 1, sigBoundary([]bool{true, true}), uniformLayers(1, 1, gate.TwoQubitCNOT.Signature()), 2)
	require.NoError(t, err)

	again, err := c.Contract(4, 3, fullBoundary([]int{3, 3, 3, 3}), uniformLayers(3, 2, id), 4)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Closed-form signature tensors, flattened with Idx4 at bond 2.
func TestSignature(t *testing.T) {
	tests := []struct {
		name string
		g    TwoQubit
		want []float64
	}{
		{
			name: "Identity",
			g:    TwoQubitIdentity,
			want: []float64{
				1, 0, 0, 0,
				0, 1, 0, 0,
				0, 0, 1, 0,
				0, 0, 0, 1,
			},
		},
		{
			name: "CNOT",
			g:    TwoQubitCNOT,
			want: []float64{
				1, 0, 0, 0,
				0, 1.0 / 3.0, 0, 2.0 / 3.0,
				0, 0, 1.0 / 3.0, 2.0 / 3.0,
				0, 2.0 / 9.0, 2.0 / 9.0, 5.0 / 9.0,
			},
		},
		{
			name: "Swap",
			g:    TwoQubitSwap,
			want: []float64{
				1, 0, 0, 0,
				0, 0, 1, 0,
				0, 1, 0, 0,
				0, 0, 0, 1,
			},
		},
		{
			name: "Average",
			g:    TwoQubitAverage,
			want: []float64{
				1, 0, 0, 0,
				0, 0.2, 0.2, 0.6,
				0, 0.2, 0.2, 0.6,
				0, 0.2, 0.2, 0.6,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := tt.g.Signature()
			require.Len(t, sig, 16)
			for i, want := range tt.want {
				assert.InDelta(t, want, sig[i], 1e-12, "index %d", i)
			}
		})
	}
}

// Twirling preserves the identity component: any gate signature routes
// an identity-identity input entirely through index (0,0,...).
func TestSignatureIdentityComponent(t *testing.T) {
	for _, g := range []TwoQubit{TwoQubitIdentity, TwoQubitCNOT, TwoQubitSwap, TwoQubitAverage} {
		sig := g.Signature()
		assert.Equal(t, 1.0, sig[Idx4(0, 0, 0, 0, 2)], "%v", g)
		assert.Equal(t, 0.0, sig[Idx4(0, 0, 0, 1, 2)], "%v", g)
		assert.Equal(t, 0.0, sig[Idx4(0, 0, 1, 0, 2)], "%v", g)
	}
}

package pauli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObservable(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Pauli
		wantErr bool
	}{
		{"Mixed", "XIZY", []Pauli{X, I, Z, Y}, false},
		{"Lowercase", "xz", []Pauli{X, Z}, false},
		{"Empty", "", []Pauli{}, false},
		{"Invalid", "XA", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := ParseObservable(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPauli)
				return
			}
			require.NoError(t, err)
			require.Equal(t, len(tt.want), obs.Len())
			for i, p := range tt.want {
				assert.Equal(t, p, obs.At(i))
			}
		})
	}
}

func TestObservableSupport(t *testing.T) {
	obs, err := ParseObservable("XIZI")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, false}, obs.Support())
	assert.False(t, obs.IsIdentity())
	assert.Equal(t, "XIZI", obs.String())

	id, err := ParseObservable("IIII")
	require.NoError(t, err)
	assert.True(t, id.IsIdentity())
}

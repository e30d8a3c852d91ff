package shallowshadow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/shallowshadow/gate"
)

func TestRunSingleCorrelator(t *testing.T) {
	// A two-body correlator needs an entangling gate: the structure
	// pass must pick CNOT over identity, and one measurement suffices.
	s, err := New(mustSet(t, "ZZ"), 1,
		WithMeasurementsPerObservable(1),
		WithMaxMeasurements(1000),
	)
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, result.Measurements())

	g, ok := result.Structures[0].At(0, 0).Gate()
	require.True(t, ok)
	assert.Equal(t, gate.TwoQubitCNOT, g)

	for i := 0; i < result.Rotations[0].Len(); i++ {
		assert.Equal(t, byte(gate.SingleIdentity), result.Rotations[0].At(i).Code())
	}

	require.Len(t, result.Hits, 1)
	assert.InDelta(t, 1.0, result.Hits[0], 1e-9)
	assert.Equal(t, 1, result.Covered(s.Targets()))
}

func TestRunDisjointSupports(t *testing.T) {
	// Two single-site observables on different qubits are served by one
	// circuit: identity structure, one rotation turning X onto the
	// measurement basis.
	s, err := New(mustSet(t, "XIII", "IIZI"), 1,
		WithMeasurementsPerObservable(1),
		WithMaxMeasurements(10),
	)
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, result.Measurements())

	st := result.Structures[0]
	for p := 0; p < st.Pairs(); p++ {
		g, ok := st.At(0, p).Gate()
		require.True(t, ok)
		assert.Equal(t, gate.TwoQubitIdentity, g)
	}

	wantRotations := []byte{1, 1, 1, 1, 4, 1, 1, 1}
	rot := result.Rotations[0]
	require.Equal(t, len(wantRotations), rot.Len())
	for i, want := range wantRotations {
		assert.Equal(t, want, rot.At(i).Code(), "slot %d", i)
	}

	require.Len(t, result.Hits, 2)
	assert.InDelta(t, 1.0, result.Hits[0], 1e-9)
	assert.InDelta(t, 1.0, result.Hits[1], 1e-9)
}

func TestRunSharedSupport(t *testing.T) {
	// XX and YY share both qubits; the optimizer finds a circuit whose
	// single shot serves both, repeated until both targets are met.
	s, err := New(mustSet(t, "XX", "YY"), 1,
		WithMeasurementsPerObservable(3),
		WithMaxMeasurements(10),
	)
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 3, result.Measurements())
	require.Len(t, result.Rotations, 3)

	for i, st := range result.Structures {
		g, ok := st.At(0, 0).Gate()
		require.True(t, ok)
		assert.Equal(t, gate.TwoQubitCNOT, g, "measurement %d", i)
	}

	assert.InDelta(t, 3.0, result.Hits[0], 1e-9)
	assert.InDelta(t, 3.0, result.Hits[1], 1e-9)
}

func TestRunDepthTwo(t *testing.T) {
	s, err := New(mustSet(t, "ZZ", "XX"), 2,
		WithMeasurementsPerObservable(2),
		WithMaxMeasurements(5),
	)
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, result.Measurements())
	assert.InDelta(t, 2.0, result.Hits[0], 1e-9)
	assert.InDelta(t, 2.0, result.Hits[1], 1e-9)
}

func TestRunBudgetExhaustion(t *testing.T) {
	// Running out of budget before the targets are met is not an
	// error; the accumulated sequence is returned as is.
	s, err := New(mustSet(t, "ZZ"), 1,
		WithMeasurementsPerObservable(100),
		WithMaxMeasurements(2),
	)
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Measurements())
	assert.InDelta(t, 2.0, result.Hits[0], 1e-9)
	assert.Equal(t, 0, result.Covered(s.Targets()))
}

func TestRunSessionConsumed(t *testing.T) {
	s, err := New(mustSet(t, "ZZ"), 1, WithMeasurementsPerObservable(1))
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	assert.ErrorIs(t, err, ErrSessionConsumed)
}

func TestRunContextCancelled(t *testing.T) {
	s, err := New(mustSet(t, "ZZ"), 1, WithMeasurementsPerObservable(1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSequenceShapes(t *testing.T) {
	s, err := New(mustSet(t, "XYZI", "IZZI", "XIIX"), 2,
		WithMeasurementsPerObservable(2),
		WithMaxMeasurements(6),
	)
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, len(result.Structures), len(result.Rotations))
	assert.GreaterOrEqual(t, result.Measurements(), 1)
	assert.LessOrEqual(t, result.Measurements(), 6)

	for m, st := range result.Structures {
		assert.True(t, st.FullyFixed(), "measurement %d", m)
		assert.Equal(t, 2, st.Depth())
		assert.Equal(t, 2, st.Pairs())
		assert.Equal(t, 12, result.Rotations[m].Len())
	}

	for l, h := range result.Hits {
		assert.GreaterOrEqual(t, h, 0.0, "observable %d", l)
		assert.LessOrEqual(t, h, float64(result.Measurements())+1e-9, "observable %d", l)
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	observables := []string{"XYZI", "IZZI", "XIIX", "YYII"}

	run := func(parallelism int) *Result {
		s, err := New(mustSet(t, observables...), 2,
			WithMeasurementsPerObservable(2),
			WithMaxMeasurements(5),
			WithParallelism(parallelism),
		)
		require.NoError(t, err)

		result, err := s.Run(context.Background())
		require.NoError(t, err)

		return result
	}

	seq := run(1)
	par := run(4)

	require.Equal(t, seq.Measurements(), par.Measurements())

	for m := range seq.Structures {
		assert.Equal(t, seq.Structures[m].Key(), par.Structures[m].Key(), "measurement %d", m)
		assert.Equal(t, seq.Rotations[m].Key(), par.Rotations[m].Key(), "measurement %d", m)
	}

	for l := range seq.Hits {
		assert.InDelta(t, seq.Hits[l], par.Hits[l], 1e-9)
	}
}

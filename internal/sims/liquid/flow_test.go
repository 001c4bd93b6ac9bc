package liquid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerticalCapacity(t *testing.T) {
	s := NewSimulation(1, 2)
	dst := mustCell(t, s, 1, 0)

	cases := []struct {
		name      string
		remaining float64
		below     float64
		want      float64
	}{
		{"under one cell", 0.3, 0.4, LiquidMax},
		{"exactly full", 0.5, 0.5, LiquidMax},
		{"compressing", 1.0, 0.5, (1 + 1.5*0.25) / 1.25},
		{"over-pressured", 5.0, 1.0, (6 + 0.25) / 2},
		{"boundary", 1.25, 1.0, (2.25 + 0.25) / 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dst.liquid = tc.below
			assert.InDelta(t, tc.want, s.verticalCapacity(tc.remaining, dst), 1e-12)
		})
	}
}

func TestVerticalCapacityWithoutCompression(t *testing.T) {
	s := NewSimulation(1, 2)
	require.NoError(t, s.SetCompressionMax(0))
	dst := mustCell(t, s, 1, 0)
	dst.liquid = 1

	assert.InDelta(t, 1.0, s.verticalCapacity(0.8, dst), 1e-12)
	assert.InDelta(t, 1.5, s.verticalCapacity(2, dst), 1e-12)
}

func TestConstrainFlow(t *testing.T) {
	cases := []struct {
		flow, available, want float64
	}{
		{-0.3, 1, 0},
		{0.2, 1, 0.2},
		{0.8, 0.5, 0.5},
		{6, 10, FlowMax},
		{6, 3, 3},
		{0, 0, 0},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, constrainFlow(tc.flow, tc.available), "flow %v available %v", tc.flow, tc.available)
	}
}

func TestDampOnlyAboveFlowMin(t *testing.T) {
	s := NewSimulation(1, 1)
	require.NoError(t, s.SetFlowSpeed(0.5))

	assert.Equal(t, 0.5, s.damp(1))
	assert.Equal(t, FlowMin, s.damp(FlowMin))
	assert.Equal(t, 0.001, s.damp(0.001))
}

func TestFlowSkipsNonBlankNeighbors(t *testing.T) {
	s := NewSimulation(3, 2)
	require.NoError(t, s.SetCellType(1, 1, Solid))
	require.NoError(t, s.SetCellType(0, 0, Source))
	require.NoError(t, s.SetCellType(0, 2, Drain))
	require.NoError(t, s.AddLiquid(0, 1, 1))
	s.Run()

	// The source feeds the cup and the drain empties it; nothing flows into either.
	assert.Zero(t, mustCell(t, s, 0, 0).Liquid())
	assert.Zero(t, mustCell(t, s, 0, 2).Liquid())
	assert.Zero(t, mustCell(t, s, 1, 1).Liquid())
	assert.InDelta(t, 1.0, mustCell(t, s, 0, 1).Liquid(), 1e-12)
}

func TestFlowSpeedSlowsSpread(t *testing.T) {
	run := func(speed float64) float64 {
		s := NewSimulation(3, 1)
		require.NoError(t, s.SetFlowSpeed(speed))
		require.NoError(t, s.AddLiquid(0, 1, 1))
		s.Run()
		return mustCell(t, s, 0, 1).Liquid()
	}
	fast, slow := run(1), run(0.5)
	assert.InDelta(t, 1-0.25-0.25, fast, 1e-12)
	assert.InDelta(t, 1-0.125-0.875/6, slow, 1e-12)
	assert.Greater(t, slow, fast)
}

func TestCompressedCellPushesUp(t *testing.T) {
	s := NewSimulation(1, 2)
	require.NoError(t, s.AddLiquid(1, 0, 1.5))
	s.Run()

	want := 1.5 - (1+1.5*DefaultCompressionMax)/(1+DefaultCompressionMax)
	assert.InDelta(t, want, mustCell(t, s, 0, 0).Liquid(), 1e-12)
	assert.InDelta(t, 1.5, s.TotalLiquid(), 1e-12)
}

package liquid

import (
	"testing"

	"liquid-ca/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParametersSnapshot(t *testing.T) {
	world := newTestWorld(t, ScenarioDemo, 10, 10)
	world.Step()

	snap := world.Parameters()
	names := make([]string, len(snap.Groups))
	for i, g := range snap.Groups {
		names[i] = g.Name
	}
	assert.Equal(t, []string{"World", "Flow", "Constants", "Stats"}, names)

	for key, want := range map[string]string{
		"w":               "10",
		"scenario":        ScenarioDemo,
		keyFlowSpeed:      "1",
		keyCompressionMax: "0.25",
		keyIterations:     "1",
		"liquid_min":      "0.005",
		"frame":           "1",
		"total_liquid":    "10",
	} {
		p, ok := snap.Lookup(key)
		require.Truef(t, ok, "missing %s", key)
		assert.Equalf(t, want, p.Value, "parameter %s", key)
	}
}

func TestSetFloatParameterClamps(t *testing.T) {
	world := newTestWorld(t, ScenarioEmpty, 4, 4)

	assert.True(t, world.SetFloatParameter(keyFlowSpeed, 3))
	assert.Equal(t, 1.0, world.Simulation().FlowSpeed())
	assert.True(t, world.SetFloatParameter(keyFlowSpeed, 0))
	assert.Equal(t, 0.05, world.Simulation().FlowSpeed())

	assert.True(t, world.SetFloatParameter(keyCompressionMax, 0.4))
	assert.Equal(t, 0.4, world.Simulation().CompressionMax())

	assert.False(t, world.SetFloatParameter("gravity", 1))
	assert.False(t, world.SetFloatParameter(keyIterations, 2))
}

func TestSetIntParameterClamps(t *testing.T) {
	world := newTestWorld(t, ScenarioEmpty, 4, 4)

	assert.True(t, world.SetIntParameter(keyIterations, 99))
	assert.Equal(t, 20, world.Simulation().IterationsPerFrame())
	assert.True(t, world.SetIntParameter(keyIterations, -3))
	assert.Equal(t, 1, world.Simulation().IterationsPerFrame())
	assert.False(t, world.SetIntParameter(keyFlowSpeed, 1))
}

func TestParameterControlsHaveSnapshotValues(t *testing.T) {
	world := newTestWorld(t, ScenarioEmpty, 4, 4)
	snap := world.Parameters()
	for _, ctrl := range world.ParameterControls() {
		p, ok := snap.Lookup(ctrl.Key)
		require.Truef(t, ok, "control %s has no parameter", ctrl.Key)
		assert.Equal(t, ctrl.Type, p.Type)
		assert.NotEqual(t, core.ParamTypeString, ctrl.Type)
	}
}

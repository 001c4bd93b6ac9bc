package main

import (
	"os"
	"path/filepath"
	"testing"

	"liquid-ca/internal/sims/liquid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatListSet(t *testing.T) {
	var l floatList
	require.NoError(t, l.Set("0.5, 1,2.25"))
	assert.Equal(t, floatList{0.5, 1, 2.25}, l)
	assert.Equal(t, "0.5,1,2.25", l.String())

	assert.Error(t, l.Set("0.5,nope"))
}

func TestRankPrefersFastSettling(t *testing.T) {
	all := []scenarioResult{
		{params: paramSet{flowSpeed: 1}, settledAt: -1, activeCells: 3},
		{params: paramSet{flowSpeed: 0.5}, settledAt: 40},
		{params: paramSet{flowSpeed: 0.25}, settledAt: -1, activeCells: 1},
		{params: paramSet{flowSpeed: 0.75}, settledAt: 12},
	}
	rank(all)

	got := make([]float64, len(all))
	for i, r := range all {
		got[i] = r.params.flowSpeed
	}
	assert.Equal(t, []float64{0.75, 0.5, 0.25, 1}, got)
}

func TestSweepRunsEveryCandidate(t *testing.T) {
	base := liquid.DefaultConfig()
	base.Width = 8
	base.Height = 6
	base.Params.Scenario = liquid.ScenarioBasin

	sets := []paramSet{
		{flowSpeed: 1, compressionMax: 0.25},
		{flowSpeed: 0.5, compressionMax: 0.1},
		{flowSpeed: 1, compressionMax: 0},
	}
	all := sweep(base, sets, 20, 2)

	require.Len(t, all, len(sets))
	for _, res := range all {
		assert.InDelta(t, 4.0, res.initialTotal, 1e-9, res.params.String())
		assert.LessOrEqual(t, res.finalTotal, res.initialTotal+1e-9, res.params.String())
		assert.NotEmpty(t, res.grid)
	}
}

func TestRunScenarioReportsSettling(t *testing.T) {
	base := liquid.DefaultConfig()
	base.Width = 8
	base.Height = 6
	base.Params.Scenario = liquid.ScenarioBasin

	// The basin goes quiet after roughly 500 frames.
	for _, params := range []paramSet{{flowSpeed: 1, compressionMax: 0.25}, {flowSpeed: 0.5, compressionMax: 0.1}} {
		res := runScenario(base, params, 2000)
		require.Truef(t, res.settled(), "%s: active=%d after %d", params, res.activeCells, res.frames)
		assert.Equal(t, res.settledAt, res.frames, params.String())
		assert.Zero(t, res.activeCells, params.String())
		assert.InDelta(t, res.initialTotal, res.finalTotal, 0.05, params.String())
	}

	// Too few frames to get there.
	res := runScenario(base, paramSet{flowSpeed: 1, compressionMax: 0.25}, 20)
	assert.False(t, res.settled())
	assert.Positive(t, res.activeCells)
}

func TestReplayWritesArtifacts(t *testing.T) {
	base := liquid.DefaultConfig()
	base.Width = 8
	base.Height = 6
	base.Params.Scenario = liquid.ScenarioBasin

	dir := t.TempDir()
	out := outputs{
		video: filepath.Join(dir, "run.avi"),
		chart: filepath.Join(dir, "run.png"),
		sheet: filepath.Join(dir, "sheet.png"),
		every: 5,
		scale: 2,
		fps:   10,
	}
	require.NoError(t, replay(base, paramSet{flowSpeed: 1, compressionMax: 0.25}, 30, out))

	for _, path := range []string{out.video, out.chart, out.sheet} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, info.Size(), path)
	}
}

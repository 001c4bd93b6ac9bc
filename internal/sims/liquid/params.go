package liquid

import (
	"math"
	"strconv"

	"liquid-ca/internal/core"
)

const (
	keyFlowSpeed      = "flow_speed"
	keyCompressionMax = "compression_max"
	keyIterations     = "iterations"
)

// Parameters reports the grid, tunables, fixed constants and live statistics.
func (w *World) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				stringParam("scenario", "Scenario", w.cfg.Params.Scenario),
			},
		},
		{
			Name: "Flow",
			Params: []core.Parameter{
				floatParam(keyFlowSpeed, "Flow speed", w.sim.FlowSpeed()),
				floatParam(keyCompressionMax, "Compression max", w.sim.CompressionMax()),
				intParam(keyIterations, "Iterations per frame", w.sim.IterationsPerFrame()),
			},
		},
		{
			Name:    "Constants",
			Summary: "Fixed at build time.",
			Params: []core.Parameter{
				floatParam("liquid_max", "Liquid max", LiquidMax),
				floatParam("liquid_min", "Liquid min", LiquidMin),
				floatParam("flow_max", "Flow max", FlowMax),
				floatParam("flow_min", "Flow min", FlowMin),
				floatParam("source_per_iteration", "Source per iteration", SourceLiquidPerIteration),
				floatParam("drain_per_iteration", "Drain per iteration", DrainLiquidPerIteration),
			},
		},
		{
			Name: "Stats",
			Params: []core.Parameter{
				intParam("frame", "Frame", w.frame),
				floatParam("total_liquid", "Total liquid", math.Round(w.sim.TotalLiquid()*1000)/1000),
				intParam("active_cells", "Active cells", w.sim.ActiveCells()),
				intParam("redraw", "Redrawn cells", w.lastRedraw),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables the HUD may adjust.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: keyFlowSpeed, Label: "Flow speed", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 1, HasMin: true, HasMax: true},
		{Key: keyCompressionMax, Label: "Compression", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: keyIterations, Label: "Iterations", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 20, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a float tunable, clamping to the control bounds.
func (w *World) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := w.control(key, core.ParamTypeFloat)
	if !ok {
		return false
	}
	value = ctrl.Clamp(value)
	switch key {
	case keyFlowSpeed:
		if w.sim.SetFlowSpeed(value) != nil {
			return false
		}
		w.cfg.Params.FlowSpeed = value
	case keyCompressionMax:
		if w.sim.SetCompressionMax(value) != nil {
			return false
		}
		w.cfg.Params.CompressionMax = value
	}
	return true
}

// SetIntParameter updates an integer tunable, clamping to the control bounds.
func (w *World) SetIntParameter(key string, value int) bool {
	ctrl, ok := w.control(key, core.ParamTypeInt)
	if !ok {
		return false
	}
	value = int(ctrl.Clamp(float64(value)))
	if key != keyIterations || w.sim.SetIterationsPerFrame(value) != nil {
		return false
	}
	w.cfg.Params.IterationsPerFrame = value
	return true
}

func (w *World) control(key string, typ core.ParamType) (core.ParameterControl, bool) {
	for _, ctrl := range w.ParameterControls() {
		if ctrl.Key == key && ctrl.Type == typ {
			return ctrl, true
		}
	}
	return core.ParameterControl{}, false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}

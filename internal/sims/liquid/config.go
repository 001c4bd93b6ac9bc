package liquid

import "strconv"

// Params holds the runtime tunables of the liquid sim.
type Params struct {
	FlowSpeed          float64
	CompressionMax     float64
	IterationsPerFrame int

	// Scenario names the layout queued on every Reset.
	Scenario string
}

// Config controls the liquid simulation dimensions and tunables.
type Config struct {
	Width  int
	Height int

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  64,
		Height: 64,
		Params: Params{
			FlowSpeed:          DefaultFlowSpeed,
			CompressionMax:     DefaultCompressionMax,
			IterationsPerFrame: DefaultIterationsPerFrame,
			Scenario:           ScenarioDemo,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Values that fail to parse keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["flow_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.FlowSpeed = parsed
		}
	}
	if v, ok := cfg["compression_max"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.CompressionMax = parsed
		}
	}
	if v, ok := cfg["iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 {
			c.Params.IterationsPerFrame = parsed
		}
	}
	if v, ok := cfg["scenario"]; ok && isScenario(v) {
		c.Params.Scenario = v
	}
	return c
}

package liquid

import "math"

// cascade is the fixed order in which a cell tries to shed liquid.
var cascade = [...]direction{bottom, left, right, top}

// verticalCapacity returns how much liquid the lower of two stacked cells
// should hold when remaining sits above destination. Past LiquidMax the lower
// cell compresses smoothly until the pair is heavily over-pressured, at which
// point the combined mass is split around compressionMax.
func (s *Simulation) verticalCapacity(remaining float64, destination *Cell) float64 {
	total := remaining + destination.liquid
	c := s.compressionMax
	switch {
	case total <= LiquidMax:
		return LiquidMax
	case total < 2*LiquidMax+c:
		return (LiquidMax*LiquidMax + total*c) / (LiquidMax + c)
	default:
		return (total + c) / 2
	}
}

// constrainFlow keeps a flow non-negative, under FlowMax and within what the
// sending cell actually holds.
func constrainFlow(flow, available float64) float64 {
	return math.Min(math.Max(flow, 0), math.Min(FlowMax, available))
}

func (s *Simulation) damp(flow float64) float64 {
	if flow > FlowMin {
		return flow * s.flowSpeed
	}
	return flow
}

// open returns the neighbor in direction d when it can receive liquid.
func (s *Simulation) open(c *Cell, d direction) *Cell {
	n := s.neighbor(c, d)
	if n == nil || n.typ != Blank {
		return nil
	}
	return n
}

func (s *Simulation) flowBottom(c *Cell) float64 {
	dst := s.open(c, bottom)
	if dst == nil {
		return 0
	}
	flow := s.verticalCapacity(c.liquid, dst) - dst.liquid
	if dst.liquid > 0 {
		flow = s.damp(flow)
	}
	flow = constrainFlow(flow, c.liquid)
	if flow != 0 {
		c.flowingDown = true
	}
	s.transfer(c, dst, flow)
	return flow
}

func (s *Simulation) flowLeft(c *Cell, remaining float64) float64 {
	dst := s.open(c, left)
	if dst == nil {
		return 0
	}
	flow := constrainFlow(s.damp((remaining-dst.liquid)/4), remaining)
	s.transfer(c, dst, flow)
	return flow
}

func (s *Simulation) flowRight(c *Cell, remaining float64) float64 {
	dst := s.open(c, right)
	if dst == nil {
		return 0
	}
	flow := constrainFlow(s.damp((remaining-dst.liquid)/3), remaining)
	s.transfer(c, dst, flow)
	return flow
}

// flowTop only moves liquid when the cell is compressed past what it may hold
// beneath its upper neighbor.
func (s *Simulation) flowTop(c *Cell, remaining float64) float64 {
	dst := s.open(c, top)
	if dst == nil {
		return 0
	}
	flow := constrainFlow(s.damp(remaining-s.verticalCapacity(remaining, dst)), remaining)
	s.transfer(c, dst, flow)
	return flow
}

func (s *Simulation) flowToward(c *Cell, d direction, remaining float64) float64 {
	switch d {
	case bottom:
		return s.flowBottom(c)
	case left:
		return s.flowLeft(c, remaining)
	case right:
		return s.flowRight(c, remaining)
	default:
		return s.flowTop(c, remaining)
	}
}

// transfer records a flow in the diff buffer. Nothing touches liquid until
// the whole scan has finished; settle state follows from what actually changed.
func (s *Simulation) transfer(src, dst *Cell, flow float64) {
	if flow == 0 {
		return
	}
	s.diffs[s.index(src)] -= flow
	s.diffs[s.index(dst)] += flow
}

// flowCell runs the cascade for a single unsettled cell holding liquid.
func (s *Simulation) flowCell(c *Cell) {
	remaining := c.liquid
	for _, d := range cascade {
		remaining -= s.flowToward(c, d, remaining)
		if remaining < LiquidMin {
			// The remainder stays put; the dust rule collects it next tick.
			break
		}
	}
	s.flowed[s.index(c)] = true
}

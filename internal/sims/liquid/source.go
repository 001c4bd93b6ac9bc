package liquid

import "math"

// openNeighbors collects the blank neighbors of c into buf.
func (s *Simulation) openNeighbors(c *Cell, buf []*Cell) []*Cell {
	buf = buf[:0]
	for _, idx := range c.links {
		if idx == noLink {
			continue
		}
		if n := &s.cells[idx]; n.typ == Blank {
			buf = append(buf, n)
		}
	}
	return buf
}

// inject spreads SourceLiquidPerIteration evenly over the open neighbors.
func (s *Simulation) inject(c *Cell) {
	targets := s.openNeighbors(c, s.scratch[:0])
	if len(targets) == 0 {
		return
	}
	share := SourceLiquidPerIteration / float64(len(targets))
	for _, n := range targets {
		s.diffs[s.index(n)] += share
	}
}

// drain removes up to DrainLiquidPerIteration, split evenly, never taking more
// than a neighbor holds.
func (s *Simulation) drain(c *Cell) {
	targets := s.openNeighbors(c, s.scratch[:0])
	if len(targets) == 0 {
		return
	}
	share := DrainLiquidPerIteration / float64(len(targets))
	for _, n := range targets {
		s.diffs[s.index(n)] -= math.Min(share, n.liquid)
	}
}

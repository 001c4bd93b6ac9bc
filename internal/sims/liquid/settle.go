package liquid

// SettleThreshold is the number of consecutive still ticks before a cell is
// dropped from the scan.
const SettleThreshold = 10

func (c *Cell) unsettle() {
	c.settled = false
	c.settleCount = 0
}

func (c *Cell) advanceSettle() {
	c.settleCount++
	if c.settleCount >= SettleThreshold {
		c.settled = true
	}
}

// unsettleNeighbors wakes the four neighbors but not the cell itself, marking
// them for redraw when the current sub-iteration is tracked.
func (s *Simulation) unsettleNeighbors(c *Cell) {
	for _, idx := range c.links {
		if idx == noLink {
			continue
		}
		s.cells[idx].unsettle()
		if s.tracking {
			s.markRedraw(&s.cells[idx])
		}
	}
}

// settle runs after the diffs land. A cell that flowed without its liquid
// moving counts a still tick. Any cell whose liquid moved is unsettled, and
// one that flowed also wakes its neighbors. Flows too small to change a value
// in floating point therefore never keep a pool awake.
func (s *Simulation) settle() {
	for i, flowed := range s.flowed {
		if flowed && !s.changed[i] {
			s.cells[i].advanceSettle()
		}
	}
	for i, changed := range s.changed {
		if changed {
			c := &s.cells[i]
			c.unsettle()
			if s.tracking {
				s.markRedraw(c)
			}
			if s.flowed[i] {
				s.unsettleNeighbors(c)
			}
		}
		s.flowed[i] = false
		s.changed[i] = false
	}
}

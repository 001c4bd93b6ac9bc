package liquid

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// LiquidMax is the amount a cell holds before it starts to compress.
	LiquidMax = 1.0
	// LiquidMin is the dust threshold; smaller amounts are discarded.
	LiquidMin = 0.005
	// FlowMax caps a single directional flow per tick.
	FlowMax = 4.0
	// FlowMin is the flow above which flowSpeed damping applies.
	FlowMin = 0.005

	SourceLiquidPerIteration = 0.5
	DrainLiquidPerIteration  = 0.5
)

const (
	DefaultFlowSpeed          = 1.0
	DefaultCompressionMax     = 0.25
	DefaultIterationsPerFrame = 1
)

var (
	// ErrInvalidArgument reports a rejected amount or tunable value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIndexOutOfBounds reports coordinates outside the grid.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
)

// Simulation owns a lattice of cells and the deferred diff buffer used to
// advance it. It is not safe for concurrent use; mutators only queue changes
// that the next Run picks up.
type Simulation struct {
	w, h  int
	cells []Cell
	diffs []float64

	// flowed marks cells that ran the cascade this sub-iteration; changed
	// marks cells whose liquid moved when the diffs were applied.
	flowed  []bool
	changed []bool

	flowSpeed          float64
	compressionMax     float64
	iterationsPerFrame int

	tracking   bool
	redraw     []*Cell
	redrawMark []uint32
	redrawGen  uint32

	scratch []*Cell
}

// NewSimulation builds a width*height grid of blank cells with default tunables.
func NewSimulation(width, height int) *Simulation {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	total := width * height
	return &Simulation{
		w:                  width,
		h:                  height,
		cells:              buildLattice(width, height),
		diffs:              make([]float64, total),
		flowed:             make([]bool, total),
		changed:            make([]bool, total),
		flowSpeed:          DefaultFlowSpeed,
		compressionMax:     DefaultCompressionMax,
		iterationsPerFrame: DefaultIterationsPerFrame,
		redrawMark:         make([]uint32, total),
		scratch:            make([]*Cell, 0, 4),
	}
}

// Width returns the number of columns.
func (s *Simulation) Width() int { return s.w }

// Height returns the number of rows.
func (s *Simulation) Height() int { return s.h }

// FlowSpeed returns the damping factor applied to flows above FlowMin.
func (s *Simulation) FlowSpeed() float64 { return s.flowSpeed }

// SetFlowSpeed changes the damping factor from the next Run on.
func (s *Simulation) SetFlowSpeed(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("flow speed %v: %w", v, ErrInvalidArgument)
	}
	s.flowSpeed = v
	return nil
}

// CompressionMax returns how much extra liquid a cell may hold per cell above it.
func (s *Simulation) CompressionMax() float64 { return s.compressionMax }

// SetCompressionMax changes the compression allowance from the next Run on.
func (s *Simulation) SetCompressionMax(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("compression max %v: %w", v, ErrInvalidArgument)
	}
	s.compressionMax = v
	return nil
}

// IterationsPerFrame returns the number of sub-iterations per Run.
func (s *Simulation) IterationsPerFrame() int { return s.iterationsPerFrame }

// SetIterationsPerFrame changes the number of sub-iterations per Run.
func (s *Simulation) SetIterationsPerFrame(n int) error {
	if n < 1 {
		return fmt.Errorf("iterations per frame %d: %w", n, ErrInvalidArgument)
	}
	s.iterationsPerFrame = n
	return nil
}

func (s *Simulation) inBounds(x, y int) bool {
	return x >= 0 && x < s.h && y >= 0 && y < s.w
}

func (s *Simulation) index(c *Cell) int { return c.x*s.w + c.y }

func (s *Simulation) neighbor(c *Cell, d direction) *Cell {
	idx := c.links[d]
	if idx == noLink {
		return nil
	}
	return &s.cells[idx]
}

// Cell returns a read-only view of the cell at row x, column y.
func (s *Simulation) Cell(x, y int) (*Cell, error) {
	if !s.inBounds(x, y) {
		return nil, fmt.Errorf("cell (%d,%d) in %dx%d grid: %w", x, y, s.h, s.w, ErrIndexOutOfBounds)
	}
	return &s.cells[x*s.w+y], nil
}

// AddLiquid queues amount for the cell at row x, column y. It lands at the
// start of the next Run.
func (s *Simulation) AddLiquid(x, y int, amount float64) error {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("add liquid %v: %w", amount, ErrInvalidArgument)
	}
	if !s.inBounds(x, y) {
		return fmt.Errorf("add liquid at (%d,%d): %w", x, y, ErrIndexOutOfBounds)
	}
	s.cells[x*s.w+y].liquidToAdd += amount
	return nil
}

// SetCellType queues a type change for the cell at row x, column y. It lands
// at the start of the next Run.
func (s *Simulation) SetCellType(x, y int, t CellType) error {
	if !s.inBounds(x, y) {
		return fmt.Errorf("set cell type at (%d,%d): %w", x, y, ErrIndexOutOfBounds)
	}
	if !t.valid() {
		return fmt.Errorf("cell type %d: %w", t, ErrInvalidArgument)
	}
	s.cells[x*s.w+y].nextType = t
	return nil
}

// Reset clears every cell in place. The lattice is kept.
func (s *Simulation) Reset() {
	for i := range s.cells {
		s.cells[i].clearContents()
		s.diffs[i] = 0
		s.flowed[i] = false
		s.changed[i] = false
	}
}

// Run advances the grid by IterationsPerFrame sub-iterations and returns the
// cells that need redrawing. The returned slice is only valid until the next
// call.
func (s *Simulation) Run() []*Cell {
	s.beginRedraw()
	s.applyPending()
	for i := 0; i < s.iterationsPerFrame; i++ {
		s.tracking = i == s.iterationsPerFrame-1
		s.scan()
		s.applyDiffs()
	}
	s.tracking = false
	return s.redraw
}

// applyPending lands queued type changes and liquid before the scan starts.
func (s *Simulation) applyPending() {
	for i := range s.cells {
		c := &s.cells[i]
		changed := false
		if c.nextType != c.typ {
			c.typ = c.nextType
			if c.typ != Blank {
				// Only blank cells hold liquid.
				c.liquid = 0
			}
			c.unsettle()
			s.unsettleNeighbors(c)
			changed = true
		}
		if c.liquidToAdd != 0 {
			if c.typ == Blank {
				c.liquid += c.liquidToAdd
				c.unsettle()
				changed = true
			}
			c.liquidToAdd = 0
		}
		if changed {
			s.markRedraw(c)
		}
	}
}

func (s *Simulation) scan() {
	for i := range s.cells {
		c := &s.cells[i]
		c.flowingDown = false
		if s.tracking && (c.typ == Solid || c.liquid >= LiquidMin) {
			s.markRedraw(c)
		}

		switch c.typ {
		case Source:
			s.inject(c)
			continue
		case Drain:
			s.drain(c)
			continue
		case Solid:
			continue
		}

		if c.settled || c.liquid == 0 {
			continue
		}
		if c.liquid < LiquidMin {
			c.liquid = 0
			continue
		}
		s.flowCell(c)
	}
}

// applyDiffs commits the scan in one pass, leaves the buffer zeroed and then
// updates settle state from the cells whose liquid actually changed.
func (s *Simulation) applyDiffs() {
	for i, d := range s.diffs {
		if d == 0 {
			continue
		}
		c := &s.cells[i]
		before := c.liquid
		c.liquid += d
		if c.liquid < 0 {
			// Drains and rounding may overshoot a cell that also flowed out.
			c.liquid = 0
		}
		s.diffs[i] = 0
		s.changed[i] = c.liquid != before
	}
	s.settle()
}

func (s *Simulation) beginRedraw() {
	s.redraw = make([]*Cell, 0, len(s.redraw))
	s.redrawGen++
	if s.redrawGen == 0 {
		for i := range s.redrawMark {
			s.redrawMark[i] = 0
		}
		s.redrawGen = 1
	}
}

func (s *Simulation) markRedraw(c *Cell) {
	idx := s.index(c)
	if s.redrawMark[idx] == s.redrawGen {
		return
	}
	s.redrawMark[idx] = s.redrawGen
	s.redraw = append(s.redraw, c)
}

// TotalLiquid sums the liquid held by every cell.
func (s *Simulation) TotalLiquid() float64 {
	total := 0.0
	for i := range s.cells {
		total += s.cells[i].liquid
	}
	return total
}

// PeakLiquid returns the largest amount held by a single cell.
func (s *Simulation) PeakLiquid() float64 {
	peak := 0.0
	for i := range s.cells {
		if s.cells[i].liquid > peak {
			peak = s.cells[i].liquid
		}
	}
	return peak
}

// ActiveCells counts blank cells that hold liquid and are still being scanned.
func (s *Simulation) ActiveCells() int {
	n := 0
	for i := range s.cells {
		c := &s.cells[i]
		if c.typ == Blank && c.liquid > 0 && !c.settled {
			n++
		}
	}
	return n
}

// String renders the grid as text, one row per line, each cell centred in
// three columns.
func (s *Simulation) String() string {
	var b strings.Builder
	for x := 0; x < s.h; x++ {
		for y := 0; y < s.w; y++ {
			if y > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(center(cellLabel(&s.cells[x*s.w+y]), 3))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cellLabel(c *Cell) string {
	switch c.typ {
	case Solid:
		return "XXX"
	case Source:
		return "SRC"
	case Drain:
		return "DRN"
	}
	if c.liquid == 0 {
		return ""
	}
	return strconv.FormatFloat(c.liquid, 'f', 1, 64)
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	leftPad := pad / 2
	return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", pad-leftPad)
}

package app

import "liquid-ca/internal/sims/liquid"

// Brush selects what a left-button stroke paints.
type Brush int

const (
	BrushWall Brush = iota
	BrushSource
	BrushDrain
)

// PourAmount is the liquid added per frame while the right button is held.
const PourAmount = 0.5

func (b Brush) String() string {
	switch b {
	case BrushSource:
		return "source"
	case BrushDrain:
		return "drain"
	default:
		return "wall"
	}
}

func (b Brush) cellType() liquid.CellType {
	switch b {
	case BrushSource:
		return liquid.Source
	case BrushDrain:
		return liquid.Drain
	default:
		return liquid.Solid
	}
}

// Canvas is the part of a sim that brushes paint onto. Coordinates are row,
// column.
type Canvas interface {
	AddLiquid(x, y int, amount float64) error
	SetCellType(x, y int, t liquid.CellType) error
	CellTypeAt(x, y int) (liquid.CellType, bool)
}

// stroke tracks one held left-button drag. A stroke that starts on a cell
// already carrying the brush's type erases back to blank instead.
type stroke struct {
	active bool
	paint  liquid.CellType
}

func (s *stroke) begin(c Canvas, b Brush, x, y int) {
	s.active = true
	s.paint = b.cellType()
	if t, ok := c.CellTypeAt(x, y); ok && t == s.paint {
		s.paint = liquid.Blank
	}
}

func (s *stroke) apply(c Canvas, x, y int) error {
	if !s.active {
		return nil
	}
	if _, ok := c.CellTypeAt(x, y); !ok {
		return nil
	}
	return c.SetCellType(x, y, s.paint)
}

func (s *stroke) end() { s.active = false }

// pour adds liquid under the cursor unless the cell is a wall.
func pour(c Canvas, x, y int, amount float64) error {
	t, ok := c.CellTypeAt(x, y)
	if !ok || t == liquid.Solid {
		return nil
	}
	return c.AddLiquid(x, y, amount)
}

// cellAt maps a cursor position to grid row and column.
func cellAt(mx, my, scale int) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	if mx < 0 || my < 0 {
		return -1, -1
	}
	return my / scale, mx / scale
}

package liquid

// CellType enumerates what occupies a grid node.
type CellType uint8

const (
	Blank CellType = iota
	Solid
	Source
	Drain
)

// String returns the lowercase name of the cell type.
func (t CellType) String() string {
	switch t {
	case Blank:
		return "blank"
	case Solid:
		return "solid"
	case Source:
		return "source"
	case Drain:
		return "drain"
	default:
		return "unknown"
	}
}

func (t CellType) valid() bool { return t <= Drain }

type direction uint8

const (
	top direction = iota
	bottom
	left
	right
)

// noLink marks a missing neighbor at the grid boundary.
const noLink = -1

// Cell is a single grid node. All state is owned by the Simulation; callers
// only ever see it through the read-only accessors below.
type Cell struct {
	x, y int

	typ         CellType
	liquid      float64
	settled     bool
	settleCount int
	flowingDown bool

	liquidToAdd float64
	nextType    CellType

	// links holds flat indices of the top, bottom, left and right neighbors.
	links [4]int
}

// X returns the row of the cell.
func (c *Cell) X() int { return c.x }

// Y returns the column of the cell.
func (c *Cell) Y() int { return c.y }

// Type returns the current cell type.
func (c *Cell) Type() CellType { return c.typ }

// Liquid returns the liquid currently held by the cell.
func (c *Cell) Liquid() float64 { return c.liquid }

// Settled reports whether the cell is skipped by the flow scan.
func (c *Cell) Settled() bool { return c.settled }

// SettleCount returns the number of consecutive ticks without outflow.
func (c *Cell) SettleCount() int { return c.settleCount }

// FlowingDown reports whether the cell sent liquid downward during the last tick.
func (c *Cell) FlowingDown() bool { return c.flowingDown }

// clearContents zeroes everything but the coordinates and links.
func (c *Cell) clearContents() {
	c.typ = Blank
	c.liquid = 0
	c.settled = false
	c.settleCount = 0
	c.flowingDown = false
	c.liquidToAdd = 0
	c.nextType = Blank
}

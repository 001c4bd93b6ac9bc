package liquid

import "liquid-ca/internal/core"

// World adapts a Simulation to the core.Sim contract: it keeps a display
// buffer and overlay masks in sync with the cells each Run reports.
type World struct {
	cfg Config
	sim *Simulation

	display      *core.ByteGrid
	settledMask  []float32
	pressureMask []float32

	frame      int
	lastRedraw int
}

// New returns a liquid world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a liquid world configured from the provided options.
// Tunables that fail validation keep the engine defaults.
func NewWithConfig(cfg Config) *World {
	sim := NewSimulation(cfg.Width, cfg.Height)
	if err := sim.SetFlowSpeed(cfg.Params.FlowSpeed); err != nil {
		cfg.Params.FlowSpeed = sim.FlowSpeed()
	}
	if err := sim.SetCompressionMax(cfg.Params.CompressionMax); err != nil {
		cfg.Params.CompressionMax = sim.CompressionMax()
	}
	if err := sim.SetIterationsPerFrame(cfg.Params.IterationsPerFrame); err != nil {
		cfg.Params.IterationsPerFrame = sim.IterationsPerFrame()
	}
	cfg.Width, cfg.Height = sim.Width(), sim.Height()
	total := cfg.Width * cfg.Height
	return &World{
		cfg:          cfg,
		sim:          sim,
		display:      core.NewByteGrid(cfg.Width, cfg.Height),
		settledMask:  make([]float32, total),
		pressureMask: make([]float32, total),
	}
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "liquid" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display.Cells() }

// Simulation exposes the underlying engine.
func (w *World) Simulation() *Simulation { return w.sim }

// SettledMask marks liquid cells that have dropped out of the scan.
func (w *World) SettledMask() []float32 { return w.settledMask }

// PressureMask reports how far each cell is compressed past LiquidMax.
func (w *World) PressureMask() []float32 { return w.pressureMask }

// Frame returns the number of steps since the last reset.
func (w *World) Frame() int { return w.frame }

// LastRedraw returns how many cells the last step reported as changed.
func (w *World) LastRedraw() int { return w.lastRedraw }

// Reset clears the grid and queues the configured scenario. The seed is
// ignored; the liquid rules are deterministic.
func (w *World) Reset(seed int64) {
	w.sim.Reset()
	// Layouts clip to small grids; whatever fits is still queued.
	_ = ApplyScenario(w.sim, w.cfg.Params.Scenario)
	w.frame = 0
	w.lastRedraw = 0
	w.rebuildDisplay()
}

// Step runs one frame of the engine and refreshes the cells it reported.
func (w *World) Step() {
	redraw := w.sim.Run()
	w.frame++
	w.lastRedraw = len(redraw)
	if w.sim.IterationsPerFrame() > 1 {
		// Only the last sub-iteration is tracked, so earlier changes would be missed.
		w.rebuildDisplay()
		return
	}
	for _, c := range redraw {
		w.refresh(w.sim.index(c))
	}
}

// AddLiquid queues liquid at row x, column y.
func (w *World) AddLiquid(x, y int, amount float64) error {
	return w.sim.AddLiquid(x, y, amount)
}

// SetCellType queues a type change at row x, column y.
func (w *World) SetCellType(x, y int, t CellType) error {
	return w.sim.SetCellType(x, y, t)
}

// CellTypeAt returns the type the cell will have after pending changes land.
func (w *World) CellTypeAt(x, y int) (CellType, bool) {
	if !w.sim.inBounds(x, y) {
		return Blank, false
	}
	return w.sim.cells[x*w.sim.w+y].nextType, true
}

func (w *World) rebuildDisplay() {
	for i := range w.sim.cells {
		w.refresh(i)
	}
}

func (w *World) refresh(idx int) {
	c := &w.sim.cells[idx]
	w.display.Cells()[idx] = encodeDisplayValue(c)

	w.settledMask[idx] = 0
	if c.typ == Blank && c.liquid >= LiquidMin && c.settled {
		w.settledMask[idx] = 1
	}
	pressure := (c.liquid - LiquidMax) / LiquidMax
	switch {
	case pressure <= 0:
		w.pressureMask[idx] = 0
	case pressure >= 1:
		w.pressureMask[idx] = 1
	default:
		w.pressureMask[idx] = float32(pressure)
	}
}

func init() {
	core.Register("liquid", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}

//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"log"

	"liquid-ca/internal/core"
	"liquid-ca/internal/render"
	"liquid-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

var binaryPalette = []color.RGBA{
	{R: 0, G: 0, B: 0, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	canvas  Canvas
	painter *render.GridPainter
	palette []color.RGBA
	overlay *ui.Overlay
	hud     *ui.HUD
	stepper *core.FixedStep

	brush  Brush
	stroke stroke

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		palette: binaryPalette,
		overlay: ui.NewOverlay(sim, cfg.Scale),
		hud:     ui.NewHUD(sim, cfg.HUDWidth),
		stepper: core.NewFixedStep(cfg.TPS),
		scale:   cfg.Scale,
		seed:    cfg.Seed,
	}
	if p, ok := sim.(paletteProvider); ok {
		g.palette = p.Palette()
	}
	if c, ok := sim.(Canvas); ok {
		g.canvas = c
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.stroke.end()
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.brush = BrushWall
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.brush = BrushSource
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.brush = BrushDrain
	}

	g.overlay.Update()
	g.hud.Update(g.viewWidth())
	if g.canvas != nil {
		g.handleBrushes()
	}

	if g.tickOnce || (!g.paused && g.stepper.ShouldStep()) {
		g.sim.Step()
		g.tickOnce = false
	}
	g.hud.SetStatus(
		fmt.Sprintf("Brush: %s (W/S/D)", g.brush),
		fmt.Sprintf("Paused: %t (Space, N steps)", g.paused),
		"LMB paint, RMB pour, R reset",
		"1 settled, 2 pressure",
	)
	return nil
}

func (g *Game) handleBrushes() {
	mx, my := ebiten.CursorPosition()
	if mx >= g.viewWidth() {
		g.stroke.end()
		return
	}
	x, y := cellAt(mx, my, g.scale)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.stroke.begin(g.canvas, g.brush, x, y)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if err := g.stroke.apply(g.canvas, x, y); err != nil {
			log.Printf("paint (%d,%d): %v", x, y, err)
		}
	} else {
		g.stroke.end()
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if err := pour(g.canvas, x, y, PourAmount); err != nil {
			log.Printf("pour (%d,%d): %v", x, y, err)
		}
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.0f", ebiten.ActualTPS()))
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewWidth() + g.hud.Width(), g.sim.Size().H * g.scale
}

func (g *Game) viewWidth() int { return g.sim.Size().W * g.scale }

//go:build ebiten

package ui

import (
	"image/color"

	"liquid-ca/internal/core"
	"liquid-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type maskProvider interface {
	SettledMask() []float32
	PressureMask() []float32
}

// Overlay draws optional debugging masks on top of the base simulation:
// key 1 toggles settled cells, key 2 toggles compressed cells.
type Overlay struct {
	sim          core.Sim
	scale        int
	showSettled  bool
	showPressure bool

	settled  *render.GridPainter
	pressure *render.GridPainter
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	if _, ok := sim.(maskProvider); ok {
		size := sim.Size()
		o.settled = render.NewGridPainter(size.W, size.H)
		o.pressure = render.NewGridPainter(size.W, size.H)
	}
	return o
}

// Update toggles the masks from keyboard input.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showSettled = !o.showSettled
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showPressure = !o.showPressure
	}
}

// Draw renders the enabled masks onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.sim.(maskProvider)
	if !ok {
		return
	}
	if o.showSettled {
		o.settled.BlitMask(screen, provider.SettledMask(), color.RGBA{R: 255, G: 200, B: 40}, 110, o.scale)
	}
	if o.showPressure {
		o.pressure.BlitMask(screen, provider.PressureMask(), color.RGBA{R: 230, G: 40, B: 90}, 170, o.scale)
	}
}

package liquid

import (
	"image/color"
	"math"

	"github.com/hsluv/hsluv-go"
)

const (
	displayLevelMask   = 0x0f
	displayFlowingBit  = 0x10
	displayTypeShift   = 5
	displayTypeMask    = 0x60
	displayLevels      = 16
	displayPaletteSize = 128

	// displayLevelSpan is the liquid amount mapped onto the deepest shade.
	displayLevelSpan = 1.5 * LiquidMax
)

var liquidPalette = buildLiquidPalette()

// Palette exposes the color palette used for rendering the liquid world.
func (w *World) Palette() []color.RGBA {
	return liquidPalette
}

func buildLiquidPalette() []color.RGBA {
	palette := make([]color.RGBA, displayPaletteSize)
	for i := range palette {
		typ := CellType((i & displayTypeMask) >> displayTypeShift)
		level := i & displayLevelMask
		flowing := i&displayFlowingBit != 0
		palette[i] = toRGBA(paletteColorFor(typ, level, flowing))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func paletteColorFor(typ CellType, level int, flowing bool) color.NRGBA {
	switch typ {
	case Solid:
		return color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	case Source:
		return color.NRGBA{R: 60, G: 170, B: 90, A: 255}
	case Drain:
		return color.NRGBA{R: 150, G: 50, B: 40, A: 255}
	}
	if level == 0 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	// Deeper water is darker at constant hue; falling water is washed out.
	depth := float64(level-1) / float64(displayLevels-2)
	lightness := 86 - 56*depth
	saturation := 90.0
	if flowing {
		lightness += 8
		saturation = 60
	}
	return hsluvColor(waterHue, saturation, lightness)
}

const waterHue = 250

func hsluvColor(h, s, l float64) color.NRGBA {
	r, g, b := hsluv.HsluvToRGB(h, s, l)
	return color.NRGBA{R: unitToByte(r), G: unitToByte(g), B: unitToByte(b), A: 0xff}
}

func unitToByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 0xff))
}

// liquidLevel buckets an amount into 0 (dry) .. displayLevels-1.
func liquidLevel(liquid float64) int {
	if liquid < LiquidMin {
		return 0
	}
	level := 1 + int(math.Min(liquid, displayLevelSpan)/displayLevelSpan*float64(displayLevels-2))
	if level >= displayLevels {
		level = displayLevels - 1
	}
	return level
}

func encodeDisplayValue(c *Cell) uint8 {
	value := (uint8(c.typ) << displayTypeShift) & displayTypeMask
	if c.typ != Blank {
		return value
	}
	level := liquidLevel(c.liquid)
	value |= uint8(level) & displayLevelMask
	if c.flowingDown && level > 0 {
		value |= displayFlowingBit
	}
	return value
}

package liquid

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiquidLevel(t *testing.T) {
	cases := []struct {
		liquid float64
		want   int
	}{
		{0, 0},
		{LiquidMin / 2, 0},
		{LiquidMin, 1},
		{0.75, 8},
		{displayLevelSpan, displayLevels - 1},
		{10, displayLevels - 1},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, liquidLevel(tc.liquid), "liquid %v", tc.liquid)
	}
}

func TestEncodeDisplayValue(t *testing.T) {
	c := &Cell{typ: Blank, liquid: displayLevelSpan, flowingDown: true}
	assert.Equal(t, uint8(displayLevels-1)|displayFlowingBit, encodeDisplayValue(c))

	c = &Cell{typ: Blank, flowingDown: true}
	assert.Equal(t, uint8(0), encodeDisplayValue(c))

	c = &Cell{typ: Drain, liquid: 0.5}
	assert.Equal(t, uint8(Drain)<<displayTypeShift, encodeDisplayValue(c))
}

func TestPaletteCoversEncodings(t *testing.T) {
	world := New(2, 2)
	palette := world.Palette()
	assert.Len(t, palette, displayPaletteSize)

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, white, palette[0])
	assert.Equal(t, color.RGBA{A: 255}, palette[uint8(Solid)<<displayTypeShift])
	assert.NotEqual(t, palette[5], palette[5|displayFlowingBit])
	assert.NotEqual(t, palette[2], palette[12])

	brightness := func(c color.RGBA) int { return int(c.R) + int(c.G) + int(c.B) }
	assert.Greater(t, brightness(palette[2]), brightness(palette[12]), "deeper water must be darker")
	for i := 1; i < displayLevels; i++ {
		assert.Equal(t, uint8(0xff), palette[i].A)
	}
}

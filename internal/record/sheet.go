package record

import (
	"image"
	"image/color"
	"image/draw"
)

// Sheet keeps every Nth frame and tiles them, left to right and top to
// bottom, into a single contact-sheet image.
type Sheet struct {
	every int
	cols  int
	gap   int
	tiles []*image.RGBA
}

// NewSheet keeps one frame out of every and lays them out cols per row.
func NewSheet(every, cols int) *Sheet {
	if every <= 0 {
		every = 1
	}
	if cols <= 0 {
		cols = 4
	}
	return &Sheet{every: every, cols: cols, gap: 2}
}

// Offer records a copy of img when frame falls on the sampling interval.
func (s *Sheet) Offer(frame int, img *image.RGBA) bool {
	if frame%s.every != 0 {
		return false
	}
	tile := image.NewRGBA(img.Bounds())
	copy(tile.Pix, img.Pix)
	s.tiles = append(s.tiles, tile)
	return true
}

// Len returns the number of tiles kept.
func (s *Sheet) Len() int { return len(s.tiles) }

// Image composes the kept tiles on a white background. Tiles are assumed to
// share the size of the first one.
func (s *Sheet) Image() *image.RGBA {
	if len(s.tiles) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	tw, th := s.tiles[0].Bounds().Dx(), s.tiles[0].Bounds().Dy()
	cols := min(s.cols, len(s.tiles))
	rows := (len(s.tiles) + s.cols - 1) / s.cols
	out := image.NewRGBA(image.Rect(0, 0, cols*tw+(cols-1)*s.gap, rows*th+(rows-1)*s.gap))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	for i, tile := range s.tiles {
		x := (i % s.cols) * (tw + s.gap)
		y := (i / s.cols) * (th + s.gap)
		draw.Draw(out, image.Rect(x, y, x+tw, y+th), tile, tile.Bounds().Min, draw.Src)
	}
	return out
}

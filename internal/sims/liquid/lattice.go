package liquid

// buildLattice allocates a height*width row-major slice of blank cells and wires
// the permanent neighbor links. Row x sits above row x+1.
func buildLattice(width, height int) []Cell {
	cells := make([]Cell, width*height)
	for x := 0; x < height; x++ {
		for y := 0; y < width; y++ {
			idx := x*width + y
			c := &cells[idx]
			c.x, c.y = x, y
			c.links = [4]int{noLink, noLink, noLink, noLink}
			if x > 0 {
				c.links[top] = idx - width
			}
			if x+1 < height {
				c.links[bottom] = idx + width
			}
			if y > 0 {
				c.links[left] = idx - 1
			}
			if y+1 < width {
				c.links[right] = idx + 1
			}
		}
	}
	return cells
}

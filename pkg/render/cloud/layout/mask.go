package layout

import "math"

// maskCell is the occupancy grid resolution in px. Smaller packs words
// tighter at the cost of more cells per overlap test.
const maskCell = 4.0

// mask is a coarse occupancy grid over the canvas. A box occupies every
// cell its outline touches, so two boxes sharing no cell cannot overlap.
type mask struct {
	cols, rows int
	cells      []bool
}

func newMask(width, height float64) *mask {
	cols := int(math.Ceil(width / maskCell))
	rows := int(math.Ceil(height / maskCell))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &mask{cols: cols, rows: rows, cells: make([]bool, cols*rows)}
}

// span returns the cell range covered by a box, clamped to the grid.
func (m *mask) span(b Box) (c0, r0, c1, r1 int) {
	c0 = int(math.Floor(b.X / maskCell))
	r0 = int(math.Floor(b.Y / maskCell))
	c1 = int(math.Ceil((b.X + b.W) / maskCell))
	r1 = int(math.Ceil((b.Y + b.H) / maskCell))
	if c0 < 0 {
		c0 = 0
	}
	if r0 < 0 {
		r0 = 0
	}
	if c1 > m.cols {
		c1 = m.cols
	}
	if r1 > m.rows {
		r1 = m.rows
	}
	return c0, r0, c1, r1
}

// free reports whether every cell under the box is unoccupied.
func (m *mask) free(b Box) bool {
	c0, r0, c1, r1 := m.span(b)
	for r := r0; r < r1; r++ {
		base := r * m.cols
		for c := c0; c < c1; c++ {
			if m.cells[base+c] {
				return false
			}
		}
	}
	return true
}

// occupy marks every cell under the box.
func (m *mask) occupy(b Box) {
	c0, r0, c1, r1 := m.span(b)
	for r := r0; r < r1; r++ {
		base := r * m.cols
		for c := c0; c < c1; c++ {
			m.cells[base+c] = true
		}
	}
}

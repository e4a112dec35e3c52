package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
// Hosts use it as a history canvas: one row per generation.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Row returns the slice backing row y.
func (g *ByteGrid) Row(y int) []uint8 { return g.data[y*g.W : (y+1)*g.W] }

// SetRow copies src into row y, truncating or zero-padding to the grid width.
func (g *ByteGrid) SetRow(y int, src []uint8) {
	dst := g.Row(y)
	n := copy(dst, src)
	clear(dst[n:])
}

// ScrollUp drops the top row, shifts every other row up by one and clears
// the bottom row.
func (g *ByteGrid) ScrollUp() {
	copy(g.data, g.data[g.W:])
	clear(g.data[(g.H-1)*g.W:])
}

// Resize reallocates the grid to new dimensions. Contents are discarded.
func (g *ByteGrid) Resize(w, h int) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	g.W, g.H = w, h
	g.data = make([]uint8, w*h)
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	clear(g.data)
}

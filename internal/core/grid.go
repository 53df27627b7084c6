package core

// Offset is a relative grid displacement.
type Offset struct {
	DX, DY int
}

// MooreOffsets lists the eight displacements of the Moore neighbourhood in
// row-major order.
var MooreOffsets = [8]Offset{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Grid stores a bounded 2D grid of values in row-major order. There is no
// wraparound: coordinates outside [0,W)x[0,H) do not exist.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions. Non-positive
// dimensions yield an empty grid.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 || h <= 0 {
		return &Grid[T]{}
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// Coords is the inverse of Index.
func (g *Grid[T]) Coords(idx int) (int, int) { return idx % g.W, idx / g.W }

// In reports whether (x, y) lies inside the grid.
func (g *Grid[T]) In(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the value stored at (x, y). The caller must check In first.
func (g *Grid[T]) At(x, y int) T { return g.data[y*g.W+x] }

// Set stores v at (x, y). The caller must check In first.
func (g *Grid[T]) Set(x, y int, v T) { g.data[y*g.W+x] = v }

// Size reports the grid dimensions.
func (g *Grid[T]) Size() Size { return Size{W: g.W, H: g.H} }

// Moore appends the in-bounds Moore neighbours of (x, y) to dst and returns
// the extended slice. Offsets that fall off the border are skipped, so
// corners yield 3 values, edges 5 and interior positions 8.
func (g *Grid[T]) Moore(dst []T, x, y int) []T {
	for _, off := range MooreOffsets {
		nx, ny := x+off.DX, y+off.DY
		if !g.In(nx, ny) {
			continue
		}
		dst = append(dst, g.data[ny*g.W+nx])
	}
	return dst
}

// MooreCount returns how many Moore neighbours (x, y) has inside the grid.
func (g *Grid[T]) MooreCount(x, y int) int {
	n := 0
	for _, off := range MooreOffsets {
		if g.In(x+off.DX, y+off.DY) {
			n++
		}
	}
	return n
}

// Package atlas computes normalized sub-rectangles of a sprite sheet laid
// out as a uniform grid of cells.
package atlas

import "fmt"

// Grid describes a sprite sheet divided into Cols x Rows equal cells.
// Cell (0,0) is the sheet's top-left cell, matching the texture-space
// convention that (0,0) is the top-left of the texture.
type Grid struct {
	Cols int
	Rows int
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d", g.Cols, g.Rows)
}

// Cell returns the from_rect of the cell at (col, row): normalized
// (u, v, width, height) addressing that cell's sub-rectangle of the sheet.
// Coordinates outside the grid wrap around, so animations can index frames
// modulo the sheet size.
func (g Grid) Cell(col, row int) [4]float32 {
	col = wrap(col, g.Cols)
	row = wrap(row, g.Rows)
	w := 1 / float32(g.Cols)
	h := 1 / float32(g.Rows)
	return [4]float32{float32(col) * w, float32(row) * h, w, h}
}

// Row returns the from_rects of every cell in one row, left to right.
// Useful as an animation frame table.
func (g Grid) Row(row int) [][4]float32 {
	frames := make([][4]float32, g.Cols)
	for col := 0; col < g.Cols; col++ {
		frames[col] = g.Cell(col, row)
	}
	return frames
}

// Cells returns the from_rects of the first n cells in reading order
// (left to right, top to bottom).
func (g Grid) Cells(n int) [][4]float32 {
	frames := make([][4]float32, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, g.Cell(i%g.Cols, i/g.Cols))
	}
	return frames
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

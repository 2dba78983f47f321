package terminal

import "github.com/gdamore/tcell/v2"

// Cell is one terminal character cell
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// ContentSetter is the part of tcell.Screen the canvas flushes into
type ContentSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Canvas is a 2D grid of cells, row-major
type Canvas struct {
	width  int
	height int
	cells  []Cell
	blank  Cell
}

// NewCanvas creates a canvas filled with blank cells of the given background style
func NewCanvas(width, height int, background tcell.Style) *Canvas {
	c := &Canvas{blank: Cell{Rune: ' ', Style: background}}
	c.Resize(width, height)
	return c
}

// Width returns the canvas width in cells
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in cells
func (c *Canvas) Height() int {
	return c.height
}

// Resize reallocates the grid, preserving existing content where possible
func (c *Canvas) Resize(newWidth, newHeight int) {
	newWidth, newHeight = max(newWidth, 0), max(newHeight, 0)
	cells := make([]Cell, newWidth*newHeight)
	for y := 0; y < newHeight; y++ {
		for x := 0; x < newWidth; x++ {
			if y < c.height && x < c.width {
				cells[y*newWidth+x] = c.cells[y*c.width+x]
			} else {
				cells[y*newWidth+x] = c.blank
			}
		}
	}
	c.width, c.height, c.cells = newWidth, newHeight, cells
}

// GetCell returns the cell at the given position
func (c *Canvas) GetCell(x, y int) (Cell, bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{}, false
	}
	return c.cells[y*c.width+x], true
}

// SetCell sets the cell at the given position, out of bounds writes are dropped
func (c *Canvas) SetCell(x, y int, cell Cell) bool {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return false
	}
	c.cells[y*c.width+x] = cell
	return true
}

// DrawText writes a horizontal string, clipped to the canvas
func (c *Canvas) DrawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		c.SetCell(x+i, y, Cell{Rune: r, Style: style})
	}
}

// Clear resets every cell to blank
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = c.blank
	}
}

// Flush copies the whole grid to the screen; the caller calls Show
func (c *Canvas) Flush(s ContentSetter) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			s.SetContent(x, y, cell.Rune, nil, cell.Style)
		}
	}
}

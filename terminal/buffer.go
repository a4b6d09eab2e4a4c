package terminal

import "github.com/gdamore/tcell/v2"

// Cell is one character cell of the frame
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Buffer is a row-major frame composed off-screen and flushed in one pass
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize reallocates only when the area grows
func (b *Buffer) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if n := width * height; cap(b.cells) < n {
		b.cells = make([]Cell, n)
	} else {
		b.cells = b.cells[:n]
	}
	b.width, b.height = width, height
}

func (b *Buffer) Bounds() (int, int) {
	return b.width, b.height
}

// Clear fills every cell with a blank of style
func (b *Buffer) Clear(style tcell.Style) {
	for i := range b.cells {
		b.cells[i] = Cell{Rune: ' ', Style: style}
	}
}

// Set writes a cell, out-of-bounds writes are dropped
func (b *Buffer) Set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Style: style}
}

// Get reads a cell, zero Cell when out of bounds
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Text writes s from x and returns the column after it
func (b *Buffer) Text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		b.Set(x, y, r, style)
		x++
	}
	return x
}

// Row returns the runes of line y as a string
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	out := make([]rune, b.width)
	for x := range out {
		out[x] = b.cells[y*b.width+x].Rune
	}
	return string(out)
}

// Flush copies the frame to the screen and shows it
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			screen.SetContent(x, y, c.Rune, nil, c.Style)
		}
	}
	screen.Show()
}

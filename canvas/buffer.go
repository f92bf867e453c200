// Package canvas composites entities into rendered frames, either as ANSI
// strings for piped output or painted onto a tcell screen for interactive
// playback.
package canvas

import (
	"github.com/mattn/go-runewidth"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
)

// Cell is one screen cell of a composited frame.
type Cell struct {
	Rune  rune
	Style graphics.StyleFlag
	FG    graphics.RGB
	HasFG bool
	// Width is the display width of Rune. The cell to the right of a
	// double-width rune holds a zero Rune and is skipped when rendering.
	Width int
}

// Buffer is a 2D grid of cells, row 0 at the top.
type Buffer struct {
	width  int
	height int
	lines  [][]Cell
}

// NewBuffer creates a cleared buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{width: width, height: height}
	b.lines = make([][]Cell, height)
	for y := range b.lines {
		b.lines[y] = make([]Cell, width)
	}
	b.Clear()
	return b
}

// Width returns the buffer width.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height.
func (b *Buffer) Height() int { return b.height }

// Clear resets every cell to a blank space.
func (b *Buffer) Clear() {
	for y := range b.lines {
		for x := range b.lines[y] {
			b.lines[y][x] = Cell{Rune: ' ', Width: 1}
		}
	}
}

// Set places a visual at (col, row). Out-of-bounds placements are
// dropped. A double-width rune claims the following cell as well.
func (b *Buffer) Set(col, row int, visual graphics.CharacterVisual) {
	if col < 0 || col >= b.width || row < 0 || row >= b.height {
		return
	}
	w := runewidth.RuneWidth(visual.Symbol)
	if w < 1 {
		w = 1
	}
	b.lines[row][col] = Cell{
		Rune:  visual.Symbol,
		Style: visual.Style,
		FG:    visual.FG,
		HasFG: visual.HasFG,
		Width: w,
	}
	if w == 2 && col+1 < b.width {
		b.lines[row][col+1] = Cell{Width: 0}
	}
}

// Get returns the cell at (col, row). Out-of-bounds reads return a blank.
func (b *Buffer) Get(col, row int) Cell {
	if col < 0 || col >= b.width || row < 0 || row >= b.height {
		return Cell{Rune: ' ', Width: 1}
	}
	return b.lines[row][col]
}

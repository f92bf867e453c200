package canvas

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/engine"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
)

// ColorMode selects how cell colors are emitted.
type ColorMode int

const (
	// ColorModeTrueColor emits 24-bit SGR sequences.
	ColorModeTrueColor ColorMode = iota
	// ColorMode256 quantizes colors to the xterm 256 palette.
	ColorMode256
	// ColorModeNone drops color entirely.
	ColorModeNone
)

// Canvas composites the entity population into frames once per tick.
type Canvas struct {
	buffer *Buffer
	mode   ColorMode
}

// New creates a canvas with the given dimensions and color mode.
func New(width, height int, mode ColorMode) *Canvas {
	return &Canvas{buffer: NewBuffer(width, height), mode: mode}
}

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.buffer.Width() }

// Height returns the canvas height.
func (c *Canvas) Height() int { return c.buffer.Height() }

// Composite clears the buffer and draws every visible entity at its
// current coordinate, lower layers first so higher layers win cells.
func (c *Canvas) Composite(entities []*engine.Entity) {
	c.buffer.Clear()

	ordered := make([]*engine.Entity, 0, len(entities))
	for _, e := range entities {
		if e.IsVisible() {
			ordered = append(ordered, e)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Layer < ordered[j].Layer
	})

	for _, e := range ordered {
		coord := e.Motion.CurrentCoord()
		c.buffer.Set(coord.Column, coord.Row, e.Animation.CurrentVisual())
	}
}

// Frame renders the buffer as newline-joined lines with SGR styling. The
// driver owns cursor positioning between frames.
func (c *Canvas) Frame() string {
	var sb strings.Builder
	for row := 0; row < c.buffer.Height(); row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < c.buffer.Width(); col++ {
			cell := c.buffer.Get(col, row)
			if cell.Width == 0 {
				continue
			}
			styled := c.writeSGR(&sb, cell)
			sb.WriteRune(cell.Rune)
			if styled {
				sb.WriteString("\x1b[0m")
			}
		}
	}
	return sb.String()
}

// writeSGR emits the style/color prefix for cell and reports whether a
// reset is needed after the rune.
func (c *Canvas) writeSGR(sb *strings.Builder, cell Cell) bool {
	var codes []string
	for _, attr := range []struct {
		flag graphics.StyleFlag
		code string
	}{
		{graphics.StyleBold, "1"},
		{graphics.StyleDim, "2"},
		{graphics.StyleItalic, "3"},
		{graphics.StyleUnderline, "4"},
		{graphics.StyleBlink, "5"},
		{graphics.StyleReverse, "7"},
		{graphics.StyleHidden, "8"},
		{graphics.StyleStrike, "9"},
	} {
		if cell.Style&attr.flag != 0 {
			codes = append(codes, attr.code)
		}
	}
	if cell.HasFG && c.mode != ColorModeNone {
		if c.mode == ColorMode256 {
			codes = append(codes, "38", "5", strconv.Itoa(int(Quantize256(cell.FG))))
		} else {
			codes = append(codes, "38", "2", strconv.Itoa(int(cell.FG.R)), strconv.Itoa(int(cell.FG.G)), strconv.Itoa(int(cell.FG.B)))
		}
	}
	if len(codes) == 0 {
		return false
	}
	sb.WriteString("\x1b[")
	sb.WriteString(strings.Join(codes, ";"))
	sb.WriteByte('m')
	return true
}

// Paint draws the buffer onto a tcell screen without showing it; the
// driver calls Show once per frame.
func (c *Canvas) Paint(screen tcell.Screen) {
	for row := 0; row < c.buffer.Height(); row++ {
		for col := 0; col < c.buffer.Width(); col++ {
			cell := c.buffer.Get(col, row)
			if cell.Width == 0 {
				continue
			}
			style := tcell.StyleDefault
			if cell.HasFG {
				style = style.Foreground(tcell.NewRGBColor(int32(cell.FG.R), int32(cell.FG.G), int32(cell.FG.B)))
			}
			style = style.
				Bold(cell.Style&graphics.StyleBold != 0).
				Dim(cell.Style&graphics.StyleDim != 0).
				Italic(cell.Style&graphics.StyleItalic != 0).
				Underline(cell.Style&graphics.StyleUnderline != 0).
				Blink(cell.Style&graphics.StyleBlink != 0).
				Reverse(cell.Style&graphics.StyleReverse != 0).
				StrikeThrough(cell.Style&graphics.StyleStrike != 0)
			screen.SetContent(col, row, cell.Rune, nil, style)
		}
	}
}

// Quantize256 maps an RGB color to the nearest xterm 256-palette index.
// Near-gray colors use the grayscale ramp (232-255), everything else the
// 6x6x6 color cube: index = 16 + 36r + 6g + b with r,g,b in [0,5].
func Quantize256(c graphics.RGB) uint8 {
	isGrayish := absDiff(c.R, c.G) < 12 && absDiff(c.G, c.B) < 12 && absDiff(c.R, c.B) < 12
	if isGrayish {
		avg := (int(c.R) + int(c.G) + int(c.B)) / 3
		switch {
		case avg < 4:
			return 16 // cube black
		case avg > 246:
			return 231 // cube white
		default:
			step := (avg - 8) / 10
			if step > 23 {
				step = 23
			}
			if step < 0 {
				step = 0
			}
			return uint8(232 + step)
		}
	}
	level := func(v uint8) int { return (int(v)*5 + 127) / 255 }
	return uint8(16 + 36*level(c.R) + 6*level(c.G) + level(c.B))
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

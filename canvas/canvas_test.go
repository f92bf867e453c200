package canvas

import (
	"strings"
	"testing"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/engine"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/geometry"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
)

func TestBufferSetAndGet(t *testing.T) {
	b := NewBuffer(10, 4)
	b.Set(3, 2, graphics.Visual('x'))
	if got := b.Get(3, 2).Rune; got != 'x' {
		t.Errorf("Expected 'x', got %q", got)
	}
	if got := b.Get(0, 0).Rune; got != ' ' {
		t.Errorf("Expected blank, got %q", got)
	}

	// Out-of-bounds writes are dropped, reads return blanks.
	b.Set(-1, 0, graphics.Visual('y'))
	b.Set(10, 0, graphics.Visual('y'))
	if got := b.Get(99, 99).Rune; got != ' ' {
		t.Errorf("Expected blank for out-of-bounds read, got %q", got)
	}
}

func TestWideRuneClaimsTwoCells(t *testing.T) {
	b := NewBuffer(10, 1)
	b.Set(2, 0, graphics.Visual('世'))
	if b.Get(2, 0).Width != 2 {
		t.Errorf("Expected width 2, got %d", b.Get(2, 0).Width)
	}
	if b.Get(3, 0).Width != 0 {
		t.Errorf("Expected shadow cell after wide rune")
	}
}

func TestCompositeRespectsLayersAndVisibility(t *testing.T) {
	c := New(10, 3, ColorModeNone)

	bottom := engine.NewEntity(0, 'b', geometry.Coord{Column: 4, Row: 1})
	top := engine.NewEntity(1, 't', geometry.Coord{Column: 4, Row: 1})
	hidden := engine.NewEntity(2, 'h', geometry.Coord{Column: 1, Row: 1})
	bottom.SetVisible(true)
	top.SetVisible(true)
	top.Layer = 1

	c.Composite([]*engine.Entity{top, bottom, hidden})
	frame := c.Frame()
	lines := strings.Split(frame, "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[1][4] != 't' {
		t.Errorf("Expected top layer at (4,1), got %q", lines[1][4])
	}
	if lines[1][1] != ' ' {
		t.Errorf("Invisible entity was drawn")
	}
}

func TestFrameEmitsTrueColor(t *testing.T) {
	c := New(3, 1, ColorModeTrueColor)
	e := engine.NewEntity(0, 'x', geometry.Coord{Column: 0, Row: 0})
	e.SetVisible(true)
	e.Animation.SetAppearance(graphics.ColoredVisual('x', graphics.RGB{R: 255, G: 0, B: 0}))

	c.Composite([]*engine.Entity{e})
	frame := c.Frame()
	if !strings.Contains(frame, "\x1b[38;2;255;0;0m") {
		t.Errorf("Expected 24-bit SGR sequence, frame: %q", frame)
	}
	if !strings.Contains(frame, "\x1b[0m") {
		t.Errorf("Expected reset after styled rune")
	}
}

func TestQuantize256(t *testing.T) {
	if got := Quantize256(graphics.RGB{}); got != 16 {
		t.Errorf("Expected cube black 16, got %d", got)
	}
	if got := Quantize256(graphics.RGB{R: 255, G: 255, B: 255}); got != 231 {
		t.Errorf("Expected cube white 231, got %d", got)
	}
	if got := Quantize256(graphics.RGB{R: 255}); got != 196 {
		t.Errorf("Expected pure red 196, got %d", got)
	}
	if got := Quantize256(graphics.RGB{R: 128, G: 128, B: 128}); got < 232 {
		t.Errorf("Expected grayscale ramp for mid gray, got %d", got)
	}
}

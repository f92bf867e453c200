// Package effects is the library of concrete text effects. Each effect
// lays out the input text as one entity per glyph, programs paths, scenes,
// and event registrations on them, and is then driven frame by frame
// through Step.
package effects

import (
	"math/rand"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/canvas"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/engine"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/geometry"
)

// Effect animates input text. Init lays out entities and programs the
// animation; Step advances every active entity by one tick and returns
// the composited frame. done reports that no entity has simulation work
// left, at which point the returned frame shows the settled text.
type Effect interface {
	Init(text string) error
	Step() (frame string, done bool, err error)
}

// gradientFrames is the frame count of the gradient scenes effects build
// from the final gradient.
const gradientFrames = 10

// baseEffect carries the shared entity population, canvas, and RNG.
// Concrete effects embed it.
type baseEffect struct {
	canvas   *canvas.Canvas
	entities []*engine.Entity
	rng      *rand.Rand
}

func newBaseEffect(opts Options) (baseEffect, error) {
	mode, err := colorMode(opts)
	if err != nil {
		return baseEffect{}, err
	}
	width, height := opts.Width, opts.Height
	if width == 0 || height == 0 {
		w, h := canvas.DetectSize(80, 24)
		if width == 0 {
			width = w
		}
		if height == 0 {
			height = h
		}
	}
	return baseEffect{
		canvas: canvas.New(width, height, mode),
		rng:    rand.New(rand.NewSource(opts.Seed)),
	}, nil
}

// placeText creates one entity per non-blank glyph, centering the text
// block on the canvas. Wide runes occupy two columns.
func (b *baseEffect) placeText(text string) {
	lines := strings.Split(strings.ReplaceAll(text, "\t", "    "), "\n")

	blockWidth := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > blockWidth {
			blockWidth = w
		}
	}
	offsetX := (b.canvas.Width() - blockWidth) / 2
	if offsetX < 0 {
		offsetX = 0
	}
	offsetY := (b.canvas.Height() - len(lines)) / 2
	if offsetY < 0 {
		offsetY = 0
	}

	id := 0
	for row, line := range lines {
		col := offsetX
		for _, sym := range line {
			w := runewidth.RuneWidth(sym)
			if w < 1 {
				continue
			}
			if sym != ' ' {
				coord := geometry.Coord{Column: col, Row: offsetY + row}
				b.entities = append(b.entities, engine.NewEntity(id, sym, coord))
				id++
			}
			col += w
		}
	}
}

// tickEntities advances every active entity once.
func (b *baseEffect) tickEntities() error {
	for _, e := range b.entities {
		if e.IsActive() {
			if err := e.Tick(); err != nil {
				return err
			}
		}
	}
	return nil
}

// done reports that no entity has simulation work left.
func (b *baseEffect) done() bool {
	for _, e := range b.entities {
		if e.IsActive() {
			return false
		}
	}
	return true
}

// renderFrame composites the population and returns the ANSI frame.
func (b *baseEffect) renderFrame() string {
	b.canvas.Composite(b.entities)
	return b.canvas.Frame()
}

// Canvas exposes the compositor for interactive playback.
func (b *baseEffect) Canvas() *canvas.Canvas { return b.canvas }

// center returns the canvas midpoint.
func (b *baseEffect) center() geometry.Coord {
	return geometry.Coord{Column: b.canvas.Width() / 2, Row: b.canvas.Height() / 2}
}

package effects

import (
	"sort"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/easing"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/engine"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/events"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/geometry"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/motion"
)

const beamSymbol = '▌'

var beamGlowColor = graphics.RGB{R: 0x6F, G: 0xC5, B: 0xFF}

// Beams sweeps a beam entity across each text row. The sweep path carries
// a waypoint at every glyph column; passing one lights that glyph's
// resolve scene. A finished beam parks itself off-canvas and hides.
type Beams struct {
	baseEffect
	opts Options

	// rowStarts maps tick index to the beams released that tick.
	rowStarts map[int][]*engine.Entity
	pending   int
	tick      int
}

// NewBeams creates the beams effect.
func NewBeams(opts Options) (Effect, error) {
	base, err := newBaseEffect(opts)
	if err != nil {
		return nil, err
	}
	return &Beams{baseEffect: base, opts: opts, rowStarts: make(map[int][]*engine.Entity)}, nil
}

func (fx *Beams) Init(text string) error {
	fx.placeText(text)
	gradient, err := finalGradient(fx.opts)
	if err != nil {
		return err
	}
	speed := fx.opts.Beams.Speed
	if speed <= 0 {
		speed = 2
	}
	rowGap := fx.opts.Beams.RowGap
	if rowGap < 1 {
		rowGap = 2
	}

	rows := make(map[int][]*engine.Entity)
	for _, e := range fx.entities {
		rows[e.InputCoord.Row] = append(rows[e.InputCoord.Row], e)
	}
	rowOrder := make([]int, 0, len(rows))
	for row := range rows {
		rowOrder = append(rowOrder, row)
	}
	sort.Ints(rowOrder)

	id := len(fx.entities)
	for i, row := range rowOrder {
		glyphs := rows[row]
		sort.Slice(glyphs, func(a, b int) bool {
			return glyphs[a].InputCoord.Column < glyphs[b].InputCoord.Column
		})

		park := geometry.Coord{Column: -1, Row: row}
		beam := engine.NewEntity(id, beamSymbol, park)
		id++

		sweep, err := beam.Motion.NewPath("sweep", motion.PathConfig{Speed: speed})
		if err != nil {
			return err
		}
		for _, glyph := range glyphs {
			glyph := glyph
			wp, err := sweep.NewWaypoint(geometry.Coord{Column: glyph.InputCoord.Column, Row: row}, nil, "")
			if err != nil {
				return err
			}

			lit, err := glyph.Animation.NewScene("lit", graphics.SceneConfig{Ease: easing.OutQuad})
			if err != nil {
				return err
			}
			if err := lit.AddFrame(graphics.ColoredVisual(glyph.InputSymbol, graphics.RGBWhite), 2); err != nil {
				return err
			}
			for f := 0; f < gradientFrames; f++ {
				t := float64(f) / float64(gradientFrames-1)
				blend := graphics.RGBWhite.Blend(gradient.At(t), t)
				if err := lit.AddFrame(graphics.ColoredVisual(glyph.InputSymbol, blend), 2); err != nil {
					return err
				}
			}

			light := engine.Callback{Fn: func(*engine.Entity, ...any) error {
				glyph.SetVisible(true)
				return glyph.Animation.ActivateScene(lit)
			}}
			err = beam.EventHandler.RegisterEvent(events.EventSegmentExited, wp,
				events.ActionCallback, engine.CallbackTarget(light))
			if err != nil {
				return err
			}
		}
		// Run the beam off the right edge so the last glyph's waypoint is
		// passed, not merely reached.
		if _, err := sweep.NewWaypoint(geometry.Coord{Column: fx.canvas.Width(), Row: row}, nil, ""); err != nil {
			return err
		}

		glow, err := beam.Animation.NewScene("glow", graphics.SceneConfig{IsLooping: true})
		if err != nil {
			return err
		}
		if err := glow.AddFrame(graphics.ColoredVisual(beamSymbol, graphics.RGBWhite), 1); err != nil {
			return err
		}
		if err := glow.AddFrame(graphics.ColoredVisual(beamSymbol, beamGlowColor), 1); err != nil {
			return err
		}

		err = beam.EventHandler.RegisterEvent(events.EventPathComplete, sweep,
			events.ActionSetCoordinate, engine.CoordTarget(park))
		if err != nil {
			return err
		}
		hide := engine.Callback{Fn: func(owner *engine.Entity, _ ...any) error {
			owner.SetVisible(false)
			return nil
		}}
		err = beam.EventHandler.RegisterEvent(events.EventPathComplete, sweep,
			events.ActionCallback, engine.CallbackTarget(hide))
		if err != nil {
			return err
		}

		fx.entities = append(fx.entities, beam)
		fx.rowStarts[i*rowGap] = append(fx.rowStarts[i*rowGap], beam)
		fx.pending++
	}
	return nil
}

func (fx *Beams) Step() (string, bool, error) {
	for _, beam := range fx.rowStarts[fx.tick] {
		sweep, err := beam.Motion.Path("sweep")
		if err != nil {
			return "", false, err
		}
		glow, err := beam.Animation.Scene("glow")
		if err != nil {
			return "", false, err
		}
		if err := beam.Motion.ActivatePath(sweep); err != nil {
			return "", false, err
		}
		if err := beam.Animation.ActivateScene(glow); err != nil {
			return "", false, err
		}
		beam.SetVisible(true)
		fx.pending--
	}
	delete(fx.rowStarts, fx.tick)
	fx.tick++

	if err := fx.tickEntities(); err != nil {
		return "", false, err
	}
	return fx.renderFrame(), fx.pending == 0 && fx.done(), nil
}

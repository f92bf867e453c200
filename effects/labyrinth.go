package effects

import (
	"fmt"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/engine"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/events"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/geometry"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/maze"
)

const traceSymbol = '▪'

var (
	traceFlashColor = graphics.RGB{R: 0xFF, G: 0xFF, B: 0xFF}
	traceTrailColor = graphics.RGB{R: 0x3A, G: 0x3A, B: 0x3A}
)

// Labyrinth carves a maze over the canvas and lights its corridors up in
// breadth-first order from the start cell. Text glyphs resolve as the
// wave passes them; once the maze is fully traced, the corridors fade
// back out and only the text remains.
type Labyrinth struct {
	baseEffect
	opts Options

	order      []maze.Point
	traces     map[maze.Point]*engine.Entity
	textStarts map[int][]*engine.Entity
	perTick    int
	revealed   int
	fading     bool
}

// NewLabyrinth creates the labyrinth effect.
func NewLabyrinth(opts Options) (Effect, error) {
	base, err := newBaseEffect(opts)
	if err != nil {
		return nil, err
	}
	return &Labyrinth{
		baseEffect: base,
		opts:       opts,
		traces:     make(map[maze.Point]*engine.Entity),
		textStarts: make(map[int][]*engine.Entity),
	}, nil
}

func mazeAlgorithm(name string) (maze.Algorithm, error) {
	switch name {
	case "", "backtracker":
		return maze.Backtracker, nil
	case "prim":
		return maze.Prim, nil
	case "aldous-broder":
		return maze.AldousBroder, nil
	default:
		return 0, fmt.Errorf("unknown maze algorithm %q", name)
	}
}

func (fx *Labyrinth) Init(text string) error {
	fx.placeText(text)
	gradient, err := finalGradient(fx.opts)
	if err != nil {
		return err
	}
	algorithm, err := mazeAlgorithm(fx.opts.Labyrinth.Algorithm)
	if err != nil {
		return err
	}
	fx.perTick = fx.opts.Labyrinth.RevealsPerTick
	if fx.perTick < 1 {
		fx.perTick = 2
	}

	result := maze.Generate(maze.Config{
		Width:     fx.canvas.Width(),
		Height:    fx.canvas.Height(),
		Algorithm: algorithm,
		Seed:      fx.opts.Seed,
	})
	fx.order = maze.WalkBFS(result.Grid, result.Start)

	id := len(fx.entities)
	for _, p := range fx.order {
		e := engine.NewEntity(id, traceSymbol, geometry.Coord{Column: p.X, Row: p.Y})
		id++

		trace, err := e.Animation.NewScene("trace", graphics.SceneConfig{})
		if err != nil {
			return err
		}
		if err := trace.AddFrame(graphics.ColoredVisual(traceSymbol, traceFlashColor), 2); err != nil {
			return err
		}
		for i := 1; i <= 3; i++ {
			blend := traceFlashColor.Blend(traceTrailColor, float64(i)/3)
			if err := trace.AddFrame(graphics.ColoredVisual(traceSymbol, blend), 2); err != nil {
				return err
			}
		}

		fade, err := e.Animation.NewScene("fade", graphics.SceneConfig{})
		if err != nil {
			return err
		}
		for i := 1; i <= 4; i++ {
			blend := traceTrailColor.Scale(1 - float64(i)/4)
			if err := fade.AddFrame(graphics.ColoredVisual(traceSymbol, blend), 2); err != nil {
				return err
			}
		}

		hide := engine.Callback{Fn: func(owner *engine.Entity, args ...any) error {
			owner.SetVisible(false)
			return nil
		}}
		err = e.EventHandler.RegisterEvent(events.EventSceneComplete, fade,
			events.ActionCallback, engine.CallbackTarget(hide))
		if err != nil {
			return err
		}

		fx.traces[p] = e
		fx.entities = append(fx.entities, e)
	}

	return fx.scheduleText(gradient)
}

// scheduleText programs each glyph's resolve scene and pins its start to the
// tick the trace wave first passes within one cell of it. Glyphs the wave
// never touches start on the final reveal tick.
func (fx *Labyrinth) scheduleText(gradient graphics.Gradient) error {
	textEnd := len(fx.entities) - len(fx.order)
	scheduled := make(map[*engine.Entity]bool)
	lastTick := 0
	if fx.perTick > 0 && len(fx.order) > 0 {
		lastTick = (len(fx.order) - 1) / fx.perTick
	}

	for i, p := range fx.order {
		tick := i / fx.perTick
		for _, e := range fx.entities[:textEnd] {
			if scheduled[e] {
				continue
			}
			dc := e.InputCoord.Column - p.X
			dr := e.InputCoord.Row - p.Y
			if dc >= -1 && dc <= 1 && dr >= -1 && dr <= 1 {
				fx.textStarts[tick] = append(fx.textStarts[tick], e)
				scheduled[e] = true
			}
		}
	}
	for _, e := range fx.entities[:textEnd] {
		if !scheduled[e] {
			fx.textStarts[lastTick] = append(fx.textStarts[lastTick], e)
		}
	}

	for _, e := range fx.entities[:textEnd] {
		e.SetLayer(1)
		resolve, err := e.Animation.NewScene("resolve", graphics.SceneConfig{})
		if err != nil {
			return err
		}
		for i := 0; i < gradientFrames; i++ {
			t := float64(i) / float64(gradientFrames-1)
			blend := traceFlashColor.Blend(gradient.At(t), t)
			if err := resolve.AddFrame(graphics.ColoredVisual(e.InputSymbol, blend), 2); err != nil {
				return err
			}
		}
	}
	return nil
}

func (fx *Labyrinth) Step() (string, bool, error) {
	tick := fx.revealed / fx.perTick

	if fx.revealed < len(fx.order) {
		end := fx.revealed + fx.perTick
		if end > len(fx.order) {
			end = len(fx.order)
		}
		for _, p := range fx.order[fx.revealed:end] {
			e := fx.traces[p]
			trace, err := e.Animation.Scene("trace")
			if err != nil {
				return "", false, err
			}
			if err := e.Animation.ActivateScene(trace); err != nil {
				return "", false, err
			}
			e.SetVisible(true)
		}
		for _, e := range fx.textStarts[tick] {
			resolve, err := e.Animation.Scene("resolve")
			if err != nil {
				return "", false, err
			}
			if err := e.Animation.ActivateScene(resolve); err != nil {
				return "", false, err
			}
			e.SetVisible(true)
		}
		fx.revealed = end
	} else if !fx.fading {
		for _, e := range fx.traces {
			fade, err := e.Animation.Scene("fade")
			if err != nil {
				return "", false, err
			}
			if err := e.Animation.ActivateScene(fade); err != nil {
				return "", false, err
			}
		}
		fx.fading = true
	}

	if err := fx.tickEntities(); err != nil {
		return "", false, err
	}
	return fx.renderFrame(), fx.fading && fx.done(), nil
}

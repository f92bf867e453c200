package effects

import (
	"github.com/ChrisBuilds/terminaltexteffects-sub001/engine"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/events"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/geometry"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/motion"
)

const (
	defaultDropSymbols = "o.,*|"
	splashSymbol       = 'v'
)

var (
	// rainDropColor is the tint of a drop at full fall depth.
	rainDropColor = graphics.RGB{R: 0x1F, G: 0x6F, B: 0xFF}
	// rainPaleColor is the tint of a drop just entering the canvas.
	rainPaleColor = graphics.RGB{R: 0xB8, G: 0xD8, B: 0xFF}
)

// Rain drops each glyph from above the canvas to its home coordinate at a
// random speed. The drop's symbol and tint track fall distance; arrival
// pauses the drop for a splash before the glyph resolves through the
// final gradient.
type Rain struct {
	baseEffect
	opts Options

	// starts maps tick index to the entities released that tick.
	starts  map[int][]*engine.Entity
	pending int
	tick    int
}

// NewRain creates the rain effect.
func NewRain(opts Options) (Effect, error) {
	base, err := newBaseEffect(opts)
	if err != nil {
		return nil, err
	}
	return &Rain{baseEffect: base, opts: opts, starts: make(map[int][]*engine.Entity)}, nil
}

func (fx *Rain) Init(text string) error {
	fx.placeText(text)
	gradient, err := finalGradient(fx.opts)
	if err != nil {
		return err
	}
	speedMin := fx.opts.Rain.SpeedMin
	if speedMin <= 0 {
		speedMin = 0.3
	}
	speedMax := fx.opts.Rain.SpeedMax
	if speedMax < speedMin {
		speedMax = speedMin + 0.7
	}
	holdTicks := fx.opts.Rain.HoldTicks
	if holdTicks < 1 {
		holdTicks = 3
	}
	drops := []rune(fx.opts.Rain.DropSymbols)
	if len(drops) == 0 {
		drops = []rune(defaultDropSymbols)
	}

	for _, e := range fx.entities {
		e.Motion.SetCoordinate(geometry.Coord{Column: e.InputCoord.Column, Row: -1})

		speed := speedMin + fx.rng.Float64()*(speedMax-speedMin)
		fall, err := e.Motion.NewPath("fall", motion.PathConfig{Speed: speed, HoldTime: holdTicks})
		if err != nil {
			return err
		}
		if _, err := fall.NewWaypoint(e.InputCoord, nil, ""); err != nil {
			return err
		}

		falling, err := e.Animation.NewScene("falling", graphics.SceneConfig{Sync: graphics.SyncDistance})
		if err != nil {
			return err
		}
		offset := fx.rng.Intn(len(drops))
		for i := range drops {
			sym := drops[(offset+i)%len(drops)]
			t := 1.0
			if len(drops) > 1 {
				t = float64(i) / float64(len(drops)-1)
			}
			blend := rainPaleColor.Blend(rainDropColor, t)
			if err := falling.AddFrame(graphics.ColoredVisual(sym, blend), 1); err != nil {
				return err
			}
		}

		splash, err := e.Animation.NewScene("splash", graphics.SceneConfig{IsLooping: true})
		if err != nil {
			return err
		}
		if err := splash.AddFrame(graphics.ColoredVisual(splashSymbol, graphics.RGBWhite), 1); err != nil {
			return err
		}
		if err := splash.AddFrame(graphics.ColoredVisual(splashSymbol, rainDropColor), 1); err != nil {
			return err
		}

		landed, err := e.Animation.NewScene("landed", graphics.SceneConfig{})
		if err != nil {
			return err
		}
		for i := 0; i < gradientFrames; i++ {
			t := float64(i) / float64(gradientFrames-1)
			blend := rainDropColor.Blend(gradient.At(t), t)
			if err := landed.AddFrame(graphics.ColoredVisual(e.InputSymbol, blend), 2); err != nil {
				return err
			}
		}

		err = e.EventHandler.RegisterEvent(events.EventPathHolding, fall,
			events.ActionActivateScene, engine.SceneTarget(splash))
		if err != nil {
			return err
		}
		err = e.EventHandler.RegisterEvent(events.EventPathComplete, fall,
			events.ActionActivateScene, engine.SceneTarget(landed))
		if err != nil {
			return err
		}

		start := fx.rng.Intn(len(fx.entities)/4 + 1)
		fx.starts[start] = append(fx.starts[start], e)
		fx.pending++
	}
	return nil
}

func (fx *Rain) Step() (string, bool, error) {
	for _, e := range fx.starts[fx.tick] {
		fall, err := e.Motion.Path("fall")
		if err != nil {
			return "", false, err
		}
		falling, err := e.Animation.Scene("falling")
		if err != nil {
			return "", false, err
		}
		if err := e.Motion.ActivatePath(fall); err != nil {
			return "", false, err
		}
		if err := e.Animation.ActivateScene(falling); err != nil {
			return "", false, err
		}
		e.SetVisible(true)
		fx.pending--
	}
	delete(fx.starts, fx.tick)
	fx.tick++

	if err := fx.tickEntities(); err != nil {
		return "", false, err
	}
	return fx.renderFrame(), fx.pending == 0 && fx.done(), nil
}

package effects

import (
	"github.com/ChrisBuilds/terminaltexteffects-sub001/easing"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/motion"
)

// Expand moves every glyph from the canvas center to its home coordinate,
// coloring it along the final gradient as the path progresses.
type Expand struct {
	baseEffect
	opts Options
}

// NewExpand creates the expand effect.
func NewExpand(opts Options) (Effect, error) {
	base, err := newBaseEffect(opts)
	if err != nil {
		return nil, err
	}
	return &Expand{baseEffect: base, opts: opts}, nil
}

func (fx *Expand) Init(text string) error {
	fx.placeText(text)
	gradient, err := finalGradient(fx.opts)
	if err != nil {
		return err
	}
	speed := fx.opts.Expand.Speed
	if speed <= 0 {
		speed = 0.35
	}
	center := fx.center()

	for _, e := range fx.entities {
		e.Motion.SetCoordinate(center)

		path, err := e.Motion.NewPath("home", motion.PathConfig{Speed: speed, Ease: easing.OutQuad})
		if err != nil {
			return err
		}
		if _, err := path.NewWaypoint(e.InputCoord, nil, ""); err != nil {
			return err
		}

		travel, err := e.Animation.NewScene("travel", graphics.SceneConfig{Sync: graphics.SyncStep})
		if err != nil {
			return err
		}
		for i := 0; i < gradientFrames; i++ {
			t := float64(i) / float64(gradientFrames-1)
			if err := travel.AddFrame(graphics.ColoredVisual(e.InputSymbol, gradient.At(t)), 1); err != nil {
				return err
			}
		}

		if err := e.Motion.ActivatePath(path); err != nil {
			return err
		}
		if err := e.Animation.ActivateScene(travel); err != nil {
			return err
		}
		e.SetVisible(true)
	}
	return nil
}

func (fx *Expand) Step() (string, bool, error) {
	if err := fx.tickEntities(); err != nil {
		return "", false, err
	}
	return fx.renderFrame(), fx.done(), nil
}

package effects

import (
	"sort"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/easing"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/engine"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/geometry"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/motion"
)

// Slide brings each text row in from the canvas edge along an eased
// straight path. With Merge set, odd rows enter from the opposite side.
type Slide struct {
	baseEffect
	opts Options

	// rowStarts maps tick index to the entities released that tick.
	rowStarts map[int][]*engine.Entity
	pending   int
	tick      int
}

// NewSlide creates the slide effect.
func NewSlide(opts Options) (Effect, error) {
	base, err := newBaseEffect(opts)
	if err != nil {
		return nil, err
	}
	return &Slide{baseEffect: base, opts: opts, rowStarts: make(map[int][]*engine.Entity)}, nil
}

func (fx *Slide) Init(text string) error {
	fx.placeText(text)
	gradient, err := finalGradient(fx.opts)
	if err != nil {
		return err
	}
	speed := fx.opts.Slide.Speed
	if speed <= 0 {
		speed = 2
	}
	rowGap := fx.opts.Slide.RowGap
	if rowGap < 1 {
		rowGap = 3
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

	for i, row := range rowOrder {
		fromLeft := !fx.opts.Slide.Merge || i%2 == 0
		for _, e := range rows[row] {
			startCol := -1
			if !fromLeft {
				startCol = fx.canvas.Width()
			}
			e.Motion.SetCoordinate(geometry.Coord{Column: startCol, Row: row})

			path, err := e.Motion.NewPath("slide", motion.PathConfig{Speed: speed, Ease: easing.InOutQuad})
			if err != nil {
				return err
			}
			if _, err := path.NewWaypoint(e.InputCoord, nil, ""); err != nil {
				return err
			}

			scene, err := e.Animation.NewScene("shade", graphics.SceneConfig{Sync: graphics.SyncDistance})
			if err != nil {
				return err
			}
			for f := 0; f < gradientFrames; f++ {
				t := float64(f) / float64(gradientFrames-1)
				if err := scene.AddFrame(graphics.ColoredVisual(e.InputSymbol, gradient.At(t)), 1); err != nil {
					return err
				}
			}
			fx.rowStarts[i*rowGap] = append(fx.rowStarts[i*rowGap], e)
			fx.pending++
		}
	}
	return nil
}

func (fx *Slide) Step() (string, bool, error) {
	for _, e := range fx.rowStarts[fx.tick] {
		path, err := e.Motion.Path("slide")
		if err != nil {
			return "", false, err
		}
		scene, err := e.Animation.Scene("shade")
		if err != nil {
			return "", false, err
		}
		if err := e.Motion.ActivatePath(path); err != nil {
			return "", false, err
		}
		if err := e.Animation.ActivateScene(scene); err != nil {
			return "", false, err
		}
		e.SetVisible(true)
		fx.pending--
	}
	delete(fx.rowStarts, fx.tick)
	fx.tick++

	if err := fx.tickEntities(); err != nil {
		return "", false, err
	}
	return fx.renderFrame(), fx.pending == 0 && fx.done(), nil
}

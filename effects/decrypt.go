package effects

import (
	"github.com/ChrisBuilds/terminaltexteffects-sub001/engine"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/events"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
)

const defaultCipherSymbols = "!@#$%&?+=<>[]{}/\\|~^:;0123456789abcdef"

// cipherColor tints glyphs that are still scrambled.
var cipherColor = graphics.RGB{R: 0x00, G: 0x8F, B: 0x00}

// Decrypt shows every glyph as a scrambling cipher symbol, then resolves
// each one to its real symbol through the final gradient. Glyphs start
// scrambling at staggered ticks, so the text decodes unevenly.
type Decrypt struct {
	baseEffect
	opts Options

	starts  map[int][]*engine.Entity
	pending int
	tick    int
}

// NewDecrypt creates the decrypt effect.
func NewDecrypt(opts Options) (Effect, error) {
	base, err := newBaseEffect(opts)
	if err != nil {
		return nil, err
	}
	return &Decrypt{baseEffect: base, opts: opts, starts: make(map[int][]*engine.Entity)}, nil
}

func (fx *Decrypt) Init(text string) error {
	fx.placeText(text)
	gradient, err := finalGradient(fx.opts)
	if err != nil {
		return err
	}
	cipherTicks := fx.opts.Decrypt.CipherTicks
	if cipherTicks < 1 {
		cipherTicks = 20
	}
	symbols := []rune(fx.opts.Decrypt.CipherSymbols)
	if len(symbols) == 0 {
		symbols = []rune(defaultCipherSymbols)
	}

	for _, e := range fx.entities {
		cipher, err := e.Animation.NewScene("cipher", graphics.SceneConfig{})
		if err != nil {
			return err
		}
		for i := 0; i < cipherTicks; i++ {
			sym := symbols[fx.rng.Intn(len(symbols))]
			if err := cipher.AddFrame(graphics.ColoredVisual(sym, cipherColor), 1); err != nil {
				return err
			}
		}

		resolve, err := e.Animation.NewScene("resolve", graphics.SceneConfig{})
		if err != nil {
			return err
		}
		for i := 0; i < gradientFrames; i++ {
			t := float64(i) / float64(gradientFrames-1)
			blend := cipherColor.Blend(gradient.At(t), t)
			if err := resolve.AddFrame(graphics.ColoredVisual(e.InputSymbol, blend), 2); err != nil {
				return err
			}
		}

		err = e.EventHandler.RegisterEvent(events.EventSceneComplete, cipher,
			events.ActionActivateScene, engine.SceneTarget(resolve))
		if err != nil {
			return err
		}

		start := fx.rng.Intn(cipherTicks + 1)
		fx.starts[start] = append(fx.starts[start], e)
		fx.pending++
	}
	return nil
}

func (fx *Decrypt) Step() (string, bool, error) {
	for _, e := range fx.starts[fx.tick] {
		cipher, err := e.Animation.Scene("cipher")
		if err != nil {
			return "", false, err
		}
		if err := e.Animation.ActivateScene(cipher); err != nil {
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

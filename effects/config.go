package effects

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/canvas"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
)

// Options holds the driver-level and per-effect settings. Zero values fall
// back to sensible defaults; a YAML file can override any subset.
type Options struct {
	// Width and Height fix the canvas size; 0 auto-detects from the
	// terminal with an 80x24 fallback.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// ColorMode is "truecolor", "256", or "none".
	ColorMode string `yaml:"color_mode"`

	// Seed drives every random decision an effect makes. Same seed, same
	// animation.
	Seed int64 `yaml:"seed"`

	// GradientStops are hex colors blended into the final gradient most
	// effects color resolved glyphs with.
	GradientStops []string `yaml:"gradient_stops"`
	// GradientSteps is the blend step count between adjacent stops.
	GradientSteps int `yaml:"gradient_steps"`

	Rain      RainOptions      `yaml:"rain"`
	Slide     SlideOptions     `yaml:"slide"`
	Expand    ExpandOptions    `yaml:"expand"`
	Beams     BeamsOptions     `yaml:"beams"`
	Decrypt   DecryptOptions   `yaml:"decrypt"`
	Labyrinth LabyrinthOptions `yaml:"labyrinth"`
}

// RainOptions tunes the rain effect.
type RainOptions struct {
	// SpeedMin and SpeedMax bound the random per-drop fall speed.
	SpeedMin float64 `yaml:"speed_min"`
	SpeedMax float64 `yaml:"speed_max"`
	// DropSymbols cycle while a drop is falling.
	DropSymbols string `yaml:"drop_symbols"`
	// HoldTicks is how long a landed drop splashes before resolving.
	HoldTicks int `yaml:"hold_ticks"`
}

// SlideOptions tunes the slide effect.
type SlideOptions struct {
	// Merge alternates row entry sides; otherwise all rows enter from
	// the left.
	Merge bool `yaml:"merge"`
	// Speed is cells per tick for the slide-in paths.
	Speed float64 `yaml:"speed"`
	// RowGap is the tick delay between consecutive row starts.
	RowGap int `yaml:"row_gap"`
}

// ExpandOptions tunes the expand effect.
type ExpandOptions struct {
	// Speed is cells per tick for the outward paths.
	Speed float64 `yaml:"speed"`
}

// BeamsOptions tunes the beams effect.
type BeamsOptions struct {
	// Speed is cells per tick for the sweep paths.
	Speed float64 `yaml:"speed"`
	// RowGap is the tick delay between consecutive beam starts.
	RowGap int `yaml:"row_gap"`
}

// DecryptOptions tunes the decrypt effect.
type DecryptOptions struct {
	// CipherTicks is how long each glyph scrambles before resolving.
	CipherTicks int `yaml:"cipher_ticks"`
	// CipherSymbols is the scramble alphabet.
	CipherSymbols string `yaml:"cipher_symbols"`
}

// LabyrinthOptions tunes the labyrinth effect.
type LabyrinthOptions struct {
	// Algorithm is "backtracker", "prim", or "aldous-broder".
	Algorithm string `yaml:"algorithm"`
	// RevealsPerTick is how many maze cells light up per tick.
	RevealsPerTick int `yaml:"reveals_per_tick"`
}

// LoadOptions reads a YAML options file. A missing path returns defaults.
func LoadOptions(path string) (Options, error) {
	var opts Options
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse options: %w", err)
	}
	return opts, nil
}

// defaultGradientStops is the spectrum used when no stops are configured.
var defaultGradientStops = []graphics.RGB{
	{R: 0x8A, G: 0x00, B: 0x8A},
	{R: 0x00, G: 0xD1, B: 0xFF},
	{R: 0xFF, G: 0xFF, B: 0xFF},
}

// finalGradient resolves the configured gradient.
func finalGradient(opts Options) (graphics.Gradient, error) {
	steps := opts.GradientSteps
	if steps < 1 {
		steps = 12
	}
	if len(opts.GradientStops) == 0 {
		return graphics.NewGradient(defaultGradientStops, steps), nil
	}
	stops := make([]graphics.RGB, 0, len(opts.GradientStops))
	for _, hex := range opts.GradientStops {
		rgb, err := graphics.ParseHex(hex)
		if err != nil {
			return graphics.Gradient{}, err
		}
		stops = append(stops, rgb)
	}
	return graphics.NewGradient(stops, steps), nil
}

// colorMode resolves the configured color mode string.
func colorMode(opts Options) (canvas.ColorMode, error) {
	switch opts.ColorMode {
	case "", "truecolor":
		return canvas.ColorModeTrueColor, nil
	case "256":
		return canvas.ColorMode256, nil
	case "none":
		return canvas.ColorModeNone, nil
	default:
		return 0, fmt.Errorf("unknown color mode %q", opts.ColorMode)
	}
}

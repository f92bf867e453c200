package graphics

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from any terminal
// backend.
type RGB struct {
	R, G, B uint8
}

// Predefined colors used by effect defaults.
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// ParseHex parses "rrggbb" or "#rrggbb" into an RGB.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{R: r, G: g, B: b}, nil
}

// Hex returns the color as "rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha).
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Scale multiplies each channel by factor (for fading).
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Gradient is a precomputed color spectrum sampled from an ordered list
// of stops. Scenes index into it to color frames.
type Gradient struct {
	Spectrum []RGB
}

// NewGradient blends between consecutive stops, producing steps colors per
// stop pair plus the first stop. A single stop yields a flat spectrum.
func NewGradient(stops []RGB, steps int) Gradient {
	if len(stops) == 0 || steps < 1 {
		return Gradient{}
	}
	if len(stops) == 1 {
		spectrum := make([]RGB, steps)
		for i := range spectrum {
			spectrum[i] = stops[0]
		}
		return Gradient{Spectrum: spectrum}
	}

	spectrum := []RGB{stops[0]}
	for i := 1; i < len(stops); i++ {
		a := stops[i-1].colorful()
		b := stops[i].colorful()
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps)
			spectrum = append(spectrum, fromColorful(a.BlendLuv(b, t)))
		}
	}
	return Gradient{Spectrum: spectrum}
}

// At returns the spectrum color for progress t in [0,1].
func (g Gradient) At(t float64) RGB {
	if len(g.Spectrum) == 0 {
		return RGBBlack
	}
	if t <= 0 {
		return g.Spectrum[0]
	}
	if t >= 1 {
		return g.Spectrum[len(g.Spectrum)-1]
	}
	return g.Spectrum[int(t*float64(len(g.Spectrum)-1))]
}

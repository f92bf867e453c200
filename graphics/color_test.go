package graphics

import "testing"

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if c != (RGB{R: 255, G: 128, B: 0}) {
		t.Errorf("Expected ff8000, got %+v", c)
	}
	if c.Hex() != "ff8000" {
		t.Errorf("Expected round-trip hex ff8000, got %s", c.Hex())
	}
	if _, err := ParseHex("xyz"); err == nil {
		t.Errorf("Expected error for invalid hex")
	}
}

func TestBlend(t *testing.T) {
	black := RGBBlack
	white := RGBWhite
	if black.Blend(white, 0) != black {
		t.Errorf("Alpha 0 must return receiver")
	}
	if black.Blend(white, 1) != white {
		t.Errorf("Alpha 1 must return source")
	}
	mid := black.Blend(white, 0.5)
	if mid.R < 120 || mid.R > 135 {
		t.Errorf("Expected mid gray, got %+v", mid)
	}
}

func TestGradientEndpoints(t *testing.T) {
	g := NewGradient([]RGB{RGBBlack, RGBWhite}, 10)
	if len(g.Spectrum) != 11 {
		t.Fatalf("Expected 11 spectrum entries, got %d", len(g.Spectrum))
	}
	if g.At(0) != RGBBlack {
		t.Errorf("Expected black at 0, got %+v", g.At(0))
	}
	if g.At(1) != RGBWhite {
		t.Errorf("Expected white at 1, got %+v", g.At(1))
	}
}

func TestGradientSingleStop(t *testing.T) {
	g := NewGradient([]RGB{{R: 10, G: 20, B: 30}}, 5)
	for _, tt := range []float64{0, 0.5, 1} {
		if g.At(tt) != (RGB{R: 10, G: 20, B: 30}) {
			t.Errorf("Expected flat spectrum at %v", tt)
		}
	}
}

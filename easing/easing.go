// Package easing provides the standard easing curves used by paths and
// scenes. Every function maps a progress value t in [0,1] to an eased
// value, normally also in [0,1]. Back and Elastic intentionally overshoot.
package easing

import (
	"fmt"
	"math"
)

// Function maps raw progress to eased progress.
type Function func(t float64) float64

func Linear(t float64) float64 { return t }

func InQuad(t float64) float64  { return t * t }
func OutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }
func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func InCubic(t float64) float64  { return t * t * t }
func OutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func InQuart(t float64) float64  { return t * t * t * t }
func OutQuart(t float64) float64 { return 1 - math.Pow(1-t, 4) }
func InOutQuart(t float64) float64 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 4)/2
}

func InSine(t float64) float64    { return 1 - math.Cos(t*math.Pi/2) }
func OutSine(t float64) float64   { return math.Sin(t * math.Pi / 2) }
func InOutSine(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }

func InExpo(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}
func OutExpo(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}
func InOutExpo(t float64) float64 {
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	case t < 0.5:
		return math.Pow(2, 20*t-10) / 2
	default:
		return (2 - math.Pow(2, -20*t+10)) / 2
	}
}

func InCirc(t float64) float64  { return 1 - math.Sqrt(1-t*t) }
func OutCirc(t float64) float64 { return math.Sqrt(1 - math.Pow(t-1, 2)) }
func InOutCirc(t float64) float64 {
	if t < 0.5 {
		return (1 - math.Sqrt(1-math.Pow(2*t, 2))) / 2
	}
	return (math.Sqrt(1-math.Pow(-2*t+2, 2)) + 1) / 2
}

func InBack(t float64) float64 {
	const c1, c3 = 1.70158, 2.70158
	return c3*t*t*t - c1*t*t
}
func OutBack(t float64) float64 {
	const c1, c3 = 1.70158, 2.70158
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}
func InOutBack(t float64) float64 {
	const c1 = 1.70158
	const c2 = c1 * 1.525
	if t < 0.5 {
		return (math.Pow(2*t, 2) * ((c2+1)*2*t - c2)) / 2
	}
	return (math.Pow(2*t-2, 2)*((c2+1)*(2*t-2)+c2) + 2) / 2
}

func InElastic(t float64) float64 {
	const c4 = 2 * math.Pi / 3
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	}
	return -math.Pow(2, 10*t-10) * math.Sin((t*10-10.75)*c4)
}
func OutElastic(t float64) float64 {
	const c4 = 2 * math.Pi / 3
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
}

func OutBounce(t float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}
func InBounce(t float64) float64 { return 1 - OutBounce(1-t) }

// byName maps config-file names to easing functions.
var byName = map[string]Function{
	"linear":       Linear,
	"in_quad":      InQuad,
	"out_quad":     OutQuad,
	"in_out_quad":  InOutQuad,
	"in_cubic":     InCubic,
	"out_cubic":    OutCubic,
	"in_out_cubic": InOutCubic,
	"in_quart":     InQuart,
	"out_quart":    OutQuart,
	"in_out_quart": InOutQuart,
	"in_sine":      InSine,
	"out_sine":     OutSine,
	"in_out_sine":  InOutSine,
	"in_expo":      InExpo,
	"out_expo":     OutExpo,
	"in_out_expo":  InOutExpo,
	"in_circ":      InCirc,
	"out_circ":     OutCirc,
	"in_out_circ":  InOutCirc,
	"in_back":      InBack,
	"out_back":     OutBack,
	"in_out_back":  InOutBack,
	"in_elastic":   InElastic,
	"out_elastic":  OutElastic,
	"in_bounce":    InBounce,
	"out_bounce":   OutBounce,
}

// ByName returns the easing function registered under name.
func ByName(name string) (Function, error) {
	fn, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing function %q", name)
	}
	return fn, nil
}

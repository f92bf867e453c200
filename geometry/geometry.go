// Package geometry provides the coordinate type and pure curve math used
// by the motion engine and the effect library. All functions are stateless.
package geometry

import "math"

// Coord is an immutable (column, row) screen position.
// Comparable by value and usable as a map key.
type Coord struct {
	Column int
	Row    int
}

// PointOnLine returns the coordinate at progress t along the straight line
// from a to b. t outside [0,1] extrapolates beyond the endpoints.
func PointOnLine(a, b Coord, t float64) Coord {
	x := float64(a.Column) + t*float64(b.Column-a.Column)
	y := float64(a.Row) + t*float64(b.Row-a.Row)
	return Coord{Column: int(math.Round(x)), Row: int(math.Round(y))}
}

// PointOnBezier evaluates the bezier curve from a to b with the given
// control points at progress t, using De Casteljau reduction. With no
// controls it degrades to PointOnLine.
func PointOnBezier(a Coord, controls []Coord, b Coord, t float64) Coord {
	if len(controls) == 0 {
		return PointOnLine(a, b, t)
	}

	xs := make([]float64, 0, len(controls)+2)
	ys := make([]float64, 0, len(controls)+2)
	xs = append(xs, float64(a.Column))
	ys = append(ys, float64(a.Row))
	for _, c := range controls {
		xs = append(xs, float64(c.Column))
		ys = append(ys, float64(c.Row))
	}
	xs = append(xs, float64(b.Column))
	ys = append(ys, float64(b.Row))

	for n := len(xs); n > 1; n-- {
		for i := 0; i < n-1; i++ {
			xs[i] = xs[i] + t*(xs[i+1]-xs[i])
			ys[i] = ys[i] + t*(ys[i+1]-ys[i])
		}
	}
	return Coord{Column: int(math.Round(xs[0])), Row: int(math.Round(ys[0]))}
}

// LineLength returns the euclidean distance between a and b.
func LineLength(a, b Coord) float64 {
	dx := float64(b.Column - a.Column)
	dy := float64(b.Row - a.Row)
	return math.Sqrt(dx*dx + dy*dy)
}

// bezierSamples is the chord count used to approximate bezier arc length.
const bezierSamples = 20

// BezierLength approximates the arc length of the bezier curve from a to b
// by summing chord lengths over fixed samples.
func BezierLength(a Coord, controls []Coord, b Coord) float64 {
	if len(controls) == 0 {
		return LineLength(a, b)
	}
	length := 0.0
	prev := a
	for i := 1; i <= bezierSamples; i++ {
		next := PointOnBezier(a, controls, b, float64(i)/bezierSamples)
		length += LineLength(prev, next)
		prev = next
	}
	return length
}

// CoordAtDistance returns the coordinate at the given distance past target
// on the ray from origin through target. origin == target returns target.
func CoordAtDistance(origin, target Coord, distance float64) Coord {
	total := LineLength(origin, target)
	if total == 0 {
		return target
	}
	t := (total + distance) / total
	return PointOnLine(origin, target, t)
}

// CoordsOnCircle returns count coordinates evenly spaced on the circle
// around origin with the given radius.
func CoordsOnCircle(origin Coord, radius float64, count int) []Coord {
	coords := make([]Coord, 0, count)
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		x := float64(origin.Column) + radius*math.Cos(angle)
		y := float64(origin.Row) + radius*math.Sin(angle)
		coords = append(coords, Coord{Column: int(math.Round(x)), Row: int(math.Round(y))})
	}
	return coords
}

// CoordsInCircle returns every integer coordinate within radius of origin.
func CoordsInCircle(origin Coord, radius float64) []Coord {
	var coords []Coord
	r := int(math.Ceil(radius))
	for row := origin.Row - r; row <= origin.Row+r; row++ {
		for col := origin.Column - r; col <= origin.Column+r; col++ {
			c := Coord{Column: col, Row: row}
			if LineLength(origin, c) <= radius {
				coords = append(coords, c)
			}
		}
	}
	return coords
}

// CoordsInRect returns every coordinate in the rectangle centered on
// origin extending distance cells in each direction.
func CoordsInRect(origin Coord, distance int) []Coord {
	var coords []Coord
	for row := origin.Row - distance; row <= origin.Row+distance; row++ {
		for col := origin.Column - distance; col <= origin.Column+distance; col++ {
			coords = append(coords, Coord{Column: col, Row: row})
		}
	}
	return coords
}

// NormalizedDistanceFromCenter returns the distance of coord from the
// center of a width x height area, scaled to [0,1] by the maximum possible
// distance within that area.
func NormalizedDistanceFromCenter(width, height int, coord Coord) float64 {
	center := Coord{Column: width / 2, Row: height / 2}
	maxDist := LineLength(Coord{}, center)
	if maxDist == 0 {
		return 0
	}
	d := LineLength(center, coord)
	return math.Min(d/maxDist, 1)
}

package motion

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/easing"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/events"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/geometry"
)

var (
	// ErrInvalidSpeed reports a non-positive path speed.
	ErrInvalidSpeed = errors.New("path speed must be greater than zero")
	// ErrDuplicateID reports reuse of an explicit waypoint or path id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrUnknownID reports a lookup for an id that was never registered.
	ErrUnknownID = errors.New("unknown id")
	// ErrEmptyPath reports activation of a path with no waypoints.
	ErrEmptyPath = errors.New("path has no waypoints")
)

// Waypoint is a named target coordinate along a Path. BezierControl, when
// non-empty, curves the approach into this waypoint. Waypoints are created
// once and never mutated.
type Waypoint struct {
	ID            string
	Coord         geometry.Coord
	BezierControl []geometry.Coord
}

// Segment is the traversable span between two consecutive waypoints with a
// precomputed distance. The trigger flags guarantee the enter/exit events
// fire at most once per path activation.
type Segment struct {
	Start    *Waypoint
	End      *Waypoint
	Distance float64

	enterTriggered bool
	exitTriggered  bool
}

// coordAt returns the coordinate at fraction t along the segment. The end
// waypoint's bezier controls, if any, curve the span.
func (s *Segment) coordAt(t float64) geometry.Coord {
	if len(s.End.BezierControl) > 0 {
		return geometry.PointOnBezier(s.Start.Coord, s.End.BezierControl, s.End.Coord, t)
	}
	return geometry.PointOnLine(s.Start.Coord, s.End.Coord, t)
}

// PathConfig carries the construction options for a Path.
type PathConfig struct {
	// Speed is cells traveled per tick. Must be > 0.
	Speed float64
	// Ease remaps raw step progress; nil means linear stepping.
	Ease easing.Function
	// Layer, when non-nil, is applied to the owning entity on activation.
	Layer *int
	// HoldTime is ticks to pause at the final waypoint before completing.
	HoldTime int
	// Loop reactivates the path on completion instead of completing it.
	Loop bool
}

// Path is an ordered sequence of waypoints traveled at a fixed speed.
// The origin segment (index 0 of segments) is synthetic: it spans from the
// entity's position at activation time to the first real waypoint and is
// rebuilt on every activation, so travel time is always measured from
// where the entity actually is.
type Path struct {
	ID       string
	Speed    float64
	Ease     easing.Function
	Layer    *int
	HoldTime int
	Loop     bool

	waypoints      []*Waypoint
	waypointLookup map[string]*Waypoint
	segments       []*Segment
	originSegment  *Segment

	totalDistance       float64
	currentStep         int
	maxSteps            int
	holdTimeRemaining   int
	lastDistanceReached float64

	waypointCounter int
}

// NewPath builds an empty path. id may be empty when the path is created
// through Motion.NewPath, which assigns one.
func NewPath(id string, cfg PathConfig) (*Path, error) {
	if cfg.Speed <= 0 {
		return nil, fmt.Errorf("path %q: %w", id, ErrInvalidSpeed)
	}
	return &Path{
		ID:             id,
		Speed:          cfg.Speed,
		Ease:           cfg.Ease,
		Layer:          cfg.Layer,
		HoldTime:       cfg.HoldTime,
		Loop:           cfg.Loop,
		waypointLookup: make(map[string]*Waypoint),
	}, nil
}

// NewWaypoint appends a waypoint. An empty id is replaced by the first
// unused integer id. Appending also creates the segment from the previous
// waypoint and extends the path's total distance.
func (p *Path) NewWaypoint(coord geometry.Coord, bezierControl []geometry.Coord, id string) (*Waypoint, error) {
	if id == "" {
		for {
			id = strconv.Itoa(p.waypointCounter)
			p.waypointCounter++
			if _, taken := p.waypointLookup[id]; !taken {
				break
			}
		}
	} else if _, taken := p.waypointLookup[id]; taken {
		return nil, fmt.Errorf("waypoint %q in path %q: %w", id, p.ID, ErrDuplicateID)
	}

	wp := &Waypoint{ID: id, Coord: coord, BezierControl: bezierControl}
	p.waypointLookup[id] = wp
	p.waypoints = append(p.waypoints, wp)

	if len(p.waypoints) > 1 {
		prev := p.waypoints[len(p.waypoints)-2]
		var distance float64
		if len(wp.BezierControl) > 0 {
			distance = geometry.BezierLength(prev.Coord, wp.BezierControl, wp.Coord)
		} else {
			distance = geometry.LineLength(prev.Coord, wp.Coord)
		}
		p.segments = append(p.segments, &Segment{Start: prev, End: wp, Distance: distance})
		p.totalDistance += distance
		p.maxSteps = int(math.Round(p.totalDistance / p.Speed))
	}
	return wp, nil
}

// Waypoint returns the waypoint registered under id.
func (p *Path) Waypoint(id string) (*Waypoint, error) {
	wp, ok := p.waypointLookup[id]
	if !ok {
		return nil, fmt.Errorf("waypoint %q in path %q: %w", id, p.ID, ErrUnknownID)
	}
	return wp, nil
}

// Waypoints returns the waypoints in insertion order.
func (p *Path) Waypoints() []*Waypoint { return p.waypoints }

// Segments returns the current segment list, origin segment first once the
// path has been activated.
func (p *Path) Segments() []*Segment { return p.segments }

// CurrentStep returns the number of steps taken since activation.
func (p *Path) CurrentStep() int { return p.currentStep }

// MaxSteps returns the total steps the traversal takes at current distance.
func (p *Path) MaxSteps() int { return p.maxSteps }

// TotalDistance returns the summed segment distances including the origin
// segment.
func (p *Path) TotalDistance() float64 { return p.totalDistance }

// LastDistanceReached returns the eased distance consumed by the latest
// step. Distance-synced scenes read this.
func (p *Path) LastDistanceReached() float64 { return p.lastDistanceReached }

// HoldTimeRemaining returns the ticks left in the end-of-path hold.
func (p *Path) HoldTimeRemaining() int { return p.holdTimeRemaining }

// activate rebuilds the origin segment from origin and resets all
// traversal state. The stale origin segment's distance is removed before
// the fresh one is added, so repeated activations never accumulate.
func (p *Path) activate(origin geometry.Coord) {
	if len(p.waypoints) == 0 {
		return
	}
	first := p.waypoints[0]

	var distance float64
	if len(first.BezierControl) > 0 {
		distance = geometry.BezierLength(origin, first.BezierControl, first.Coord)
	} else {
		distance = geometry.LineLength(origin, first.Coord)
	}

	if p.originSegment != nil {
		p.totalDistance -= p.originSegment.Distance
		p.segments = p.segments[1:]
	}
	start := &Waypoint{ID: "origin", Coord: origin}
	p.originSegment = &Segment{Start: start, End: first, Distance: distance}
	p.segments = append([]*Segment{p.originSegment}, p.segments...)
	p.totalDistance += distance

	p.currentStep = 0
	p.holdTimeRemaining = p.HoldTime
	for _, seg := range p.segments {
		seg.enterTriggered = false
		seg.exitTriggered = false
	}
	p.maxSteps = int(math.Round(p.totalDistance / p.Speed))
}

// Step advances the traversal by one tick and returns the new coordinate.
// Segment enter/exit events are emitted through handler as the walk
// crosses segment boundaries, each at most once per activation.
func (p *Path) Step(handler events.Dispatcher) (geometry.Coord, error) {
	if p.maxSteps == 0 || p.currentStep >= p.maxSteps || p.totalDistance == 0 {
		return p.segments[len(p.segments)-1].End.Coord, nil
	}

	p.currentStep++
	distanceFactor := float64(p.currentStep) / float64(p.maxSteps)
	if p.Ease != nil {
		distanceFactor = p.Ease(distanceFactor)
	}
	distanceToTravel := distanceFactor * p.totalDistance
	p.lastDistanceReached = distanceToTravel

	var active *Segment
	for _, seg := range p.segments {
		if distanceToTravel <= seg.Distance {
			active = seg
			break
		}
		distanceToTravel -= seg.Distance
		if !seg.exitTriggered {
			seg.exitTriggered = true
			if err := handler.HandleEvent(events.EventSegmentExited, seg.End); err != nil {
				return p.segments[len(p.segments)-1].End.Coord, err
			}
		}
	}
	if active == nil {
		// Past the final waypoint: clamp to the last segment.
		active = p.segments[len(p.segments)-1]
		distanceToTravel = active.Distance
	}

	if !active.enterTriggered {
		active.enterTriggered = true
		if err := handler.HandleEvent(events.EventSegmentEntered, active.End); err != nil {
			return active.End.Coord, err
		}
	}

	var fraction float64
	if active.Distance > 0 {
		fraction = distanceToTravel / active.Distance
	}
	if p.Ease == nil {
		// Easing may push the fraction past 1 intentionally; raw stepping
		// stays within the segment.
		fraction = math.Max(0, math.Min(fraction, 1))
	}
	return active.coordAt(fraction), nil
}

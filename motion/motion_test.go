package motion

import (
	"errors"
	"testing"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/easing"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/events"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/geometry"
)

// recordingOwner captures emitted events for assertions.
type recordingOwner struct {
	emitted []events.Event
	callers []any
	layer   int
}

func (o *recordingOwner) HandleEvent(e events.Event, caller any) error {
	o.emitted = append(o.emitted, e)
	o.callers = append(o.callers, caller)
	return nil
}

func (o *recordingOwner) SetLayer(layer int) { o.layer = layer }

func (o *recordingOwner) count(e events.Event) int {
	n := 0
	for _, got := range o.emitted {
		if got == e {
			n++
		}
	}
	return n
}

func mustPath(t *testing.T, m *Motion, id string, cfg PathConfig) *Path {
	t.Helper()
	p, err := m.NewPath(id, cfg)
	if err != nil {
		t.Fatalf("NewPath failed: %v", err)
	}
	return p
}

func mustWaypoint(t *testing.T, p *Path, col, row int) *Waypoint {
	t.Helper()
	wp, err := p.NewWaypoint(geometry.Coord{Column: col, Row: row}, nil, "")
	if err != nil {
		t.Fatalf("NewWaypoint failed: %v", err)
	}
	return wp
}

func TestStraightPathLandsOnFinalWaypoint(t *testing.T) {
	owner := &recordingOwner{}
	m := New(owner, geometry.Coord{Column: 0, Row: 0})
	p := mustPath(t, m, "walk", PathConfig{Speed: 1})
	mustWaypoint(t, p, 10, 0)

	if err := m.ActivatePath(p); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	if p.MaxSteps() != 10 {
		t.Fatalf("Expected max steps 10, got %d", p.MaxSteps())
	}

	for i := 0; i < 10; i++ {
		if err := m.Move(); err != nil {
			t.Fatalf("Move %d failed: %v", i, err)
		}
	}
	if m.CurrentCoord() != (geometry.Coord{Column: 10, Row: 0}) {
		t.Errorf("Expected (10,0), got %v", m.CurrentCoord())
	}
	if m.ActivePath() != nil {
		t.Errorf("Expected path deactivated after completion")
	}
	if owner.count(events.EventPathComplete) != 1 {
		t.Errorf("Expected 1 PathComplete, got %d", owner.count(events.EventPathComplete))
	}

	// Further moves are no-ops and re-trigger nothing.
	entered := owner.count(events.EventSegmentEntered)
	for i := 0; i < 3; i++ {
		if err := m.Move(); err != nil {
			t.Fatalf("Move after completion failed: %v", err)
		}
	}
	if m.CurrentCoord() != (geometry.Coord{Column: 10, Row: 0}) {
		t.Errorf("Expected coordinate to stay at (10,0), got %v", m.CurrentCoord())
	}
	if owner.count(events.EventSegmentEntered) != entered {
		t.Errorf("SegmentEntered re-fired after completion")
	}
}

func TestSegmentEventsFireOncePerActivation(t *testing.T) {
	owner := &recordingOwner{}
	m := New(owner, geometry.Coord{Column: 0, Row: 0})
	// Speed high enough that one step straddles several segments.
	p := mustPath(t, m, "jump", PathConfig{Speed: 15})
	mustWaypoint(t, p, 10, 0)
	mustWaypoint(t, p, 20, 0)
	mustWaypoint(t, p, 30, 0)

	if err := m.ActivatePath(p); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	for i := 0; i < p.MaxSteps()+2; i++ {
		if err := m.Move(); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
	}

	// Three real segments plus the origin segment, each exited at most
	// once; the final segment is entered but never exited.
	if got := owner.count(events.EventSegmentExited); got > 3 {
		t.Errorf("Expected at most 3 SegmentExited, got %d", got)
	}
	seen := make(map[any]int)
	for i, e := range owner.emitted {
		if e == events.EventSegmentEntered {
			seen[owner.callers[i]]++
		}
	}
	for wp, n := range seen {
		if n != 1 {
			t.Errorf("Waypoint %v entered %d times, expected 1", wp, n)
		}
	}
	if m.CurrentCoord() != (geometry.Coord{Column: 30, Row: 0}) {
		t.Errorf("Expected (30,0), got %v", m.CurrentCoord())
	}
}

func TestReactivationRecomputesOriginSegment(t *testing.T) {
	owner := &recordingOwner{}
	m := New(owner, geometry.Coord{Column: 0, Row: 0})
	p := mustPath(t, m, "route", PathConfig{Speed: 1})
	mustWaypoint(t, p, 10, 0)
	mustWaypoint(t, p, 20, 0)

	if err := m.ActivatePath(p); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	if p.MaxSteps() != 20 {
		t.Fatalf("Expected max steps 20, got %d", p.MaxSteps())
	}
	interWaypointDistance := p.Segments()[1].Distance

	// Reactivate from a closer position: only the origin segment changes.
	m.SetCoordinate(geometry.Coord{Column: 5, Row: 0})
	if err := m.ActivatePath(p); err != nil {
		t.Fatalf("Reactivation failed: %v", err)
	}
	if p.MaxSteps() != 15 {
		t.Errorf("Expected max steps 15 after reactivation, got %d", p.MaxSteps())
	}
	if p.Segments()[1].Distance != interWaypointDistance {
		t.Errorf("Non-origin segment distance changed on reactivation")
	}
	if len(p.Segments()) != 2 {
		t.Errorf("Expected 2 segments, got %d (stale origin segment kept?)", len(p.Segments()))
	}
	if p.CurrentStep() != 0 {
		t.Errorf("Expected current step reset, got %d", p.CurrentStep())
	}
}

func TestHoldTimeDelaysCompletion(t *testing.T) {
	owner := &recordingOwner{}
	m := New(owner, geometry.Coord{Column: 0, Row: 0})
	p := mustPath(t, m, "pause", PathConfig{Speed: 1, HoldTime: 2})
	mustWaypoint(t, p, 3, 0)

	if err := m.ActivatePath(p); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}

	// 3 steps to arrive, then the hold consumes ticks before completion.
	for i := 0; i < 3; i++ {
		if err := m.Move(); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
	}
	if owner.count(events.EventPathHolding) != 1 {
		t.Fatalf("Expected PathHolding after arrival, got %d", owner.count(events.EventPathHolding))
	}
	if owner.count(events.EventPathComplete) != 0 {
		t.Fatalf("Path completed during hold")
	}
	if err := m.Move(); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if owner.count(events.EventPathComplete) != 0 {
		t.Fatalf("Path completed before hold expired")
	}
	if err := m.Move(); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if owner.count(events.EventPathComplete) != 1 {
		t.Errorf("Expected completion after hold, got %d", owner.count(events.EventPathComplete))
	}
	if owner.count(events.EventPathHolding) != 1 {
		t.Errorf("PathHolding fired more than once")
	}
}

func TestLoopReactivatesFromFinalCoordinate(t *testing.T) {
	owner := &recordingOwner{}
	m := New(owner, geometry.Coord{Column: 0, Row: 0})
	p := mustPath(t, m, "cycle", PathConfig{Speed: 1, Loop: true})
	mustWaypoint(t, p, 5, 0)
	mustWaypoint(t, p, 10, 0)

	if err := m.ActivatePath(p); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := m.Move(); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
	}

	// The loop reactivated from (10,0): origin segment now spans back to
	// the first waypoint at (5,0), so total distance is 5+5.
	if m.ActivePath() != p {
		t.Fatalf("Expected path still active after loop")
	}
	if owner.count(events.EventPathComplete) != 0 {
		t.Errorf("Looping path emitted PathComplete")
	}
	if owner.count(events.EventPathActivated) != 2 {
		t.Errorf("Expected 2 PathActivated (initial + loop), got %d", owner.count(events.EventPathActivated))
	}
	if p.MaxSteps() != 10 {
		t.Errorf("Expected max steps 10 after loop reactivation, got %d", p.MaxSteps())
	}
}

func TestEasedPathEndsOnFinalWaypoint(t *testing.T) {
	owner := &recordingOwner{}
	m := New(owner, geometry.Coord{Column: 0, Row: 0})
	p := mustPath(t, m, "eased", PathConfig{Speed: 1, Ease: easing.InOutCubic})
	mustWaypoint(t, p, 12, 0)

	if err := m.ActivatePath(p); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	for i := 0; i < p.MaxSteps(); i++ {
		if err := m.Move(); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
	}
	if m.CurrentCoord() != (geometry.Coord{Column: 12, Row: 0}) {
		t.Errorf("Expected eased path to land on (12,0), got %v", m.CurrentCoord())
	}
}

func TestPathAppliesTargetLayer(t *testing.T) {
	owner := &recordingOwner{}
	m := New(owner, geometry.Coord{Column: 0, Row: 0})
	layer := 3
	p := mustPath(t, m, "l", PathConfig{Speed: 1, Layer: &layer})
	mustWaypoint(t, p, 2, 0)

	if err := m.ActivatePath(p); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	if owner.layer != 3 {
		t.Errorf("Expected layer 3 applied on activation, got %d", owner.layer)
	}
}

func TestBezierWaypointCurves(t *testing.T) {
	owner := &recordingOwner{}
	m := New(owner, geometry.Coord{Column: 0, Row: 0})
	p := mustPath(t, m, "curve", PathConfig{Speed: 1})
	if _, err := p.NewWaypoint(geometry.Coord{Column: 20, Row: 0}, []geometry.Coord{{Column: 10, Row: 10}}, ""); err != nil {
		t.Fatalf("NewWaypoint failed: %v", err)
	}

	if err := m.ActivatePath(p); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	if p.TotalDistance() <= 20 {
		t.Errorf("Expected bezier arc length > chord 20, got %v", p.TotalDistance())
	}
	sawDetour := false
	for i := 0; i < p.MaxSteps(); i++ {
		if err := m.Move(); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if m.CurrentCoord().Row > 0 {
			sawDetour = true
		}
	}
	if !sawDetour {
		t.Errorf("Expected curved traversal to leave row 0")
	}
	if m.CurrentCoord() != (geometry.Coord{Column: 20, Row: 0}) {
		t.Errorf("Expected (20,0), got %v", m.CurrentCoord())
	}
}

func TestConstructionAndLookupErrors(t *testing.T) {
	owner := &recordingOwner{}
	m := New(owner, geometry.Coord{})

	if _, err := m.NewPath("bad", PathConfig{Speed: 0}); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("Expected ErrInvalidSpeed, got %v", err)
	}

	p := mustPath(t, m, "p", PathConfig{Speed: 1})
	if _, err := m.NewPath("p", PathConfig{Speed: 1}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID for path, got %v", err)
	}
	if _, err := m.Path("missing"); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Expected ErrUnknownID for path lookup, got %v", err)
	}

	if _, err := p.NewWaypoint(geometry.Coord{}, nil, "wp"); err != nil {
		t.Fatalf("NewWaypoint failed: %v", err)
	}
	if _, err := p.NewWaypoint(geometry.Coord{}, nil, "wp"); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID for waypoint, got %v", err)
	}
	if _, err := p.Waypoint("missing"); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Expected ErrUnknownID for waypoint lookup, got %v", err)
	}

	empty := mustPath(t, m, "empty", PathConfig{Speed: 1})
	if err := m.ActivatePath(empty); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("Expected ErrEmptyPath, got %v", err)
	}
}

func TestAutoWaypointIDsSkipTakenIDs(t *testing.T) {
	owner := &recordingOwner{}
	m := New(owner, geometry.Coord{})
	p := mustPath(t, m, "p", PathConfig{Speed: 1})

	if _, err := p.NewWaypoint(geometry.Coord{}, nil, "0"); err != nil {
		t.Fatalf("NewWaypoint failed: %v", err)
	}
	wp, err := p.NewWaypoint(geometry.Coord{Column: 1}, nil, "")
	if err != nil {
		t.Fatalf("NewWaypoint failed: %v", err)
	}
	if wp.ID != "1" {
		t.Errorf("Expected auto id to skip taken \"0\", got %q", wp.ID)
	}
}

package engine

import (
	"errors"
	"testing"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/events"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/geometry"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/motion"
)

func newTestEntity(t *testing.T) *Entity {
	t.Helper()
	return NewEntity(0, 'a', geometry.Coord{Column: 0, Row: 0})
}

func addPath(t *testing.T, e *Entity, id string, speed float64, cols ...int) *motion.Path {
	t.Helper()
	p, err := e.Motion.NewPath(id, motion.PathConfig{Speed: speed})
	if err != nil {
		t.Fatalf("NewPath failed: %v", err)
	}
	for _, col := range cols {
		if _, err := p.NewWaypoint(geometry.Coord{Column: col, Row: 0}, nil, ""); err != nil {
			t.Fatalf("NewWaypoint failed: %v", err)
		}
	}
	return p
}

func TestPathCompleteActivatesNextPath(t *testing.T) {
	e := newTestEntity(t)
	pathA := addPath(t, e, "a", 1, 5)
	pathB := addPath(t, e, "b", 1, 10)

	err := e.EventHandler.RegisterEvent(events.EventPathComplete, pathA, events.ActionActivatePath, PathTarget(pathB))
	if err != nil {
		t.Fatalf("RegisterEvent failed: %v", err)
	}
	if err := e.Motion.ActivatePath(pathA); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := e.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	if e.Motion.ActivePath() != pathB {
		t.Errorf("Expected pathB active immediately after pathA completes")
	}
}

func TestChainPaths(t *testing.T) {
	e := newTestEntity(t)
	p1 := addPath(t, e, "p1", 1, 3)
	p2 := addPath(t, e, "p2", 1, 6)
	p3 := addPath(t, e, "p3", 1, 9)

	if err := e.ChainPaths([]*motion.Path{p1, p2, p3}, false); err != nil {
		t.Fatalf("ChainPaths failed: %v", err)
	}
	if err := e.Motion.ActivatePath(p1); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}

	// p1 ends at 3, p2 at 6, p3 at 9, one cell per tick.
	for i := 0; i < 8; i++ {
		if err := e.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	if e.Motion.ActivePath() != p3 {
		t.Errorf("Expected chain to reach p3 after 8 ticks")
	}
	if err := e.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if e.Motion.ActivePath() != nil {
		t.Errorf("Expected chain exhausted after 9 ticks")
	}
	if e.Motion.CurrentCoord() != (geometry.Coord{Column: 9, Row: 0}) {
		t.Errorf("Expected (9,0), got %v", e.Motion.CurrentCoord())
	}
}

func TestPathCompleteActivatesScene(t *testing.T) {
	e := newTestEntity(t)
	path := addPath(t, e, "walk", 1, 2)
	scene, err := e.Animation.NewScene("done", graphics.SceneConfig{})
	if err != nil {
		t.Fatalf("NewScene failed: %v", err)
	}
	if err := scene.AddFrame(graphics.Visual('*'), 2); err != nil {
		t.Fatalf("AddFrame failed: %v", err)
	}

	err = e.EventHandler.RegisterEvent(events.EventPathComplete, path, events.ActionActivateScene, SceneTarget(scene))
	if err != nil {
		t.Fatalf("RegisterEvent failed: %v", err)
	}
	if err := e.Motion.ActivatePath(path); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}

	// Tick 2 completes the path; the activated scene's first frame is
	// applied within the same tick.
	for i := 0; i < 2; i++ {
		if err := e.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	if e.Animation.CurrentVisual().Symbol != '*' {
		t.Errorf("Expected scene visual applied same tick, got %q", e.Animation.CurrentVisual().Symbol)
	}
}

func TestSetLayerAndSetCoordinateActions(t *testing.T) {
	e := newTestEntity(t)
	path := addPath(t, e, "walk", 1, 2)

	err := e.EventHandler.RegisterEvent(events.EventPathComplete, path, events.ActionSetLayer, LayerTarget(5))
	if err != nil {
		t.Fatalf("RegisterEvent failed: %v", err)
	}
	err = e.EventHandler.RegisterEvent(events.EventPathComplete, path, events.ActionSetCoordinate, CoordTarget(geometry.Coord{Column: 40, Row: 7}))
	if err != nil {
		t.Fatalf("RegisterEvent failed: %v", err)
	}

	if err := e.Motion.ActivatePath(path); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := e.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	if e.Layer != 5 {
		t.Errorf("Expected layer 5, got %d", e.Layer)
	}
	if e.Motion.CurrentCoord() != (geometry.Coord{Column: 40, Row: 7}) {
		t.Errorf("Expected forced coordinate (40,7), got %v", e.Motion.CurrentCoord())
	}
}

func TestCallbackReceivesEntityAndArgs(t *testing.T) {
	e := newTestEntity(t)
	path := addPath(t, e, "walk", 1, 1)

	var gotEntity *Entity
	var gotArgs []any
	cb := Callback{
		Fn: func(entity *Entity, args ...any) error {
			gotEntity = entity
			gotArgs = args
			return nil
		},
		Args: []any{"extra", 42},
	}
	err := e.EventHandler.RegisterEvent(events.EventPathComplete, path, events.ActionCallback, CallbackTarget(cb))
	if err != nil {
		t.Fatalf("RegisterEvent failed: %v", err)
	}

	if err := e.Motion.ActivatePath(path); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	if err := e.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if gotEntity != e {
		t.Errorf("Expected callback to receive the entity")
	}
	if len(gotArgs) != 2 || gotArgs[0] != "extra" || gotArgs[1] != 42 {
		t.Errorf("Expected bound args [extra 42], got %v", gotArgs)
	}
}

func TestMultipleActionsFireInRegistrationOrder(t *testing.T) {
	e := newTestEntity(t)
	path := addPath(t, e, "walk", 1, 1)

	var order []string
	record := func(tag string) Callback {
		return Callback{Fn: func(*Entity, ...any) error {
			order = append(order, tag)
			return nil
		}}
	}
	for _, tag := range []string{"first", "second", "third"} {
		err := e.EventHandler.RegisterEvent(events.EventPathComplete, path, events.ActionCallback, CallbackTarget(record(tag)))
		if err != nil {
			t.Fatalf("RegisterEvent failed: %v", err)
		}
	}

	if err := e.Motion.ActivatePath(path); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	if err := e.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(order) != 3 {
		t.Fatalf("Expected 3 callbacks, got %d", len(order))
	}
	for i, tag := range want {
		if order[i] != tag {
			t.Errorf("Position %d: expected %s, got %s", i, tag, order[i])
		}
	}
}

func TestRegistrationValidation(t *testing.T) {
	e := newTestEntity(t)
	path := addPath(t, e, "walk", 1, 1)
	scene, _ := e.Animation.NewScene("s", graphics.SceneConfig{})

	// Scene caller on a path event.
	err := e.EventHandler.RegisterEvent(events.EventPathComplete, scene, events.ActionActivatePath, PathTarget(path))
	if !errors.Is(err, ErrInvalidCaller) {
		t.Errorf("Expected ErrInvalidCaller, got %v", err)
	}

	// Layer target on a path action.
	err = e.EventHandler.RegisterEvent(events.EventPathComplete, path, events.ActionActivatePath, LayerTarget(1))
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Expected ErrInvalidTarget, got %v", err)
	}

	// Zero target is invalid for every action.
	err = e.EventHandler.RegisterEvent(events.EventPathComplete, path, events.ActionSetLayer, Target{})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Expected ErrInvalidTarget for zero target, got %v", err)
	}
}

func TestSegmentEventRegistration(t *testing.T) {
	e := newTestEntity(t)
	path := addPath(t, e, "walk", 1, 5, 10)
	waypoints := path.Waypoints()

	hit := 0
	cb := Callback{Fn: func(*Entity, ...any) error { hit++; return nil }}
	err := e.EventHandler.RegisterEvent(events.EventSegmentEntered, waypoints[0], events.ActionCallback, CallbackTarget(cb))
	if err != nil {
		t.Fatalf("RegisterEvent failed: %v", err)
	}

	if err := e.Motion.ActivatePath(path); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := e.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	if hit != 1 {
		t.Errorf("Expected segment-entered callback once, got %d", hit)
	}
}

func TestEntityActivity(t *testing.T) {
	e := newTestEntity(t)
	if e.IsActive() {
		t.Errorf("Fresh entity with no path or scene must be inactive")
	}

	path := addPath(t, e, "walk", 1, 3)
	if err := e.Motion.ActivatePath(path); err != nil {
		t.Fatalf("ActivatePath failed: %v", err)
	}
	if !e.IsActive() {
		t.Errorf("Entity with active path must be active")
	}
	for i := 0; i < 3; i++ {
		if err := e.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	if e.IsActive() {
		t.Errorf("Entity must be inactive after path completes with no scene")
	}
}

func TestVisibility(t *testing.T) {
	e := newTestEntity(t)
	if e.IsVisible() {
		t.Errorf("Entities start invisible")
	}
	e.SetVisible(true)
	if !e.IsVisible() {
		t.Errorf("SetVisible(true) did not take")
	}
}

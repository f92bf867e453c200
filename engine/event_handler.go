package engine

import (
	"errors"
	"fmt"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/events"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/geometry"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/motion"
)

var (
	// ErrInvalidCaller reports a registration whose caller type does not
	// match the event.
	ErrInvalidCaller = errors.New("invalid caller type for event")
	// ErrInvalidTarget reports a registration whose target does not match
	// the action.
	ErrInvalidTarget = errors.New("invalid target for action")
)

// Callback is the command object invoked by ActionCallback. The entity is
// passed first, followed by the arguments bound at registration.
type Callback struct {
	Fn   func(entity *Entity, args ...any) error
	Args []any
}

type targetKind int

const (
	targetNone targetKind = iota
	targetPath
	targetScene
	targetLayer
	targetCoord
	targetCallback
)

// Target is the tagged union of action payloads. Build one with
// PathTarget, SceneTarget, LayerTarget, CoordTarget, or CallbackTarget;
// the zero Target is invalid for every action.
type Target struct {
	kind     targetKind
	path     *motion.Path
	scene    *graphics.Scene
	layer    int
	coord    geometry.Coord
	callback Callback
}

func PathTarget(p *motion.Path) Target { return Target{kind: targetPath, path: p} }

func SceneTarget(s *graphics.Scene) Target { return Target{kind: targetScene, scene: s} }

func LayerTarget(layer int) Target { return Target{kind: targetLayer, layer: layer} }

func CoordTarget(c geometry.Coord) Target { return Target{kind: targetCoord, coord: c} }

func CallbackTarget(cb Callback) Target { return Target{kind: targetCallback, callback: cb} }

// registrationKey identifies one (event, caller) registration slot.
// Callers are compared by identity.
type registrationKey struct {
	event  events.Event
	caller any
}

type registeredAction struct {
	action events.Action
	target Target
}

// EventHandler is the per-entity registration table coupling motion and
// animation. Multiple actions registered against the same (event, caller)
// key accumulate and fire in registration order. Dispatch is synchronous
// and may cascade: an action's side effects can emit further events
// before the original HandleEvent returns. There is no cycle detection.
type EventHandler struct {
	entity        *Entity
	registrations map[registrationKey][]registeredAction
}

// NewEventHandler creates an empty handler for entity.
func NewEventHandler(entity *Entity) *EventHandler {
	return &EventHandler{
		entity:        entity,
		registrations: make(map[registrationKey][]registeredAction),
	}
}

// validCaller reports whether caller's type is allowed for event.
func validCaller(event events.Event, caller any) bool {
	switch event {
	case events.EventSegmentEntered, events.EventSegmentExited:
		_, ok := caller.(*motion.Waypoint)
		return ok
	case events.EventPathActivated, events.EventPathHolding, events.EventPathComplete:
		_, ok := caller.(*motion.Path)
		return ok
	case events.EventSceneActivated, events.EventSceneComplete:
		_, ok := caller.(*graphics.Scene)
		return ok
	default:
		return false
	}
}

// requiredKind returns the target kind action dispatches against.
func requiredKind(action events.Action) targetKind {
	switch action {
	case events.ActionActivatePath, events.ActionDeactivatePath:
		return targetPath
	case events.ActionActivateScene, events.ActionDeactivateScene:
		return targetScene
	case events.ActionSetLayer:
		return targetLayer
	case events.ActionSetCoordinate:
		return targetCoord
	case events.ActionCallback:
		return targetCallback
	default:
		return targetNone
	}
}

// RegisterEvent appends (action, target) to the registration list for
// (event, caller). Caller/event and action/target mismatches fail here,
// not at dispatch time.
func (h *EventHandler) RegisterEvent(event events.Event, caller any, action events.Action, target Target) error {
	if !validCaller(event, caller) {
		return fmt.Errorf("%s caller %T: %w", event, caller, ErrInvalidCaller)
	}
	if target.kind != requiredKind(action) {
		return fmt.Errorf("%s: %w", action, ErrInvalidTarget)
	}
	key := registrationKey{event: event, caller: caller}
	h.registrations[key] = append(h.registrations[key], registeredAction{action: action, target: target})
	return nil
}

// HandleEvent fires every action registered for (event, caller) in
// registration order. Unregistered keys are a no-op.
func (h *EventHandler) HandleEvent(event events.Event, caller any) error {
	key := registrationKey{event: event, caller: caller}
	actions, ok := h.registrations[key]
	if !ok {
		return nil
	}
	for _, reg := range actions {
		if err := h.dispatch(reg); err != nil {
			return err
		}
	}
	return nil
}

func (h *EventHandler) dispatch(reg registeredAction) error {
	switch reg.action {
	case events.ActionActivatePath:
		return h.entity.Motion.ActivatePath(reg.target.path)
	case events.ActionDeactivatePath:
		h.entity.Motion.DeactivatePath(reg.target.path)
	case events.ActionActivateScene:
		return h.entity.Animation.ActivateScene(reg.target.scene)
	case events.ActionDeactivateScene:
		h.entity.Animation.DeactivateScene(reg.target.scene)
	case events.ActionSetLayer:
		h.entity.Layer = reg.target.layer
	case events.ActionSetCoordinate:
		h.entity.Motion.SetCoordinate(reg.target.coord)
	case events.ActionCallback:
		return reg.target.callback.Fn(h.entity, reg.target.callback.Args...)
	}
	return nil
}

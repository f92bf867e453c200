// Package events defines the event and action vocabulary shared by the
// motion and graphics engines and the per-entity event handler. It is a
// leaf package so that motion and graphics can emit events without
// importing the handler that consumes them.
package events

// Event identifies a simulation occurrence emitted during a tick.
type Event int

const (
	// EventSegmentEntered fires the first time a traversal reaches a
	// segment's span, at most once per path activation. Caller: the
	// segment's end Waypoint.
	EventSegmentEntered Event = iota

	// EventSegmentExited fires when a traversal fully passes a segment,
	// at most once per path activation. Caller: the segment's end
	// Waypoint.
	EventSegmentExited

	// EventPathActivated fires when a path becomes the active path.
	// Caller: the Path.
	EventPathActivated

	// EventPathHolding fires on the first tick at the final step of a
	// path with a configured hold time. Caller: the Path.
	EventPathHolding

	// EventPathComplete fires when a non-looping path finishes (after
	// any hold). Caller: the Path.
	EventPathComplete

	// EventSceneActivated fires when a scene becomes the active scene.
	// Caller: the Scene.
	EventSceneActivated

	// EventSceneComplete fires when a scene finishes its frame sequence.
	// Caller: the Scene.
	EventSceneComplete
)

// String returns the event name used in errors and logs.
func (e Event) String() string {
	switch e {
	case EventSegmentEntered:
		return "SegmentEntered"
	case EventSegmentExited:
		return "SegmentExited"
	case EventPathActivated:
		return "PathActivated"
	case EventPathHolding:
		return "PathHolding"
	case EventPathComplete:
		return "PathComplete"
	case EventSceneActivated:
		return "SceneActivated"
	case EventSceneComplete:
		return "SceneComplete"
	default:
		return "UnknownEvent"
	}
}

// Action identifies the reaction an event registration performs.
type Action int

const (
	// ActionActivatePath activates the target path on the entity's motion.
	ActionActivatePath Action = iota

	// ActionDeactivatePath deactivates the target path.
	ActionDeactivatePath

	// ActionActivateScene activates the target scene on the entity's
	// animation.
	ActionActivateScene

	// ActionDeactivateScene deactivates the target scene.
	ActionDeactivateScene

	// ActionSetLayer sets the entity's draw layer to the target integer.
	ActionSetLayer

	// ActionSetCoordinate force-sets the entity's current coordinate,
	// bypassing path interpolation.
	ActionSetCoordinate

	// ActionCallback invokes the target callback with the entity as
	// first argument.
	ActionCallback
)

// String returns the action name used in errors and logs.
func (a Action) String() string {
	switch a {
	case ActionActivatePath:
		return "ActivatePath"
	case ActionDeactivatePath:
		return "DeactivatePath"
	case ActionActivateScene:
		return "ActivateScene"
	case ActionDeactivateScene:
		return "DeactivateScene"
	case ActionSetLayer:
		return "SetLayer"
	case ActionSetCoordinate:
		return "SetCoordinate"
	case ActionCallback:
		return "Callback"
	default:
		return "UnknownAction"
	}
}

// Dispatcher receives events emitted by motion and graphics during a
// tick. Dispatch is synchronous; a handled event's actions may emit
// further events before the original emit returns. A non-nil error aborts
// the current tick and propagates to the driver.
type Dispatcher interface {
	HandleEvent(event Event, caller any) error
}

// NopDispatcher discards all events. Used where no handler is attached.
type NopDispatcher struct{}

func (NopDispatcher) HandleEvent(Event, any) error { return nil }

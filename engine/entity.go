// Package engine composes the motion, graphics, and event layers into the
// simulated entity and supplies the per-entity event handler that couples
// them. An external driver advances every active entity by calling Tick
// once per rendered frame.
package engine

import (
	"github.com/ChrisBuilds/terminaltexteffects-sub001/events"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/geometry"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/graphics"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/motion"
)

// Entity is one simulated glyph: exactly one Motion, one Animation, and
// one EventHandler. InputSymbol and InputCoord are the glyph's home
// appearance and position in the source text, fixed at creation.
type Entity struct {
	ID          int
	InputSymbol rune
	InputCoord  geometry.Coord

	Motion       *motion.Motion
	Animation    *graphics.Animation
	EventHandler *EventHandler

	// Layer orders compositing only; higher layers draw on top.
	Layer   int
	visible bool
}

// NewEntity creates an entity at its input coordinate showing its input
// symbol. Entities start invisible; effects flip visibility when the
// glyph should appear.
func NewEntity(id int, symbol rune, coord geometry.Coord) *Entity {
	e := &Entity{
		ID:          id,
		InputSymbol: symbol,
		InputCoord:  coord,
	}
	e.EventHandler = NewEventHandler(e)
	e.Motion = motion.New(e, coord)
	e.Animation = graphics.New(e, e.Motion, symbol)
	return e
}

// HandleEvent satisfies events.Dispatcher by delegating to the entity's
// event handler.
func (e *Entity) HandleEvent(event events.Event, caller any) error {
	return e.EventHandler.HandleEvent(event, caller)
}

// SetLayer satisfies motion.Owner. Paths carrying a target layer apply it
// here on activation.
func (e *Entity) SetLayer(layer int) { e.Layer = layer }

// IsVisible reports whether the compositor should draw the entity.
func (e *Entity) IsVisible() bool { return e.visible }

// SetVisible flips the compositor visibility flag.
func (e *Entity) SetVisible(v bool) { e.visible = v }

// IsActive reports whether the entity still has simulation work: an
// active path or an unfinished scene.
func (e *Entity) IsActive() bool {
	return !e.Motion.MovementComplete() || !e.Animation.ActiveSceneIsComplete()
}

// Tick advances the entity by one simulation step: motion first, then
// animation. Actions triggered by motion events take effect before the
// animation step, so a path completing and activating a scene in the same
// tick starts that scene immediately.
func (e *Entity) Tick() error {
	if err := e.Motion.Move(); err != nil {
		return err
	}
	return e.Animation.StepAnimation()
}

// ChainPaths registers PathComplete -> ActivatePath across consecutive
// paths. With loop set, the final path's completion reactivates the first.
func (e *Entity) ChainPaths(paths []*motion.Path, loop bool) error {
	for i := 0; i < len(paths)-1; i++ {
		err := e.EventHandler.RegisterEvent(events.EventPathComplete, paths[i], events.ActionActivatePath, PathTarget(paths[i+1]))
		if err != nil {
			return err
		}
	}
	if loop && len(paths) > 1 {
		return e.EventHandler.RegisterEvent(events.EventPathComplete, paths[len(paths)-1], events.ActionActivatePath, PathTarget(paths[0]))
	}
	return nil
}

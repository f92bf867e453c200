// Package motion owns the spatial trajectory of one entity: an ordered
// set of paths, the active traversal, and the entity's current coordinate.
package motion

import (
	"fmt"
	"strconv"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/events"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/geometry"
)

// Owner is the entity-side surface Motion needs: synchronous event
// dispatch plus the draw-layer mutation a path activation may apply.
type Owner interface {
	events.Dispatcher
	SetLayer(layer int)
}

// Motion advances one entity along its active path, one step per tick.
type Motion struct {
	owner Owner

	current  geometry.Coord
	previous geometry.Coord

	paths       map[string]*Path
	activePath  *Path
	pathCounter int
}

// New creates a Motion positioned at start.
func New(owner Owner, start geometry.Coord) *Motion {
	return &Motion{
		owner:    owner,
		current:  start,
		previous: start,
		paths:    make(map[string]*Path),
	}
}

// NewPath creates and registers a path. An empty id is replaced by the
// first unused integer id; an explicit id that is already registered is a
// duplicate-id error.
func (m *Motion) NewPath(id string, cfg PathConfig) (*Path, error) {
	if id == "" {
		for {
			id = strconv.Itoa(m.pathCounter)
			m.pathCounter++
			if _, taken := m.paths[id]; !taken {
				break
			}
		}
	} else if _, taken := m.paths[id]; taken {
		return nil, fmt.Errorf("path %q: %w", id, ErrDuplicateID)
	}

	path, err := NewPath(id, cfg)
	if err != nil {
		return nil, err
	}
	m.paths[id] = path
	return path, nil
}

// Path returns the path registered under id.
func (m *Motion) Path(id string) (*Path, error) {
	path, ok := m.paths[id]
	if !ok {
		return nil, fmt.Errorf("path %q: %w", id, ErrUnknownID)
	}
	return path, nil
}

// ActivePath returns the path currently being traveled, or nil.
func (m *Motion) ActivePath() *Path { return m.activePath }

// CurrentCoord returns the entity's current coordinate.
func (m *Motion) CurrentCoord() geometry.Coord { return m.current }

// PreviousCoord returns the coordinate before the latest move. The
// compositor uses it to clear the entity's last cell.
func (m *Motion) PreviousCoord() geometry.Coord { return m.previous }

// SetCoordinate force-sets the current coordinate, bypassing any active
// path interpolation.
func (m *Motion) SetCoordinate(coord geometry.Coord) {
	m.current = coord
}

// MovementComplete reports whether there is no active traversal left.
func (m *Motion) MovementComplete() bool { return m.activePath == nil }

// ActivatePath makes path the active traversal. The path's origin segment
// is rebuilt from the entity's current coordinate, so travel time always
// reflects the real starting position. Emits PathActivated.
func (m *Motion) ActivatePath(path *Path) error {
	if len(path.waypoints) == 0 {
		return fmt.Errorf("path %q: %w", path.ID, ErrEmptyPath)
	}
	path.activate(m.current)
	m.activePath = path
	if path.Layer != nil {
		m.owner.SetLayer(*path.Layer)
	}
	return m.owner.HandleEvent(events.EventPathActivated, path)
}

// DeactivatePath clears the active path if path is it. No event fires.
func (m *Motion) DeactivatePath(path *Path) {
	if m.activePath == path {
		m.activePath = nil
	}
}

// Move advances the active path by one step and updates the entity's
// coordinate. On reaching the final step it runs the hold countdown, then
// either reactivates a looping path from its final coordinate or
// deactivates and emits PathComplete.
func (m *Motion) Move() error {
	if m.activePath == nil || len(m.activePath.segments) == 0 {
		return nil
	}
	m.previous = m.current
	coord, err := m.activePath.Step(m.owner)
	if err != nil {
		return err
	}
	m.current = coord

	if m.activePath.currentStep < m.activePath.maxSteps {
		return nil
	}

	if m.activePath.HoldTime > 0 {
		if m.activePath.holdTimeRemaining == m.activePath.HoldTime {
			m.activePath.holdTimeRemaining--
			return m.owner.HandleEvent(events.EventPathHolding, m.activePath)
		}
		if m.activePath.holdTimeRemaining > 0 {
			m.activePath.holdTimeRemaining--
			return nil
		}
	}

	if m.activePath.Loop && len(m.activePath.segments) > 1 {
		// Reactivation happens from the final coordinate, not the first
		// waypoint. A path that should truly cycle must route back to its
		// own start.
		looping := m.activePath
		m.DeactivatePath(looping)
		return m.ActivatePath(looping)
	}

	completed := m.activePath
	m.DeactivatePath(completed)
	return m.owner.HandleEvent(events.EventPathComplete, completed)
}

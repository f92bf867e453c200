package graphics

import (
	"errors"
	"fmt"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/easing"
)

var (
	// ErrInvalidDuration reports a non-positive frame duration.
	ErrInvalidDuration = errors.New("frame duration must be greater than zero")
	// ErrDuplicateID reports reuse of an explicit scene id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrUnknownID reports a lookup for a scene id that was never registered.
	ErrUnknownID = errors.New("unknown id")
	// ErrEmptyScene reports activation of a scene with no frames.
	ErrEmptyScene = errors.New("scene has no frames")
)

// SyncMetric ties a scene's frame selection to the active path's progress
// instead of elapsed ticks.
type SyncMetric int

const (
	// SyncNone plays frames by their own durations.
	SyncNone SyncMetric = iota
	// SyncStep selects frames by the active path's step ratio.
	SyncStep
	// SyncDistance selects frames by the active path's consumed distance.
	SyncDistance
)

// SceneConfig carries the construction options for a Scene.
type SceneConfig struct {
	// IsLooping recycles frames indefinitely. A looping scene is always
	// "complete" per the completion predicate yet keeps cycling visuals.
	IsLooping bool
	// Sync ties frame selection to path progress.
	Sync SyncMetric
	// Ease plays the flattened frame sequence through an easing curve.
	Ease easing.Function
}

// Scene is an ordered sequence of timed frames an entity cycles through.
// Frames move to playedFrames as their durations are exhausted and return
// to the replayable pool on reset.
type Scene struct {
	ID        string
	IsLooping bool
	Sync      SyncMetric
	Ease      easing.Function

	frames       []*Frame
	playedFrames []*Frame

	// easedLookup maps a global step index to its frame, one entry per
	// duration tick, enabling O(1) lookup during eased playback.
	easedLookup      []*Frame
	easingTotalSteps int
	easingStep       int
}

// NewScene builds an empty scene. Scenes are normally created through
// Animation.NewScene, which registers them by id.
func NewScene(id string, cfg SceneConfig) *Scene {
	return &Scene{
		ID:        id,
		IsLooping: cfg.IsLooping,
		Sync:      cfg.Sync,
		Ease:      cfg.Ease,
	}
}

// AddFrame appends a visual held for duration ticks.
func (s *Scene) AddFrame(visual CharacterVisual, duration int) error {
	if duration < 1 {
		return fmt.Errorf("scene %q: %w", s.ID, ErrInvalidDuration)
	}
	frame := &Frame{Visual: visual, Duration: duration}
	s.frames = append(s.frames, frame)
	for i := 0; i < duration; i++ {
		s.easedLookup = append(s.easedLookup, frame)
	}
	s.easingTotalSteps += duration
	return nil
}

// FrameCount returns the number of frames not yet fully played.
func (s *Scene) FrameCount() int { return len(s.frames) }

// nextVisual advances plain sequential playback by one tick.
func (s *Scene) nextVisual() CharacterVisual {
	current := s.frames[0]
	visual := current.Visual
	current.ticksElapsed++
	if current.ticksElapsed == current.Duration {
		current.ticksElapsed = 0
		s.playedFrames = append(s.playedFrames, current)
		s.frames = s.frames[1:]
		if s.IsLooping && len(s.frames) == 0 {
			s.frames = s.playedFrames
			s.playedFrames = nil
		}
	}
	return visual
}

// Reset returns every frame to the replayable pool in original order and
// zeroes all play state.
func (s *Scene) Reset() {
	restored := make([]*Frame, 0, len(s.playedFrames)+len(s.frames))
	restored = append(restored, s.playedFrames...)
	restored = append(restored, s.frames...)
	for _, f := range restored {
		f.ticksElapsed = 0
	}
	s.frames = restored
	s.playedFrames = nil
	s.easingStep = 0
}

// activate prepares the scene for playback and returns its first visual.
func (s *Scene) activate() (CharacterVisual, error) {
	if len(s.frames) == 0 {
		if len(s.playedFrames) == 0 {
			return CharacterVisual{}, fmt.Errorf("scene %q: %w", s.ID, ErrEmptyScene)
		}
		s.Reset()
	}
	return s.frames[0].Visual, nil
}

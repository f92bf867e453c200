package graphics

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/events"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/motion"
)

// Animation owns the scene registry and the active scene of one entity,
// and selects the entity's visual each tick. Motion-synced scenes read the
// entity's active path through the motion reference.
type Animation struct {
	owner  events.Dispatcher
	motion *motion.Motion

	scenes       map[string]*Scene
	activeScene  *Scene
	current      CharacterVisual
	sceneCounter int
}

// New creates an Animation showing inputSymbol until a scene activates.
func New(owner events.Dispatcher, m *motion.Motion, inputSymbol rune) *Animation {
	return &Animation{
		owner:   owner,
		motion:  m,
		scenes:  make(map[string]*Scene),
		current: Visual(inputSymbol),
	}
}

// NewScene creates and registers a scene. An empty id is replaced by the
// first unused integer id.
func (a *Animation) NewScene(id string, cfg SceneConfig) (*Scene, error) {
	if id == "" {
		for {
			id = strconv.Itoa(a.sceneCounter)
			a.sceneCounter++
			if _, taken := a.scenes[id]; !taken {
				break
			}
		}
	} else if _, taken := a.scenes[id]; taken {
		return nil, fmt.Errorf("scene %q: %w", id, ErrDuplicateID)
	}
	scene := NewScene(id, cfg)
	a.scenes[id] = scene
	return scene, nil
}

// Scene returns the scene registered under id.
func (a *Animation) Scene(id string) (*Scene, error) {
	scene, ok := a.scenes[id]
	if !ok {
		return nil, fmt.Errorf("scene %q: %w", id, ErrUnknownID)
	}
	return scene, nil
}

// ActiveScene returns the scene currently playing, or nil.
func (a *Animation) ActiveScene() *Scene { return a.activeScene }

// CurrentVisual returns the visual applied by the latest step.
func (a *Animation) CurrentVisual() CharacterVisual { return a.current }

// SetAppearance force-sets the current visual outside scene playback.
func (a *Animation) SetAppearance(visual CharacterVisual) { a.current = visual }

// ActiveSceneIsComplete reports whether animation holds no further work:
// no active scene, an exhausted frame queue, or a looping scene (looping
// scenes are vacuously complete yet keep cycling).
func (a *Animation) ActiveSceneIsComplete() bool {
	if a.activeScene == nil {
		return true
	}
	return len(a.activeScene.frames) == 0 || a.activeScene.IsLooping
}

// ActivateScene makes scene the active scene, immediately applies its
// first frame's visual, and emits SceneActivated.
func (a *Animation) ActivateScene(scene *Scene) error {
	visual, err := scene.activate()
	if err != nil {
		return err
	}
	a.activeScene = scene
	a.current = visual
	return a.owner.HandleEvent(events.EventSceneActivated, scene)
}

// DeactivateScene clears the active scene if scene is it.
func (a *Animation) DeactivateScene(scene *Scene) {
	if a.activeScene == scene {
		a.activeScene = nil
	}
}

// StepAnimation selects and applies this tick's visual. Exactly one of
// three modes applies, in priority order: sync to motion, eased playback,
// plain sequential playback. Completing a non-looping scene resets and
// detaches it; completion always emits SceneComplete with the scene as
// caller.
func (a *Animation) StepAnimation() error {
	scene := a.activeScene
	if scene == nil {
		return nil
	}

	if len(scene.frames) > 0 {
		switch {
		case scene.Sync != SyncNone:
			a.stepSynced(scene)
		case scene.Ease != nil:
			a.stepEased(scene)
		default:
			a.current = scene.nextVisual()
		}
	}

	// A scene already complete before this step still reports completion,
	// so a drained looping scene keeps emitting while it stays active.
	if a.ActiveSceneIsComplete() {
		completed := a.activeScene
		if !completed.IsLooping {
			completed.Reset()
			a.activeScene = nil
		}
		return a.owner.HandleEvent(events.EventSceneComplete, completed)
	}
	return nil
}

// stepSynced maps the active path's progress onto the frame sequence. A
// synced scene cannot outlive its motion: once the path deactivates, the
// scene jumps to its final frame and is forced to completion.
func (a *Animation) stepSynced(scene *Scene) {
	path := a.motion.ActivePath()
	if path == nil {
		a.current = scene.frames[len(scene.frames)-1].Visual
		scene.playedFrames = append(scene.playedFrames, scene.frames...)
		scene.frames = nil
		return
	}

	lastIndex := len(scene.frames) - 1
	progress := 1.0
	switch scene.Sync {
	case SyncStep:
		if path.MaxSteps() > 0 {
			progress = float64(path.CurrentStep()) / float64(path.MaxSteps())
		}
	case SyncDistance:
		if path.TotalDistance() > 0 {
			progress = path.LastDistanceReached() / path.TotalDistance()
		}
	}
	index := int(math.Round(float64(lastIndex) * progress))
	if index < 0 || index > lastIndex {
		index = lastIndex
	}
	a.current = scene.frames[index].Visual
}

// stepEased advances the scene's internal step counter through the easing
// curve and picks the frame from the flattened duration table.
func (a *Animation) stepEased(scene *Scene) {
	factor := scene.Ease(float64(scene.easingStep) / float64(scene.easingTotalSteps))
	index := int(math.Round(factor * float64(scene.easingTotalSteps-1)))
	if index < 0 {
		index = 0
	}
	if index > scene.easingTotalSteps-1 {
		index = scene.easingTotalSteps - 1
	}
	a.current = scene.easedLookup[index].Visual

	scene.easingStep++
	if scene.easingStep == scene.easingTotalSteps {
		if scene.IsLooping {
			scene.easingStep = 0
		} else {
			scene.playedFrames = append(scene.playedFrames, scene.frames...)
			scene.frames = nil
		}
	}
}

// Package viewer switches between the menu and the two scenarios and wires
// gaze selection to those switches.
package viewer

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
	"github.com/milk9111/vrviewer/ecs/entity"
	"github.com/milk9111/vrviewer/ecs/system"
	"github.com/milk9111/vrviewer/scenes"
)

// Session owns everything the viewer mutates: the world, the current state,
// the camera rig and the in-flight asset loads. All methods must be called
// from the render goroutine.
type Session struct {
	cfg Config

	world     *ecs.World
	scheduler *ecs.Scheduler
	gaze      *system.GazeSystem
	scripts   *system.ScriptSystem

	state      State
	token      uint64
	ctx        context.Context
	cancel     context.CancelFunc
	camera     ecs.Entity
	orbit      ecs.Entity
	anchor     ecs.Entity
	presenting bool
	visibility Visibility
	observers  []func(Visibility)

	mu        sync.Mutex
	completed []loadResult

	// inflight counts load goroutines; Close waits for it.
	inflight sync.WaitGroup
}

// NewSession builds the world and the persistent camera rig. The scene is
// empty until the first TransitionTo.
func NewSession(cfg Config) *Session {
	cfg = cfg.withDefaults()
	s := &Session{
		cfg:     cfg,
		world:   ecs.NewWorld(),
		gaze:    system.NewGazeSystem(cfg.DwellThreshold, cfg.Rearm),
		scripts: system.NewScriptSystem(cfg.Scripts),
	}
	s.scheduler = ecs.NewScheduler(
		system.NewHeadSystem(),
		system.NewOrbitSystem(),
		system.NewAnimationSystem(),
		s.scripts,
		s.gaze,
	)
	cam, err := entity.NewCameraRig(s.world, entity.CameraRig{EyeHeight: cfg.EyeHeight, FOV: cfg.FOV})
	if err != nil {
		log.Printf("viewer: camera rig: %v", err)
	}
	s.camera = cam
	return s
}

// OnFrame runs one frame: apply finished loads, run the systems (gaze
// included), then act on any selection the gaze produced.
func (s *Session) OnFrame(dt time.Duration) {
	s.world.Advance(dt)
	s.applyLoads()
	s.scheduler.Update(s.world)
	s.dispatchSelections()
}

// SetPresenting switches between desktop and immersive presentation.
func (s *Session) SetPresenting(presenting bool) {
	s.presenting = presenting
	head, _ := ecs.Get(s.world, s.camera, component.HeadComponent)
	head.Presenting = presenting
	_ = ecs.Add(s.world, s.camera, component.HeadComponent, head)
	s.resetGaze()
	s.resetPanelScales()
	s.reconcile()
}

// Resize updates the camera aspect for a new surface size.
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c, _ := ecs.Get(s.world, s.camera, component.CameraComponent)
	c.Aspect = float64(width) / float64(height)
	_ = ecs.Add(s.world, s.camera, component.CameraComponent, c)
}

// OnVisibility registers fn to be called whenever the visibility is
// recomputed.
func (s *Session) OnVisibility(fn func(Visibility)) {
	if fn == nil {
		return
	}
	s.observers = append(s.observers, fn)
}

// Reload rebuilds the current state, recompiling scripts.
func (s *Session) Reload() {
	s.scripts.Forget()
	s.TransitionTo(s.state)
}

// Close cancels in-flight loads and waits for their goroutines to return.
// Results that arrive after Close are dropped.
func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.token++
	s.inflight.Wait()
}

func (s *Session) World() *ecs.World        { return s.world }
func (s *Session) State() State             { return s.state }
func (s *Session) Camera() ecs.Entity       { return s.camera }
func (s *Session) Presenting() bool         { return s.presenting }
func (s *Session) Visibility() Visibility   { return s.visibility }
func (s *Session) Config() Config           { return s.cfg }
func (s *Session) DwellProgress() float64   { return s.gaze.Progress(s.world) }
func (s *Session) Gaze() *system.GazeSystem { return s.gaze }

// Panels returns the live collection in display order.
func (s *Session) Panels() []component.Panel {
	var out []component.Panel
	for _, e := range s.world.Query(component.InteractableComponent.ID(), component.PanelComponent.ID()) {
		p, _ := ecs.Get(s.world, e, component.PanelComponent)
		out = append(out, p)
	}
	sortPanels(out)
	return out
}

// OrbitTarget returns the current orbit binding's target, if any.
func (s *Session) OrbitTarget() (mgl64.Vec3, float64, bool) {
	oc, ok := ecs.Get(s.world, s.orbit, component.OrbitControlComponent)
	if !ok {
		return mgl64.Vec3{}, 0, false
	}
	return oc.Target, oc.Damping, true
}

func (s *Session) resetGaze() {
	cursor, _ := ecs.Get(s.world, s.camera, component.GazeCursorComponent)
	cursor.Target = 0
	cursor.Dwell = 0
	cursor.Disarmed = false
	_ = ecs.Add(s.world, s.camera, component.GazeCursorComponent, cursor)
}

// disarmGaze latches the cursor after a gaze selection so the panel that
// lands under the same gaze needs a break before it can fire.
func (s *Session) disarmGaze() {
	if s.cfg.Rearm != system.RearmOnGazeBreak {
		return
	}
	cursor, _ := ecs.Get(s.world, s.camera, component.GazeCursorComponent)
	cursor.Disarmed = true
	_ = ecs.Add(s.world, s.camera, component.GazeCursorComponent, cursor)
}

func (s *Session) resetPanelScales() {
	ecs.ForEach(s.world, component.PanelComponent, func(e ecs.Entity, p *component.Panel) {
		t, ok := ecs.Get(s.world, e, component.TransformComponent)
		if !ok {
			return
		}
		t.Scale = mgl64.Vec3{p.BaseScale, p.BaseScale, p.BaseScale}
		_ = ecs.Add(s.world, e, component.TransformComponent, t)
	})
}

// Uses reports whether an edit to path affects the current state: its own
// scenario description or any behaviour script.
func (s *Session) Uses(path string) bool {
	if scenes.IsScriptFile(path) {
		return true
	}
	return scenes.IsSceneFile(path) && filepath.Base(path) == scenarioFile(s.state)
}

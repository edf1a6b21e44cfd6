package viewer

import (
	"context"
	"log"

	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
	"github.com/milk9111/vrviewer/ecs/entity"
	"github.com/milk9111/vrviewer/ecs/system"
	"github.com/milk9111/vrviewer/scenes"
)

// TransitionTo tears down the current content and builds next. Calling it
// with the current state performs a full rebuild. Unknown states are logged
// and ignored.
func (s *Session) TransitionTo(next State) {
	if !next.Valid() {
		log.Printf("viewer: ignoring transition to unknown state %s", next)
		return
	}

	s.state = next
	s.token++
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.ctx, s.cancel = ctx, cancel

	s.releaseContent()
	s.releaseOrbit()
	if err := s.addBaseline(); err != nil {
		log.Printf("viewer: %s: baseline: %v", next, err)
	}

	spec, err := s.cfg.Scenarios(next)
	if err != nil {
		log.Printf("viewer: %s: scenario description: %v", next, err)
	} else {
		s.setup(ctx, spec)
	}

	s.populatePanels(next)
	s.resetGaze()
	s.reconcile()
}

// releaseContent destroys every transient entity: lights, anchor, panels,
// props, models and pending selection requests. The camera rig and the
// orbit binding are left for releaseOrbit.
func (s *Session) releaseContent() {
	for _, e := range s.world.Entities() {
		if e == s.orbit || ecs.Has(s.world, e, component.PersistentComponent) {
			continue
		}
		s.world.DestroyEntity(e)
	}
	s.anchor = ecs.NoEntity
}

func (s *Session) releaseOrbit() {
	if s.orbit.Valid() {
		s.world.DestroyEntity(s.orbit)
	}
	s.orbit = ecs.NoEntity
}

func (s *Session) addBaseline() error {
	if err := entity.NewLights(s.world); err != nil {
		return err
	}
	head, _ := ecs.Get(s.world, s.camera, component.HeadComponent)
	anchor, err := entity.NewPanelAnchor(s.world, head.Standing.Add(s.cfg.AnchorOffset))
	if err != nil {
		return err
	}
	s.anchor = anchor
	return nil
}

// setup applies a scenario description: background, camera pose, orbit
// binding, props, and the asynchronous model loads.
func (s *Session) setup(ctx context.Context, spec *scenes.Scenario) {
	w := s.world

	if _, err := entity.NewBackground(w, spec.Background); err != nil {
		log.Printf("viewer: %s: %v", s.state, err)
	}

	pos := spec.Camera.Position.Vec()
	target := spec.Orbit.Target.Vec()
	t, _ := ecs.Get(w, s.camera, component.TransformComponent)
	t.Position = pos
	_ = ecs.Add(w, s.camera, component.TransformComponent, t)
	c, _ := ecs.Get(w, s.camera, component.CameraComponent)
	c.Yaw, c.Pitch = system.YawPitchTowards(target.Sub(pos))
	_ = ecs.Add(w, s.camera, component.CameraComponent, c)

	s.orbit = w.CreateEntity()
	_ = ecs.Add(w, s.orbit, component.OrbitControlComponent, system.NewOrbitControl(s.camera, pos, target, spec.Orbit.Damping))

	for _, prop := range spec.Props {
		if _, err := entity.NewProp(w, prop); err != nil {
			log.Printf("viewer: %s: %v", s.state, err)
		}
	}

	for _, model := range spec.Models {
		s.issueLoad(ctx, loadRequest{token: s.token, kind: loadModel, spec: model})
	}
}

func (s *Session) reconcile() {
	v := Reconcile(s.presenting, s.state)
	s.visibility = v

	if group, ok := ecs.Get(s.world, s.anchor, component.InteractableGroupComponent); ok {
		group.Visible = v.Interactables
		_ = ecs.Add(s.world, s.anchor, component.InteractableGroupComponent, group)
	}
	ret, _ := ecs.Get(s.world, s.camera, component.ReticleComponent)
	ret.Visible = v.Reticle
	_ = ecs.Add(s.world, s.camera, component.ReticleComponent, ret)

	for _, fn := range s.observers {
		fn(v)
	}
}

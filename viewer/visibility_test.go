package viewer

import (
	"testing"

	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

func TestReconcileIsExclusive(t *testing.T) {
	for _, presenting := range []bool{false, true} {
		for _, st := range States {
			v := Reconcile(presenting, st)
			if v.FlatControls() == v.Interactables {
				t.Fatalf("presenting=%v %s: flat=%v interactables=%v", presenting, st, v.FlatControls(), v.Interactables)
			}
			if v.MenuControls && v.ScenarioControls {
				t.Fatalf("presenting=%v %s: both flat groups visible", presenting, st)
			}
			if v.Reticle != v.Interactables {
				t.Fatalf("presenting=%v %s: reticle must follow the 3D collection", presenting, st)
			}
		}
	}
}

func TestReconcileSwitchTarget(t *testing.T) {
	cases := []struct {
		state      State
		menu       bool
		scenario   bool
		label      string
		switchesTo State
	}{
		{StateMenu, true, false, "", StateMenu},
		{StateScenarioA, false, true, "View Character (critter)", StateScenarioB},
		{StateScenarioB, false, true, "View Scenery (house)", StateScenarioA},
	}
	for _, c := range cases {
		t.Run(c.state.String(), func(t *testing.T) {
			v := Reconcile(false, c.state)
			if v.MenuControls != c.menu || v.ScenarioControls != c.scenario {
				t.Fatalf("unexpected flat controls %+v", v)
			}
			if v.SwitchLabel != c.label || (c.label != "" && v.SwitchTarget != c.switchesTo) {
				t.Fatalf("unexpected switch %q -> %s", v.SwitchLabel, v.SwitchTarget)
			}
		})
	}
}

func TestSessionAppliesVisibility(t *testing.T) {
	s := newTestSession(t, newFakeLoader())
	var seen []Visibility
	s.OnVisibility(func(v Visibility) { seen = append(seen, v) })

	s.TransitionTo(StateMenu)
	group, _ := ecs.Get(s.world, s.anchor, component.InteractableGroupComponent)
	ret, _ := ecs.Get(s.world, s.camera, component.ReticleComponent)
	if group.Visible || ret.Visible {
		t.Fatalf("desktop mode must hide the 3D collection and reticle")
	}

	s.SetPresenting(true)
	group, _ = ecs.Get(s.world, s.anchor, component.InteractableGroupComponent)
	ret, _ = ecs.Get(s.world, s.camera, component.ReticleComponent)
	if !group.Visible || !ret.Visible {
		t.Fatalf("immersive mode must show the 3D collection and reticle")
	}
	if s.Visibility().FlatControls() {
		t.Fatalf("immersive mode must hide the flat controls")
	}

	s.SetPresenting(false)
	if len(seen) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(seen))
	}
	if last := seen[len(seen)-1]; !last.MenuControls || last.Interactables {
		t.Fatalf("unexpected visibility after exit %+v", last)
	}
}

func TestExitResetsHover(t *testing.T) {
	s := newTestSession(t, newFakeLoader())
	s.TransitionTo(StateMenu)
	s.SetPresenting(true)
	s.OnFrame(0)

	hovered := false
	ecs.ForEach(s.world, component.PanelComponent, func(e ecs.Entity, _ *component.Panel) {
		tr, _ := ecs.Get(s.world, e, component.TransformComponent)
		if tr.Scale.X() > 1 {
			hovered = true
		}
	})
	if !hovered {
		t.Fatalf("expected a hovered panel while presenting")
	}

	s.SetPresenting(false)
	ecs.ForEach(s.world, component.PanelComponent, func(e ecs.Entity, _ *component.Panel) {
		tr, _ := ecs.Get(s.world, e, component.TransformComponent)
		if tr.Scale.X() != 1 {
			t.Fatalf("panel left enlarged after exit: %v", tr.Scale)
		}
	})
}

package system

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

type gazeRig struct {
	w      *ecs.World
	cam    ecs.Entity
	anchor ecs.Entity
	top    ecs.Entity
	bottom ecs.Entity
}

// pitch that puts the gaze on the top panel from the standing eye
var pitchTop = math.Atan2(0.3, 2.5)

const pitchAway = 0.6

func newGazeRig(t *testing.T, presenting bool) *gazeRig {
	t.Helper()
	w := ecs.NewWorld()
	cam := w.CreateEntity()
	_ = ecs.Add(w, cam, component.TransformComponent, component.NewTransform(mgl64.Vec3{0, 1.6, 3}))
	_ = ecs.Add(w, cam, component.CameraComponent, component.Camera{FOV: 70, Near: 0.1, Far: 1000, Aspect: 1})
	_ = ecs.Add(w, cam, component.HeadComponent, component.Head{Presenting: presenting, EyeHeight: 1.6})
	_ = ecs.Add(w, cam, component.GazeCursorComponent, component.GazeCursor{})

	anchor := w.CreateEntity()
	_ = ecs.Add(w, anchor, component.TransformComponent, component.NewTransform(mgl64.Vec3{0, 1.6, -2.5}))
	_ = ecs.Add(w, anchor, component.InteractableGroupComponent, component.InteractableGroup{Visible: true})

	mk := func(action component.ActionID, y float64, order int) ecs.Entity {
		e := w.CreateEntity()
		_ = ecs.Add(w, e, component.TransformComponent, component.NewTransform(mgl64.Vec3{0, y, 0}))
		_ = ecs.Add(w, e, component.ParentComponent, component.Parent{Entity: uint64(anchor)})
		_ = ecs.Add(w, e, component.InteractableComponent, component.Interactable{})
		_ = ecs.Add(w, e, component.PanelComponent, component.Panel{
			Text: string(action), Action: action, Width: 1, Height: 0.25,
			BaseScale: 1, HoverScale: 1.2, Order: order,
		})
		return e
	}
	return &gazeRig{
		w:      w,
		cam:    cam,
		anchor: anchor,
		top:    mk(component.ActionGoToScenarioA, 0.3, 0),
		bottom: mk(component.ActionGoToScenarioB, 0, 1),
	}
}

func (r *gazeRig) look(pitch float64) {
	head, _ := ecs.Get(r.w, r.cam, component.HeadComponent)
	head.Pitch = pitch
	_ = ecs.Add(r.w, r.cam, component.HeadComponent, head)
}

// step runs one frame and returns (and consumes) the selections it emitted.
func (r *gazeRig) step(g *GazeSystem, dt time.Duration) []component.SelectionRequest {
	r.w.Advance(dt)
	g.Update(r.w)
	var out []component.SelectionRequest
	for _, e := range r.w.Query(component.SelectionRequestComponent.ID()) {
		req, _ := ecs.Get(r.w, e, component.SelectionRequestComponent)
		out = append(out, req)
		r.w.DestroyEntity(e)
	}
	return out
}

func (r *gazeRig) cursor() component.GazeCursor {
	c, _ := ecs.Get(r.w, r.cam, component.GazeCursorComponent)
	return c
}

func (r *gazeRig) scale(e ecs.Entity) float64 {
	t, _ := ecs.Get(r.w, e, component.TransformComponent)
	return t.Scale.X()
}

func TestRaycastPicksPanelUnderGaze(t *testing.T) {
	cases := []struct {
		name  string
		pitch float64
		want  func(r *gazeRig) ecs.Entity
	}{
		{"straight_ahead_hits_bottom", 0, func(r *gazeRig) ecs.Entity { return r.bottom }},
		{"raised_hits_top", pitchTop, func(r *gazeRig) ecs.Entity { return r.top }},
		{"gap_between_panels_misses", math.Atan2(0.15, 2.5), func(*gazeRig) ecs.Entity { return ecs.NoEntity }},
		{"looking_up_misses", pitchAway, func(*gazeRig) ecs.Entity { return ecs.NoEntity }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newGazeRig(t, true)
			hit, dist := Raycast(r.w, mgl64.Vec3{0, 1.6, 0}, Forward(0, c.pitch))
			if hit != c.want(r) {
				t.Fatalf("expected hit %v, got %v", c.want(r), hit)
			}
			if hit.Valid() && dist < 2.5 {
				t.Fatalf("distance %.3f is shorter than the anchor depth", dist)
			}
		})
	}
}

func TestRaycastPrefersNearestPanel(t *testing.T) {
	r := newGazeRig(t, true)
	near := r.w.CreateEntity()
	_ = ecs.Add(r.w, near, component.TransformComponent, component.NewTransform(mgl64.Vec3{0, 1.6, -1}))
	_ = ecs.Add(r.w, near, component.InteractableComponent, component.Interactable{})
	_ = ecs.Add(r.w, near, component.PanelComponent, component.Panel{Width: 1, Height: 0.25, BaseScale: 1})

	hit, dist := Raycast(r.w, mgl64.Vec3{0, 1.6, 0}, Forward(0, 0))
	if hit != near {
		t.Fatalf("expected nearer panel, got %v", hit)
	}
	if math.Abs(dist-1) > 1e-9 {
		t.Fatalf("expected distance 1, got %v", dist)
	}
}

func TestGazeIgnoredWhenNotPresenting(t *testing.T) {
	r := newGazeRig(t, false)
	g := NewGazeSystem(DefaultDwellThreshold, RearmContinuous)
	for i := 0; i < 10; i++ {
		if got := r.step(g, time.Second); len(got) != 0 {
			t.Fatalf("desktop mode must not select, got %v", got)
		}
	}
	if r.cursor().Target != 0 || r.scale(r.bottom) != 1 {
		t.Fatalf("desktop mode must not touch gaze state")
	}
}

func TestDwellFiresOnceAtThreshold(t *testing.T) {
	r := newGazeRig(t, true)
	g := NewGazeSystem(1500*time.Millisecond, RearmContinuous)

	deltas := []time.Duration{400 * time.Millisecond, 600 * time.Millisecond, 300 * time.Millisecond, 200 * time.Millisecond}
	fired := -1
	for i, dt := range deltas {
		got := r.step(g, dt)
		switch {
		case len(got) == 1 && fired < 0:
			fired = i
			if got[0].Action != component.ActionGoToScenarioB || got[0].Panel != uint64(r.bottom) {
				t.Fatalf("unexpected selection %+v", got[0])
			}
		case len(got) != 0:
			t.Fatalf("frame %d: unexpected extra selection %v", i, got)
		}
	}
	if fired != len(deltas)-1 {
		t.Fatalf("expected selection on frame %d, got %d", len(deltas)-1, fired)
	}
	if r.cursor().Dwell != 0 {
		t.Fatalf("dwell must reset after selection, got %v", r.cursor().Dwell)
	}
}

func TestDwellResetsOnTargetChange(t *testing.T) {
	r := newGazeRig(t, true)
	g := NewGazeSystem(1500*time.Millisecond, RearmContinuous)

	r.look(pitchTop)
	r.step(g, 500*time.Millisecond)
	r.step(g, 500*time.Millisecond)
	if c := r.cursor(); c.Target != uint64(r.top) || c.Dwell != time.Second {
		t.Fatalf("expected 1s on top, got %+v", c)
	}

	r.look(0)
	r.step(g, 100*time.Millisecond)
	if c := r.cursor(); c.Target != uint64(r.bottom) || c.Dwell != 100*time.Millisecond {
		t.Fatalf("dwell must restart on the new target, got %+v", c)
	}
	if got := r.step(g, 1300*time.Millisecond); len(got) != 0 {
		t.Fatalf("carried-over dwell fired early: %v", got)
	}
	if got := r.step(g, 100*time.Millisecond); len(got) != 1 {
		t.Fatalf("expected selection at 1.5s on bottom, got %v", got)
	}
}

func TestRearmPolicies(t *testing.T) {
	cases := []struct {
		policy RearmPolicy
		want   int
	}{
		{RearmContinuous, 3},
		{RearmOnGazeBreak, 1},
	}
	for _, c := range cases {
		t.Run(c.policy.String(), func(t *testing.T) {
			r := newGazeRig(t, true)
			g := NewGazeSystem(1500*time.Millisecond, c.policy)
			total := 0
			// 3x the threshold in 100ms frames without moving
			for i := 0; i < 45; i++ {
				total += len(r.step(g, 100*time.Millisecond))
			}
			if total != c.want {
				t.Fatalf("expected %d selections, got %d", c.want, total)
			}
		})
	}
}

func TestGazeBreakRearms(t *testing.T) {
	r := newGazeRig(t, true)
	g := NewGazeSystem(time.Second, RearmOnGazeBreak)

	if got := r.step(g, time.Second); len(got) != 1 {
		t.Fatalf("expected first selection, got %v", got)
	}
	if got := r.step(g, 2*time.Second); len(got) != 0 {
		t.Fatalf("disarmed gaze must not select, got %v", got)
	}
	if c := r.cursor(); !c.Disarmed || c.Target != uint64(r.bottom) {
		t.Fatalf("expected disarmed hover on bottom, got %+v", c)
	}

	r.look(pitchAway)
	r.step(g, 100*time.Millisecond)
	if r.cursor().Disarmed {
		t.Fatalf("looking at nothing must re-arm")
	}

	r.look(0)
	if got := r.step(g, time.Second); len(got) != 1 {
		t.Fatalf("expected selection after gaze break, got %v", got)
	}
}

func TestHoverEmphasisFollowsGaze(t *testing.T) {
	r := newGazeRig(t, true)
	g := NewGazeSystem(10*time.Second, RearmContinuous)

	r.step(g, 16*time.Millisecond)
	if r.scale(r.bottom) != 1.2 || r.scale(r.top) != 1 {
		t.Fatalf("expected bottom emphasised, got bottom=%v top=%v", r.scale(r.bottom), r.scale(r.top))
	}

	r.look(pitchTop)
	r.step(g, 16*time.Millisecond)
	if r.scale(r.top) != 1.2 || r.scale(r.bottom) != 1 {
		t.Fatalf("emphasis must move with gaze, got bottom=%v top=%v", r.scale(r.bottom), r.scale(r.top))
	}

	r.look(pitchAway)
	r.step(g, 16*time.Millisecond)
	if r.scale(r.top) != 1 || r.scale(r.bottom) != 1 {
		t.Fatalf("no panel may stay enlarged after hover ends")
	}
}

func TestIdleGazeNeverSelects(t *testing.T) {
	r := newGazeRig(t, true)
	r.look(pitchAway)
	g := NewGazeSystem(DefaultDwellThreshold, RearmContinuous)
	for i := 0; i < 600; i++ {
		if got := r.step(g, 16*time.Millisecond); len(got) != 0 {
			t.Fatalf("idle gaze selected %v", got)
		}
		if r.scale(r.top) != 1 || r.scale(r.bottom) != 1 {
			t.Fatalf("idle gaze changed a panel scale on frame %d", i)
		}
	}
	if g.Progress(r.w) != 0 {
		t.Fatalf("idle gaze must report no progress")
	}
}

func TestHiddenGroupIsNotHit(t *testing.T) {
	r := newGazeRig(t, true)
	_ = ecs.Add(r.w, r.anchor, component.InteractableGroupComponent, component.InteractableGroup{Visible: false})
	if hit, _ := Raycast(r.w, mgl64.Vec3{0, 1.6, 0}, Forward(0, 0)); hit.Valid() {
		t.Fatalf("hidden collection must not be hit, got %v", hit)
	}
}

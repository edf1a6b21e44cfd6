package system

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

// DefaultDwellThreshold is how long the gaze must rest on a panel to select it.
const DefaultDwellThreshold = 1500 * time.Millisecond

// DefaultHoverScale is the emphasis applied to the hovered panel.
const DefaultHoverScale = 1.2

// RearmPolicy decides when a panel can be selected again after a dwell fired.
type RearmPolicy int

const (
	// RearmOnGazeBreak suspends dwell accumulation after a selection until
	// the ray hits no panel at all. The transition a selection causes keeps
	// the latch, so a panel that lands under a motionless gaze is not
	// selected by accident.
	RearmOnGazeBreak RearmPolicy = iota
	// RearmContinuous restarts the dwell timer after each selection; a
	// motionless gaze re-selects every threshold.
	RearmContinuous
)

func (p RearmPolicy) String() string {
	switch p {
	case RearmOnGazeBreak:
		return "gaze-break"
	case RearmContinuous:
		return "continuous"
	}
	return "unknown"
}

// GazeSystem casts the head-forward ray against the interactable panels,
// tracks dwell time and emits a SelectionRequest once the threshold is met.
// It does nothing unless the camera's Head is presenting.
type GazeSystem struct {
	Threshold time.Duration
	Policy    RearmPolicy
}

func NewGazeSystem(threshold time.Duration, policy RearmPolicy) *GazeSystem {
	if threshold <= 0 {
		threshold = DefaultDwellThreshold
	}
	return &GazeSystem{Threshold: threshold, Policy: policy}
}

func (g *GazeSystem) Update(w *ecs.World) {
	if g == nil || w == nil {
		return
	}
	cam, ok := w.First(component.GazeCursorComponent.ID())
	if !ok {
		return
	}
	head, ok := ecs.Get(w, cam, component.HeadComponent)
	if !ok || !head.Presenting {
		return
	}
	cursor, _ := ecs.Get(w, cam, component.GazeCursorComponent)

	eye, dir := ViewPose(w, cam)
	hit, _ := Raycast(w, eye, dir)

	panels := w.Query(component.PanelComponent.ID(), component.TransformComponent.ID())
	for _, e := range panels {
		setPanelScale(w, e, false)
	}

	if uint64(hit) != cursor.Target {
		cursor.Target = uint64(hit)
		cursor.Dwell = 0
	}
	if !hit.Valid() {
		cursor.Disarmed = false
	}

	if hit.Valid() {
		setPanelScale(w, hit, true)
		if !cursor.Disarmed {
			cursor.Dwell += w.Delta()
			if cursor.Dwell >= g.Threshold {
				panel, _ := ecs.Get(w, hit, component.PanelComponent)
				req := w.CreateEntity()
				_ = ecs.Add(w, req, component.SelectionRequestComponent, component.SelectionRequest{
					Action: panel.Action,
					Panel:  uint64(hit),
				})
				cursor.Dwell = 0
				if g.Policy == RearmOnGazeBreak {
					cursor.Disarmed = true
				}
			}
		}
	}

	_ = ecs.Add(w, cam, component.GazeCursorComponent, cursor)
}

// Progress returns the dwell fraction of the current target in [0, 1].
func (g *GazeSystem) Progress(w *ecs.World) float64 {
	if g == nil || g.Threshold <= 0 {
		return 0
	}
	cam, ok := w.First(component.GazeCursorComponent.ID())
	if !ok {
		return 0
	}
	cursor, _ := ecs.Get(w, cam, component.GazeCursorComponent)
	if cursor.Target == 0 {
		return 0
	}
	return math.Min(1, float64(cursor.Dwell)/float64(g.Threshold))
}

func setPanelScale(w *ecs.World, e ecs.Entity, hovered bool) {
	panel, ok := ecs.Get(w, e, component.PanelComponent)
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return
	}
	s := panel.BaseScale
	if s <= 0 {
		s = 1
	}
	if hovered {
		hover := panel.HoverScale
		if hover <= 0 {
			hover = DefaultHoverScale
		}
		s *= hover
	}
	t.Scale = mgl64.Vec3{s, s, s}
	_ = ecs.Add(w, e, component.TransformComponent, t)
}

// Raycast returns the nearest interactable panel hit by the ray and the
// distance along dir, or NoEntity when nothing is hit. Panels are quads of
// Width x Height centred on their local origin in the z = 0 plane.
func Raycast(w *ecs.World, origin, dir mgl64.Vec3) (ecs.Entity, float64) {
	if dir.Len() == 0 {
		return ecs.NoEntity, 0
	}
	dir = dir.Normalize()

	best := ecs.NoEntity
	bestDist := math.Inf(1)
	for _, e := range w.Query(component.InteractableComponent.ID(), component.PanelComponent.ID()) {
		if !groupVisible(w, e) {
			continue
		}
		panel, _ := ecs.Get(w, e, component.PanelComponent)
		dist, ok := intersectPanel(WorldMatrix(w, e), panel, origin, dir)
		if ok && dist < bestDist {
			best, bestDist = e, dist
		}
	}
	if !best.Valid() {
		return ecs.NoEntity, 0
	}
	return best, bestDist
}

func intersectPanel(model mgl64.Mat4, panel component.Panel, origin, dir mgl64.Vec3) (float64, bool) {
	if model.Det() == 0 {
		return 0, false
	}
	inv := model.Inv()
	o := inv.Mul4x1(origin.Vec4(1)).Vec3()
	d := inv.Mul4x1(dir.Vec4(0)).Vec3()
	if math.Abs(d.Z()) < 1e-9 {
		return 0, false
	}
	t := -o.Z() / d.Z()
	if t <= 0 {
		return 0, false
	}
	p := o.Add(d.Mul(t))
	if math.Abs(p.X()) > panel.Width/2 || math.Abs(p.Y()) > panel.Height/2 {
		return 0, false
	}
	// t is in local units; measure the real distance in world space.
	hit := model.Mul4x1(p.Vec4(1)).Vec3()
	return hit.Sub(origin).Len(), true
}

func groupVisible(w *ecs.World, e ecs.Entity) bool {
	parent, ok := ecs.Get(w, e, component.ParentComponent)
	if !ok {
		return true
	}
	group, ok := ecs.Get(w, ecs.Entity(parent.Entity), component.InteractableGroupComponent)
	if !ok {
		return true
	}
	return group.Visible
}

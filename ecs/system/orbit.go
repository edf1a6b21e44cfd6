package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrviewer/common"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

const (
	orbitRotateSpeed = 0.005 // radians per pixel
	orbitZoomStep    = 0.95
	orbitMinRadius   = 0.5
	orbitMaxRadius   = 100
	orbitMinPolar    = 0.01
	orbitMaxPolar    = math.Pi - 0.01
)

// NewOrbitControl builds a binding whose spherical state reproduces the
// camera sitting at pos and looking at target.
func NewOrbitControl(cam ecs.Entity, pos, target mgl64.Vec3, damping float64) component.OrbitControl {
	offset := pos.Sub(target)
	r := offset.Len()
	if r < orbitMinRadius {
		r = orbitMinRadius
		offset = mgl64.Vec3{0, 0, r}
	}
	azim := math.Atan2(offset.X(), offset.Z())
	polar := math.Acos(mgl64.Clamp(offset.Y()/r, -1, 1))
	return component.OrbitControl{
		Camera:    uint64(cam),
		Target:    target,
		Damping:   damping,
		Radius:    r,
		Azimuth:   azim,
		Polar:     polar,
		GoalRad:   r,
		GoalAzim:  azim,
		GoalPolar: polar,
	}
}

// OrbitSystem drives the desktop camera from its orbit binding. Bindings
// are ignored while the camera's head is presenting.
type OrbitSystem struct{}

func NewOrbitSystem() *OrbitSystem {
	return &OrbitSystem{}
}

func (o *OrbitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta().Seconds()
	ecs.ForEach(w, component.OrbitControlComponent, func(_ ecs.Entity, oc *component.OrbitControl) {
		cam := ecs.Entity(oc.Camera)
		if !w.IsAlive(cam) {
			return
		}
		if head, ok := ecs.Get(w, cam, component.HeadComponent); ok && head.Presenting {
			return
		}

		if in, ok := ecs.Get(w, cam, component.InputComponent); ok {
			oc.GoalAzim -= in.DragX * orbitRotateSpeed
			oc.GoalPolar = mgl64.Clamp(oc.GoalPolar-in.DragY*orbitRotateSpeed, orbitMinPolar, orbitMaxPolar)
			if in.Wheel != 0 {
				oc.GoalRad = mgl64.Clamp(oc.GoalRad*math.Pow(orbitZoomStep, in.Wheel), orbitMinRadius, orbitMaxRadius)
			}
		}

		alpha := common.DampFactor(oc.Damping, dt)
		oc.Azimuth = common.Lerp(oc.Azimuth, oc.GoalAzim, alpha)
		oc.Polar = common.Lerp(oc.Polar, oc.GoalPolar, alpha)
		oc.Radius = common.Lerp(oc.Radius, oc.GoalRad, alpha)

		pos := oc.Target.Add(orbitOffset(oc.Radius, oc.Azimuth, oc.Polar))
		t, _ := ecs.Get(w, cam, component.TransformComponent)
		t.Position = pos
		_ = ecs.Add(w, cam, component.TransformComponent, t)

		c, _ := ecs.Get(w, cam, component.CameraComponent)
		c.Yaw, c.Pitch = YawPitchTowards(oc.Target.Sub(pos))
		_ = ecs.Add(w, cam, component.CameraComponent, c)
	})
}

func orbitOffset(r, azim, polar float64) mgl64.Vec3 {
	sp := math.Sin(polar)
	return mgl64.Vec3{
		r * sp * math.Sin(azim),
		r * math.Cos(polar),
		r * sp * math.Cos(azim),
	}
}

package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

const maxPitch = math.Pi/2 - 0.01

// Forward returns the unit view direction for yaw/pitch. Yaw 0, pitch 0
// looks down -Z; positive yaw turns left, positive pitch looks up.
func Forward(yaw, pitch float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{
		-math.Sin(yaw) * cp,
		math.Sin(pitch),
		-math.Cos(yaw) * cp,
	}
}

// YawPitchTowards is the inverse of Forward for a non-zero direction.
func YawPitchTowards(dir mgl64.Vec3) (yaw, pitch float64) {
	if dir.Len() == 0 {
		return 0, 0
	}
	d := dir.Normalize()
	pitch = math.Asin(mgl64.Clamp(d.Y(), -1, 1))
	yaw = math.Atan2(-d.X(), -d.Z())
	return yaw, pitch
}

// ViewPose returns the eye position and forward direction of the camera rig,
// taking the head pose while presenting.
func ViewPose(w *ecs.World, cam ecs.Entity) (eye, forward mgl64.Vec3) {
	if head, ok := ecs.Get(w, cam, component.HeadComponent); ok && head.Presenting {
		eye = head.Standing.Add(mgl64.Vec3{0, head.EyeHeight, 0})
		return eye, Forward(head.Yaw, head.Pitch)
	}
	eye = WorldPosition(w, cam)
	c, _ := ecs.Get(w, cam, component.CameraComponent)
	return eye, Forward(c.Yaw, c.Pitch)
}

// ViewProjection returns the combined projection * view matrix for cam.
func ViewProjection(w *ecs.World, cam ecs.Entity) mgl64.Mat4 {
	c, _ := ecs.Get(w, cam, component.CameraComponent)
	fov, near, far, aspect := c.FOV, c.Near, c.Far, c.Aspect
	if fov <= 0 {
		fov = 70
	}
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = 1000
	}
	if aspect <= 0 {
		aspect = 16.0 / 9.0
	}
	eye, fwd := ViewPose(w, cam)
	view := mgl64.LookAtV(eye, eye.Add(fwd), mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(mgl64.DegToRad(fov), aspect, near, far)
	return proj.Mul4(view)
}

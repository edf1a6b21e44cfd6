package component

import "github.com/go-gl/mathgl/mgl64"

// Camera is the desktop view. Yaw 0 / pitch 0 looks down -Z.
type Camera struct {
	FOV    float64 // vertical, degrees
	Near   float64
	Far    float64
	Aspect float64
	Yaw    float64
	Pitch  float64
}

var CameraComponent = NewComponent[Camera]()

// Head is the immersive pose. While Presenting the view comes from the
// standing position raised by EyeHeight, oriented by Yaw/Pitch, and the
// desktop Camera pose is ignored.
type Head struct {
	Presenting bool
	Standing   mgl64.Vec3
	EyeHeight  float64
	Yaw        float64
	Pitch      float64
}

var HeadComponent = NewComponent[Head]()

// Reticle is the gaze cursor fixed in front of the eye.
type Reticle struct {
	Radius   float64
	Distance float64
	Visible  bool
}

var ReticleComponent = NewComponent[Reticle]()

// OrbitControl binds the desktop camera to orbit around Target.
// A binding lives on its own entity so it can be released independently
// of the camera.
type OrbitControl struct {
	Camera  uint64 // ecs.Entity
	Target  mgl64.Vec3
	Damping float64 // 0 = no damping

	// Spherical coordinates around Target; Goal* are what input asks for,
	// the others trail them when damping is enabled.
	Radius    float64
	Azimuth   float64
	Polar     float64
	GoalRad   float64
	GoalAzim  float64
	GoalPolar float64
}

var OrbitControlComponent = NewComponent[OrbitControl]()

package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

// CameraRig configures the persistent viewer rig.
type CameraRig struct {
	EyeHeight float64
	FOV       float64
}

// NewCameraRig creates the camera that survives every transition. It carries
// the desktop camera, the immersive head pose, the gaze cursor, the reticle
// and the sampled input.
func NewCameraRig(w *ecs.World, rig CameraRig) (ecs.Entity, error) {
	if rig.EyeHeight <= 0 {
		rig.EyeHeight = 1.6
	}
	if rig.FOV <= 0 {
		rig.FOV = 70
	}

	cam := w.CreateEntity()
	if err := ecs.Add(w, cam, component.PersistentComponent, component.Persistent{ID: "camera"}); err != nil {
		return 0, fmt.Errorf("camera: add persistent: %w", err)
	}
	if err := ecs.Add(w, cam, component.TransformComponent, component.NewTransform(mgl64.Vec3{0, rig.EyeHeight, 5})); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, cam, component.CameraComponent, component.Camera{
		FOV:    rig.FOV,
		Near:   0.1,
		Far:    1000,
		Aspect: 16.0 / 9.0,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}
	if err := ecs.Add(w, cam, component.HeadComponent, component.Head{EyeHeight: rig.EyeHeight}); err != nil {
		return 0, fmt.Errorf("camera: add head: %w", err)
	}
	if err := ecs.Add(w, cam, component.GazeCursorComponent, component.GazeCursor{}); err != nil {
		return 0, fmt.Errorf("camera: add gaze cursor: %w", err)
	}
	// small disc half a metre in front of the eye
	if err := ecs.Add(w, cam, component.ReticleComponent, component.Reticle{Radius: 0.015, Distance: 0.5}); err != nil {
		return 0, fmt.Errorf("camera: add reticle: %w", err)
	}
	if err := ecs.Add(w, cam, component.InputComponent, component.Input{}); err != nil {
		return 0, fmt.Errorf("camera: add input: %w", err)
	}
	return cam, nil
}

package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

// HeadSystem turns pointer look deltas into head yaw/pitch while presenting.
type HeadSystem struct {
	Sensitivity float64 // radians per pixel
}

func NewHeadSystem() *HeadSystem {
	return &HeadSystem{Sensitivity: 0.003}
}

func (h *HeadSystem) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.HeadComponent, func(e ecs.Entity, head *component.Head) {
		if !head.Presenting {
			return
		}
		in, ok := ecs.Get(w, e, component.InputComponent)
		if !ok {
			return
		}
		head.Yaw -= in.LookX * h.Sensitivity
		head.Pitch = mgl64.Clamp(head.Pitch-in.LookY*h.Sensitivity, -maxPitch, maxPitch)
	})
}

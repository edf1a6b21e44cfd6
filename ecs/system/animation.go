package system

import (
	"math"

	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

// AnimationSystem advances every playing clip by the frame delta, looping.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta().Seconds()
	ecs.ForEach(w, component.AnimatorComponent, func(_ ecs.Entity, anim *component.Animator) {
		if !anim.Playing || anim.Duration <= 0 {
			return
		}
		anim.Time = math.Mod(anim.Time+dt, anim.Duration)
	})
}

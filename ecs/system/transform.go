package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

const maxParentDepth = 16

// WorldMatrix composes e's Transform with its parents' up to the root.
func WorldMatrix(w *ecs.World, e ecs.Entity) mgl64.Mat4 {
	m := mgl64.Ident4()
	cur := e
	for depth := 0; depth < maxParentDepth && w.IsAlive(cur); depth++ {
		if t, ok := ecs.Get(w, cur, component.TransformComponent); ok {
			m = t.Matrix().Mul4(m)
		}
		parent, ok := ecs.Get(w, cur, component.ParentComponent)
		if !ok {
			break
		}
		cur = ecs.Entity(parent.Entity)
	}
	return m
}

// WorldPosition returns the origin of e in world space.
func WorldPosition(w *ecs.World, e ecs.Entity) mgl64.Vec3 {
	return WorldMatrix(w, e).Col(3).Vec3()
}

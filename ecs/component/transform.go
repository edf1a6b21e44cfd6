package component

import "github.com/go-gl/mathgl/mgl64"

// Transform places an entity relative to its Parent (or the world when it
// has none). Rotation is Euler angles in radians applied X, then Y, then Z.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// NewTransform returns a transform at pos with unit scale.
func NewTransform(pos mgl64.Vec3) Transform {
	return Transform{Position: pos, Scale: mgl64.Vec3{1, 1, 1}}
}

// Matrix returns the local model matrix (T * Rz * Ry * Rx * S).
func (t Transform) Matrix() mgl64.Mat4 {
	scale := t.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}
	m := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	m = m.Mul4(mgl64.HomogRotate3DZ(t.Rotation.Z()))
	m = m.Mul4(mgl64.HomogRotate3DY(t.Rotation.Y()))
	m = m.Mul4(mgl64.HomogRotate3DX(t.Rotation.X()))
	return m.Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

var TransformComponent = NewComponent[Transform]()

// Parent attaches an entity's Transform to another entity's.
type Parent struct {
	Entity uint64 // ecs.Entity
}

var ParentComponent = NewComponent[Parent]()

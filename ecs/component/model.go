package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Prop is synchronous box geometry authored in a scenario description.
type Prop struct {
	Name  string
	Size  mgl64.Vec3
	Color color.NRGBA
}

var PropComponent = NewComponent[Prop]()

// Model is a loaded external asset inserted into the scene.
type Model struct {
	Path       string
	Format     string
	Meshes     int
	Animations []string
	// Extent is the authored bounding size in model units.
	Extent mgl64.Vec3
	Color  color.NRGBA
}

var ModelComponent = NewComponent[Model]()

// Script attaches a tengo behaviour script to an entity.
type Script struct {
	Path string
}

var ScriptComponent = NewComponent[Script]()

package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

type AmbientLight struct {
	Color     color.NRGBA
	Intensity float64
}

var AmbientLightComponent = NewComponent[AmbientLight]()

// DirectionalLight shines from Position towards the origin.
type DirectionalLight struct {
	Color     color.NRGBA
	Intensity float64
	Position  mgl64.Vec3
}

var DirectionalLightComponent = NewComponent[DirectionalLight]()

// Background is the clear colour of the current state.
type Background struct {
	Color color.NRGBA
}

var BackgroundComponent = NewComponent[Background]()

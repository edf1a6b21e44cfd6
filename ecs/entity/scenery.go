package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrviewer/assets"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
	"github.com/milk9111/vrviewer/scenes"
)

var (
	White             = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	DefaultBackground = color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
)

// NewLights adds the baseline lighting every state gets: a soft white
// ambient light and a directional light from (1, 2, 3).
func NewLights(w *ecs.World) error {
	ambient := w.CreateEntity()
	if err := ecs.Add(w, ambient, component.AmbientLightComponent, component.AmbientLight{Color: White, Intensity: 0.7}); err != nil {
		return fmt.Errorf("lights: add ambient: %w", err)
	}
	dir := w.CreateEntity()
	if err := ecs.Add(w, dir, component.DirectionalLightComponent, component.DirectionalLight{
		Color:     White,
		Intensity: 1.5,
		Position:  mgl64.Vec3{1, 2, 3},
	}); err != nil {
		return fmt.Errorf("lights: add directional: %w", err)
	}
	return nil
}

func NewBackground(w *ecs.World, c scenes.YAMLColor) (ecs.Entity, error) {
	bg := w.CreateEntity()
	if err := ecs.Add(w, bg, component.BackgroundComponent, component.Background{Color: c.Or(DefaultBackground)}); err != nil {
		return 0, fmt.Errorf("background: %w", err)
	}
	return bg, nil
}

// Transform converts an authored transform; rotation is authored in degrees.
func Transform(spec scenes.TransformSpec) component.Transform {
	return component.Transform{
		Position: spec.Position.Vec(),
		Rotation: spec.RotationRadians(),
		Scale:    spec.ScaleOr(1),
	}
}

func NewProp(w *ecs.World, spec scenes.PropSpec) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, Transform(spec.Transform)); err != nil {
		return 0, fmt.Errorf("prop %s: add transform: %w", spec.Name, err)
	}
	size := spec.Size.Vec()
	if size == (mgl64.Vec3{}) {
		size = mgl64.Vec3{1, 1, 1}
	}
	if err := ecs.Add(w, e, component.PropComponent, component.Prop{
		Name:  spec.Name,
		Size:  size,
		Color: spec.Color.Or(White),
	}); err != nil {
		return 0, fmt.Errorf("prop %s: add prop: %w", spec.Name, err)
	}
	if spec.Script != "" {
		if err := ecs.Add(w, e, component.ScriptComponent, component.Script{Path: spec.Script}); err != nil {
			return 0, fmt.Errorf("prop %s: add script: %w", spec.Name, err)
		}
	}
	return e, nil
}

// NewModel inserts a loaded model at its authored transform.
func NewModel(w *ecs.World, spec scenes.ModelSpec, m *assets.Model) (ecs.Entity, error) {
	if m == nil {
		return 0, fmt.Errorf("model %s: nil asset", spec.Name)
	}
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, Transform(spec.Transform)); err != nil {
		return 0, fmt.Errorf("model %s: add transform: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.ModelComponent, component.Model{
		Path:       m.Path,
		Format:     m.Format,
		Meshes:     m.Meshes,
		Animations: m.Animations,
		Extent:     spec.Extent.Vec(),
		Color:      spec.Color.Or(White),
	}); err != nil {
		return 0, fmt.Errorf("model %s: add model: %w", spec.Name, err)
	}
	return e, nil
}

// AttachClip starts the authored clip looping on a model. When no clip name
// was authored the first animation of the clip file is used.
func AttachClip(w *ecs.World, e ecs.Entity, spec scenes.AnimationSpec, clipFile *assets.Model) error {
	duration := spec.Duration
	if duration <= 0 {
		duration = 1
	}
	clip := spec.Clip
	if clip == "" && clipFile != nil && len(clipFile.Animations) > 0 {
		clip = clipFile.Animations[0]
	}
	if err := ecs.Add(w, e, component.AnimatorComponent, component.Animator{
		Clip:     clip,
		Duration: duration,
		Playing:  true,
	}); err != nil {
		return fmt.Errorf("clip %s: %w", clip, err)
	}
	return nil
}

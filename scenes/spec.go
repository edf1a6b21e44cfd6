package scenes

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Scenario describes the per-state content: background, camera pose, orbit
// target, synchronous props and asynchronously loaded models.
type Scenario struct {
	Name       string      `yaml:"name"`
	Background YAMLColor   `yaml:"background"`
	Camera     CameraSpec  `yaml:"camera"`
	Orbit      OrbitSpec   `yaml:"orbit"`
	Props      []PropSpec  `yaml:"props"`
	Models     []ModelSpec `yaml:"models"`
}

type CameraSpec struct {
	Position Vec3 `yaml:"position"`
}

type OrbitSpec struct {
	Target  Vec3    `yaml:"target"`
	Damping float64 `yaml:"damping"`
}

type TransformSpec struct {
	Position Vec3 `yaml:"position"`
	Rotation Vec3 `yaml:"rotation"` // degrees
	Scale    Vec3 `yaml:"scale"`
}

type PropSpec struct {
	Name      string        `yaml:"name"`
	Size      Vec3          `yaml:"size"`
	Color     YAMLColor     `yaml:"color"`
	Transform TransformSpec `yaml:"transform"`
	Script    string        `yaml:"script"`
}

type ModelSpec struct {
	Name      string         `yaml:"name"`
	Path      string         `yaml:"path"`
	Extent    Vec3           `yaml:"extent"`
	Color     YAMLColor      `yaml:"color"`
	Transform TransformSpec  `yaml:"transform"`
	Animation *AnimationSpec `yaml:"animation"`
}

type AnimationSpec struct {
	Path     string  `yaml:"path"`
	Clip     string  `yaml:"clip"`
	Duration float64 `yaml:"duration"` // seconds
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("scenes: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("scenes: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadScenario loads a scenario description by file name.
func LoadScenario(filename string) (*Scenario, error) {
	spec, err := LoadSpec[Scenario](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Vec3 is a three-element yaml sequence.
type Vec3 [3]float64

func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

// ScaleOr returns the transform scale, or def when none was authored.
func (t TransformSpec) ScaleOr(def float64) mgl64.Vec3 {
	if t.Scale == (Vec3{}) {
		return mgl64.Vec3{def, def, def}
	}
	return t.Scale.Vec()
}

// RotationRadians converts the authored degrees.
func (t TransformSpec) RotationRadians() mgl64.Vec3 {
	r := t.Rotation
	return mgl64.Vec3{r[0] * math.Pi / 180, r[1] * math.Pi / 180, r[2] * math.Pi / 180}
}

// CameraPose is what the debug overlay exports to the clipboard, shaped so
// it can be pasted into a scenario description.
type CameraPose struct {
	Camera CameraSpec `yaml:"camera"`
	Orbit  OrbitSpec  `yaml:"orbit"`
}

func MarshalCameraPose(pos, target mgl64.Vec3, damping float64) ([]byte, error) {
	round := func(v mgl64.Vec3) Vec3 {
		var out Vec3
		for i := range out {
			out[i] = math.Round(v[i]*1000) / 1000
		}
		return out
	}
	pose := CameraPose{
		Camera: CameraSpec{Position: round(pos)},
		Orbit:  OrbitSpec{Target: round(target), Damping: damping},
	}
	data, err := yaml.Marshal(pose)
	if err != nil {
		return nil, fmt.Errorf("scenes: marshal camera pose: %w", err)
	}
	return data, nil
}

// YAMLColor parses "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.NRGBA
	Set bool
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.NRGBA = color.NRGBA{R: r, G: g, B: b, A: a}
	c.Set = true
	return nil
}

// Or returns the parsed colour, or def when none was authored.
func (c YAMLColor) Or(def color.NRGBA) color.NRGBA {
	if !c.Set {
		return def
	}
	return c.NRGBA
}

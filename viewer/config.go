package viewer

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrviewer/assets"
	"github.com/milk9111/vrviewer/ecs/system"
	"github.com/milk9111/vrviewer/scenes"
)

// Config holds the session knobs. Zero fields take the defaults from
// DefaultConfig.
type Config struct {
	DwellThreshold time.Duration
	Rearm          system.RearmPolicy
	HoverScale     float64

	// AnchorOffset places the panel collection relative to the viewer's
	// neutral standing position.
	AnchorOffset mgl64.Vec3
	EyeHeight    float64
	FOV          float64

	Loader    assets.Loader
	Scenarios func(State) (*scenes.Scenario, error)
	Scripts   system.ScriptLoader
}

func DefaultConfig() Config {
	return Config{
		DwellThreshold: system.DefaultDwellThreshold,
		Rearm:          system.RearmOnGazeBreak,
		HoverScale:     system.DefaultHoverScale,
		AnchorOffset:   mgl64.Vec3{0, 1.6, -2.5},
		EyeHeight:      1.6,
		FOV:            70,
		Loader:         assets.NewFileLoader("models"),
		Scenarios:      loadScenario,
		Scripts:        scenes.LoadScript,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DwellThreshold <= 0 {
		c.DwellThreshold = def.DwellThreshold
	}
	if c.HoverScale <= 0 {
		c.HoverScale = def.HoverScale
	}
	if c.AnchorOffset == (mgl64.Vec3{}) {
		c.AnchorOffset = def.AnchorOffset
	}
	if c.EyeHeight <= 0 {
		c.EyeHeight = def.EyeHeight
	}
	if c.FOV <= 0 {
		c.FOV = def.FOV
	}
	if c.Loader == nil {
		c.Loader = def.Loader
	}
	if c.Scenarios == nil {
		c.Scenarios = def.Scenarios
	}
	if c.Scripts == nil {
		c.Scripts = def.Scripts
	}
	return c
}

func loadScenario(s State) (*scenes.Scenario, error) {
	return scenes.LoadScenario(scenarioFile(s))
}

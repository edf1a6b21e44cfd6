// Package config reads the viewer's startup settings from the environment,
// then lets command-line flags override them.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/milk9111/vrviewer/assets"
	"github.com/milk9111/vrviewer/ecs/system"
	"github.com/milk9111/vrviewer/viewer"
)

type Config struct {
	Scene       string        `env:"VRVIEWER_SCENE" envDefault:"menu"`
	Debug       bool          `env:"VRVIEWER_DEBUG"`
	Dwell       time.Duration `env:"VRVIEWER_DWELL" envDefault:"1500ms"`
	Rearm       string        `env:"VRVIEWER_REARM" envDefault:"gaze-break"`
	ModelRoot   string        `env:"VRVIEWER_MODEL_ROOT" envDefault:"models"`
	HotReload   bool          `env:"VRVIEWER_HOT_RELOAD"`
	Immersive   bool          `env:"VRVIEWER_IMMERSIVE"`
	BaseMonitor bool
}

// Parse loads the environment into a Config and applies args on top.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if fs == nil {
		return Config{}, fmt.Errorf("parse args: nil flag set")
	}

	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "initial state: menu, house or character")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug mode")
	fs.DurationVar(&cfg.Dwell, "dwell", cfg.Dwell, "gaze dwell time before a panel is selected")
	fs.StringVar(&cfg.Rearm, "rearm", cfg.Rearm, "re-arm policy after a selection: gaze-break or continuous")
	fs.StringVar(&cfg.ModelRoot, "models", cfg.ModelRoot, "directory the model files are resolved against")
	fs.BoolVar(&cfg.HotReload, "hot-reload", cfg.HotReload, "rebuild the current state when scenes/ changes")
	fs.BoolVar(&cfg.Immersive, "vr", cfg.Immersive, "start in immersive mode")
	fs.BoolVar(&cfg.BaseMonitor, "m", cfg.BaseMonitor, "use base monitor instead of primary (for multi-monitor setups)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse args: %w", err)
	}

	if _, ok := viewer.ParseState(cfg.Scene); !ok {
		return Config{}, fmt.Errorf("config: unknown scene %q", cfg.Scene)
	}
	if _, err := ParseRearm(cfg.Rearm); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func ParseRearm(name string) (system.RearmPolicy, error) {
	switch name {
	case "", system.RearmOnGazeBreak.String():
		return system.RearmOnGazeBreak, nil
	case system.RearmContinuous.String():
		return system.RearmContinuous, nil
	}
	return system.RearmOnGazeBreak, fmt.Errorf("config: unknown re-arm policy %q", name)
}

// Initial returns the state the viewer opens in.
func (c Config) Initial() viewer.State {
	st, _ := viewer.ParseState(c.Scene)
	return st
}

// Viewer builds the session configuration.
func (c Config) Viewer() viewer.Config {
	cfg := viewer.DefaultConfig()
	if c.Dwell > 0 {
		cfg.DwellThreshold = c.Dwell
	}
	if policy, err := ParseRearm(c.Rearm); err == nil {
		cfg.Rearm = policy
	}
	if c.ModelRoot != "" {
		cfg.Loader = assets.NewFileLoader(c.ModelRoot)
	}
	return cfg
}

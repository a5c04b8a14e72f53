package ebitenhost

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/phanxgames/arbor"
)

// RunConfig holds optional configuration for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string `toml:"title"`
	// Width and Height set the window size in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// ClearColor fills the screen before every frame.
	ClearColor arbor.Color `toml:"clear_color"`
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool `toml:"show_fps"`
	// Debug enables the scene's debug checks.
	Debug bool `toml:"debug"`
	// Bubble selects whether interactions bubble to ancestors.
	Bubble bool `toml:"bubble"`
}

// DefaultRunConfig returns a 640x480 window with bubbling enabled.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:      "arbor",
		Width:      640,
		Height:     480,
		ClearColor: arbor.Color{A: 1},
		Bubble:     true,
	}
}

// LoadRunConfig decodes TOML over DefaultRunConfig, so absent keys keep
// their defaults:
//
//	title = "demo"
//	width = 800
//	clear_color = { r = 0.1, g = 0.1, b = 0.15, a = 1.0 }
func LoadRunConfig(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return RunConfig{}, fmt.Errorf("parse run config: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

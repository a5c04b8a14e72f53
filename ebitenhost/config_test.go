package ebitenhost

import (
	"strings"
	"testing"

	"github.com/phanxgames/arbor"
)

func TestLoadRunConfigDefaults(t *testing.T) {
	cfg, err := LoadRunConfig([]byte(`title = "demo"`))
	if err != nil {
		t.Fatalf("LoadRunConfig: %v", err)
	}
	if cfg.Title != "demo" {
		t.Errorf("Title = %q, want demo", cfg.Title)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", cfg.Width, cfg.Height)
	}
	if !cfg.Bubble {
		t.Error("Bubble should default to true")
	}
}

func TestLoadRunConfigFull(t *testing.T) {
	data := `
title = "boxes"
width = 800
height = 600
show_fps = true
debug = true
bubble = false
clear_color = { r = 0.1, g = 0.2, b = 0.3, a = 1.0 }
`
	cfg, err := LoadRunConfig([]byte(data))
	if err != nil {
		t.Fatalf("LoadRunConfig: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if !cfg.ShowFPS || !cfg.Debug || cfg.Bubble {
		t.Errorf("flags = %+v", cfg)
	}
	want := arbor.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}
	if cfg.ClearColor != want {
		t.Errorf("ClearColor = %+v, want %+v", cfg.ClearColor, want)
	}
}

func TestLoadRunConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `title = `},
		{"type", `width = "wide"`},
		{"size", `width = 0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRunConfig([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), "parse run config:") {
				t.Errorf("error = %q", err)
			}
		})
	}
}

func TestToRGBA(t *testing.T) {
	c := toRGBA(arbor.Color{R: 1, G: 0.5, B: 2, A: 0.5})
	if c.R != 127 || c.G != 63 || c.B != 255 || c.A != 127 {
		t.Errorf("toRGBA = %+v", c)
	}
}

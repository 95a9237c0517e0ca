package config

import (
	"errors"
	"testing"

	"github.com/user/vidsink/pkg/mocks"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
	if cfg.FPS != 30.0 {
		t.Errorf("expected default fps 30, got %f", cfg.FPS)
	}
	if cfg.MaxPendingFrames != 5 {
		t.Errorf("expected default max pending frames 5, got %d", cfg.MaxPendingFrames)
	}
}

func TestLoadFromFile_MergesOverDefaults(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Files["vidsink.yaml"] = []byte(`
frame_width: 320
frame_height: 180
frame_count: 30
orientation: 90
pacing:
  late_drop_us: 40000
`)

	cfg, err := LoadFromFile("vidsink.yaml", fs)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.FrameWidth != 320 || cfg.FrameHeight != 180 {
		t.Errorf("expected 320x180, got %dx%d", cfg.FrameWidth, cfg.FrameHeight)
	}
	if cfg.Orientation != 90 {
		t.Errorf("expected orientation 90, got %d", cfg.Orientation)
	}
	if cfg.Pacing.LateDropUs != 40_000 {
		t.Errorf("expected late drop 40000, got %d", cfg.Pacing.LateDropUs)
	}
	// Untouched fields keep their defaults.
	if cfg.FPS != 30.0 {
		t.Errorf("expected default fps, got %f", cfg.FPS)
	}
	if cfg.OutputWidth != 1280 || cfg.OutputHeight != 720 {
		t.Errorf("expected default output size, got %dx%d", cfg.OutputWidth, cfg.OutputHeight)
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Files["vidsink.yaml"] = []byte(`frame_width: [not a number`)

	if _, err := LoadFromFile("vidsink.yaml", fs); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromFile_ReadError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.ReadFileFunc = func(path string) ([]byte, error) {
		return nil, errors.New("no such file")
	}

	if _, err := LoadFromFile("missing.yaml", fs); err == nil {
		t.Error("expected error for unreadable file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero frame width", func(c *Config) { c.FrameWidth = 0 }},
		{"negative frame count", func(c *Config) { c.FrameCount = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"zero output width", func(c *Config) { c.OutputWidth = 0 }},
		{"negative output height", func(c *Config) { c.OutputHeight = -1 }},
		{"zero max pending", func(c *Config) { c.MaxPendingFrames = 0 }},
		{"zero pool capacity", func(c *Config) { c.TexturePoolCapacity = 0 }},
		{"bad orientation", func(c *Config) { c.Orientation = 45 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestToPlayerConfig(t *testing.T) {
	cfg := Defaults()
	cfg.FrameCount = 42
	cfg.Realtime = true

	pc := cfg.ToPlayerConfig()
	if pc.FrameCount != 42 {
		t.Errorf("expected frame count 42, got %d", pc.FrameCount)
	}
	if !pc.Realtime {
		t.Error("realtime flag not carried over")
	}
	if pc.Pacing != cfg.Pacing {
		t.Errorf("pacing not carried over: %+v", pc.Pacing)
	}
}

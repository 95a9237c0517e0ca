// Package config provides configuration loading and management.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/user/vidsink/pkg/adapters/pacer"
	"github.com/user/vidsink/pkg/player"
	"github.com/user/vidsink/pkg/ports"
)

// Config represents the full configuration for vidsink.
type Config struct {
	// Frames
	FrameWidth  int     `yaml:"frame_width"`
	FrameHeight int     `yaml:"frame_height"`
	FrameCount  int     `yaml:"frame_count"`
	FPS         float64 `yaml:"fps"`

	// Output
	OutputDir    string `yaml:"output_dir"`
	OutputWidth  int    `yaml:"output_width"`
	OutputHeight int    `yaml:"output_height"`
	Orientation  int    `yaml:"orientation"`

	// Sink
	MaxPendingFrames    int          `yaml:"max_pending_frames"`
	TexturePoolCapacity int          `yaml:"texture_pool_capacity"`
	Pacing              pacer.Config `yaml:"pacing"`

	// Playback
	Realtime bool   `yaml:"realtime"`
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		FrameWidth:  640,
		FrameHeight: 360,
		FrameCount:  90,
		FPS:         30.0,

		OutputDir:    "./frames",
		OutputWidth:  1280,
		OutputHeight: 720,

		MaxPendingFrames:    5,
		TexturePoolCapacity: 4,
		Pacing:              pacer.DefaultConfig(),

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string, fs ports.FileSystem) (Config, error) {
	cfg := Defaults()

	data, err := fs.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.FrameWidth <= 0 || c.FrameHeight <= 0:
		return fmt.Errorf("config: invalid frame size %dx%d", c.FrameWidth, c.FrameHeight)
	case c.FrameCount <= 0:
		return fmt.Errorf("config: frame count must be positive, got %d", c.FrameCount)
	case c.FPS <= 0:
		return fmt.Errorf("config: fps must be positive, got %f", c.FPS)
	case c.OutputWidth <= 0 || c.OutputHeight <= 0:
		return fmt.Errorf("config: invalid output size %dx%d", c.OutputWidth, c.OutputHeight)
	case c.MaxPendingFrames <= 0:
		return fmt.Errorf("config: max pending frames must be positive, got %d", c.MaxPendingFrames)
	case c.TexturePoolCapacity <= 0:
		return fmt.Errorf("config: texture pool capacity must be positive, got %d", c.TexturePoolCapacity)
	}
	switch c.Orientation {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("config: orientation must be 0, 90, 180 or 270, got %d", c.Orientation)
	}
	return nil
}

// ToPlayerConfig converts Config to player.Config.
func (c Config) ToPlayerConfig() player.Config {
	return player.Config{
		FrameWidth:  c.FrameWidth,
		FrameHeight: c.FrameHeight,
		FrameCount:  c.FrameCount,
		FPS:         c.FPS,

		MaxPendingFrames:    c.MaxPendingFrames,
		TexturePoolCapacity: c.TexturePoolCapacity,
		Pacing:              c.Pacing,

		Realtime: c.Realtime,
	}
}

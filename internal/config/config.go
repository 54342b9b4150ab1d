// Package config handles simulator configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/crashsim/internal/damage"
	"github.com/Faultbox/crashsim/internal/physics"
	"github.com/Faultbox/crashsim/internal/vehicle"
)

// Config holds all simulator settings.
type Config struct {
	Graphics GraphicsConfig      `yaml:"graphics"`
	Audio    AudioConfig         `yaml:"audio"`
	Vehicle  vehicle.Config      `yaml:"vehicle"`
	Body     physics.BodyConfig  `yaml:"body"`
	Damage   damage.Config       `yaml:"damage"`
	Arena    physics.ArenaConfig `yaml:"arena"`
	Debug    DebugConfig         `yaml:"debug"`
	Logging  LoggingConfig       `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	// BodySegments is the grid resolution of each face of the car body mesh.
	BodySegments int `yaml:"body_segments"`
	// Sun position in degrees; azimuth 0 faces +Z.
	SunAzimuth   float32 `yaml:"sun_azimuth"`
	SunElevation float32 `yaml:"sun_elevation"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// DebugConfig holds developer overlays.
type DebugConfig struct {
	ShowFPS    bool `yaml:"show_fps"`
	ShowBounds bool `yaml:"show_bounds"` // Draw mesh bounds wireframes
	// ScreenshotFormat is "png" or "bmp".
	ScreenshotFormat string `yaml:"screenshot_format"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:        1280,
			Height:       720,
			Fullscreen:   false,
			VSync:        true,
			FPSLimit:     0,
			BodySegments: 8,
			SunAzimuth:   50,
			SunElevation: 60,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Vehicle: vehicle.DefaultConfig(),
		Body:    physics.DefaultBodyConfig(),
		Damage:  damage.DefaultConfig(),
		Arena:   physics.DefaultArenaConfig(),
		Debug:   DebugConfig{ScreenshotFormat: "png"},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	switch c.Debug.ScreenshotFormat {
	case "png", "bmp":
	default:
		return fmt.Errorf("debug: screenshot_format must be png or bmp, got %q", c.Debug.ScreenshotFormat)
	}
	if c.Graphics.BodySegments < 1 {
		return fmt.Errorf("graphics: body_segments must be at least 1, got %d", c.Graphics.BodySegments)
	}
	for name, v := range map[string]float32{
		"master_volume": c.Audio.MasterVolume,
		"sfx_volume":    c.Audio.SFXVolume,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("audio: %s must be in [0,1], got %g", name, v)
		}
	}
	if c.Arena.FixedStep <= 0 {
		return fmt.Errorf("arena: fixed_step must be positive, got %g", c.Arena.FixedStep)
	}
	if c.Arena.HalfWidth <= 0 || c.Arena.HalfLength <= 0 {
		return fmt.Errorf("arena: half_width and half_length must be positive")
	}
	if c.Body.Mass <= 0 || c.Body.WheelRadius <= 0 {
		return fmt.Errorf("body: mass and wheel_radius must be positive")
	}
	if err := c.Damage.Validate(); err != nil {
		return fmt.Errorf("damage: %w", err)
	}
	return nil
}

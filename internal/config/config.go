// Package config provides YAML-based configuration loading for the console:
// device geometry, frame timing, where content comes from, restart policy,
// the session journal and logging.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/bitsybox/internal/core"
)

// Config is the whole console configuration.
type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Timing  TimingConfig  `yaml:"timing"`
	Content ContentConfig `yaml:"content"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Journal JournalConfig `yaml:"journal"`
	Log     LogConfig     `yaml:"log"`
}

// DeviceConfig defines the emulated handheld's geometry and limits.
type DeviceConfig struct {
	ScreenSize       int `yaml:"screen_size"`        // square panel, pixels
	TileSize         int `yaml:"tile_size"`          // tile surfaces, pixels
	RoomSize         int `yaml:"room_size"`          // room width in tiles
	BufferMax        int `yaml:"buffer_max"`         // surface pool capacity
	TextboxMaxPixels int `yaml:"textbox_max_pixels"` // textbox width*height limit
}

// TimingConfig defines the frame scheduler.
type TimingConfig struct {
	TickMS int    `yaml:"tick_ms"`
	Policy string `yaml:"policy"` // "drop" or "carry"
}

// ContentConfig defines where the flash image lives.
type ContentConfig struct {
	Root   string `yaml:"root"`   // flash root directory, empty for the embedded image
	Source string `yaml:"source"` // system assets: "auto", "flash" or "embedded"
}

// RuntimeConfig defines how the console reacts to failures.
type RuntimeConfig struct {
	MaxConsecutiveFailures int `yaml:"max_consecutive_failures"`
	Restarts               int `yaml:"restarts"` // console restarts after a fatal error
}

// JournalConfig defines the SQLite session journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // used while the terminal frontend owns the screen
}

// Source values.
const (
	SourceAuto     = "auto"
	SourceFlash    = "flash"
	SourceEmbedded = "embedded"
)

// Core returns the device geometry in the form the console parts use.
func (d DeviceConfig) Core() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenSize:       d.ScreenSize,
		TileSize:         d.TileSize,
		RoomSize:         d.RoomSize,
		BufferMax:        d.BufferMax,
		TextboxMaxPixels: d.TextboxMaxPixels,
	}
}

// Tick returns the frame period.
func (t TimingConfig) Tick() time.Duration {
	return time.Duration(t.TickMS) * time.Millisecond
}

// Validate rejects values the console cannot run with.
func (c Config) Validate() error {
	d := c.Device
	switch {
	case d.ScreenSize <= 0:
		return fmt.Errorf("config: device.screen_size must be positive, got %d", d.ScreenSize)
	case d.TileSize <= 0 || d.TileSize > d.ScreenSize:
		return fmt.Errorf("config: device.tile_size must be in 1..%d, got %d", d.ScreenSize, d.TileSize)
	case d.RoomSize <= 0:
		return fmt.Errorf("config: device.room_size must be positive, got %d", d.RoomSize)
	case d.BufferMax < 2:
		return fmt.Errorf("config: device.buffer_max must leave room for screen and textbox, got %d", d.BufferMax)
	case d.TextboxMaxPixels < 0:
		return fmt.Errorf("config: device.textbox_max_pixels must not be negative, got %d", d.TextboxMaxPixels)
	}

	if c.Timing.TickMS <= 0 {
		return fmt.Errorf("config: timing.tick_ms must be positive, got %d", c.Timing.TickMS)
	}
	switch c.Timing.Policy {
	case "", "drop", "carry":
	default:
		return fmt.Errorf("config: timing.policy must be drop or carry, got %q", c.Timing.Policy)
	}

	switch c.Content.Source {
	case "", SourceAuto, SourceFlash, SourceEmbedded:
	default:
		return fmt.Errorf("config: content.source must be auto, flash or embedded, got %q", c.Content.Source)
	}

	if c.Runtime.MaxConsecutiveFailures <= 0 {
		return fmt.Errorf("config: runtime.max_consecutive_failures must be positive, got %d", c.Runtime.MaxConsecutiveFailures)
	}
	if c.Runtime.Restarts < 0 {
		return fmt.Errorf("config: runtime.restarts must not be negative, got %d", c.Runtime.Restarts)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

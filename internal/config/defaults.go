package config

import (
	_ "embed"
)

//go:embed defaults/bitsybox.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration of the reference handheld.
func Default() Config {
	return Config{
		Device: DeviceConfig{
			ScreenSize:       128,
			TileSize:         8,
			RoomSize:         16,
			BufferMax:        1024,
			TextboxMaxPixels: 128 * 128,
		},
		Timing: TimingConfig{
			TickMS: 16,
			Policy: "drop",
		},
		Content: ContentConfig{
			Root:   "",
			Source: SourceAuto,
		},
		Runtime: RuntimeConfig{
			MaxConsecutiveFailures: 3,
			Restarts:               3,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "~/.bitsybox/history.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.bitsybox/console.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

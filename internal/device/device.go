// Package device holds the render/input context of the console: the palette,
// the surface pool, the current draw target, the graphics mode and the input
// snapshot. Device implements every drawing and input primitive the script
// host exposes; it is owned by exactly one console and is not safe for use
// from more than one goroutine (only core.Keys crosses goroutines).
package device

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bitsybox/internal/core"
)

// Graphics modes.
const (
	ModePixel = 0
	ModeTile  = 1
)

// NoTarget is the draw target when no DrawBegin is active.
const NoTarget = -1

// Display receives the composited screen once per tick.
// Implementations must not retain frame after Present returns.
type Display interface {
	Present(frame *core.Surface) error
}

// Device is the single explicitly-owned render/input context.
type Device struct {
	cfg     core.RuntimeConfig
	palette core.Palette
	pool    *Pool
	target  int
	mode    int
	keys    *core.Keys
	input   core.KeyState
	display Display
	logger  *log.Logger
	script  *log.Logger
	frames  uint64
}

// New creates a device with an allocated screen and an empty textbox.
func New(cfg core.RuntimeConfig, keys *core.Keys, display Display, logger *log.Logger) *Device {
	if keys == nil {
		keys = core.NewKeys()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Device{
		cfg:     cfg,
		pool:    NewPool(cfg.ScreenSize, cfg.TileSize, cfg.BufferMax),
		target:  NoTarget,
		mode:    ModePixel,
		keys:    keys,
		display: display,
		logger:  logger,
		script:  logger.WithPrefix("bitsy"),
	}
}

// Config returns the device geometry.
func (d *Device) Config() core.RuntimeConfig { return d.cfg }

// Pool exposes the surface pool.
func (d *Device) Pool() *Pool { return d.pool }

// Palette exposes the system palette.
func (d *Device) Palette() *core.Palette { return &d.palette }

// Target returns the current draw target handle or NoTarget.
func (d *Device) Target() int { return d.target }

// Mode returns the current graphics mode.
func (d *Device) Mode() int { return d.mode }

// Keys returns the input flags the producer writes into.
func (d *Device) Keys() *core.Keys { return d.keys }

// Frames returns the number of frames presented so far.
func (d *Device) Frames() uint64 { return d.frames }

// ResetPhase puts the phase-scoped state back to power-on values:
// black palette, no draw target, pixel mode, no live tiles.
func (d *Device) ResetPhase() {
	d.palette.Reset()
	d.target = NoTarget
	d.mode = ModePixel
	d.pool.ResetTiles()
	d.input = 0
}

// PollInput drains the key flags into the snapshot scripts read this tick.
func (d *Device) PollInput() core.KeyState {
	d.input = d.keys.Drain()
	return d.input
}

// SetInput replaces the current input snapshot.
func (d *Device) SetInput(s core.KeyState) {
	d.input = s
}

// BeginFrame clears the screen with the background color (palette entry 0).
func (d *Device) BeginFrame() {
	bg, _ := d.palette.At(0)
	d.pool.Screen().Fill(bg)
}

// Present hands the screen surface to the display.
func (d *Device) Present() error {
	d.frames++
	if d.display == nil {
		return nil
	}
	return d.display.Present(d.pool.Screen())
}

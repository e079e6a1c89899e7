package device

import (
	"github.com/vovakirdan/bitsybox/internal/core"
)

// Log writes a script message to the operator console.
func (d *Device) Log(message string) {
	d.script.Info(message)
}

// Button reports whether the semantic button code is held in this tick's snapshot.
func (d *Device) Button(code int) bool {
	return d.input.Button(code)
}

// SetGraphicsMode selects pixel (0) or tile (1) mode.
func (d *Device) SetGraphicsMode(mode int) {
	d.mode = mode
}

// SetColor writes one palette entry. Channels are clamped to 0..255.
func (d *Device) SetColor(index, r, g, b int) error {
	return d.palette.Set(index, core.RGB(r, g, b))
}

// ResetColors zeroes the palette.
func (d *Device) ResetColors() {
	d.palette.Reset()
}

// DrawBegin selects the draw target.
func (d *Device) DrawBegin(handle int) {
	d.target = handle
}

// DrawEnd deselects the draw target.
func (d *Device) DrawEnd() {
	d.target = NoTarget
}

// DrawPixel plots one pixel on the screen surface. It ignores the draw
// target: pixels always land on the visible screen.
func (d *Device) DrawPixel(index, x, y int) error {
	c, err := d.palette.At(index)
	if err != nil {
		return err
	}
	d.pool.Screen().Set(x, y, c)
	return nil
}

func (d *Device) canBlit() bool {
	return d.target == ScreenHandle && d.mode == ModeTile
}

// DrawTile blits a tile onto the screen. Ignored unless the screen is the
// target, tile mode is active and handle is a live tile.
func (d *Device) DrawTile(handle, x, y int) {
	if !d.canBlit() || !d.pool.IsTile(handle) {
		return
	}
	d.pool.Get(handle).Blit(d.pool.Screen(), x, y)
}

// DrawTextbox blits the textbox onto the screen. Ignored unless the screen
// is the target and tile mode is active.
func (d *Device) DrawTextbox(x, y int) {
	if !d.canBlit() {
		return
	}
	d.pool.Textbox().Blit(d.pool.Screen(), x, y)
}

// Clear fills the current target with a palette color. No-op without a
// live target.
func (d *Device) Clear(index int) error {
	c, err := d.palette.At(index)
	if err != nil {
		return err
	}
	if s := d.pool.Get(d.target); s != nil {
		s.Fill(c)
	}
	return nil
}

// AddTile allocates a tile surface and returns its handle.
func (d *Device) AddTile() (int, error) {
	return d.pool.AddTile()
}

// ResetTiles invalidates all tile handles.
func (d *Device) ResetTiles() {
	d.pool.ResetTiles()
}

// SetTextboxSize recreates the textbox surface at the new size.
func (d *Device) SetTextboxSize(w, h int) error {
	return d.pool.ResizeTextbox(w, h, d.cfg.TextboxMaxPixels)
}

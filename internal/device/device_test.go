package device

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bitsybox/internal/core"
)

type recordingDisplay struct {
	frames []*core.Surface
}

func (r *recordingDisplay) Present(frame *core.Surface) error {
	r.frames = append(r.frames, frame.Clone())
	return nil
}

var (
	white = core.Color{R: 255, G: 255, B: 255}
	green = core.Color{G: 255}
)

func newTestDevice(t *testing.T) (*Device, *recordingDisplay) {
	t.Helper()
	disp := &recordingDisplay{}
	d := New(core.DefaultConfig(), core.NewKeys(), disp, log.New(io.Discard))
	if err := d.SetColor(1, 255, 255, 255); err != nil {
		t.Fatalf("SetColor() failed: %v", err)
	}
	if err := d.SetColor(2, 0, 255, 0); err != nil {
		t.Fatalf("SetColor() failed: %v", err)
	}
	return d, disp
}

func countColor(s *core.Surface, c core.Color) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestDrawPixelIgnoresTarget(t *testing.T) {
	d, _ := newTestDevice(t)
	if err := d.SetTextboxSize(16, 16); err != nil {
		t.Fatal(err)
	}

	d.DrawBegin(TextboxHandle)
	if err := d.DrawPixel(1, 3, 4); err != nil {
		t.Fatalf("DrawPixel() failed: %v", err)
	}
	d.DrawEnd()

	if d.Pool().Screen().Get(3, 4) != white {
		t.Error("DrawPixel should write to the screen surface")
	}
	if countColor(d.Pool().Textbox(), white) != 0 {
		t.Error("DrawPixel should not write to the textbox")
	}
}

func TestDrawTileNoOps(t *testing.T) {
	tests := []struct {
		name   string
		mode   int
		target int
		handle func(d *Device) int
	}{
		{"pixel mode", ModePixel, ScreenHandle, func(d *Device) int { h, _ := d.AddTile(); return h }},
		{"textbox target", ModeTile, TextboxHandle, func(d *Device) int { h, _ := d.AddTile(); return h }},
		{"no target", ModeTile, NoTarget, func(d *Device) int { h, _ := d.AddTile(); return h }},
		{"invalid handle", ModeTile, ScreenHandle, func(d *Device) int { return 500 }},
		{"screen handle", ModeTile, ScreenHandle, func(d *Device) int { return ScreenHandle }},
		{"reset handle", ModeTile, ScreenHandle, func(d *Device) int {
			h, _ := d.AddTile()
			d.Pool().Get(h).Fill(white)
			d.ResetTiles()
			return h
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, _ := newTestDevice(t)
			h := tc.handle(d)
			if tile := d.Pool().Get(h); tile != nil && h >= FirstTile {
				tile.Fill(white)
			}

			d.SetGraphicsMode(tc.mode)
			d.DrawBegin(tc.target)
			d.DrawTile(h, 0, 0)
			d.DrawEnd()

			if n := countColor(d.Pool().Screen(), white); n != 0 {
				t.Errorf("DrawTile should be a no-op, %d pixels changed", n)
			}
		})
	}
}

func TestDrawTileBlitsInTileMode(t *testing.T) {
	d, _ := newTestDevice(t)
	h, err := d.AddTile()
	if err != nil {
		t.Fatal(err)
	}

	d.DrawBegin(h)
	if err := d.Clear(2); err != nil {
		t.Fatal(err)
	}
	d.DrawEnd()

	d.SetGraphicsMode(ModeTile)
	d.DrawBegin(ScreenHandle)
	d.DrawTile(h, 8, 16)
	d.DrawEnd()

	if n := countColor(d.Pool().Screen(), green); n != 64 {
		t.Errorf("expected 64 green pixels, got %d", n)
	}
	if d.Pool().Screen().Get(8, 16) != green || d.Pool().Screen().Get(15, 23) != green {
		t.Error("tile should land at (8, 16)")
	}
}

func TestDrawTextbox(t *testing.T) {
	d, _ := newTestDevice(t)
	if err := d.SetTextboxSize(4, 2); err != nil {
		t.Fatal(err)
	}
	d.DrawBegin(TextboxHandle)
	_ = d.Clear(1)
	d.DrawEnd()

	d.DrawBegin(ScreenHandle)
	d.DrawTextbox(0, 0)
	if n := countColor(d.Pool().Screen(), white); n != 0 {
		t.Errorf("DrawTextbox in pixel mode should be a no-op, got %d pixels", n)
	}

	d.SetGraphicsMode(ModeTile)
	d.DrawTextbox(10, 10)
	d.DrawEnd()
	if n := countColor(d.Pool().Screen(), white); n != 8 {
		t.Errorf("expected 8 white pixels, got %d", n)
	}
}

func TestClearTargets(t *testing.T) {
	d, _ := newTestDevice(t)

	// No target: nothing happens.
	if err := d.Clear(1); err != nil {
		t.Fatal(err)
	}
	if countColor(d.Pool().Screen(), white) != 0 {
		t.Error("Clear without target should be a no-op")
	}

	d.DrawBegin(ScreenHandle)
	_ = d.Clear(1)
	d.DrawEnd()
	if n := countColor(d.Pool().Screen(), white); n != 128*128 {
		t.Errorf("screen clear filled %d pixels", n)
	}

	d.DrawBegin(42) // not a live tile
	_ = d.Clear(2)
	d.DrawEnd()
	if countColor(d.Pool().Screen(), green) != 0 {
		t.Error("Clear with a dead handle should be a no-op")
	}

	if err := d.Clear(PaletteOutOfRange); !errors.Is(err, core.ErrPaletteIndex) {
		t.Errorf("Clear(bad index) error = %v", err)
	}
}

const PaletteOutOfRange = core.PaletteSize

func TestAddTileExhaustion(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.BufferMax = 4
	d := New(cfg, nil, nil, log.New(io.Discard))

	for i := 0; i < 2; i++ {
		if _, err := d.AddTile(); err != nil {
			t.Fatalf("AddTile() #%d failed: %v", i, err)
		}
	}
	if _, err := d.AddTile(); !errors.Is(err, ErrResourceExhausted) {
		t.Errorf("third AddTile() error = %v, expected exhaustion", err)
	}
}

func TestButtonReadsSnapshot(t *testing.T) {
	d, _ := newTestDevice(t)

	d.Keys().Press(core.KeyW)
	if d.Button(0) {
		t.Error("Button should only see keys after PollInput")
	}

	d.PollInput()
	if !d.Button(0) {
		t.Error("Button(0) should be held after polling W")
	}

	d.PollInput()
	if d.Button(0) {
		t.Error("keys should be consumed by the previous poll")
	}
}

func TestFrameLifecycle(t *testing.T) {
	d, disp := newTestDevice(t)
	_ = d.SetColor(0, 0, 255, 0)

	d.BeginFrame()
	if err := d.Present(); err != nil {
		t.Fatal(err)
	}

	if len(disp.frames) != 1 || d.Frames() != 1 {
		t.Fatalf("expected one presented frame, got %d", len(disp.frames))
	}
	if countColor(disp.frames[0], green) != 128*128 {
		t.Error("BeginFrame should clear the screen with palette entry 0")
	}
}

func TestResetPhase(t *testing.T) {
	d, _ := newTestDevice(t)
	d.SetGraphicsMode(ModeTile)
	d.DrawBegin(ScreenHandle)
	_, _ = d.AddTile()

	d.ResetPhase()

	if d.Mode() != ModePixel || d.Target() != NoTarget || d.Pool().TileCount() != 0 {
		t.Errorf("ResetPhase left mode=%d target=%d tiles=%d", d.Mode(), d.Target(), d.Pool().TileCount())
	}
	if c, _ := d.Palette().At(1); c != core.Black {
		t.Error("ResetPhase should zero the palette")
	}
}

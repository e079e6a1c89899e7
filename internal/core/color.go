package core

import (
	"errors"
	"fmt"
)

// PaletteSize is the number of entries in the system palette.
const PaletteSize = 256

// ErrPaletteIndex is returned for palette indices outside 0..PaletteSize-1.
var ErrPaletteIndex = errors.New("palette index out of range")

// Color is an RGB triple as written by the scripts. There is no alpha.
type Color struct {
	R, G, B uint8
}

// Black is the zero color.
var Black = Color{}

// RGB builds a color from script-side integers, clamping each channel to 0..255.
func RGB(r, g, b int) Color {
	return Color{
		R: uint8(Clamp(r, 0, 255)),
		G: uint8(Clamp(g, 0, 255)),
		B: uint8(Clamp(b, 0, 255)),
	}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGB565 packs the color the way the display panel expects it.
func (c Color) RGB565() uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// Palette is the fixed-capacity indexed color table shared by all surfaces.
// It is never resized; entries are overwritten individually or zeroed in bulk.
type Palette struct {
	colors [PaletteSize]Color
}

// Set writes one palette entry.
func (p *Palette) Set(index int, c Color) error {
	if index < 0 || index >= PaletteSize {
		return fmt.Errorf("%w: %d", ErrPaletteIndex, index)
	}
	p.colors[index] = c
	return nil
}

// At returns the color stored at index.
func (p *Palette) At(index int) (Color, error) {
	if index < 0 || index >= PaletteSize {
		return Black, fmt.Errorf("%w: %d", ErrPaletteIndex, index)
	}
	return p.colors[index], nil
}

// Reset zeroes the whole palette.
func (p *Palette) Reset() {
	for i := range p.colors {
		p.colors[i] = Black
	}
}

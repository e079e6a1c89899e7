package core

// Surface is an offscreen RGB pixel buffer.
// It decouples script drawing from the display: scripts draw into surfaces,
// the platform presents the screen surface once per tick.
type Surface struct {
	width  int
	height int
	pixels []Color
}

// NewSurface creates a black surface with the given dimensions.
// Negative dimensions are treated as zero.
func NewSurface(width, height int) *Surface {
	s := &Surface{
		width:  Max(width, 0),
		height: Max(height, 0),
	}
	s.pixels = make([]Color, s.width*s.height)
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Bounds returns the surface area as a rectangle at the origin.
func (s *Surface) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Set plots one pixel.
// Out-of-bounds coordinates are silently ignored.
func (s *Surface) Set(x, y int, c Color) {
	if !s.Bounds().Contains(x, y) {
		return
	}
	s.pixels[y*s.width+x] = c
}

// Get returns the pixel at the given position.
// Returns black for out-of-bounds coordinates.
func (s *Surface) Get(x, y int) Color {
	if !s.Bounds().Contains(x, y) {
		return Black
	}
	return s.pixels[y*s.width+x]
}

// Fill fills the entire surface with one color.
func (s *Surface) Fill(c Color) {
	for i := range s.pixels {
		s.pixels[i] = c
	}
}

// FillRect fills the part of r that lies inside the surface.
func (s *Surface) FillRect(r Rect, c Color) {
	r = r.Intersect(s.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		row := s.pixels[y*s.width : (y+1)*s.width]
		for x := r.X; x < r.Right(); x++ {
			row[x] = c
		}
	}
}

// Blit copies the whole surface onto dst with its top-left corner at (x, y).
// Pixels falling outside dst are clipped.
func (s *Surface) Blit(dst *Surface, x, y int) {
	r := NewRect(x, y, s.width, s.height).Intersect(dst.Bounds())
	for dy := r.Y; dy < r.Bottom(); dy++ {
		src := s.pixels[(dy-y)*s.width:]
		row := dst.pixels[dy*dst.width:]
		for dx := r.X; dx < r.Right(); dx++ {
			row[dx] = src[dx-x]
		}
	}
}

// CopyFrom overwrites the surface with src. Both must have the same size;
// otherwise the surface is reallocated to match.
func (s *Surface) CopyFrom(src *Surface) {
	if s.width != src.width || s.height != src.height {
		s.width, s.height = src.width, src.height
		s.pixels = make([]Color, len(src.pixels))
	}
	copy(s.pixels, src.pixels)
}

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	c := &Surface{width: s.width, height: s.height}
	c.pixels = make([]Color, len(s.pixels))
	copy(c.pixels, s.pixels)
	return c
}

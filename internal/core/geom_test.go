package core

import "testing"

func TestRectIntersect(t *testing.T) {
	screen := NewRect(0, 0, 128, 128)

	tests := []struct {
		name string
		r    Rect
		want Rect
	}{
		{"inside", NewRect(8, 8, 16, 16), NewRect(8, 8, 16, 16)},
		{"overhangs bottom right", NewRect(120, 124, 16, 16), NewRect(120, 124, 8, 4)},
		{"overhangs top left", NewRect(-4, -2, 8, 8), NewRect(0, 0, 4, 6)},
		{"covers screen", NewRect(-10, -10, 300, 300), screen},
		{"disjoint", NewRect(200, 0, 8, 8), NewRect(200, 0, 0, 8)},
		{"negative size", NewRect(4, 4, -3, 2), NewRect(4, 4, 0, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.r.Intersect(screen)
			if got.W != tc.want.W || got.H != tc.want.H {
				t.Errorf("Intersect() = %+v, expected %+v", got, tc.want)
			}
			if got.W > 0 && got.H > 0 && (got.X != tc.want.X || got.Y != tc.want.Y) {
				t.Errorf("Intersect() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestSurfaceBoundsContains(t *testing.T) {
	b := NewSurface(104, 38).Bounds()

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{103, 37, true},
		{104, 0, false},
		{0, 38, false},
		{-1, 5, false},
	}
	for _, tc := range tests {
		if got := b.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestClampKeepsChannelsInByteRange(t *testing.T) {
	tests := []struct {
		r, g, b int
		want    Color
	}{
		{12, 34, 56, Color{R: 12, G: 34, B: 56}},
		{-5, 300, 255, Color{R: 0, G: 255, B: 255}},
		{256, 0, -1, Color{R: 255, G: 0, B: 0}},
	}
	for _, tc := range tests {
		if got := RGB(tc.r, tc.g, tc.b); got != tc.want {
			t.Errorf("RGB(%d, %d, %d) = %v, expected %v", tc.r, tc.g, tc.b, got, tc.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(-3, 7) != -3 || Min(7, -3) != -3 {
		t.Error("Min should pick the smaller value")
	}
	if Max(0, -8) != 0 || Max(-8, 0) != 0 {
		t.Error("Max should pick the larger value")
	}
}

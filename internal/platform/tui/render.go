package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bitsybox/internal/core"
)

// halfBlock paints the upper pixel with the foreground and the lower pixel
// with the background, so one terminal row shows two pixel rows.
const halfBlock = "▀"

type cellColors struct {
	top, bottom core.Color
}

// RenderFrame converts a surface to a styled string, two pixel rows per
// line. Adjacent cells with the same color pair share one escape sequence.
func RenderFrame(s *core.Surface) string {
	if s == nil || s.Width() == 0 || s.Height() == 0 {
		return ""
	}

	styles := make(map[cellColors]lipgloss.Style)
	styleFor := func(c cellColors) lipgloss.Style {
		st, ok := styles[c]
		if !ok {
			st = lipgloss.NewStyle().
				Foreground(lipgloss.Color(c.top.Hex())).
				Background(lipgloss.Color(c.bottom.Hex()))
			styles[c] = st
		}
		return st
	}

	var sb strings.Builder
	sb.Grow(s.Width() * s.Height())

	for y := 0; y < s.Height(); y += 2 {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := cellAt(s, x, y)
			n := 0
			for x < s.Width() && cellAt(s, x, y) == start {
				n++
				x++
			}
			sb.WriteString(styleFor(start).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}

// cellAt returns the pixel pair behind one character cell. An odd last row
// is paired with black.
func cellAt(s *core.Surface, x, y int) cellColors {
	c := cellColors{top: s.Get(x, y)}
	if y+1 < s.Height() {
		c.bottom = s.Get(x, y+1)
	}
	return c
}

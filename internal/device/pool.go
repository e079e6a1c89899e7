package device

import (
	"fmt"

	"github.com/vovakirdan/bitsybox/internal/core"
)

// Fixed handles of the surface pool.
const (
	ScreenHandle  = 0
	TextboxHandle = 1
	FirstTile     = 2
)

// Pool is an arena of surfaces indexed by handle.
// Handles 0 (screen) and 1 (textbox) always exist. Tile handles are issued
// sequentially from FirstTile and are only ever released in bulk by
// ResetTiles, which rewinds the counter but keeps the surfaces for reuse.
type Pool struct {
	slots    []*core.Surface
	next     int
	capacity int
	tileSize int
}

// NewPool creates a pool with the screen and an empty textbox allocated.
// capacity counts every handle, screen and textbox included.
func NewPool(screenSize, tileSize, capacity int) *Pool {
	p := &Pool{
		next:     FirstTile,
		capacity: core.Max(capacity, FirstTile),
		tileSize: tileSize,
	}
	p.slots = []*core.Surface{
		core.NewSurface(screenSize, screenSize),
		core.NewSurface(0, 0),
	}
	return p
}

// Screen returns the screen surface (handle 0).
func (p *Pool) Screen() *core.Surface {
	return p.slots[ScreenHandle]
}

// Textbox returns the textbox surface (handle 1).
func (p *Pool) Textbox() *core.Surface {
	return p.slots[TextboxHandle]
}

// Capacity returns the maximum number of handles.
func (p *Pool) Capacity() int {
	return p.capacity
}

// TileCount returns the number of currently valid tile handles.
func (p *Pool) TileCount() int {
	return p.next - FirstTile
}

// IsTile reports whether h is a currently valid tile handle.
func (p *Pool) IsTile(h int) bool {
	return h >= FirstTile && h < p.next
}

// Get resolves a handle to its surface, or nil if the handle is not live.
func (p *Pool) Get(h int) *core.Surface {
	switch {
	case h == ScreenHandle || h == TextboxHandle:
		return p.slots[h]
	case p.IsTile(h):
		return p.slots[h]
	default:
		return nil
	}
}

// AddTile issues the next tile handle. Slots left over from before a
// ResetTiles are reused and cleared; new slots are appended.
func (p *Pool) AddTile() (int, error) {
	if p.next >= p.capacity {
		return 0, &ExhaustionError{
			Resource: "tile pool",
			Limit:    p.capacity - FirstTile,
			Detail:   fmt.Sprintf("%d tiles live", p.TileCount()),
		}
	}

	h := p.next
	if h < len(p.slots) {
		p.slots[h].Fill(core.Black)
	} else {
		p.slots = append(p.slots, core.NewSurface(p.tileSize, p.tileSize))
	}
	p.next++
	return h, nil
}

// ResetTiles invalidates every tile handle at once.
func (p *Pool) ResetTiles() {
	p.next = FirstTile
}

// ResizeTextbox replaces the textbox surface. Calling it again with the same
// size still yields a fresh, black textbox.
func (p *Pool) ResizeTextbox(w, h, maxPixels int) error {
	if w < 0 || h < 0 || w > maxPixels || h > maxPixels || (h != 0 && w > maxPixels/h) {
		return &ExhaustionError{
			Resource: "textbox",
			Limit:    maxPixels,
			Detail:   fmt.Sprintf("requested %dx%d", w, h),
		}
	}
	p.slots[TextboxHandle] = core.NewSurface(w, h)
	return nil
}

package core

// RuntimeConfig contains the device geometry shared by the console parts.
type RuntimeConfig struct {
	ScreenSize       int // Screen width and height in pixels (square panel)
	TileSize         int // Tile surface width and height in pixels
	RoomSize         int // Room width and height in tiles, informational for scripts
	BufferMax        int // Surface pool capacity, screen and textbox included
	TextboxMaxPixels int // Upper bound for textbox width*height
}

// DefaultConfig returns the geometry of the reference handheld.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenSize:       128,
		TileSize:         8,
		RoomSize:         16,
		BufferMax:        1024,
		TextboxMaxPixels: 128 * 128,
	}
}

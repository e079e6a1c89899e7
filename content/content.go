// Package content holds the flash image compiled into the binary: the
// engine scripts, the default font, the boot menu and the bundled games.
package content

import (
	"embed"
	"io/fs"
)

//go:embed bitsy boot games
var flash embed.FS

// FS returns the embedded flash image, laid out like a device flash root.
func FS() fs.FS {
	return flash
}

var (
	//go:embed bitsy/engine/script.lua
	ScriptEngine string
	//go:embed bitsy/engine/font.lua
	FontEngine string
	//go:embed bitsy/engine/transition.lua
	TransitionEngine string
	//go:embed bitsy/engine/dialog.lua
	DialogEngine string
	//go:embed bitsy/engine/renderer.lua
	RendererEngine string
	//go:embed bitsy/engine/bitsy.lua
	BitsyEngine string
	//go:embed bitsy/font/ascii_small.bitsyfont
	DefaultFont string
	//go:embed boot/boot.lua
	BootScript string
	//go:embed boot/boot.bitsy
	BootData string
)

package script

import (
	"fmt"
	"io/fs"

	"github.com/vovakirdan/bitsybox/content"
)

// Asset names one of the fixed system files on the flash.
type Asset int

const (
	AssetScriptEngine Asset = iota
	AssetFontEngine
	AssetTransitionEngine
	AssetDialogEngine
	AssetRendererEngine
	AssetBitsyEngine
	AssetDefaultFont
	AssetBootScript
	AssetBootData
)

// EngineScripts lists the engine scripts in the order they must be loaded.
var EngineScripts = []Asset{
	AssetScriptEngine,
	AssetFontEngine,
	AssetTransitionEngine,
	AssetDialogEngine,
	AssetRendererEngine,
	AssetBitsyEngine,
}

var assetPaths = map[Asset]string{
	AssetScriptEngine:     "bitsy/engine/script.lua",
	AssetFontEngine:       "bitsy/engine/font.lua",
	AssetTransitionEngine: "bitsy/engine/transition.lua",
	AssetDialogEngine:     "bitsy/engine/dialog.lua",
	AssetRendererEngine:   "bitsy/engine/renderer.lua",
	AssetBitsyEngine:      "bitsy/engine/bitsy.lua",
	AssetDefaultFont:      "bitsy/font/ascii_small.bitsyfont",
	AssetBootScript:       "boot/boot.lua",
	AssetBootData:         "boot/boot.bitsy",
}

var assetText = map[Asset]*string{
	AssetScriptEngine:     &content.ScriptEngine,
	AssetFontEngine:       &content.FontEngine,
	AssetTransitionEngine: &content.TransitionEngine,
	AssetDialogEngine:     &content.DialogEngine,
	AssetRendererEngine:   &content.RendererEngine,
	AssetBitsyEngine:      &content.BitsyEngine,
	AssetDefaultFont:      &content.DefaultFont,
	AssetBootScript:       &content.BootScript,
	AssetBootData:         &content.BootData,
}

// Path returns the asset's location relative to the flash root.
func (a Asset) Path() string {
	if p, ok := assetPaths[a]; ok {
		return p
	}
	return fmt.Sprintf("asset(%d)", int(a))
}

func (a Asset) String() string {
	return a.Path()
}

// Source loads system assets into a host. Implementations differ only in
// where the bytes come from.
type Source interface {
	LoadScript(h *Host, a Asset) error
	LoadFile(h *Host, a Asset, global string) error
}

// FSSource reads system assets from a flash filesystem.
type FSSource struct {
	FS fs.FS
}

func (s FSSource) LoadScript(h *Host, a Asset) error {
	return h.LoadScript(s.FS, a.Path())
}

func (s FSSource) LoadFile(h *Host, a Asset, global string) error {
	return h.LoadFile(s.FS, a.Path(), global)
}

// EmbeddedSource serves system assets compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) LoadScript(h *Host, a Asset) error {
	src, ok := assetText[a]
	if !ok {
		return &LoadError{Asset: a.Path(), Kind: KindNotFound, Err: fs.ErrNotExist}
	}
	return h.LoadEmbeddedScript(a.Path(), *src)
}

func (EmbeddedSource) LoadFile(h *Host, a Asset, global string) error {
	src, ok := assetText[a]
	if !ok {
		return &LoadError{Asset: a.Path(), Kind: KindNotFound, Err: fs.ErrNotExist}
	}
	return h.LoadEmbeddedFile(a.Path(), *src, global)
}

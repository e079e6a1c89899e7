package phase

import (
	"errors"
	"io/fs"
	"path"

	"github.com/vovakirdan/bitsybox/internal/core"
	"github.com/vovakirdan/bitsybox/internal/device"
	"github.com/vovakirdan/bitsybox/internal/registry"
	"github.com/vovakirdan/bitsybox/internal/script"
	"github.com/vovakirdan/bitsybox/internal/storage"
)

// Env is what a provider may load content from.
type Env struct {
	Flash  fs.FS
	Source script.Source
}

// Provider supplies the content and the terminal condition of a phase.
type Provider interface {
	// Kind is the journal phase name.
	Kind() string
	// Game names the payload being run, empty for the boot menu.
	Game() string
	// Load stages content into the host before on_load runs.
	Load(h *script.Host, env Env) error
	// AfterLoad runs once on_load returned.
	AfterLoad(h *script.Host) error
	// Poll runs after every presented frame and reports whether the phase
	// reached its terminal condition.
	Poll(h *script.Host, dev *device.Device) (bool, error)
}

// Selection is the game chosen in the boot menu.
type Selection struct {
	Path  string // flash path of the payload, e.g. games/garden.bitsy
	Count int    // number of games the menu offered
}

// Name returns the payload file name.
func (s Selection) Name() string {
	return path.Base(s.Path)
}

// BootMenu lists the games on the flash and runs the boot script until it
// reports a selection.
type BootMenu struct {
	count     int
	finished  bool
	selection Selection
}

func (b *BootMenu) Kind() string { return storage.PhaseBoot }

func (b *BootMenu) Game() string { return "" }

func (b *BootMenu) Load(h *script.Host, env Env) error {
	games, err := registry.Scan(env.Flash, registry.GamesDir, registry.Ext)
	if err != nil {
		return err
	}
	b.count = len(games)
	h.SetStringList(script.GameFiles, registry.Names(games))

	if err := env.Source.LoadScript(h, script.AssetBootScript); err != nil {
		return err
	}
	return env.Source.LoadFile(h, script.AssetBootData, script.GameData)
}

func (b *BootMenu) AfterLoad(*script.Host) error { return nil }

func (b *BootMenu) Poll(h *script.Host, _ *device.Device) (bool, error) {
	if !h.Truthy(script.BootFinished) {
		return false, nil
	}
	b.finished = true
	if name := h.String(script.SelectedGame); name != "" {
		b.selection = Selection{Path: path.Join(registry.GamesDir, name), Count: b.count}
	}
	return true, nil
}

// Selection returns the chosen game. ok is false until the menu finished
// with a game selected.
func (b *BootMenu) Selection() (Selection, bool) {
	return b.selection, b.finished && b.selection.Path != ""
}

// Count returns the number of games found on the flash.
func (b *BootMenu) Count() int { return b.count }

// resetHook makes reset_cur_game end the game instead of restarting it,
// so the console can return to the menu.
const resetHook = script.ResetCurGame + " = function() " + script.GameOver + " = true end"

// Game runs one selected payload until the game-over flag is set.
type Game struct {
	Selection Selection
}

func (g *Game) Kind() string { return storage.PhaseGame }

func (g *Game) Game() string { return g.Selection.Name() }

func (g *Game) Load(h *script.Host, env Env) error {
	if err := h.LoadFile(env.Flash, g.Selection.Path, script.GameData); err != nil {
		return err
	}
	h.SetGlobal(script.GameOver, false)
	return nil
}

func (g *Game) AfterLoad(h *script.Host) error {
	if g.Selection.Count <= 1 {
		return nil
	}
	return h.Eval("reset hook", resetHook)
}

func (g *Game) Poll(h *script.Host, dev *device.Device) (bool, error) {
	if dev.Button(int(core.ButtonCancel)) {
		if err := h.Call(script.ResetCurGame); err != nil && !errors.Is(err, script.ErrNoCallback) {
			return false, err
		}
	}
	return h.Truthy(script.GameOver), nil
}

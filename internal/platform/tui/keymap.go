package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bitsybox/internal/core"
)

// ConsoleKeyMap defines the key bindings shown in the help line.
type ConsoleKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ConsoleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Confirm, k.Cancel, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ConsoleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Cancel, k.Quit},
	}
}

// DefaultConsoleKeyMap returns the terminal's key bindings.
func DefaultConsoleKeyMap() ConsoleKeyMap {
	return ConsoleKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space/enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+r"),
			key.WithHelp("esc/^r", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "power off"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to the device's physical keys.
// Terminals report no key releases, so a press holds for one tick and
// auto-repeat keeps it held.
type KeyMapper struct {
	keys  ConsoleKeyMap
	table map[string][]core.Key
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		keys: DefaultConsoleKeyMap(),
		table: map[string][]core.Key{
			"up":        {core.KeyUp},
			"down":      {core.KeyDown},
			"left":      {core.KeyLeft},
			"right":     {core.KeyRight},
			"w":         {core.KeyW},
			"a":         {core.KeyA},
			"s":         {core.KeyS},
			"d":         {core.KeyD},
			"W":         {core.KeyW},
			"A":         {core.KeyA},
			"S":         {core.KeyS},
			"D":         {core.KeyD},
			"r":         {core.KeyR},
			" ":         {core.KeySpace},
			"enter":     {core.KeyReturn},
			"alt+enter": {core.KeyLAlt, core.KeyReturn},
			"esc":       {core.KeyEscape},
			"ctrl+r":    {core.KeyLCtrl, core.KeyR},
		},
	}
}

// Bindings returns the key map for the help view.
func (km *KeyMapper) Bindings() ConsoleKeyMap {
	return km.keys
}

// MapKey returns the physical keys a message presses and whether it is a
// quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (keys []core.Key, isQuit bool) {
	if key.Matches(msg, km.keys.Quit) {
		return nil, true
	}
	return km.table[msg.String()], false
}

// Press applies a key message to keys. It reports whether the message is a
// quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg, keys *core.Keys) bool {
	pressed, isQuit := km.MapKey(msg)
	keys.Press(pressed...)
	return isQuit
}

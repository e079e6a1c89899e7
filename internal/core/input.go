package core

import "sync/atomic"

// Key identifies one physical input line: a keyboard key, a d-pad line or
// a gamepad button. Scripts never see keys directly, only Buttons.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyR
	KeySpace
	KeyReturn
	KeyEscape
	KeyLCtrl
	KeyRCtrl
	KeyLAlt
	KeyRAlt
	KeyPadUp
	KeyPadDown
	KeyPadLeft
	KeyPadRight
	KeyPadA
	KeyPadB
	KeyPadX
	KeyPadY
	KeyPadStart

	keyCount
)

var keyNames = [keyCount]string{
	"Up", "Down", "Left", "Right", "W", "A", "S", "D", "R",
	"Space", "Return", "Escape", "LCtrl", "RCtrl", "LAlt", "RAlt",
	"PadUp", "PadDown", "PadLeft", "PadRight",
	"PadA", "PadB", "PadX", "PadY", "PadStart",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// Button is the semantic button code exposed to scripts.
type Button int

const (
	ButtonUp      Button = iota // 0
	ButtonDown                  // 1
	ButtonLeft                  // 2
	ButtonRight                 // 3
	ButtonConfirm               // 4
	ButtonCancel                // 5
)

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case ButtonUp:
		return "Up"
	case ButtonDown:
		return "Down"
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonConfirm:
		return "Confirm"
	case ButtonCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// Keys holds the pressed keys as one atomic bitset.
// The input producer (terminal reader, SSH session) sets bits with Press;
// the console loop drains them once per tick. A chord is set in a single
// atomic operation, so a Drain sees all of it or none of it.
type Keys struct {
	bits atomic.Uint32
}

// NewKeys creates an all-released key set.
func NewKeys() *Keys {
	return &Keys{}
}

// Press marks keys as pressed together until the next Drain. Unknown keys
// are ignored.
func (k *Keys) Press(keys ...Key) {
	if s := StateOf(keys...); s != 0 {
		k.bits.Or(uint32(s))
	}
}

// Drain returns the keys pressed since the previous Drain and clears them.
func (k *Keys) Drain() KeyState {
	return KeyState(k.bits.Swap(0))
}

// KeyState is an immutable snapshot of pressed keys, one bit per Key.
type KeyState uint32

// StateOf builds a snapshot with the given keys pressed.
func StateOf(keys ...Key) KeyState {
	var s KeyState
	for _, k := range keys {
		if k >= 0 && k < keyCount {
			s |= 1 << uint(k)
		}
	}
	return s
}

// Pressed reports whether key is down in this snapshot.
func (s KeyState) Pressed(key Key) bool {
	if key < 0 || key >= keyCount {
		return false
	}
	return s&(1<<uint(key)) != 0
}

func (s KeyState) any(keys ...Key) bool {
	for _, k := range keys {
		if s.Pressed(k) {
			return true
		}
	}
	return false
}

// Button reports whether the semantic button code is held, OR-ing every
// physical key mapped to it. Unknown codes are never held.
func (s KeyState) Button(code int) bool {
	switch Button(code) {
	case ButtonUp:
		return s.any(KeyUp, KeyW, KeyPadUp)
	case ButtonDown:
		return s.any(KeyDown, KeyS, KeyPadDown)
	case ButtonLeft:
		return s.any(KeyLeft, KeyA, KeyPadLeft)
	case ButtonRight:
		return s.any(KeyRight, KeyD, KeyPadRight)
	case ButtonConfirm:
		alt := s.any(KeyLAlt, KeyRAlt)
		return s.Pressed(KeySpace) ||
			(s.Pressed(KeyReturn) && !alt) ||
			s.any(KeyPadA, KeyPadB, KeyPadX, KeyPadY)
	case ButtonCancel:
		ctrl := s.any(KeyLCtrl, KeyRCtrl)
		return s.Pressed(KeyEscape) ||
			(ctrl && s.Pressed(KeyR)) ||
			s.Pressed(KeyPadStart)
	default:
		return false
	}
}

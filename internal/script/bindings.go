package script

import (
	"errors"

	lua "github.com/yuin/gopher-lua"
)

// install binds the API into the Lua globals the engine scripts call.
func (h *Host) install() {
	fns := map[string]lua.LGFunction{
		"bitsyLog":             h.bitsyLog,
		"bitsyGetButton":       h.bitsyGetButton,
		"bitsySetGraphicsMode": h.bitsySetGraphicsMode,
		"bitsySetColor":        h.bitsySetColor,
		"bitsyResetColors":     h.bitsyResetColors,
		"bitsyDrawBegin":       h.bitsyDrawBegin,
		"bitsyDrawEnd":         h.bitsyDrawEnd,
		"bitsyDrawPixel":       h.bitsyDrawPixel,
		"bitsyDrawTile":        h.bitsyDrawTile,
		"bitsyDrawTextbox":     h.bitsyDrawTextbox,
		"bitsyClear":           h.bitsyClear,
		"bitsyAddTile":         h.bitsyAddTile,
		"bitsyResetTiles":      h.bitsyResetTiles,
		"bitsySetTextboxSize":  h.bitsySetTextboxSize,
		"bitsyOnLoad":          h.register(OnLoad),
		"bitsyOnUpdate":        h.register(OnUpdate),
		"bitsyOnQuit":          h.register(OnQuit),
	}
	for name, fn := range fns {
		h.state.SetGlobal(name, h.state.NewFunction(fn))
	}

	mt := h.state.NewTypeMetatable(faultType)
	h.state.SetField(mt, "__tostring", h.state.NewFunction(faultString))
}

const faultType = "bitsy.fault"

// hostFault is a host-side error travelling through the script as a Lua
// error value. It stays attached to the value it was raised with, so a
// script that catches it and fails later for another reason does not
// inherit it.
type hostFault struct {
	where string
	err   error
}

func (f *hostFault) String() string {
	return f.where + f.err.Error()
}

// raise throws err into the script as a fault value.
func (h *Host) raise(L *lua.LState, err error) {
	ud := L.NewUserData()
	ud.Value = &hostFault{where: L.Where(1), err: err}
	L.SetMetatable(ud, L.GetTypeMetatable(faultType))
	L.Error(ud, 1)
}

func faultString(L *lua.LState) int {
	if f, ok := L.CheckUserData(1).Value.(*hostFault); ok {
		L.Push(lua.LString(f.String()))
		return 1
	}
	L.Push(lua.LString(faultType))
	return 1
}

// faultOf returns the host error an ApiError carries, if the script died
// of one. The error value is replaced by its message.
func faultOf(err error) error {
	var ae *lua.ApiError
	if !errors.As(err, &ae) {
		return nil
	}
	ud, ok := ae.Object.(*lua.LUserData)
	if !ok {
		return nil
	}
	f, ok := ud.Value.(*hostFault)
	if !ok {
		return nil
	}
	ae.Object = lua.LString(f.String())
	return f.err
}

func (h *Host) bitsyLog(L *lua.LState) int {
	h.api.Log(L.ToStringMeta(L.Get(1)).String())
	return 0
}

func (h *Host) bitsyGetButton(L *lua.LState) int {
	L.Push(lua.LBool(h.api.Button(L.ToInt(1))))
	return 1
}

func (h *Host) bitsySetGraphicsMode(L *lua.LState) int {
	h.api.SetGraphicsMode(L.ToInt(1))
	return 0
}

func (h *Host) bitsySetColor(L *lua.LState) int {
	if err := h.api.SetColor(L.ToInt(1), L.ToInt(2), L.ToInt(3), L.ToInt(4)); err != nil {
		h.raise(L, err)
	}
	return 0
}

func (h *Host) bitsyResetColors(L *lua.LState) int {
	h.api.ResetColors()
	return 0
}

func (h *Host) bitsyDrawBegin(L *lua.LState) int {
	h.api.DrawBegin(L.ToInt(1))
	return 0
}

func (h *Host) bitsyDrawEnd(L *lua.LState) int {
	h.api.DrawEnd()
	return 0
}

func (h *Host) bitsyDrawPixel(L *lua.LState) int {
	if err := h.api.DrawPixel(L.ToInt(1), L.ToInt(2), L.ToInt(3)); err != nil {
		h.raise(L, err)
	}
	return 0
}

func (h *Host) bitsyDrawTile(L *lua.LState) int {
	h.api.DrawTile(L.ToInt(1), L.ToInt(2), L.ToInt(3))
	return 0
}

func (h *Host) bitsyDrawTextbox(L *lua.LState) int {
	h.api.DrawTextbox(L.ToInt(1), L.ToInt(2))
	return 0
}

func (h *Host) bitsyClear(L *lua.LState) int {
	if err := h.api.Clear(L.ToInt(1)); err != nil {
		h.raise(L, err)
	}
	return 0
}

func (h *Host) bitsyAddTile(L *lua.LState) int {
	handle, err := h.api.AddTile()
	if err != nil {
		h.raise(L, err)
		return 0
	}
	L.Push(lua.LNumber(handle))
	return 1
}

func (h *Host) bitsyResetTiles(L *lua.LState) int {
	h.api.ResetTiles()
	return 0
}

func (h *Host) bitsySetTextboxSize(L *lua.LState) int {
	if err := h.api.SetTextboxSize(L.ToInt(1), L.ToInt(2)); err != nil {
		h.raise(L, err)
	}
	return 0
}

// register returns the binding that stores a lifecycle callback in its
// well-known global, replacing any earlier registration.
func (h *Host) register(global string) lua.LGFunction {
	return func(L *lua.LState) int {
		L.SetGlobal(global, L.CheckFunction(1))
		return 0
	}
}

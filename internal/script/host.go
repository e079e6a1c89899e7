// Package script hosts the sandboxed Lua engine that runs the console's
// engine scripts and games. A Host owns one Lua state for the lifetime of a
// phase, binds the native drawing/input primitives into it, loads scripts
// and content payloads, and invokes the lifecycle callbacks.
package script

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

// Host is one isolated script execution context.
type Host struct {
	state  *lua.LState
	api    API
	logger *log.Logger
}

// NewHost creates a sandboxed Lua state with the API installed.
// Cancelling ctx interrupts whatever script is running.
func NewHost(ctx context.Context, api API, logger *log.Logger) (h *Host, err error) {
	if logger == nil {
		logger = log.Default()
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer func() {
		if r := recover(); r != nil {
			L.Close()
			h = nil
			err = &FatalError{Op: "engine install", Err: fmt.Errorf("%v", r)}
		}
	}()

	h = &Host{state: L, api: api, logger: logger}
	if err := h.openLibs(); err != nil {
		L.Close()
		return nil, &FatalError{Op: "engine install", Err: err}
	}
	h.install()

	if ctx != nil {
		L.SetContext(ctx)
	}
	return h, nil
}

// openLibs opens the pure libraries only: no io, os, package or debug.
func (h *Host) openLibs() error {
	libs := []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
	for _, lib := range libs {
		err := h.state.CallByParam(lua.P{
			Fn:      h.state.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			return fmt.Errorf("open %s: %w", lib.name, err)
		}
	}

	// The base library can reach the host filesystem through these.
	for _, name := range []string{"dofile", "loadfile", "require", "module"} {
		h.state.SetGlobal(name, lua.LNil)
	}
	return nil
}

// Detach removes the context so a final callback can still run after the
// phase context was cancelled.
func (h *Host) Detach() {
	h.state.RemoveContext()
}

// Close releases the Lua state.
func (h *Host) Close() {
	h.state.Close()
}

// LoadScript reads a script from fsys and evaluates it.
func (h *Host) LoadScript(fsys fs.FS, path string) error {
	h.logger.Debug("loading script", "path", path)
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return readError(path, err)
	}
	return h.eval(path, string(data))
}

// LoadFile reads a content payload from fsys and stores it, unevaluated,
// in the global variable named global.
func (h *Host) LoadFile(fsys fs.FS, path, global string) error {
	h.logger.Debug("loading file", "path", path, "global", global)
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return readError(path, err)
	}
	h.state.SetGlobal(global, lua.LString(data))
	return nil
}

// LoadEmbeddedScript evaluates a script compiled into the binary.
func (h *Host) LoadEmbeddedScript(name, src string) error {
	h.logger.Debug("loading embedded script", "name", name)
	return h.eval(name, src)
}

// LoadEmbeddedFile stages a compiled-in payload into a global variable.
func (h *Host) LoadEmbeddedFile(name, src, global string) error {
	h.logger.Debug("loading embedded file", "name", name, "global", global)
	h.state.SetGlobal(global, lua.LString(src))
	return nil
}

// Eval runs a chunk of host-provided code in the script context.
func (h *Host) Eval(name, chunk string) error {
	fn, err := h.state.LoadString(chunk)
	if err != nil {
		return &CallbackError{Callback: name, Err: err}
	}
	if err := h.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}); err != nil {
		if fatal := asFatal(name, err); fatal != nil {
			return fatal
		}
		return &CallbackError{Callback: name, Err: err, Cause: faultOf(err)}
	}
	return nil
}

func (h *Host) eval(name, src string) error {
	fn, err := h.state.Load(strings.NewReader(src), name)
	if err != nil {
		return &LoadError{Asset: name, Kind: KindSyntax, Err: err}
	}
	if err := h.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}); err != nil {
		if fatal := asFatal(name, err); fatal != nil {
			return fatal
		}
		return &LoadError{Asset: name, Kind: KindRuntime, Err: err, Cause: faultOf(err)}
	}
	return nil
}

// asFatal turns a Go panic recovered by the VM into a FatalError. Script
// errors stay recoverable.
func asFatal(op string, err error) error {
	var ae *lua.ApiError
	if errors.As(err, &ae) && ae.Type == lua.ApiErrorPanic {
		return &FatalError{Op: op, Err: err}
	}
	return nil
}

func readError(path string, err error) error {
	kind := KindUnreadable
	if errors.Is(err, fs.ErrNotExist) {
		kind = KindNotFound
	}
	return &LoadError{Asset: path, Kind: kind, Err: err}
}

// HasCallback reports whether the global name holds a function.
func (h *Host) HasCallback(name string) bool {
	return h.state.GetGlobal(name).Type() == lua.LTFunction
}

// Call invokes the function stored in the global name. Arguments are
// converted with toLua.
func (h *Host) Call(name string, args ...any) error {
	fn := h.state.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return &CallbackError{Callback: name, Err: ErrNoCallback}
	}

	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = h.toLua(a)
	}

	if err := h.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, largs...); err != nil {
		if fatal := asFatal(name, err); fatal != nil {
			return fatal
		}
		return &CallbackError{Callback: name, Err: err, Cause: faultOf(err)}
	}
	return nil
}

// Global returns the raw value of a global, suitable as a Call argument.
func (h *Host) Global(name string) lua.LValue {
	return h.state.GetGlobal(name)
}

// SetGlobal assigns a Go value to a global.
func (h *Host) SetGlobal(name string, v any) {
	h.state.SetGlobal(name, h.toLua(v))
}

// SetStringList assigns a Lua array of strings to a global.
func (h *Host) SetStringList(name string, items []string) {
	h.SetGlobal(name, items)
}

// Truthy reports whether a global is neither nil nor false.
func (h *Host) Truthy(name string) bool {
	return lua.LVAsBool(h.state.GetGlobal(name))
}

// String returns a global as a string, or "" when it is not a string or number.
func (h *Host) String(name string) string {
	return lua.LVAsString(h.state.GetGlobal(name))
}

// Len returns the length of a global table, or 0 when it is not a table.
func (h *Host) Len(name string) int {
	if t, ok := h.state.GetGlobal(name).(*lua.LTable); ok {
		return t.Len()
	}
	return 0
}

func (h *Host) toLua(v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return x
	case string:
		return lua.LString(x)
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case []string:
		t := h.state.NewTable()
		for _, s := range x {
			t.Append(lua.LString(s))
		}
		return t
	default:
		return lua.LString(fmt.Sprint(x))
	}
}

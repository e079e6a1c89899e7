package script

import (
	"errors"
	"fmt"
)

// ErrNoCallback is returned when a lifecycle callback was never registered.
var ErrNoCallback = errors.New("callback not registered")

// LoadKind classifies a load failure.
type LoadKind int

const (
	KindNotFound LoadKind = iota
	KindUnreadable
	KindSyntax
	KindRuntime
)

// String returns a short name for the kind.
func (k LoadKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindUnreadable:
		return "unreadable"
	case KindSyntax:
		return "syntax error"
	case KindRuntime:
		return "runtime error"
	default:
		return "unknown"
	}
}

// LoadError reports a script or content payload that could not be loaded.
type LoadError struct {
	Asset string
	Kind  LoadKind
	Err   error
	Cause error // host-side fault raised into the script, if any
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("script: load %s: %s: %v", e.Asset, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return nonNil(e.Err, e.Cause)
}

// CallbackError reports an error thrown by a lifecycle callback or by a
// chunk the host evaluated on the script's behalf.
type CallbackError struct {
	Callback string
	Err      error
	Cause    error // host-side fault raised into the script, if any
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("script: %s: %v", e.Callback, e.Err)
}

func (e *CallbackError) Unwrap() []error {
	return nonNil(e.Err, e.Cause)
}

// FatalError is an unrecoverable host failure. The console does not try to
// recover from it; the process restarts the console from scratch.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("script: fatal during %s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func nonNil(errs ...error) []error {
	out := errs[:0:0]
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// Package phase drives one script session (the boot menu or a game) through
// its lifecycle: load the engine, load the content, run the frame loop,
// quit and tear down.
package phase

// State is a lifecycle stage of a phase run.
type State int

const (
	StateInit State = iota
	StateEngineLoaded
	StateContentLoaded
	StateRunning
	StateQuitting
	StateDestroyed
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateEngineLoaded:
		return "engine-loaded"
	case StateContentLoaded:
		return "content-loaded"
	case StateRunning:
		return "running"
	case StateQuitting:
		return "quitting"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

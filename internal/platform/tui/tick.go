// Package tui is the terminal side of the console: it shows presented frames
// in a Bubble Tea program, turns key messages into device key presses, and
// serves the same console to SSH sessions.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bitsybox/internal/core"
)

// FrameMsg carries the latest presented frame to the model.
type FrameMsg struct {
	Frame *core.Surface
}

// DoneMsg reports that the console behind the model stopped.
type DoneMsg struct {
	Err error
}

// waitFrame returns a command that blocks until the frontend has a frame.
// It yields nil once the frontend is closed.
func waitFrame(f *Frontend) tea.Cmd {
	return func() tea.Msg {
		select {
		case frame := <-f.frames:
			return FrameMsg{Frame: frame}
		case <-f.closed:
			return nil
		}
	}
}

// waitDone returns a command that blocks until the session's console ends.
func waitDone(s *Session) tea.Cmd {
	return func() tea.Msg {
		<-s.done
		return DoneMsg{Err: s.err}
	}
}

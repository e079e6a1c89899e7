package tui

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/bitsybox/internal/core"
)

// Frontend is the terminal display. Present never blocks the console tick:
// the frame waits in a one-slot channel and a newer frame replaces one the
// model has not picked up yet.
type Frontend struct {
	frames    chan *core.Surface
	closed    chan struct{}
	closeOnce sync.Once
	presented atomic.Uint64
	dropped   atomic.Uint64
}

// NewFrontend creates an open frontend.
func NewFrontend() *Frontend {
	return &Frontend{
		frames: make(chan *core.Surface, 1),
		closed: make(chan struct{}),
	}
}

// Present hands a copy of frame to the model.
func (f *Frontend) Present(frame *core.Surface) error {
	select {
	case <-f.closed:
		return nil
	default:
	}

	c := frame.Clone()
	for {
		select {
		case f.frames <- c:
			f.presented.Add(1)
			return nil
		default:
		}
		select {
		case <-f.frames:
			f.dropped.Add(1)
		default:
		}
	}
}

// Latest returns the pending frame without waiting, or nil.
func (f *Frontend) Latest() *core.Surface {
	select {
	case frame := <-f.frames:
		return frame
	default:
		return nil
	}
}

// Close releases anything waiting for a frame. Later Presents are ignored.
func (f *Frontend) Close() {
	f.closeOnce.Do(func() { close(f.closed) })
}

// Presented returns how many frames were handed over.
func (f *Frontend) Presented() uint64 { return f.presented.Load() }

// Dropped returns how many frames were replaced before the model saw them.
func (f *Frontend) Dropped() uint64 { return f.dropped.Load() }

// Headless is a display for running without a terminal. It counts frames
// and keeps the last one.
type Headless struct {
	mu     sync.Mutex
	frames uint64
	last   *core.Surface
}

// Present records frame.
func (h *Headless) Present(frame *core.Surface) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last == nil || h.last.Width() != frame.Width() || h.last.Height() != frame.Height() {
		h.last = frame.Clone()
	} else {
		h.last.CopyFrom(frame)
	}
	h.frames++
	return nil
}

// Frames returns the number of frames presented.
func (h *Headless) Frames() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Last returns a copy of the last frame, or nil before the first one.
func (h *Headless) Last() *core.Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last == nil {
		return nil
	}
	return h.last.Clone()
}

// RunFunc runs a console until it ends or ctx is cancelled.
type RunFunc func(ctx context.Context) error

// Session is one console running on its own goroutine, coupled to the
// terminal that shows it.
type Session struct {
	Frontend *Frontend
	Keys     *core.Keys

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// StartSession starts run on a new goroutine. The frontend is closed when
// run returns.
func StartSession(ctx context.Context, frontend *Frontend, keys *core.Keys, run RunFunc) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		Frontend: frontend,
		Keys:     keys,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		defer frontend.Close()
		s.err = run(ctx)
	}()
	return s
}

// Stop cancels the console. It interrupts a running script.
func (s *Session) Stop() {
	s.cancel()
}

// Wait blocks until the console has ended and returns its error.
func (s *Session) Wait() error {
	<-s.done
	return s.err
}

package phase

import (
	"fmt"
	"time"
)

// DefaultTick is the frame period of the reference handheld (about 60 Hz).
const DefaultTick = 16 * time.Millisecond

// maxWait bounds a single Wait so the loop stays responsive to input and
// cancellation.
const maxWait = time.Millisecond

// Policy decides what happens to accumulated time when a tick fires.
type Policy int

const (
	// PolicyDrop discards the accumulated time, so a late tick never
	// causes a burst of catch-up ticks.
	PolicyDrop Policy = iota
	// PolicyCarry keeps the remainder past the tick period.
	PolicyCarry
)

func (p Policy) String() string {
	switch p {
	case PolicyDrop:
		return "drop"
	case PolicyCarry:
		return "carry"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a config value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "drop":
		return PolicyDrop, nil
	case "carry":
		return PolicyCarry, nil
	default:
		return PolicyDrop, fmt.Errorf("phase: unknown scheduler policy %q", s)
	}
}

// Scheduler is a fixed-period frame gate driven by elapsed time.
type Scheduler struct {
	tick    time.Duration
	policy  Policy
	clock   Clock
	acc     time.Duration
	last    time.Time
	started bool
}

// NewScheduler creates a scheduler firing every tick. A nil clock uses the
// system clock.
func NewScheduler(tick time.Duration, policy Policy, clock Clock) *Scheduler {
	if tick <= 0 {
		tick = DefaultTick
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{tick: tick, policy: policy, clock: clock}
}

// Tick returns the frame period.
func (s *Scheduler) Tick() time.Duration { return s.tick }

// Step adds delta to the accumulator and reports whether a tick is due.
func (s *Scheduler) Step(delta time.Duration) bool {
	if delta > 0 {
		s.acc += delta
	}
	if s.acc < s.tick {
		return false
	}
	if s.policy == PolicyCarry {
		s.acc -= s.tick
	} else {
		s.acc = 0
	}
	return true
}

// Advance measures the time since the previous call and steps by it.
// The first call only starts the clock.
func (s *Scheduler) Advance() bool {
	now := s.clock.Now()
	if !s.started {
		s.started = true
		s.last = now
		return false
	}
	delta := now.Sub(s.last)
	s.last = now
	return s.Step(delta)
}

// Wait sleeps until the next tick is due, at most maxWait.
func (s *Scheduler) Wait() {
	remaining := s.tick - s.acc
	if remaining > maxWait {
		remaining = maxWait
	}
	if remaining > 0 {
		s.clock.Sleep(remaining)
	}
}

// Reset clears the accumulator and restarts the clock.
func (s *Scheduler) Reset() {
	s.acc = 0
	s.started = false
}

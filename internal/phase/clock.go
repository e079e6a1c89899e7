package phase

import "time"

// Clock is the time source of the scheduler.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock reads the monotonic wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Package console runs the handheld's top-level loop: boot menu, selected
// game, back to the menu, for as long as the console is switched on.
package console

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bitsybox/internal/device"
	"github.com/vovakirdan/bitsybox/internal/phase"
	"github.com/vovakirdan/bitsybox/internal/script"
	"github.com/vovakirdan/bitsybox/internal/storage"
)

// ErrTooManyFailures is wrapped in the FatalError Run returns once too
// many phases failed in a row.
var ErrTooManyFailures = errors.New("console: too many consecutive failures")

// DefaultMaxFailures is used when Options.MaxConsecutiveFailures is zero.
const DefaultMaxFailures = 3

// Options configures a Console.
type Options struct {
	Phase                  phase.Options
	MaxConsecutiveFailures int
	Logger                 *log.Logger
}

// Stats counts what a console did since it was created.
type Stats struct {
	Boots    int
	Games    int
	Failures int
	Restarts int
}

// Console owns one device and runs phases on it, one at a time.
type Console struct {
	driver      *phase.Driver
	running     atomic.Bool
	maxFailures int
	logger      *log.Logger
	stats       Stats
}

// New creates a console for dev. The console's running flag is wired into
// the phase driver so Stop ends the current frame loop.
func New(dev *device.Device, opts Options) *Console {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Phase.Logger == nil {
		opts.Phase.Logger = opts.Logger
	}
	if opts.MaxConsecutiveFailures <= 0 {
		opts.MaxConsecutiveFailures = DefaultMaxFailures
	}

	c := &Console{
		maxFailures: opts.MaxConsecutiveFailures,
		logger:      opts.Logger,
	}
	c.running.Store(true)
	opts.Phase.Running = c.running.Load
	c.driver = phase.NewDriver(dev, opts.Phase)
	return c
}

// Stop asks the console to switch off after the current tick. Safe to call
// from any goroutine.
func (c *Console) Stop() {
	c.running.Store(false)
}

// Running reports whether the console has not been stopped.
func (c *Console) Running() bool {
	return c.running.Load()
}

// Stats returns counters for this console.
func (c *Console) Stats() Stats {
	return c.stats
}

// Driver exposes the phase driver.
func (c *Console) Driver() *phase.Driver {
	return c.driver
}

// Run loops boot menu and games until the console is stopped, ctx is
// cancelled, the boot menu ends without a selection, or a fatal error
// occurs. Script failures restart the cycle until too many happen in a row;
// only a game that runs to completion resets the count.
func (c *Console) Run(ctx context.Context) error {
	failures := 0

	fail := func(err error) error {
		c.stats.Failures++
		failures++
		if phase.IsFatal(err) {
			return err
		}
		if failures >= c.maxFailures {
			return &script.FatalError{
				Op:  "console",
				Err: fmt.Errorf("%w (%d in a row): %w", ErrTooManyFailures, failures, err),
			}
		}
		c.logger.Error("phase failed, restarting", "err", err, "failures", failures)
		return nil
	}

	for c.Running() && ctx.Err() == nil {
		c.stats.Boots++
		sel, ok, err := c.driver.Boot(ctx)
		if err != nil {
			if ferr := fail(err); ferr != nil {
				return ferr
			}
			continue
		}
		if !ok {
			c.logger.Info("boot menu closed without a selection")
			return nil
		}

		c.stats.Games++
		c.logger.Info("starting game", "game", sel.Name(), "games", sel.Count)
		res, err := c.driver.Play(ctx, sel)
		if err != nil {
			if ferr := fail(err); ferr != nil {
				return ferr
			}
			continue
		}
		failures = 0
		if res.Outcome != storage.OutcomeFinished {
			// Stopped, cancelled or out of ticks.
			return nil
		}
		if sel.Count > 1 {
			c.logger.Debug("game over, back to the menu", "game", sel.Name())
			continue
		}
		c.stats.Restarts++
		c.logger.Info("game over, restarting console", "game", sel.Name())
	}
	return nil
}

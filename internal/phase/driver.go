package phase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bitsybox/internal/device"
	"github.com/vovakirdan/bitsybox/internal/script"
	"github.com/vovakirdan/bitsybox/internal/storage"
)

// Error reports a phase that failed. State is the stage the driver was
// trying to reach.
type Error struct {
	Phase string
	State State
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("phase %s: %s: %v", e.Phase, e.State, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Recorder journals finished phase runs.
type Recorder interface {
	RecordRun(r storage.Run) (int64, error)
}

// Options configures a Driver.
type Options struct {
	Flash    fs.FS
	Source   script.Source // defaults to FSSource over Flash
	Tick     time.Duration
	Policy   Policy
	Clock    Clock
	MaxTicks int         // 0 runs until the terminal condition
	Running  func() bool // console-wide continue flag, nil means always
	Observer func(State)
	Recorder Recorder
	Logger   *log.Logger
}

// Result summarizes a phase run.
type Result struct {
	Ticks   int
	Outcome string
}

// Driver runs phases against one device. It is not safe for concurrent use.
type Driver struct {
	dev    *device.Device
	opts   Options
	logger *log.Logger
	state  State
}

// NewDriver creates a driver for dev.
func NewDriver(dev *device.Device, opts Options) *Driver {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Source == nil {
		opts.Source = script.FSSource{FS: opts.Flash}
	}
	return &Driver{dev: dev, opts: opts, logger: opts.Logger, state: StateDestroyed}
}

// State returns the current lifecycle state.
func (d *Driver) State() State { return d.state }

// Device returns the driven device.
func (d *Driver) Device() *device.Device { return d.dev }

func (d *Driver) enter(kind string, s State) {
	d.state = s
	d.logger.Debug("phase state", "phase", kind, "state", s)
	if d.opts.Observer != nil {
		d.opts.Observer(s)
	}
}

func (d *Driver) running() bool {
	return d.opts.Running == nil || d.opts.Running()
}

// Boot runs the boot menu. ok reports whether a game was selected.
func (d *Driver) Boot(ctx context.Context) (sel Selection, ok bool, err error) {
	menu := &BootMenu{}
	if _, err := d.Run(ctx, menu); err != nil {
		return Selection{}, false, err
	}
	sel, ok = menu.Selection()
	return sel, ok, nil
}

// Play runs the selected game until it is over.
func (d *Driver) Play(ctx context.Context, sel Selection) (Result, error) {
	return d.Run(ctx, &Game{Selection: sel})
}

// Run takes p through the whole lifecycle. on_quit runs and the script
// state is destroyed even when loading or a callback failed; the failure
// is returned afterwards as an *Error.
func (d *Driver) Run(ctx context.Context, p Provider) (Result, error) {
	start := d.opts.Clock.Now()
	kind := p.Kind()
	res := Result{Outcome: storage.OutcomeFailed}

	d.enter(kind, StateInit)
	d.dev.ResetPhase()
	h, err := script.NewHost(ctx, d.dev, d.logger)
	if err != nil {
		d.enter(kind, StateDestroyed)
		d.record(p, res, err, start)
		return res, &Error{Phase: kind, State: StateInit, Err: err}
	}

	failed := StateInit
	if err = d.loadEngine(h); err != nil {
		failed = StateEngineLoaded
	} else {
		d.enter(kind, StateEngineLoaded)
		if err = d.loadContent(h, p); err != nil {
			failed = StateContentLoaded
		} else {
			d.enter(kind, StateContentLoaded)
			d.enter(kind, StateRunning)
			res, err = d.loop(ctx, h, p)
			failed = StateRunning
		}
	}

	if err != nil && ctx.Err() != nil {
		// Interrupted by cancellation, not a script failure.
		err = nil
		res.Outcome = storage.OutcomeCancelled
	}

	d.enter(kind, StateQuitting)
	h.Detach()
	if h.HasCallback(script.OnQuit) {
		if qerr := h.Call(script.OnQuit); qerr != nil {
			d.logger.Warn("on_quit failed", "phase", kind, "err", qerr)
		}
	}

	h.Close()
	d.enter(kind, StateDestroyed)
	d.record(p, res, err, start)

	if err != nil {
		res.Outcome = storage.OutcomeFailed
		return res, &Error{Phase: kind, State: failed, Err: err}
	}
	return res, nil
}

func (d *Driver) loadEngine(h *script.Host) error {
	for _, a := range script.EngineScripts {
		if err := d.opts.Source.LoadScript(h, a); err != nil {
			return err
		}
	}
	return d.opts.Source.LoadFile(h, script.AssetDefaultFont, script.DefaultFont)
}

func (d *Driver) loadContent(h *script.Host, p Provider) error {
	env := Env{Flash: d.opts.Flash, Source: d.opts.Source}
	if err := p.Load(h, env); err != nil {
		return err
	}
	if err := h.Call(script.OnLoad, h.Global(script.GameData), h.Global(script.DefaultFont)); err != nil {
		return err
	}
	return p.AfterLoad(h)
}

func (d *Driver) loop(ctx context.Context, h *script.Host, p Provider) (Result, error) {
	sched := NewScheduler(d.opts.Tick, d.opts.Policy, d.opts.Clock)
	res := Result{}

	for {
		if ctx.Err() != nil || !d.running() {
			res.Outcome = storage.OutcomeCancelled
			return res, nil
		}
		if d.opts.MaxTicks > 0 && res.Ticks >= d.opts.MaxTicks {
			res.Outcome = storage.OutcomeLimit
			return res, nil
		}
		if !sched.Advance() {
			sched.Wait()
			continue
		}

		d.dev.PollInput()
		d.dev.BeginFrame()
		if err := h.Call(script.OnUpdate); err != nil {
			res.Outcome = storage.OutcomeFailed
			return res, err
		}
		if err := d.dev.Present(); err != nil {
			res.Outcome = storage.OutcomeFailed
			return res, fmt.Errorf("present frame: %w", err)
		}
		res.Ticks++

		done, err := p.Poll(h, d.dev)
		if err != nil {
			res.Outcome = storage.OutcomeFailed
			return res, err
		}
		if done {
			res.Outcome = storage.OutcomeFinished
			return res, nil
		}
	}
}

func (d *Driver) record(p Provider, res Result, err error, start time.Time) {
	elapsed := d.opts.Clock.Now().Sub(start)
	d.logger.Info("phase finished",
		"phase", p.Kind(), "game", p.Game(), "outcome", outcome(res, err),
		"ticks", res.Ticks, "elapsed", elapsed)

	if d.opts.Recorder == nil {
		return
	}
	run := storage.Run{
		Phase:    p.Kind(),
		Game:     p.Game(),
		Outcome:  outcome(res, err),
		Ticks:    res.Ticks,
		Duration: elapsed,
	}
	if err != nil {
		run.Error = err.Error()
	}
	if _, rerr := d.opts.Recorder.RecordRun(run); rerr != nil {
		d.logger.Warn("journal write failed", "err", rerr)
	}
}

func outcome(res Result, err error) string {
	if err != nil {
		return storage.OutcomeFailed
	}
	return res.Outcome
}

// IsFatal reports whether err requires restarting the whole console.
func IsFatal(err error) bool {
	var fe *script.FatalError
	return errors.As(err, &fe)
}

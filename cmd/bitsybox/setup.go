package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bitsybox/content"
	"github.com/vovakirdan/bitsybox/internal/config"
	"github.com/vovakirdan/bitsybox/internal/console"
	"github.com/vovakirdan/bitsybox/internal/core"
	"github.com/vovakirdan/bitsybox/internal/device"
	"github.com/vovakirdan/bitsybox/internal/phase"
	"github.com/vovakirdan/bitsybox/internal/platform/tui"
	"github.com/vovakirdan/bitsybox/internal/script"
	"github.com/vovakirdan/bitsybox/internal/storage"
)

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagContent != "" {
		cfg.Content.Root = flagContent
	}
	if flagRestarts >= 0 {
		cfg.Runtime.Restarts = flagRestarts
	}
	return cfg, cfg.Validate()
}

// mustLoadConfig loads the configuration or exits.
func mustLoadConfig() config.Config {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger creates the console logger writing to w.
func newLogger(cfg config.Config, w io.Writer) *log.Logger {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "bitsybox",
		Level:           level,
	})
}

// openLogFile opens the log file used while the terminal frontend owns the
// screen.
func openLogFile(cfg config.Config) (*os.File, error) {
	path := config.ExpandHome(cfg.Log.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// openFlash returns the flash filesystem: the configured directory, or the
// built-in image when none is set.
func openFlash(cfg config.Config) (fs.FS, error) {
	if cfg.Content.Root == "" {
		return content.FS(), nil
	}
	root := config.ExpandHome(cfg.Content.Root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("flash %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("flash %s: not a directory", root)
	}
	return os.DirFS(root), nil
}

// sourceFor picks where the system scripts are loaded from.
func sourceFor(cfg config.Config, flash fs.FS) script.Source {
	switch cfg.Content.Source {
	case config.SourceFlash:
		return script.FSSource{FS: flash}
	case config.SourceEmbedded:
		return script.EmbeddedSource{}
	default:
		return script.DefaultSource(flash)
	}
}

// openJournal opens the session journal. A journal that cannot be opened
// only costs the history.
func openJournal(cfg config.Config, logger *log.Logger) *storage.Store {
	if !cfg.Journal.Enabled {
		return nil
	}
	store, err := storage.Open(cfg.Journal.Path)
	if err != nil {
		logger.Warn("session journal unavailable", "path", cfg.Journal.Path, "err", err)
		return nil
	}
	return store
}

// machine is what every console built from one configuration shares.
type machine struct {
	cfg      config.Config
	flash    fs.FS
	source   script.Source
	policy   phase.Policy
	journal  *storage.Store
	maxTicks int
}

func newMachine(cfg config.Config, logger *log.Logger) (*machine, error) {
	flash, err := openFlash(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := phase.ParsePolicy(cfg.Timing.Policy)
	if err != nil {
		return nil, err
	}
	return &machine{
		cfg:     cfg,
		flash:   flash,
		source:  sourceFor(cfg, flash),
		policy:  policy,
		journal: openJournal(cfg, logger),
	}, nil
}

// Close closes the journal.
func (m *machine) Close() {
	if m.journal != nil {
		m.journal.Close()
	}
}

// factory builds consoles on a fresh device presenting to display.
func (m *machine) factory(display device.Display, keys *core.Keys, logger *log.Logger) console.Factory {
	return func() *console.Console {
		dev := device.New(m.cfg.Device.Core(), keys, display, logger)
		opts := phase.Options{
			Flash:    m.flash,
			Source:   m.source,
			Tick:     m.cfg.Timing.Tick(),
			Policy:   m.policy,
			MaxTicks: m.maxTicks,
			Logger:   logger.WithPrefix("phase"),
		}
		if m.journal != nil {
			opts.Recorder = m.journal
		}
		return console.New(dev, console.Options{
			Phase:                  opts,
			MaxConsecutiveFailures: m.cfg.Runtime.MaxConsecutiveFailures,
			Logger:                 logger,
		})
	}
}

// runner returns the console's power cycle for one display: run, and
// restart after fatal errors up to the configured limit.
func (m *machine) runner(display device.Display, keys *core.Keys, logger *log.Logger) tui.RunFunc {
	build := m.factory(display, keys, logger)
	return func(ctx context.Context) error {
		return console.RunWithRestarts(ctx, build, m.cfg.Runtime.Restarts, logger)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bitsybox/internal/core"
	"github.com/vovakirdan/bitsybox/internal/platform/tui"
)

var (
	flagHeadless bool
	flagTicks    int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Switch the console on",
	Long: `Switch the console on in this terminal. It boots into the game menu;
pick a game and play until it ends, then the console returns to the menu.
With a single game on the flash the console restarts into it instead.

Controls:
  Arrows/WASD      - Move
  Space/Enter      - Confirm
  Esc/Ctrl+R       - Cancel (restarts the running game)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Power off

Without a terminal, or with --headless, the console runs with no display.
--ticks limits every phase to that many frames.

Examples:
  bitsybox run
  bitsybox run --content ./flash
  bitsybox run --headless --ticks 600`,
	Run: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without a display")
	runCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Frame limit per phase (0 = unlimited)")
}

func runRun(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive := !flagHeadless && term.IsTerminal(int(os.Stdout.Fd()))

	logger := newLogger(cfg, os.Stderr)
	if interactive {
		logFile, err := openLogFile(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		logger = newLogger(cfg, logFile)
	} else if !flagHeadless {
		logger.Warn("stdout is not a terminal, running headless")
	}

	m, err := newMachine(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()
	m.maxTicks = flagTicks

	if interactive {
		err = runInteractive(ctx, m, logger)
	} else {
		err = runHeadless(ctx, m, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Console error: %v\n", err)
		os.Exit(1)
	}
}

// runInteractive shows the console in this terminal.
func runInteractive(ctx context.Context, m *machine, logger *log.Logger) error {
	frontend := tui.NewFrontend()
	keys := core.NewKeys()
	return tui.Run(ctx, "BITSYBOX", frontend, keys, m.runner(frontend, keys, logger))
}

// runHeadless runs the console with no display and reports what it drew.
func runHeadless(ctx context.Context, m *machine, logger *log.Logger) error {
	display := &tui.Headless{}
	start := time.Now()

	err := m.runner(display, core.NewKeys(), logger)(ctx)

	logger.Info("console off",
		"frames", display.Frames(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return err
}

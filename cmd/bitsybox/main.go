// bitsybox is a handheld game console that lives in the terminal. It boots
// into a menu of the games on its flash, runs the chosen one, and returns to
// the menu when the game ends.
//
// Usage:
//
//	bitsybox run             - Switch the console on in this terminal
//	bitsybox serve           - Serve a console to every SSH session
//	bitsybox games           - List the games on the flash
//	bitsybox history         - Show the session journal
//	bitsybox config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Configuration file (default: ~/.bitsybox/config.yaml)
//	--log-level <lvl>   - debug, info, warn or error
//	--content <dir>     - Flash directory (default: built-in image)
//	--restarts <n>      - Console restarts after a fatal error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagContent  string
	flagRestarts int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bitsybox",
	Short: "bitsybox - a tiny game console in your terminal",
	Long: `bitsybox emulates a small handheld console. It boots into a menu
listing the games on its flash, runs the selected game, and goes back to
the menu when the game is over.

Available commands:
  run      - Switch the console on in this terminal
  serve    - Start SSH server for remote play
  games    - List the games on the flash
  history  - Show past boot menus and games
  config   - Print the effective configuration

Examples:
  bitsybox run
  bitsybox run --headless --ticks 600
  bitsybox run --content ./flash
  bitsybox serve --ssh :23235
  bitsybox history`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagContent, "content", "", "Flash directory (empty uses the configured root or the built-in image)")
	rootCmd.PersistentFlags().IntVar(&flagRestarts, "restarts", -1, "Console restarts after a fatal error (-1 uses the config)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bitsybox/internal/platform/tui"
	"github.com/vovakirdan/bitsybox/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryPlain bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the session journal",
	Long: `Display past boot menus and games: when they ran, how they ended and
how many frames they lasted, plus how often each game was played.

In a terminal the journal opens as a scrollable table; --plain prints it.

Examples:
  bitsybox history
  bitsybox history --plain --limit 50
  bitsybox history --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Runs to print with --plain")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print instead of opening the table")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the whole journal")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	store, err := storage.Open(cfg.Journal.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Journal cleared.")
		return
	}

	if !flagHistoryPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printHistory(store)
}

// printHistory writes the journal as plain text.
func printHistory(store *storage.Store) {
	runs, err := store.RecentRuns(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	counts, err := store.PlayCounts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving play counts: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Println("Recent runs")
	fmt.Println()
	fmt.Printf("  %-12s  %-5s  %-20s  %-9s  %7s  %s\n", "When", "Phase", "Game", "Outcome", "Ticks", "Error")
	for _, r := range runs {
		game := r.Game
		if game == "" {
			game = "-"
		}
		fmt.Printf("  %-12s  %-5s  %-20s  %-9s  %7d  %s\n",
			r.CreatedAt.Local().Format("Jan 02 15:04"), r.Phase, game, r.Outcome, r.Ticks, r.Error)
	}

	if len(counts) > 0 {
		fmt.Println()
		fmt.Println("Most played")
		fmt.Println()
		for _, c := range counts {
			fmt.Printf("  %-20s  %3d  last %s\n", c.Game, c.Count, c.Last.Local().Format("Jan 02 15:04"))
		}
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bitsybox/internal/registry"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the games on the flash",
	Long: `Shows every game payload the boot menu will offer, in menu order,
with the title taken from the first line of each payload.`,
	Run: runGames,
}

func runGames(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	flash, err := openFlash(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	games, err := registry.Scan(flash, registry.GamesDir, registry.Ext)
	if err != nil {
		newLogger(cfg, os.Stderr).Error("cannot list games", "err", err)
		os.Exit(1)
	}

	if len(games) == 0 {
		fmt.Println("No games on the flash.")
		return
	}

	fmt.Println("Games on the flash:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, g := range games {
		maxNameLen = max(maxNameLen, len(g.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Title")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxNameLen, g.Name, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'bitsybox run' and pick one from the boot menu.")
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded replays",
	Long: `List recorded replays, newest first.

In a terminal this opens an interactive browser: Enter watches the
selected replay and D deletes it. Use --plain (or pipe the output) for a
simple listing.

Examples:
  flappy replays
  flappy replays --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of replays to list in plain mode")
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain listing instead of the browser")
}

func runReplays(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagPlain || !isTerminal() {
		return printReplays(store)
	}

	width, height := terminalSize()
	id, err := tui.RunBrowser(store, width, height)
	if err != nil {
		return fmt.Errorf("running replay browser: %w", err)
	}
	if id == 0 {
		return nil
	}
	return watchReplay(store, id)
}

func printReplays(store *storage.Store) error {
	replays, err := store.RecentReplays(flagLimit)
	if err != nil {
		return err
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet. Play with --record to save one!")
		return nil
	}

	fmt.Printf("%-6s %-7s %-9s %-20s %s\n", "ID", "Score", "Length", "Seed", "Date")
	fmt.Println("----------------------------------------------------------------")
	for _, r := range replays {
		fmt.Printf("%-6d %-7d %-9s %-20d %s\n",
			r.ID,
			r.FinalScore,
			r.Duration().Round(100*time.Millisecond),
			r.Seed,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	total := time.Duration(stats.TotalTicks) * time.Second / time.Duration(flagFPS)
	fmt.Printf("\n%d replays, best score %d, %s of play at %d fps\n",
		stats.Count, stats.BestScore, total.Round(time.Second), flagFPS)
	return nil
}

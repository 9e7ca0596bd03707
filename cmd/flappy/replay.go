package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagVerify bool
	flagDelete bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch or verify a recorded replay",
	Long: `Play a recorded session back in the terminal.

With --verify the replay is run headlessly and the final score and state
hash are checked against the recording. The exit code is 1 on mismatch.

Examples:
  flappy replay 3
  flappy replay 3 --verify
  flappy replay 3 --delete`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Check the replay headlessly instead of watching it")
	replayCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the replay")
}

func runReplay(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid replay id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagDelete:
		deleted, err := store.DeleteReplay(id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("replay %d not found", id)
		}
		fmt.Printf("Deleted replay #%d\n", id)
		return nil

	case flagVerify:
		return verifyReplay(store, id)
	}

	return watchReplay(store, id)
}

func loadReplay(store *storage.Store, id int64) (*replay.Replay, error) {
	rp, err := store.Replay(id)
	if err != nil {
		return nil, err
	}
	if rp == nil {
		return nil, fmt.Errorf("replay %d not found", id)
	}
	return rp, nil
}

func verifyReplay(store *storage.Store, id int64) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	rp, err := loadReplay(store, id)
	if err != nil {
		return err
	}

	logger.Debug("verifying replay", "id", id, "ticks", rp.Ticks, "frames", len(rp.Frames), "seed", rp.Seed)
	if err := replay.Verify(rp); err != nil {
		if errors.Is(err, replay.ErrMismatch) {
			logger.Error("replay diverged", "id", id, "error", err)
		}
		return err
	}

	fmt.Printf("Replay #%d verified: score %d over %d ticks (%s)\n",
		id, rp.FinalScore, rp.Ticks, rp.Duration().Round(100*time.Millisecond))
	return nil
}

func watchReplay(store *storage.Store, id int64) error {
	rp, err := loadReplay(store, id)
	if err != nil {
		return err
	}

	logger, closeLog, err := screenLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := terminalSize()
	screen := core.RuntimeConfig{ScreenW: width, ScreenH: height}

	logger.Info("watching replay", "id", id, "seed", rp.Seed, "ticks", rp.Ticks)
	state, err := tui.RunReplay(rp, screen, logger)
	if err != nil {
		return fmt.Errorf("playing replay: %w", err)
	}

	fmt.Printf("Replay #%d finished with score %d (recorded %d)\n", id, state.Score, rp.FinalScore)
	return nil
}

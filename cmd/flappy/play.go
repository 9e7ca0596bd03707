package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start playing Flappy Bird.

Controls:
  Space/Up/W/Click  - Flap (also starts and restarts)
  P/Esc             - Pause
  R                 - Restart (after game over)
  ?                 - Toggle help
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Examples:
  flappy play
  flappy play --seed 42 --record
  flappy play --config ./my-flappy.yaml --log-file flappy.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session as a replay on exit")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cli, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return err
	}

	logger, closeLog, err := screenLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := terminalSize()
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     resolveSeed(),
	}

	game := flappy.New(cfg)
	var rec *replay.Recorder
	if flagRecord {
		rec = replay.NewRecorder(cfg, rt)
	}

	logger.Info("session started", "seed", rt.Seed, "fps", rt.TickRate, "record", flagRecord)
	state, err := tui.Run(game, rt, tui.Options{Logger: logger, Recorder: rec})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	logger.Info("session ended", "score", state.Score, "best", state.HighScore)

	fmt.Printf("Score: %d  Best: %d\n", state.Score, max(state.Score, state.HighScore))

	if rec != nil {
		saveRecording(cli, rec, game)
	}
	return nil
}

// saveRecording stores the session. Storage problems are reported but
// never fail the command.
func saveRecording(logger *log.Logger, rec *replay.Recorder, game *flappy.Game) {
	rp, err := rec.Finish(game)
	if err != nil {
		logger.Warn("could not finish replay", "error", err)
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveReplay(rp)
	if err != nil {
		logger.Warn("could not save replay", "error", err)
		return
	}
	fmt.Printf("Replay saved as #%d (%d ticks). Watch it with: flappy replay %d\n", id, rp.Ticks, id)
}

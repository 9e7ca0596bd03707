package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

// maxCatchUpSteps caps how many simulation steps one tick message may run.
const maxCatchUpSteps = 5

// Game is the simulation driven by the model.
type Game interface {
	ID() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// Options configures optional model behavior.
type Options struct {
	Logger        *log.Logger      // Receives game events; discarded when nil
	Recorder      *replay.Recorder // Records every step's input when set
	Player        *replay.Player   // Drives the game from a replay instead of the keyboard
	ScreenshotDir string           // Defaults to ~/.flappy/screenshots
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game     Game
	screen   *core.Screen
	config   core.RuntimeConfig
	stepper  *core.Stepper
	keys     KeyMap
	help     help.Model
	showHelp bool
	logger   *log.Logger
	recorder *replay.Recorder
	player   *replay.Player
	shotDir  string

	pending   core.InputFrame // Input queued since the last step
	lastTick  time.Time
	gameState core.GameState
	quitting  bool
}

// NewModel creates a new Bubble Tea model for the given game and resets it.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified; playback keeps the recorded one
	if cfg.Seed == 0 && opts.Player == nil {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game.Reset(cfg)

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		stepper:   core.NewStepper(cfg.StepDuration(), maxCatchUpSteps),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		logger:    logger,
		recorder:  opts.Recorder,
		player:    opts.Player,
		shotDir:   opts.ScreenshotDir,
		pending:   core.NewInputFrame(),
		gameState: game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.player == nil {
			m.pending.Set(MapMouse(msg))
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	action := m.keys.MapKey(msg)
	if m.player != nil {
		// Playback ignores live input except quit
		if action == core.ActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.pending.Set(action)
	return m, nil
}

// handleResize processes window resize events.
// The world has a fixed logical size, so only the render target changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs as many fixed steps as the elapsed time allows.
// Queued input goes to the first step only.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := m.stepper.Step()
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now

	steps := m.stepper.Advance(elapsed)
	for i := 0; i < steps; i++ {
		in := m.nextInput()
		if m.recorder != nil {
			m.recorder.Record(in)
		}

		result := m.game.Step(in)
		m.gameState = result.State
		m.logEvents(result.Events)

		if result.State.Quit {
			m.quitting = true
			return m, tea.Quit
		}
		if m.player != nil && m.player.Done() {
			m.logger.Info("playback finished", "ticks", m.player.Tick(), "score", result.State.Score)
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// nextInput returns the input for the next step and empties the queue.
func (m *Model) nextInput() core.InputFrame {
	if m.player != nil {
		in, _ := m.player.Next()
		return in
	}
	in := m.pending
	m.pending = core.NewInputFrame()
	return in
}

func (m *Model) logEvents(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventJumped:
			m.logger.Debug("flap", "tick", e.Tick)
		case core.EventScored:
			m.logger.Debug("scored", "tick", e.Tick, "score", e.Score)
		case core.EventDied:
			m.logger.Info("game over", "tick", e.Tick, "score", e.Score)
		default:
			m.logger.Info(e.Kind.String(), "tick", e.Tick, "score", e.Score)
		}
	}
}

// saveScreenshot saves the current screen as plain text and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot find home directory: %w", err)
		}
		dir = filepath.Join(home, ".flappy", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// State returns the game state after the most recent step.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.showHelp {
		m.game.Render(m.screen)
		return RenderScreen(m.screen)
	}

	// Leave the bottom rows for the help view
	helpView := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	helpHeight := lipgloss.Height(helpView)
	frame := core.NewScreen(m.screen.Width(), max(m.screen.Height()-helpHeight, 0))
	m.game.Render(frame)
	return RenderScreen(frame) + "\n" + helpView
}

// Run starts the Bubble Tea program and returns the final game state.
func Run(game Game, cfg core.RuntimeConfig, opts Options) (core.GameState, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Left click flaps
	)

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.State(), nil
	}
	return game.State(), nil
}

// RunReplay plays a recorded session in the terminal.
func RunReplay(rp *replay.Replay, cfg core.RuntimeConfig, logger *log.Logger) (core.GameState, error) {
	game, err := replay.NewGame(rp)
	if err != nil {
		return core.GameState{}, err
	}
	rt := rp.Runtime()
	rt.ScreenW, rt.ScreenH = cfg.ScreenW, cfg.ScreenH
	return Run(game, rt, Options{Logger: logger, Player: replay.NewPlayer(rp)})
}

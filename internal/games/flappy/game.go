// Package flappy implements the side-scrolling flappy bird simulation.
// All state advances in fixed steps driven by Step; the package never reads
// the wall clock, so a seed and an input log reproduce a run exactly.
package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Mode is the top-level game state.
type Mode int

const (
	ModeNotStarted Mode = iota
	ModePlaying
	ModePaused
	ModeGameOver
)

// String returns the mode name used in logs and snapshots.
func (m Mode) String() string {
	switch m {
	case ModeNotStarted:
		return "not_started"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// effectsSeedOffset separates the particle stream from the pipe stream.
const effectsSeedOffset = 1

// Game implements the flappy bird simulation.
type Game struct {
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	step    time.Duration

	bird    *Bird
	pipes   *PipeManager
	effects *Emitter

	mode      Mode
	score     int
	highScore int
	quit      bool
	tick      uint64
	groundX   float64

	events []core.Event
}

// New creates a game with the given configuration.
// It panics if the configuration is invalid.
func New(cfg config.FlappyConfig) *Game {
	cfg.MustValidate()
	g := &Game{cfg: cfg}
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Config returns the gameplay configuration in use.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Reset initializes the game with the given runtime configuration.
// Both random streams are reseeded from rt.Seed; the high score survives.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt
	g.step = rt.StepDuration()

	pipeRNG := rand.New(rand.NewSource(rt.Seed))                     //#nosec G404 -- gameplay randomness
	fxRNG := rand.New(rand.NewSource(rt.Seed + effectsSeedOffset)) //#nosec G404 -- gameplay randomness

	g.bird = NewBird(&g.cfg)
	if g.pipes == nil {
		g.pipes = NewPipeManager(&g.cfg, pipeRNG)
	} else {
		g.pipes.Reset(pipeRNG)
	}
	g.effects = NewEmitter(&g.cfg, fxRNG)

	g.highScore = max(g.highScore, g.score)
	g.score = 0
	g.mode = ModeNotStarted
	g.quit = false
	g.tick = 0
	g.groundX = 0
	g.events = g.events[:0]
}

// Step advances the game by one fixed tick. Actions are applied in order
// before the simulation runs; inputs that make no sense in the current
// mode are ignored.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.quit {
		return core.StepResult{State: g.State()}
	}
	g.events = g.events[:0]

	for _, a := range input.Actions {
		g.handleAction(a)
		if g.quit {
			break
		}
	}

	switch g.mode {
	case ModePlaying:
		g.simulate()
	case ModeGameOver:
		g.settle()
	}

	g.tick++

	var events []core.Event
	if len(g.events) > 0 {
		events = make([]core.Event, len(g.events))
		copy(events, g.events)
	}
	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) handleAction(a core.Action) {
	switch a {
	case core.ActionJump:
		switch g.mode {
		case ModeNotStarted:
			g.mode = ModePlaying
			g.emit(core.EventStarted)
			g.flap()
		case ModePlaying:
			if g.bird.Alive {
				g.flap()
			}
		case ModeGameOver:
			g.restart()
		}
	case core.ActionRestart:
		if g.mode == ModeGameOver {
			g.restart()
		}
	case core.ActionPause:
		switch g.mode {
		case ModePlaying:
			g.mode = ModePaused
			g.emit(core.EventPaused)
		case ModePaused:
			g.mode = ModePlaying
			g.emit(core.EventResumed)
		}
	case core.ActionQuit:
		g.quit = true
		g.emit(core.EventQuit)
	}
}

func (g *Game) flap() {
	g.bird.Jump(&g.cfg)
	g.effects.Emit(EffectJump, g.bird.X, g.bird.Y, g.cfg.Effects.JumpParticles)
	g.emit(core.EventJumped)
}

// restart returns to the start screen. The random streams keep going so a
// whole session replays from one seed.
func (g *Game) restart() {
	g.highScore = max(g.highScore, g.score)
	g.score = 0
	g.bird = NewBird(&g.cfg)
	g.pipes.Reset(nil)
	g.effects.Clear()
	g.groundX = 0
	g.mode = ModeNotStarted
	g.emit(core.EventRestarted)
}

// simulate runs one Playing tick.
func (g *Game) simulate() {
	g.pipes.Tick(g.step)

	g.bird.Advance(&g.cfg)
	g.pipes.Advance()

	for range g.pipes.CheckPassage(g.bird.X) {
		g.score++
		g.effects.Emit(EffectScore, g.bird.X, g.bird.Y, g.cfg.Effects.ScoreParticles)
		g.emit(core.EventScored)
	}

	if _, hit := FirstHit(g.bird, g.pipes.Pipes(), &g.cfg); hit {
		g.bird.Alive = false
	}
	// Covers both a pipe hit and the floor kill from Advance
	if !g.bird.Alive {
		g.die()
	}

	g.pipes.ReapOffscreen()
	g.effects.Advance()
	g.effects.Reap()

	g.groundX -= g.cfg.Physics.PipeSpeed
	if g.groundX <= -float64(g.cfg.World.GroundPattern) {
		g.groundX = 0
	}
}

// settle lets the death burst and pipe highlights play out after game over.
func (g *Game) settle() {
	g.pipes.FadeHighlights()
	g.effects.Advance()
	g.effects.Reap()
}

func (g *Game) die() {
	g.mode = ModeGameOver
	g.effects.Emit(EffectDeath, g.bird.X, g.bird.Y, g.cfg.Effects.DeathParticles)
	g.emit(core.EventDied)
}

func (g *Game) emit(kind core.EventKind) {
	g.events = append(g.events, core.Event{Kind: kind, Tick: g.tick, Score: g.score})
}

// State returns the current game state summary.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.highScore,
		Started:   g.mode != ModeNotStarted,
		Paused:    g.mode == ModePaused,
		GameOver:  g.mode == ModeGameOver,
		Quit:      g.quit,
	}
}

// Mode returns the current top-level state.
func (g *Game) Mode() Mode {
	return g.mode
}

// Bird returns the player entity.
func (g *Game) Bird() *Bird {
	return g.bird
}

// Pipes returns the live pipes. Callers must not modify the slice.
func (g *Game) Pipes() []Pipe {
	return g.pipes.Pipes()
}

// Particles returns the live particles. Callers must not modify the slice.
func (g *Game) Particles() []Particle {
	return g.effects.Particles()
}

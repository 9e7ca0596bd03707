package flappy

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func newTestGame(seed int64) *Game {
	g := New(config.DefaultFlappyConfig())
	rt := core.DefaultConfig()
	rt.Seed = seed
	g.Reset(rt)
	return g
}

func hasEvent(res core.StepResult, kind core.EventKind) bool {
	for _, e := range res.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestGameDeterminism(t *testing.T) {
	// Jump every 18 ticks, restart whenever the round ends
	inputs := make([]core.InputFrame, 1500)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%18 == 0 {
			inputs[i].Set(core.ActionJump)
		}
	}

	run := func() []uint64 {
		g := newTestGame(12345)
		hashes := make([]uint64, 0, len(inputs))
		for _, in := range inputs {
			g.Step(in)
			snap := g.Snapshot()
			hashes = append(hashes, snap.Hash())
		}
		return hashes
	}

	h1 := run()
	h2 := run()
	for i := range h1 {
		if h1[i] != h2[i] {
			t.Fatalf("Determinism failed at tick %d: %x != %x", i, h1[i], h2[i])
		}
	}
}

func TestGameStartsOnJump(t *testing.T) {
	g := newTestGame(1)

	// Nothing moves before the first jump
	res := g.Step(core.NewInputFrame())
	if res.State.Started {
		t.Fatal("game started without input")
	}
	if g.Bird().Y != 300 {
		t.Errorf("bird moved before start: y=%v", g.Bird().Y)
	}

	res = g.Step(core.NewInputFrame(core.ActionJump))
	if g.Mode() != ModePlaying {
		t.Fatalf("got mode %v, expected playing", g.Mode())
	}
	if !hasEvent(res, core.EventStarted) || !hasEvent(res, core.EventJumped) {
		t.Errorf("expected started and jumped events, got %v", res.Events)
	}
	// Jump then one tick of gravity
	if g.Bird().Vel != -8.5 || g.Bird().Y != 291.5 {
		t.Errorf("got vel %v y %v, expected -8.5 291.5", g.Bird().Vel, g.Bird().Y)
	}
	if len(g.Particles()) != g.cfg.Effects.JumpParticles {
		t.Errorf("got %d particles, expected %d", len(g.Particles()), g.cfg.Effects.JumpParticles)
	}
}

func TestGameIgnoredInputs(t *testing.T) {
	g := newTestGame(1)

	tests := []struct {
		name   string
		action core.Action
	}{
		{"pause before start", core.ActionPause},
		{"restart before start", core.ActionRestart},
		{"none", core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Step(core.InputFrame{Actions: []core.Action{tt.action}})
			if g.Mode() != ModeNotStarted {
				t.Errorf("got mode %v, expected not_started", g.Mode())
			}
		})
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.NewInputFrame(core.ActionJump))

	res := g.Step(core.NewInputFrame(core.ActionPause))
	if !res.State.Paused || !hasEvent(res, core.EventPaused) {
		t.Fatalf("expected paused state and event, got %+v", res)
	}

	y, vel := g.Bird().Y, g.Bird().Vel
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	// Jump is ignored while paused
	g.Step(core.NewInputFrame(core.ActionJump))
	if g.Bird().Y != y || g.Bird().Vel != vel {
		t.Errorf("bird changed while paused: y %v -> %v, vel %v -> %v", y, g.Bird().Y, vel, g.Bird().Vel)
	}
	if g.groundX != -g.cfg.Physics.PipeSpeed {
		t.Errorf("ground scrolled while paused: %v", g.groundX)
	}

	res = g.Step(core.NewInputFrame(core.ActionPause))
	if res.State.Paused || !hasEvent(res, core.EventResumed) {
		t.Errorf("expected resumed, got %+v", res)
	}
	if g.Bird().Y == y {
		t.Error("bird should move again after resume")
	}
}

func TestGameActionOrder(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.NewInputFrame(core.ActionJump))
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}

	// Jump lands first, then the pause freezes the tick
	g.Step(core.NewInputFrame(core.ActionJump, core.ActionPause))
	if g.Mode() != ModePaused {
		t.Fatalf("got mode %v, expected paused", g.Mode())
	}
	if g.Bird().Vel != g.cfg.Physics.JumpVelocity {
		t.Errorf("got vel %v, expected %v", g.Bird().Vel, g.cfg.Physics.JumpVelocity)
	}

	// Pause lands first, so the jump is dropped
	g.Step(core.NewInputFrame(core.ActionPause))
	g.Step(core.NewInputFrame(core.ActionPause, core.ActionJump))
	if g.Mode() != ModePaused {
		t.Errorf("got mode %v, expected paused", g.Mode())
	}
}

func TestGameOverOnFloor(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.NewInputFrame(core.ActionJump))

	died := false
	for i := 0; i < 80 && !died; i++ {
		res := g.Step(core.NewInputFrame())
		died = hasEvent(res, core.EventDied)
	}
	if !died {
		t.Fatal("bird never hit the floor")
	}
	if g.Mode() != ModeGameOver || g.Bird().Alive {
		t.Fatalf("got mode %v alive %v, expected game over", g.Mode(), g.Bird().Alive)
	}
	if len(g.Particles()) < g.cfg.Effects.DeathParticles {
		t.Errorf("got %d particles, expected a death burst of %d", len(g.Particles()), g.cfg.Effects.DeathParticles)
	}

	// Only effects keep moving
	y := g.Bird().Y
	ground := g.groundX
	for i := 0; i < g.cfg.Effects.Life; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Bird().Y != y || g.groundX != ground {
		t.Error("world moved after game over")
	}
	if len(g.Particles()) != 0 {
		t.Errorf("got %d particles after the burst, expected 0", len(g.Particles()))
	}
}

func TestGameOverOnPipe(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.NewInputFrame(core.ActionJump))

	// Bird at y=291.5 sits inside the bottom segment of this pipe
	g.pipes.pipes = append(g.pipes.pipes, Pipe{X: 60, GapY: 100})

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver || !hasEvent(res, core.EventDied) {
		t.Fatalf("expected game over on pipe hit, got %+v", res)
	}

	// Jump after death does nothing to the bird and restarts instead
	res = g.Step(core.NewInputFrame(core.ActionJump))
	if !hasEvent(res, core.EventRestarted) {
		t.Errorf("expected restart event, got %v", res.Events)
	}
}

func TestGameScoring(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.NewInputFrame(core.ActionJump))

	// After one more tick the trailing edge is at 89.2, just behind the bird
	g.pipes.pipes = append(g.pipes.pipes, Pipe{X: 22, GapY: 290})

	res := g.Step(core.NewInputFrame())
	if res.State.Score != 1 || !hasEvent(res, core.EventScored) {
		t.Fatalf("expected one point, got %+v", res)
	}
	if res.State.GameOver {
		t.Fatal("bird should pass through the gap")
	}

	for i := 0; i < 10; i++ {
		res = g.Step(core.NewInputFrame())
	}
	if res.State.Score != 1 {
		t.Errorf("pipe scored more than once: %d", res.State.Score)
	}
}

func TestGameRestartReset(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.NewInputFrame(core.ActionJump))
	for i := 0; i < 200 && g.Mode() != ModeGameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Mode() != ModeGameOver {
		t.Fatal("expected the round to end")
	}
	g.score = 4

	res := g.Step(core.NewInputFrame(core.ActionRestart))
	if !hasEvent(res, core.EventRestarted) {
		t.Errorf("expected restart event, got %v", res.Events)
	}
	if g.Mode() != ModeNotStarted {
		t.Errorf("got mode %v, expected not_started", g.Mode())
	}
	if res.State.Score != 0 || res.State.HighScore != 4 {
		t.Errorf("got score %d high %d, expected 0 and 4", res.State.Score, res.State.HighScore)
	}
	b := g.Bird()
	if b.X != 90 || b.Y != 300 || b.Vel != 0 || !b.Alive {
		t.Errorf("bird not reset: %+v", *b)
	}
	if len(g.Pipes()) != 0 || len(g.Particles()) != 0 {
		t.Errorf("got %d pipes %d particles, expected none", len(g.Pipes()), len(g.Particles()))
	}

	// A lower score does not replace the high score
	g.mode = ModeGameOver
	g.score = 2
	res = g.Step(core.NewInputFrame(core.ActionJump))
	if res.State.HighScore != 4 {
		t.Errorf("got high score %d, expected 4", res.State.HighScore)
	}
}

func TestGameResetKeepsHighScore(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.NewInputFrame(core.ActionJump))
	g.score = 7

	rt := core.DefaultConfig()
	rt.Seed = 2
	g.Reset(rt)

	st := g.State()
	if st.Score != 0 || st.HighScore != 7 || st.Started {
		t.Errorf("got %+v, expected score 0, high 7, not started", st)
	}
	if g.tick != 0 {
		t.Errorf("got tick %d, expected 0", g.tick)
	}
}

func TestGameQuit(t *testing.T) {
	g := newTestGame(1)

	res := g.Step(core.NewInputFrame(core.ActionJump, core.ActionQuit, core.ActionPause))
	if !res.State.Quit || !hasEvent(res, core.EventQuit) {
		t.Fatalf("expected quit, got %+v", res)
	}
	// The jump before quit applied, the pause after it did not
	if g.Mode() != ModePlaying {
		t.Errorf("got mode %v, expected playing", g.Mode())
	}

	tick := g.tick
	y := g.Bird().Y
	res = g.Step(core.NewInputFrame(core.ActionJump))
	if !res.State.Quit || g.tick != tick || g.Bird().Y != y {
		t.Error("game kept running after quit")
	}
}

func TestGroundScroll(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.NewInputFrame(core.ActionJump))
	for i := 0; i < 13; i++ {
		g.Step(core.NewInputFrame())
	}
	if math.Abs(g.groundX-(-39.2)) > 1e-9 {
		t.Errorf("got ground offset %v, expected -39.2", g.groundX)
	}

	g.Step(core.NewInputFrame())
	if g.groundX != 0 {
		t.Errorf("got ground offset %v, expected wrap to 0", g.groundX)
	}
}

func TestNewPanicsOnInvalidConfig(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid config")
		}
	}()
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.GapSize = 1000
	New(cfg)
}

func TestGameIDs(t *testing.T) {
	g := New(config.DefaultFlappyConfig())
	if g.ID() != "flappy" {
		t.Errorf("got id %q, expected flappy", g.ID())
	}
	if !strings.Contains(g.Title(), "Flappy") {
		t.Errorf("got title %q", g.Title())
	}
}

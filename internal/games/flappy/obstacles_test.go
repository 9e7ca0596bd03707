package flappy

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func newTestPipes(cfg *config.FlappyConfig, seed int64) *PipeManager {
	return NewPipeManager(cfg, rand.New(rand.NewSource(seed))) //#nosec G404 -- test randomness
}

func TestTrySpawn(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	rng := rand.New(rand.NewSource(1)) //#nosec G404 -- test randomness
	period := cfg.Obstacles.SpawnPeriod

	tests := []struct {
		name      string
		now, last time.Duration
		want      bool
	}{
		{"not due", 1399 * time.Millisecond, 0, false},
		{"exactly due", 1400 * time.Millisecond, 0, true},
		{"overdue", 5 * time.Second, time.Second, true},
		{"just spawned", 2800 * time.Millisecond, 2800 * time.Millisecond, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := TrySpawn(&cfg, rng, tt.now, tt.last, period)
			if ok != tt.want {
				t.Fatalf("got spawn %v, expected %v", ok, tt.want)
			}
			if !ok {
				return
			}
			if p.X != 410 {
				t.Errorf("got x %v, expected 410", p.X)
			}
			if p.Passed || p.Highlight != 0 {
				t.Errorf("new pipe should be fresh, got %+v", p)
			}
		})
	}
}

func TestSpawnGapRange(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	lo, hi := cfg.GapRange()

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed)) //#nosec G404 -- test randomness
		for i := 0; i < 200; i++ {
			p, _ := TrySpawn(&cfg, rng, cfg.Obstacles.SpawnPeriod, 0, cfg.Obstacles.SpawnPeriod)
			if p.GapY < lo || p.GapY > hi {
				t.Fatalf("seed %d: gap %d outside [%d, %d]", seed, p.GapY, lo, hi)
			}
			top := p.TopRect(&cfg)
			bottom := p.BottomRect(&cfg)
			if top.H <= 0 || bottom.H <= 0 {
				t.Fatalf("seed %d: degenerate segments top=%+v bottom=%+v", seed, top, bottom)
			}
		}
	}
}

func TestSpawnCadence(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	step := time.Second / 60

	tests := []int{1, 84, 85, 169, 170, 600, 3600}

	for _, ticks := range tests {
		pm := newTestPipes(&cfg, 7)
		total := 0
		first := 0
		for i := 1; i <= ticks; i++ {
			n := pm.Tick(step)
			if n > 0 && first == 0 {
				first = i
			}
			total += n
		}

		expected := int(time.Duration(ticks) * step / cfg.Obstacles.SpawnPeriod)
		if total != expected {
			t.Errorf("%d ticks: got %d spawns, expected %d", ticks, total, expected)
		}
		if expected > 0 && first != 85 {
			t.Errorf("%d ticks: first spawn at tick %d, expected 85", ticks, first)
		}
	}
}

func TestSpawnCatchUp(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	pm := newTestPipes(&cfg, 3)

	if n := pm.Tick(3 * cfg.Obstacles.SpawnPeriod); n != 3 {
		t.Errorf("got %d spawns, expected 3", n)
	}
	if len(pm.Pipes()) != 3 {
		t.Errorf("got %d pipes, expected 3", len(pm.Pipes()))
	}
}

func TestSpawnSeeded(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	a := newTestPipes(&cfg, 99)
	b := newTestPipes(&cfg, 99)
	c := newTestPipes(&cfg, 100)

	a.Tick(20 * cfg.Obstacles.SpawnPeriod)
	b.Tick(20 * cfg.Obstacles.SpawnPeriod)
	c.Tick(20 * cfg.Obstacles.SpawnPeriod)

	same := true
	for i := range a.Pipes() {
		if a.Pipes()[i].GapY != b.Pipes()[i].GapY {
			t.Fatalf("pipe %d: same seed gave gaps %d and %d", i, a.Pipes()[i].GapY, b.Pipes()[i].GapY)
		}
		if a.Pipes()[i].GapY != c.Pipes()[i].GapY {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical gap sequences")
	}
}

func TestPipeOffScreen(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	pm := newTestPipes(&cfg, 1)
	pm.pipes = append(pm.pipes, Pipe{X: 410, GapY: 300})

	for i := 0; i < 122; i++ {
		pm.Advance()
	}
	// 410 - 2.8*122 = 68.4, still fully on screen
	if x := pm.Pipes()[0].X; x < 68.3 || x > 68.5 {
		t.Errorf("after 122 ticks got x %v, expected 68.4", x)
	}
	if pm.Pipes()[0].OffScreen(&cfg) {
		t.Error("pipe should still be on screen after 122 ticks")
	}

	for i := 122; i < 171; i++ {
		pm.Advance()
	}
	if pm.Pipes()[0].OffScreen(&cfg) {
		t.Errorf("pipe should still be visible at tick 171, right edge %v", pm.Pipes()[0].Right(&cfg))
	}
	if n := pm.ReapOffscreen(); n != 0 {
		t.Errorf("reaped %d pipes at tick 171, expected 0", n)
	}

	pm.Advance()
	if !pm.Pipes()[0].OffScreen(&cfg) {
		t.Errorf("pipe should be off screen at tick 172, right edge %v", pm.Pipes()[0].Right(&cfg))
	}
	if n := pm.ReapOffscreen(); n != 1 {
		t.Errorf("reaped %d pipes at tick 172, expected 1", n)
	}
	if len(pm.Pipes()) != 0 {
		t.Errorf("got %d pipes after reap, expected 0", len(pm.Pipes()))
	}
}

func TestPassageIdempotent(t *testing.T) {
	cfg := config.DefaultFlappyConfig()

	tests := []struct {
		name   string
		x      float64
		passes int
	}{
		{"trailing edge left of bird", 10, 1},
		{"trailing edge on bird", 20, 0},
		{"pipe ahead of bird", 200, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := newTestPipes(&cfg, 1)
			pm.pipes = append(pm.pipes, Pipe{X: tt.x, GapY: 300})

			events := pm.CheckPassage(cfg.Bird.X)
			if len(events) != tt.passes {
				t.Fatalf("got %d passes, expected %d", len(events), tt.passes)
			}
			if tt.passes == 0 {
				return
			}
			if pm.Pipes()[0].Highlight != cfg.Obstacles.HighlightTicks {
				t.Errorf("got highlight %d, expected %d", pm.Pipes()[0].Highlight, cfg.Obstacles.HighlightTicks)
			}
			if again := pm.CheckPassage(cfg.Bird.X); len(again) != 0 {
				t.Errorf("pipe scored twice: %v", again)
			}
		})
	}
}

func TestPipeHighlightFades(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	pm := newTestPipes(&cfg, 1)
	pm.pipes = append(pm.pipes, Pipe{X: 10, GapY: 300})
	pm.CheckPassage(cfg.Bird.X)

	for i := 0; i < 5; i++ {
		pm.Advance()
	}
	if h := pm.Pipes()[0].Highlight; h != cfg.Obstacles.HighlightTicks-5 {
		t.Errorf("got highlight %d, expected %d", h, cfg.Obstacles.HighlightTicks-5)
	}

	x := pm.Pipes()[0].X
	for i := 0; i < 100; i++ {
		pm.FadeHighlights()
	}
	if h := pm.Pipes()[0].Highlight; h != 0 {
		t.Errorf("got highlight %d, expected 0", h)
	}
	if pm.Pipes()[0].X != x {
		t.Errorf("FadeHighlights moved the pipe from %v to %v", x, pm.Pipes()[0].X)
	}
}

func TestPipeManagerReset(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	pm := newTestPipes(&cfg, 1)
	pm.Tick(5 * cfg.Obstacles.SpawnPeriod)

	pm.Reset(nil)

	if len(pm.Pipes()) != 0 {
		t.Errorf("got %d pipes after reset, expected 0", len(pm.Pipes()))
	}
	// Spawn timer restarts from zero
	if n := pm.Tick(cfg.Obstacles.SpawnPeriod - time.Millisecond); n != 0 {
		t.Errorf("got %d spawns right after reset, expected 0", n)
	}
}

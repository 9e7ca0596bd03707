package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pipe represents a vertical obstacle with a gap for the bird to pass through.
type Pipe struct {
	X         float64 // Left edge in world pixels
	GapY      int     // Center of the gap
	Passed    bool    // Whether the bird has passed this pipe (for scoring)
	Highlight int     // Cosmetic countdown started when the pipe is passed
}

// TopRect returns the collision rectangle for the top segment.
func (p Pipe) TopRect(cfg *config.FlappyConfig) core.RectF {
	top := float64(p.GapY - cfg.Obstacles.GapSize/2)
	return core.NewRectF(p.X, 0, float64(cfg.Obstacles.PipeWidth), top)
}

// BottomRect returns the collision rectangle for the bottom segment,
// which reaches down to the ground line.
func (p Pipe) BottomRect(cfg *config.FlappyConfig) core.RectF {
	bottom := float64(p.GapY + cfg.Obstacles.GapSize/2)
	return core.NewRectF(p.X, bottom, float64(cfg.Obstacles.PipeWidth), cfg.World.GroundY()-bottom)
}

// Right returns the x-coordinate of the trailing edge.
func (p Pipe) Right(cfg *config.FlappyConfig) float64 {
	return p.X + float64(cfg.Obstacles.PipeWidth)
}

// OffScreen reports whether the pipe has fully left the screen.
func (p Pipe) OffScreen(cfg *config.FlappyConfig) bool {
	return p.Right(cfg) < 0
}

// PassEvent records a pipe whose trailing edge crossed the bird.
type PassEvent struct {
	Index int // Position in the pipe list at the time of the pass
	X     float64
}

// TrySpawn returns a new pipe when at least one period has elapsed since the
// last spawn. The gap center is drawn uniformly from the config's gap range.
func TrySpawn(cfg *config.FlappyConfig, rng *rand.Rand, now, lastSpawn, period time.Duration) (Pipe, bool) {
	if now-lastSpawn < period {
		return Pipe{}, false
	}
	lo, hi := cfg.GapRange()
	return Pipe{
		X:    float64(cfg.World.Width + cfg.Obstacles.SpawnOffset),
		GapY: lo + rng.Intn(hi-lo+1),
	}, true
}

// PipeManager handles spawning, movement, scoring and removal of pipes.
// Pipes are kept in spawn order, which is also left-to-right screen order.
type PipeManager struct {
	pipes     []Pipe
	rng       *rand.Rand
	cfg       *config.FlappyConfig
	clock     time.Duration // Playing time since the last reset
	lastSpawn time.Duration
}

// NewPipeManager creates a pipe manager drawing gap positions from rng.
func NewPipeManager(cfg *config.FlappyConfig, rng *rand.Rand) *PipeManager {
	return &PipeManager{
		pipes: make([]Pipe, 0, 8),
		rng:   rng,
		cfg:   cfg,
	}
}

// Reset clears all pipes and restarts the spawn timer.
// A nil rng keeps the current generator.
func (pm *PipeManager) Reset(rng *rand.Rand) {
	pm.pipes = pm.pipes[:0]
	pm.clock = 0
	pm.lastSpawn = 0
	if rng != nil {
		pm.rng = rng
	}
}

// Tick advances the spawn timer by one step and spawns pipes that are due.
// Returns the number of pipes spawned.
func (pm *PipeManager) Tick(step time.Duration) int {
	pm.clock += step
	period := pm.cfg.Obstacles.SpawnPeriod

	spawned := 0
	for {
		p, ok := TrySpawn(pm.cfg, pm.rng, pm.clock, pm.lastSpawn, period)
		if !ok {
			break
		}
		// Advance by whole periods so the cadence does not drift
		pm.lastSpawn += period
		pm.pipes = append(pm.pipes, p)
		spawned++
	}
	return spawned
}

// Advance moves every pipe left and counts down highlights.
func (pm *PipeManager) Advance() {
	speed := pm.cfg.Physics.PipeSpeed
	for i := range pm.pipes {
		pm.pipes[i].X -= speed
	}
	pm.FadeHighlights()
}

// FadeHighlights counts down highlight timers without moving pipes.
func (pm *PipeManager) FadeHighlights() {
	for i := range pm.pipes {
		if pm.pipes[i].Highlight > 0 {
			pm.pipes[i].Highlight--
		}
	}
}

// CheckPassage marks pipes whose trailing edge is left of birdX.
// Each pipe produces at most one event over its lifetime.
func (pm *PipeManager) CheckPassage(birdX float64) []PassEvent {
	var events []PassEvent
	for i := range pm.pipes {
		p := &pm.pipes[i]
		if !p.Passed && p.Right(pm.cfg) < birdX {
			p.Passed = true
			p.Highlight = pm.cfg.Obstacles.HighlightTicks
			events = append(events, PassEvent{Index: i, X: p.X})
		}
	}
	return events
}

// ReapOffscreen removes pipes that have moved off the left side.
// Returns the number removed.
func (pm *PipeManager) ReapOffscreen() int {
	valid := pm.pipes[:0]
	for _, p := range pm.pipes {
		if !p.OffScreen(pm.cfg) {
			valid = append(valid, p)
		}
	}
	removed := len(pm.pipes) - len(valid)
	pm.pipes = valid
	return removed
}

// Pipes returns the current pipes. Callers must not modify the slice.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

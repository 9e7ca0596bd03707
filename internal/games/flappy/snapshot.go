package flappy

import "math"

// BirdSnapshot is the rendered view of the bird.
type BirdSnapshot struct {
	X, Y      float64
	Angle     float64
	WingAngle float64
	Alive     bool
}

// PipeSnapshot is the rendered view of one pipe.
type PipeSnapshot struct {
	X         float64
	GapY      int
	Highlight int
}

// ParticleSnapshot is the rendered view of one particle.
type ParticleSnapshot struct {
	X, Y float64
	Life int
	Kind int
	Size int
	Tint int
}

// Snapshot captures everything a renderer or replay checker needs.
// Uses primitive types only, and every slice is a private copy.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Score     int
	HighScore int
	Started   bool
	Paused    bool
	Alive     bool
	Quit      bool
	GroundX   float64

	Bird      BirdSnapshot
	Pipes     []PipeSnapshot
	Particles []ParticleSnapshot
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	pipes := make([]PipeSnapshot, len(g.pipes.Pipes()))
	for i, p := range g.pipes.Pipes() {
		pipes[i] = PipeSnapshot{X: p.X, GapY: p.GapY, Highlight: p.Highlight}
	}

	particles := make([]ParticleSnapshot, len(g.effects.Particles()))
	for i, p := range g.effects.Particles() {
		particles[i] = ParticleSnapshot{
			X:    p.X,
			Y:    p.Y,
			Life: p.Life,
			Kind: int(p.Kind),
			Size: p.Size,
			Tint: int(p.Tint),
		}
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      g.mode.String(),
		Score:     g.score,
		HighScore: g.highScore,
		Started:   g.mode != ModeNotStarted,
		Paused:    g.mode == ModePaused,
		Alive:     g.bird.Alive,
		Quit:      g.quit,
		GroundX:   g.groundX,
		Bird: BirdSnapshot{
			X:         g.bird.X,
			Y:         g.bird.Y,
			Angle:     g.bird.Angle,
			WingAngle: g.bird.WingAngle(&g.cfg),
			Alive:     g.bird.Alive,
		},
		Pipes:     pipes,
		Particles: particles,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Floats are hashed by their bit patterns, so any drift changes the result.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, c := range []byte(snap.Mode) {
		h = h*31 + uint64(c)
	}
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighScore) //#nosec G115 -- hash computation
	h = h*31 + boolBits(snap.Started)
	h = h*31 + boolBits(snap.Paused)
	h = h*31 + boolBits(snap.Alive)
	h = h*31 + boolBits(snap.Quit)
	h = h*31 + math.Float64bits(snap.GroundX)

	h = h*31 + math.Float64bits(snap.Bird.X)
	h = h*31 + math.Float64bits(snap.Bird.Y)
	h = h*31 + math.Float64bits(snap.Bird.Angle)
	h = h*31 + math.Float64bits(snap.Bird.WingAngle)

	h = h*31 + uint64(len(snap.Pipes))
	for _, p := range snap.Pipes {
		h = h*31 + math.Float64bits(p.X)
		h = h*31 + uint64(p.GapY)      //#nosec G115 -- hash computation
		h = h*31 + uint64(p.Highlight) //#nosec G115 -- hash computation
	}

	h = h*31 + uint64(len(snap.Particles))
	for _, p := range snap.Particles {
		h = h*31 + math.Float64bits(p.X)
		h = h*31 + math.Float64bits(p.Y)
		h = h*31 + uint64(p.Life) //#nosec G115 -- hash computation
		h = h*31 + uint64(p.Kind) //#nosec G115 -- hash computation
		h = h*31 + uint64(p.Size) //#nosec G115 -- hash computation
		h = h*31 + uint64(p.Tint) //#nosec G115 -- hash computation
	}

	return h
}

func boolBits(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

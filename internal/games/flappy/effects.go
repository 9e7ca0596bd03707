package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// EffectKind tags a particle burst. The simulation never branches on it;
// the renderer may.
type EffectKind uint8

const (
	EffectJump EffectKind = iota
	EffectScore
	EffectDeath
)

// tintCount is the number of cosmetic particle tints.
const tintCount = 4

// Particle is one short-lived feedback record.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   int // Ticks remaining
	Kind   EffectKind
	Size   int
	Tint   uint8
}

// Emitter owns the live particles.
type Emitter struct {
	particles []Particle
	rng       *rand.Rand
	cfg       *config.FlappyConfig
}

// NewEmitter creates an emitter drawing particle velocities from rng.
func NewEmitter(cfg *config.FlappyConfig, rng *rand.Rand) *Emitter {
	return &Emitter{
		particles: make([]Particle, 0, 64),
		rng:       rng,
		cfg:       cfg,
	}
}

// Emit appends count particles at (x, y).
func (e *Emitter) Emit(kind EffectKind, x, y float64, count int) {
	fx := e.cfg.Effects
	for i := 0; i < count; i++ {
		e.particles = append(e.particles, Particle{
			X:    x,
			Y:    y,
			VX:   e.uniform(fx.VXMin, fx.VXMax),
			VY:   e.uniform(fx.VYMin, fx.VYMax),
			Life: fx.Life,
			Kind: kind,
			Size: fx.SizeMin + e.rng.Intn(fx.SizeMax-fx.SizeMin+1),
			Tint: uint8(e.rng.Intn(tintCount)), //#nosec G115 -- tintCount fits in uint8
		})
	}
}

func (e *Emitter) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

// Advance integrates every particle by one tick and counts down its life.
func (e *Emitter) Advance() {
	g := e.cfg.Effects.Gravity
	for i := range e.particles {
		p := &e.particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.VY += g
		p.Life--
	}
}

// Reap removes expired particles and returns how many were removed.
func (e *Emitter) Reap() int {
	alive := e.particles[:0]
	for _, p := range e.particles {
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	removed := len(e.particles) - len(alive)
	e.particles = alive
	return removed
}

// Clear drops all particles.
func (e *Emitter) Clear() {
	e.particles = e.particles[:0]
}

// Particles returns the live particles. Callers must not modify the slice.
func (e *Emitter) Particles() []Particle {
	return e.particles
}

package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the player entity. X never changes; everything else is updated
// once per tick by Advance while the bird is alive.
type Bird struct {
	X, Y     float64 // Center position in world pixels
	Vel      float64 // Vertical velocity, positive is down
	Alive    bool
	Angle    float64 // Smoothed tilt in degrees, positive is nose up
	Phase    float64 // Wing flap phase accumulator
	FlapRate float64 // Phase advance per tick

	boostLeft int // Ticks until FlapRate drops back to base
}

// NewBird creates a bird at the configured start position.
func NewBird(cfg *config.FlappyConfig) *Bird {
	return &Bird{
		X:        cfg.Bird.X,
		Y:        cfg.Bird.StartY,
		Alive:    true,
		FlapRate: cfg.Bird.FlapRateBase,
	}
}

// Jump replaces the current velocity with the jump impulse.
// Impulses never stack; the caller only jumps a live bird.
func (b *Bird) Jump(cfg *config.FlappyConfig) {
	b.Vel = cfg.Physics.JumpVelocity
	b.FlapRate = cfg.Bird.FlapRateBoost
	b.boostLeft = cfg.Bird.FlapBoostTicks
}

// Advance integrates one tick of motion and applies the boundary policy:
// the ceiling stops the bird, the ground kills it.
func (b *Bird) Advance(cfg *config.FlappyConfig) {
	if !b.Alive {
		return
	}

	b.Vel += cfg.Physics.Gravity
	b.Y += b.Vel

	// First-order low-pass toward a velocity-derived tilt
	target := core.ClampF(-b.Vel*cfg.Bird.RotationFactor, cfg.Bird.RotationMin, cfg.Bird.RotationMax)
	b.Angle += (target - b.Angle) * cfg.Bird.RotationSmoothing

	b.Phase += b.FlapRate
	if b.boostLeft > 0 {
		b.boostLeft--
		if b.boostLeft == 0 {
			b.FlapRate = cfg.Bird.FlapRateBase
		}
	}

	r := cfg.Bird.Radius
	if b.Y-r <= 0 {
		b.Y = r
		b.Vel = 0
	}
	floor := cfg.World.GroundY() - r
	if b.Y >= floor {
		b.Y = floor
		b.Alive = false
	}
}

// WingAngle returns the cosmetic wing deflection in degrees.
func (b *Bird) WingAngle(cfg *config.FlappyConfig) float64 {
	return math.Sin(b.Phase) * cfg.Bird.WingAmplitude
}

// Hitbox returns the collision circle, slightly smaller than the drawn bird.
func (b *Bird) Hitbox(cfg *config.FlappyConfig) core.Circle {
	return core.Circle{X: b.X, Y: b.Y, Radius: cfg.Bird.Radius - cfg.Bird.HitboxMargin}
}

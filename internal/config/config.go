// Package config provides YAML-based tuning for the flappy simulation.
// A FlappyConfig is treated as immutable once handed to the game: every
// component receives it explicitly instead of reading package globals.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// FlappyConfig contains all tuning for the Flappy Bird simulation.
// Units are logical world pixels and ticks.
type FlappyConfig struct {
	World     FlappyWorld     `yaml:"world"`
	Physics   FlappyPhysics   `yaml:"physics"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Bird      FlappyBird      `yaml:"bird"`
	Effects   FlappyEffects   `yaml:"effects"`
}

// FlappyWorld defines the logical playfield.
type FlappyWorld struct {
	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	GroundHeight  int `yaml:"ground_height"`
	GroundPattern int `yaml:"ground_pattern"` // Ground scroll wraps every N pixels
}

// GroundY returns the y-coordinate of the ground line.
func (w FlappyWorld) GroundY() float64 {
	return float64(w.Height - w.GroundHeight)
}

// FlappyPhysics defines per-tick kinematics.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	PipeSpeed    float64 `yaml:"pipe_speed"`
}

// FlappyObstacles defines pipe geometry and spawn cadence.
type FlappyObstacles struct {
	PipeWidth      int           `yaml:"pipe_width"`
	GapSize        int           `yaml:"gap_size"`
	SpawnPeriod    time.Duration `yaml:"spawn_period"`
	SpawnOffset    int           `yaml:"spawn_offset"` // Pipes appear this far past the right edge
	GapMarginTop   int           `yaml:"gap_margin_top"`
	GapMarginBot   int           `yaml:"gap_margin_bottom"`
	HighlightTicks int           `yaml:"highlight_ticks"`
}

// GapRange returns the inclusive range of valid gap centers.
func (c FlappyConfig) GapRange() (int, int) {
	half := c.Obstacles.GapSize / 2
	return half + c.Obstacles.GapMarginTop, c.World.Height - half - c.Obstacles.GapMarginBot
}

// FlappyBird defines the player entity and its cosmetic animation.
type FlappyBird struct {
	X                 float64 `yaml:"x"`
	StartY            float64 `yaml:"start_y"`
	Radius            float64 `yaml:"radius"`
	HitboxMargin      float64 `yaml:"hitbox_margin"`
	RotationFactor    float64 `yaml:"rotation_factor"`
	RotationMin       float64 `yaml:"rotation_min"`
	RotationMax       float64 `yaml:"rotation_max"`
	RotationSmoothing float64 `yaml:"rotation_smoothing"`
	FlapRateBase      float64 `yaml:"flap_rate_base"`
	FlapRateBoost     float64 `yaml:"flap_rate_boost"`
	FlapBoostTicks    int     `yaml:"flap_boost_ticks"`
	WingAmplitude     float64 `yaml:"wing_amplitude"`
}

// FlappyEffects defines feedback particle bursts.
type FlappyEffects struct {
	Life           int     `yaml:"life"`
	Gravity        float64 `yaml:"gravity"`
	VXMin          float64 `yaml:"vx_min"`
	VXMax          float64 `yaml:"vx_max"`
	VYMin          float64 `yaml:"vy_min"`
	VYMax          float64 `yaml:"vy_max"`
	SizeMin        int     `yaml:"size_min"`
	SizeMax        int     `yaml:"size_max"`
	JumpParticles  int     `yaml:"jump_particles"`
	ScoreParticles int     `yaml:"score_particles"`
	DeathParticles int     `yaml:"death_particles"`
}

// Validate checks the invariants the simulation relies on.
func (c FlappyConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("config: world size %dx%d: %w", c.World.Width, c.World.Height, ErrInvalid)
	case c.World.GroundHeight < 0 || c.World.GroundHeight >= c.World.Height:
		return fmt.Errorf("config: ground height %d: %w", c.World.GroundHeight, ErrInvalid)
	case c.World.GroundPattern <= 0:
		return fmt.Errorf("config: ground pattern %d: %w", c.World.GroundPattern, ErrInvalid)
	case c.Physics.Gravity < 0:
		return fmt.Errorf("config: gravity %v must not be negative: %w", c.Physics.Gravity, ErrInvalid)
	case c.Physics.JumpVelocity >= 0:
		return fmt.Errorf("config: jump velocity %v must be negative: %w", c.Physics.JumpVelocity, ErrInvalid)
	case c.Physics.PipeSpeed <= 0:
		return fmt.Errorf("config: pipe speed %v: %w", c.Physics.PipeSpeed, ErrInvalid)
	case c.Obstacles.PipeWidth <= 0 || c.Obstacles.GapSize <= 0:
		return fmt.Errorf("config: pipe width %d / gap %d: %w", c.Obstacles.PipeWidth, c.Obstacles.GapSize, ErrInvalid)
	case c.Obstacles.SpawnPeriod <= 0:
		return fmt.Errorf("config: spawn period %v: %w", c.Obstacles.SpawnPeriod, ErrInvalid)
	case c.Obstacles.GapMarginTop < 0 || c.Obstacles.GapMarginBot < 0:
		return fmt.Errorf("config: negative gap margin: %w", ErrInvalid)
	case c.Bird.Radius <= 0 || c.Bird.HitboxMargin < 0 || c.Bird.HitboxMargin >= c.Bird.Radius:
		return fmt.Errorf("config: bird radius %v / margin %v: %w", c.Bird.Radius, c.Bird.HitboxMargin, ErrInvalid)
	case c.Bird.RotationMin > c.Bird.RotationMax:
		return fmt.Errorf("config: rotation range [%v, %v]: %w", c.Bird.RotationMin, c.Bird.RotationMax, ErrInvalid)
	case c.Bird.RotationSmoothing < 0 || c.Bird.RotationSmoothing > 1:
		return fmt.Errorf("config: rotation smoothing %v outside [0, 1]: %w", c.Bird.RotationSmoothing, ErrInvalid)
	case c.Effects.Life <= 0:
		return fmt.Errorf("config: particle life %d: %w", c.Effects.Life, ErrInvalid)
	case c.Effects.VXMin > c.Effects.VXMax || c.Effects.VYMin > c.Effects.VYMax || c.Effects.SizeMin > c.Effects.SizeMax:
		return fmt.Errorf("config: inverted particle range: %w", ErrInvalid)
	}

	// Both pipe segments need non-negative height and the gap must sit above the ground.
	lo, hi := c.GapRange()
	if lo > hi {
		return fmt.Errorf("config: gap center range [%d, %d] is empty: %w", lo, hi, ErrInvalid)
	}
	if lo-c.Obstacles.GapSize/2 < 0 || float64(hi+c.Obstacles.GapSize/2) > c.World.GroundY() {
		return fmt.Errorf("config: gap range [%d, %d] leaves the playfield: %w", lo, hi, ErrInvalid)
	}

	start := c.Bird.StartY
	if start < c.Bird.Radius || start > c.World.GroundY()-c.Bird.Radius {
		return fmt.Errorf("config: bird start y %v outside playfield: %w", start, ErrInvalid)
	}
	return nil
}

// MustValidate panics if the configuration is invalid.
// Constructors use it: a bad config is a programming defect, not a runtime error.
func (c FlappyConfig) MustValidate() {
	if err := c.Validate(); err != nil {
		panic(err)
	}
}

package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in Flappy Bird tuning.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			Width:         400,
			Height:        600,
			GroundHeight:  50,
			GroundPattern: 40,
		},
		Physics: FlappyPhysics{
			Gravity:      0.5,
			JumpVelocity: -9.0,
			PipeSpeed:    2.8,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:      70,
			GapSize:        160,
			SpawnPeriod:    1400 * time.Millisecond,
			SpawnOffset:    10,
			GapMarginTop:   60,
			GapMarginBot:   110,
			HighlightTicks: 20,
		},
		Bird: FlappyBird{
			X:                 90,
			StartY:            300,
			Radius:            16,
			HitboxMargin:      2,
			RotationFactor:    5,
			RotationMin:       -30,
			RotationMax:       90,
			RotationSmoothing: 0.2,
			FlapRateBase:      0.3,
			FlapRateBoost:     0.5,
			FlapBoostTicks:    12,
			WingAmplitude:     30,
		},
		Effects: FlappyEffects{
			Life:           30,
			Gravity:        0.2,
			VXMin:          -2,
			VXMax:          2,
			VYMin:          -4,
			VYMax:          -1,
			SizeMin:        2,
			SizeMax:        5,
			JumpParticles:  5,
			ScoreParticles: 10,
			DeathParticles: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}

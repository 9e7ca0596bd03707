package flappy

import "github.com/vovakirdan/tui-flappy/internal/config"

// Collides reports whether the bird's hitbox overlaps either pipe segment.
func Collides(b *Bird, p Pipe, cfg *config.FlappyConfig) bool {
	hit := b.Hitbox(cfg)
	return hit.IntersectsRect(p.TopRect(cfg)) || hit.IntersectsRect(p.BottomRect(cfg))
}

// FirstHit returns the index of the first pipe the bird collides with.
func FirstHit(b *Bird, pipes []Pipe, cfg *config.FlappyConfig) (int, bool) {
	for i, p := range pipes {
		if Collides(b, p, cfg) {
			return i, true
		}
	}
	return -1, false
}

package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Render characters
const (
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
	GrassChar     = '▓'
	GrassAltChar  = '▒'
	GroundChar    = '░'
	BirdChar      = '●'
	DeadBirdChar  = 'x'
	WallChar      = '│'
)

// particleTints maps a particle tint index to a palette color.
var particleTints = [tintCount]core.Color{
	core.ColorScore,
	core.ColorWarn,
	core.ColorWing,
	core.ColorPipeGlow,
}

// viewport maps world pixels to terminal cells. Cells are roughly twice as
// tall as they are wide, so the world keeps its aspect ratio on screen.
type viewport struct {
	x, y, w, h     int
	worldW, worldH float64
}

func newViewport(screenW, screenH int, worldW, worldH float64) viewport {
	h := screenH
	w := int(float64(h) * worldW / worldH * 2)
	if w > screenW {
		w = screenW
		h = int(float64(w) * worldH / worldW / 2)
	}
	return viewport{
		x:      (screenW - w) / 2,
		y:      (screenH - h) / 2,
		w:      w,
		h:      h,
		worldW: worldW,
		worldH: worldH,
	}
}

func (v viewport) col(wx float64) int {
	return v.x + int(math.Floor(wx*float64(v.w)/v.worldW))
}

func (v viewport) row(wy float64) int {
	return v.y + int(math.Floor(wy*float64(v.h)/v.worldH))
}

// worldX returns the world x at the center of a screen column.
func (v viewport) worldX(col int) float64 {
	return (float64(col-v.x) + 0.5) * v.worldW / float64(v.w)
}

// Render draws the current frame into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.Snapshot()
	vp := newViewport(dst.Width(), dst.Height(), float64(g.cfg.World.Width), float64(g.cfg.World.Height))
	if vp.w <= 0 || vp.h <= 0 {
		return
	}

	// Playfield walls when the terminal is wider than the world
	if vp.x > 0 {
		for y := vp.y; y < vp.y+vp.h; y++ {
			dst.SetColored(vp.x-1, y, WallChar, core.ColorText)
			dst.SetColored(vp.x+vp.w, y, WallChar, core.ColorText)
		}
	}

	for _, p := range snap.Pipes {
		g.drawPipe(dst, vp, p)
	}
	g.drawGround(dst, vp, snap.GroundX)

	for _, p := range snap.Particles {
		g.drawParticle(dst, vp, p)
	}
	g.drawBird(dst, vp, snap.Bird)

	// HUD
	dst.DrawTextCentered(vp.y+1, fmt.Sprintf(" %d ", snap.Score), core.ColorScore)
	if snap.HighScore > 0 {
		dst.DrawTextCentered(vp.y+2, fmt.Sprintf("Best: %d", snap.HighScore), core.ColorText)
	}

	switch g.mode {
	case ModeNotStarted:
		g.drawCenteredMessage(dst, "FLAPPY BIRD", "SPACE / CLICK TO START")
	case ModePaused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case ModeGameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  SPACE to try again", snap.Score))
	}
}

// inside clips x to the viewport columns.
func (v viewport) inside(x int) bool {
	return x >= v.x && x < v.x+v.w
}

// drawPipe renders a single pipe to the screen.
func (g *Game) drawPipe(dst *core.Screen, vp viewport, p PipeSnapshot) {
	half := g.cfg.Obstacles.GapSize / 2
	left := vp.col(p.X)
	right := max(vp.col(p.X+float64(g.cfg.Obstacles.PipeWidth)), left+1)
	gapTop := vp.row(float64(p.GapY - half))
	gapBottom := vp.row(float64(p.GapY + half))
	groundRow := vp.row(g.cfg.World.GroundY())

	for x := left; x < right; x++ {
		if !vp.inside(x) {
			continue
		}
		c := core.ColorPipe
		switch {
		case p.Highlight > 0:
			c = core.ColorPipeGlow
		case x == left:
			c = core.ColorPipeShade
		}

		for y := vp.y; y < gapTop-1; y++ {
			dst.SetColored(x, y, PipeChar, c)
		}
		// Cap on top section (at bottom of top section)
		if gapTop > vp.y {
			dst.SetColored(x, gapTop-1, PipeCapTop, c)
		}

		// Cap on bottom section (at top of bottom section)
		if gapBottom < groundRow {
			dst.SetColored(x, gapBottom, PipeCapBottom, c)
		}
		for y := gapBottom + 1; y < groundRow; y++ {
			dst.SetColored(x, y, PipeChar, c)
		}
	}
}

// drawGround draws the striped grass line and the dirt below it.
// Stripes move with the ground offset.
func (g *Game) drawGround(dst *core.Screen, vp viewport, groundX float64) {
	pattern := float64(g.cfg.World.GroundPattern)
	groundRow := vp.row(g.cfg.World.GroundY())

	for x := vp.x; x < vp.x+vp.w; x++ {
		phase := math.Mod(vp.worldX(x)-groundX, pattern)
		if phase < pattern/2 {
			dst.SetColored(x, groundRow, GrassChar, core.ColorGrass)
		} else {
			dst.SetColored(x, groundRow, GrassAltChar, core.ColorGrass)
		}
		for y := groundRow + 1; y < vp.y+vp.h; y++ {
			dst.SetColored(x, y, GroundChar, core.ColorGround)
		}
	}
}

func (g *Game) drawParticle(dst *core.Screen, vp viewport, p ParticleSnapshot) {
	x, y := vp.col(p.X), vp.row(p.Y)
	if !vp.inside(x) {
		return
	}
	glyph := '·'
	if p.Size >= 4 {
		glyph = '•'
	}
	dst.SetColored(x, y, glyph, particleTints[p.Tint%tintCount])
}

// drawBird draws the body with a beak that follows the tilt and a flapping wing.
func (g *Game) drawBird(dst *core.Screen, vp viewport, b BirdSnapshot) {
	x, y := vp.col(b.X), vp.row(b.Y)
	if !b.Alive {
		dst.SetColored(x, y, DeadBirdChar, core.ColorWarn)
		return
	}

	wing := 'v'
	if b.WingAngle > 0 {
		wing = '^'
	}
	dst.SetColored(x-1, y, wing, core.ColorWing)
	dst.SetColored(x, y, BirdChar, core.ColorBird)
	dst.SetColored(x+1, y, beakGlyph(b.Angle), core.ColorBeak)
}

// beakGlyph picks the beak direction for a tilt in degrees.
func beakGlyph(angle float64) rune {
	switch {
	case angle > 20:
		return '➚'
	case angle < -10:
		return '➘'
	default:
		return '➔'
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorText)

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawText(titleX, boxY+1, title, core.ColorWarn)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle, core.ColorText)
}

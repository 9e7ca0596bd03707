package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the flappy renderer.
const (
	ColorDefault Color = iota
	ColorPipe
	ColorPipeShade
	ColorPipeGlow
	ColorBird
	ColorBeak
	ColorWing
	ColorGrass
	ColorGround
	ColorText
	ColorScore
	ColorWarn
)

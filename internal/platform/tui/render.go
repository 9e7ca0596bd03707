package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorPipe:      lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	core.ColorPipeShade: lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	core.ColorPipeGlow:  lipgloss.NewStyle().Foreground(lipgloss.Color("121")).Bold(true),
	core.ColorBird:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	core.ColorBeak:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorWing:      lipgloss.NewStyle().Foreground(lipgloss.Color("230")),
	core.ColorGrass:     lipgloss.NewStyle().Foreground(lipgloss.Color("70")),
	core.ColorGround:    lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	core.ColorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorScore:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorWarn:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

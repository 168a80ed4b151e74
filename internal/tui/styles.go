package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/xonecas/quill/internal/terminal"
)

// Styles holds the colors the front end draws with. Empty colors fall back
// to reverse video.
type Styles struct {
	StatusFg string
	StatusBg string
}

// Frame returns the frame styles for these colors.
func (s Styles) Frame() terminal.FrameStyles {
	fs := terminal.DefaultFrameStyles()
	if s.StatusFg == "" && s.StatusBg == "" {
		return fs
	}
	inv := lipgloss.NewStyle()
	if s.StatusFg != "" {
		inv = inv.Foreground(lipgloss.Color(s.StatusFg))
	}
	if s.StatusBg != "" {
		inv = inv.Background(lipgloss.Color(s.StatusBg))
	}
	fs.Inverted = inv
	return fs
}

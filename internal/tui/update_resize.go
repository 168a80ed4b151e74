package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/quill/internal/terminal"
)

// handleResize applies a window size change to the frame and the editor
// together, so the next render sees one consistent layout.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.frame.Resize(terminal.Size{Width: m.width, Height: m.height})
	m.editor.HandleEvent(terminal.ResizeEvent{Width: m.width, Height: m.height})
}

package tui

import (
	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	v.WindowTitle = m.editor.Title()
	if pos, visible := m.frame.Caret(); visible {
		v.Cursor = tea.NewCursor(pos.Col, pos.Row)
	}
	return v
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}
	return m.frame.String()
}

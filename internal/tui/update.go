package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/quill/internal/terminal"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	// -- Paste ---------------------------------------------------------------
	case tea.PasteMsg:
		m.insertPaste(msg.Content)

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		if !m.handleKeyPress(msg) {
			for _, ev := range translateKey(msg) {
				m.editor.HandleEvent(ev)
			}
		}

	default:
		return m, nil
	}

	return m, m.afterEvent()
}

// afterEvent renders the editor into the frame, or ends the program once the
// editor has been told to quit.
func (m *Model) afterEvent() tea.Cmd {
	if m.editor.ShouldQuit() {
		m.editor.Close()
		return tea.Quit
	}
	if err := m.editor.Render(m.frame); err != nil {
		log.Warn().Err(err).Msg("render failed")
	}
	return nil
}

// insertPaste feeds pasted text to the editor as typed keys.
func (m *Model) insertPaste(text string) {
	for _, r := range text {
		var ev terminal.KeyEvent
		switch r {
		case '\r':
			continue
		case '\n':
			ev = terminal.KeyEvent{Code: terminal.KeyEnter}
		case '\t':
			ev = terminal.KeyEvent{Code: terminal.KeyTab}
		default:
			ev = terminal.KeyEvent{Code: terminal.KeyRune, Rune: r}
		}
		m.editor.HandleEvent(ev)
	}
}

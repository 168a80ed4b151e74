// Package tui runs the editor inside a bubbletea program. Every message is
// applied to the editor and the editor is rendered into an in-memory frame,
// which View hands to bubbletea.
package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/quill/internal/editor"
	"github.com/xonecas/quill/internal/terminal"
)

// Model is the application model.
type Model struct {
	width  int
	height int
	editor *editor.Editor
	frame  *terminal.Frame
	styles Styles
}

// New wraps ed. Nothing is drawn until the first window size arrives.
func New(ed *editor.Editor, styles Styles) Model {
	return Model{
		editor: ed,
		frame:  terminal.NewFrame(terminal.Size{}, styles.Frame()),
		styles: styles,
	}
}

// Init initializes the TUI (required by BubbleTea)
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts a program around ed and blocks until the user quits.
func Run(ed *editor.Editor, styles Styles, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(ed, styles), opts...).Run()
	return err
}

package command

import (
	"strings"

	"charm.land/bubbles/v2/key"
)

// KeyMap holds the action chords.
type KeyMap struct {
	Save      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Dismiss   key.Binding
}

// Keys is the key map Translate matches against.
var Keys = KeyMap{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s", "ctrl+o"),
		key.WithHelp("ctrl-s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+q"),
		key.WithHelp("ctrl-q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("ctrl-w", "force quit"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// ShortHelp lists the bindings shown in the help line.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Save, km.Quit, km.ForceQuit}
}

// HelpLine renders the short help as "HELP: ctrl-s = save | ...".
func HelpLine(km KeyMap) string {
	var parts []string
	for _, b := range km.ShortHelp() {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" = "+h.Desc)
	}
	return "HELP: " + strings.Join(parts, " | ")
}

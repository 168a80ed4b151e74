package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/quill/internal/command"
	"github.com/xonecas/quill/internal/terminal"
)

// handleKeyPress runs keys that belong to the front end rather than the
// editor. Returns true if handled.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) bool {
	handler := m.keyPressHandlers()[msg.Keystroke()]
	if handler == nil {
		return false
	}
	handler(m)
	return true
}

func (m *Model) keyPressHandlers() map[string]func(*Model) {
	return map[string]func(*Model){
		"ctrl+c": (*Model).handleCtrlC,
	}
}

// handleCtrlC treats the interrupt chord like quit, so unsaved changes are
// still guarded.
func (m *Model) handleCtrlC() {
	m.editor.HandleCommand(command.Action{Kind: command.Quit})
}

var teaKeys = map[rune]terminal.Key{
	tea.KeyEnter:     terminal.KeyEnter,
	tea.KeyTab:       terminal.KeyTab,
	tea.KeyBackspace: terminal.KeyBackspace,
	tea.KeyDelete:    terminal.KeyDelete,
	tea.KeyEscape:    terminal.KeyEscape,
	tea.KeyUp:        terminal.KeyUp,
	tea.KeyDown:      terminal.KeyDown,
	tea.KeyLeft:      terminal.KeyLeft,
	tea.KeyRight:     terminal.KeyRight,
	tea.KeyHome:      terminal.KeyHome,
	tea.KeyEnd:       terminal.KeyEnd,
	tea.KeyPgUp:      terminal.KeyPgUp,
	tea.KeyPgDown:    terminal.KeyPgDown,
}

func translateMods(mod tea.KeyMod) terminal.Modifier {
	var out terminal.Modifier
	if mod&tea.ModShift != 0 {
		out |= terminal.ModShift
	}
	if mod&(tea.ModAlt|tea.ModMeta) != 0 {
		out |= terminal.ModAlt
	}
	if mod&tea.ModCtrl != 0 {
		out |= terminal.ModCtrl
	}
	return out
}

// translateKey converts a key press into editor key events. Text input may
// carry more than one rune, so each becomes its own event.
func translateKey(msg tea.KeyPressMsg) []terminal.KeyEvent {
	k := msg.Key()
	mod := translateMods(k.Mod)
	if code, ok := teaKeys[k.Code]; ok {
		return []terminal.KeyEvent{{Code: code, Mod: mod}}
	}
	if k.Text != "" {
		var evs []terminal.KeyEvent
		for _, r := range k.Text {
			evs = append(evs, terminal.KeyEvent{Code: terminal.KeyRune, Rune: r, Mod: mod})
		}
		return evs
	}
	if k.Code > 0 && k.Code < tea.KeyExtended {
		return []terminal.KeyEvent{{Code: terminal.KeyRune, Rune: k.Code, Mod: mod}}
	}
	return nil
}

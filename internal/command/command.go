// Package command turns raw terminal events into editor commands.
package command

import (
	"errors"
	"unicode"

	"charm.land/bubbles/v2/key"

	"github.com/xonecas/quill/internal/terminal"
)

// ErrUnrecognized is returned for events that map to no command. Callers drop
// them.
var ErrUnrecognized = errors.New("unrecognized input")

// Command is a Move, an Edit, or an Action.
type Command interface {
	isCommand()
}

// Direction is a caret movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	// LeftUp moves left, wrapping to the end of the previous line.
	LeftUp
	// RightDown moves right, wrapping to the start of the next line.
	RightDown
	PageUp
	PageDown
	Home
	End
)

// Move moves the caret.
type Move struct {
	Direction Direction
}

// EditKind selects what an Edit does.
type EditKind int

const (
	Insert EditKind = iota
	InsertNewline
	DeleteForward
	DeleteBackward
)

// Edit changes the text under the caret. Char is set for Insert.
type Edit struct {
	Kind EditKind
	Char rune
}

// ActionKind selects what an Action does.
type ActionKind int

const (
	Save ActionKind = iota
	Quit
	ForceQuit
	Dismiss
	Resize
)

// Action is an editor-level command. Size is set for Resize.
type Action struct {
	Kind ActionKind
	Size terminal.Size
}

func (Move) isCommand()   {}
func (Edit) isCommand()   {}
func (Action) isCommand() {}

var moveKeys = map[terminal.Key]Direction{
	terminal.KeyUp:     Up,
	terminal.KeyDown:   Down,
	terminal.KeyLeft:   Left,
	terminal.KeyRight:  Right,
	terminal.KeyPgUp:   PageUp,
	terminal.KeyPgDown: PageDown,
	terminal.KeyHome:   Home,
	terminal.KeyEnd:    End,
}

// Translate maps an event to a command. Key events are tried as an edit,
// then a move, then an action.
func Translate(ev terminal.Event) (Command, error) {
	switch ev := ev.(type) {
	case terminal.ResizeEvent:
		return Action{Kind: Resize, Size: ev.Size()}, nil
	case terminal.KeyEvent:
		if c, ok := translateEdit(ev); ok {
			return c, nil
		}
		if c, ok := translateMove(ev); ok {
			return c, nil
		}
		if c, ok := translateAction(ev, Keys); ok {
			return c, nil
		}
	}
	return nil, ErrUnrecognized
}

func translateEdit(ev terminal.KeyEvent) (Command, bool) {
	if ev.Mod&^terminal.ModShift != 0 {
		return nil, false
	}
	switch ev.Code {
	case terminal.KeyRune:
		if unicode.IsControl(ev.Rune) {
			return nil, false
		}
		return Edit{Kind: Insert, Char: ev.Rune}, true
	case terminal.KeyTab:
		return Edit{Kind: Insert, Char: '\t'}, true
	case terminal.KeyEnter:
		return Edit{Kind: InsertNewline}, true
	case terminal.KeyDelete:
		return Edit{Kind: DeleteForward}, true
	case terminal.KeyBackspace:
		return Edit{Kind: DeleteBackward}, true
	}
	return nil, false
}

func translateMove(ev terminal.KeyEvent) (Command, bool) {
	if ev.Mod != 0 {
		return nil, false
	}
	dir, ok := moveKeys[ev.Code]
	if !ok {
		return nil, false
	}
	return Move{Direction: dir}, true
}

func translateAction(ev terminal.KeyEvent, km KeyMap) (Command, bool) {
	switch {
	case key.Matches(ev, km.Quit):
		return Action{Kind: Quit}, true
	case key.Matches(ev, km.ForceQuit):
		return Action{Kind: ForceQuit}, true
	case key.Matches(ev, km.Save):
		return Action{Kind: Save}, true
	case key.Matches(ev, km.Dismiss):
		return Action{Kind: Dismiss}, true
	}
	return nil, false
}

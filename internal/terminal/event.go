package terminal

import (
	"errors"
	"strings"
)

// ErrClosed is returned by NextEvent once the input source has shut down.
var ErrClosed = errors.New("input source closed")

// Event is a KeyEvent or a ResizeEvent.
type Event interface {
	isEvent()
}

// InputSource yields events one at a time, blocking until one is available.
type InputSource interface {
	NextEvent() (Event, error)
}

// Key identifies a non-character key. Character keys use KeyRune.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
)

var keyNames = map[Key]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyEscape:    "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
}

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModCtrl
)

// KeyEvent is a single key press.
type KeyEvent struct {
	Code Key
	Rune rune // set when Code is KeyRune
	Mod  Modifier
}

func (KeyEvent) isEvent() {}

// String names the keystroke the way key bindings spell it: modifiers first
// ("ctrl+", "alt+", "shift+"), then the key. A shifted character is named by
// the character alone, so 'A' is "A" rather than "shift+a".
func (k KeyEvent) String() string {
	var sb strings.Builder
	mod := k.Mod
	if k.Code == KeyRune && mod&ModShift != 0 {
		mod &^= ModShift
	}
	if mod&ModCtrl != 0 {
		sb.WriteString("ctrl+")
	}
	if mod&ModAlt != 0 {
		sb.WriteString("alt+")
	}
	if mod&ModShift != 0 {
		sb.WriteString("shift+")
	}
	switch {
	case k.Code != KeyRune:
		sb.WriteString(keyNames[k.Code])
	case k.Rune == ' ':
		sb.WriteString("space")
	default:
		sb.WriteRune(k.Rune)
	}
	return sb.String()
}

// ResizeEvent reports the new terminal size.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) isEvent() {}

// Size returns the event's dimensions.
func (r ResizeEvent) Size() Size { return Size{Width: r.Width, Height: r.Height} }

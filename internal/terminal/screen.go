package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Screen drives a real terminal through tcell. It is both a Driver and an
// InputSource.
type Screen struct {
	scr      tcell.Screen
	caret    Position
	visible  bool
	text     tcell.Style
	inverted tcell.Style
}

// NewScreen returns a Screen on the process's terminal. Nothing is touched
// until Initialize.
func NewScreen() (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return NewScreenFrom(scr), nil
}

// NewScreenFrom wraps an existing tcell screen, such as a simulation screen.
func NewScreenFrom(scr tcell.Screen) *Screen {
	return &Screen{
		scr:      scr,
		text:     tcell.StyleDefault,
		inverted: tcell.StyleDefault.Reverse(true),
	}
}

// SetColors sets the inverted style used for the status bar. Empty names
// keep the terminal defaults.
func (s *Screen) SetColors(fg, bg string) {
	st := tcell.StyleDefault.Reverse(true)
	if fg != "" || bg != "" {
		st = tcell.StyleDefault
		if fg != "" {
			st = st.Foreground(tcell.GetColor(fg))
		}
		if bg != "" {
			st = st.Background(tcell.GetColor(bg))
		}
	}
	s.inverted = st
}

func (s *Screen) Initialize() error {
	if err := s.scr.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	s.scr.Clear()
	return nil
}

func (s *Screen) Terminate() error {
	s.scr.Fini()
	return nil
}

func (s *Screen) Size() (Size, error) {
	w, h := s.scr.Size()
	return Size{Width: w, Height: h}, nil
}

func (s *Screen) MoveCaret(p Position) error {
	s.caret = p
	if s.visible {
		s.scr.ShowCursor(p.Col, p.Row)
	}
	return nil
}

func (s *Screen) ShowCaret() error {
	s.visible = true
	s.scr.ShowCursor(s.caret.Col, s.caret.Row)
	return nil
}

func (s *Screen) HideCaret() error {
	s.visible = false
	s.scr.HideCursor()
	return nil
}

func (s *Screen) ClearLine() error {
	w, _ := s.scr.Size()
	for x := range w {
		s.scr.SetContent(x, s.caret.Row, ' ', nil, s.text)
	}
	return nil
}

func (s *Screen) Print(text string) error {
	s.put(text, s.text)
	return nil
}

func (s *Screen) PrintInverted(text string) error {
	s.put(text, s.inverted)
	return nil
}

func (s *Screen) put(text string, style tcell.Style) {
	state := -1
	for text != "" {
		var cluster string
		var width int
		cluster, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)
		runes := []rune(cluster)
		s.scr.SetContent(s.caret.Col, s.caret.Row, runes[0], runes[1:], style)
		s.caret.Col += max(width, 1)
	}
}

func (s *Screen) Execute() error {
	if s.visible {
		s.scr.ShowCursor(s.caret.Col, s.caret.Row)
	}
	s.scr.Show()
	return nil
}

// NextEvent blocks until a key press or resize arrives. Keys with no
// KeyEvent equivalent are skipped.
func (s *Screen) NextEvent() (Event, error) {
	for {
		switch ev := s.scr.PollEvent().(type) {
		case nil:
			return nil, ErrClosed
		case *tcell.EventResize:
			w, h := ev.Size()
			return ResizeEvent{Width: w, Height: h}, nil
		case *tcell.EventKey:
			if k, ok := translateKey(ev); ok {
				return k, nil
			}
		}
	}
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyUp:     KeyUp,
	tcell.KeyDown:   KeyDown,
	tcell.KeyLeft:   KeyLeft,
	tcell.KeyRight:  KeyRight,
	tcell.KeyHome:   KeyHome,
	tcell.KeyEnd:    KeyEnd,
	tcell.KeyPgUp:   KeyPgUp,
	tcell.KeyPgDn:   KeyPgDown,
	tcell.KeyDelete: KeyDelete,
}

func translateMods(m tcell.ModMask) Modifier {
	var mod Modifier
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	return mod
}

// translateKey maps a tcell key event. Tab, Enter, Backspace and Escape share
// codes with control chords in tcell, so they are matched first.
func translateKey(ev *tcell.EventKey) (KeyEvent, bool) {
	mod := translateMods(ev.Modifiers())
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		return KeyEvent{Code: KeyRune, Rune: ev.Rune(), Mod: mod}, true
	case k == tcell.KeyTab:
		return KeyEvent{Code: KeyTab, Mod: mod &^ ModCtrl}, true
	case k == tcell.KeyEnter:
		return KeyEvent{Code: KeyEnter, Mod: mod &^ ModCtrl}, true
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return KeyEvent{Code: KeyBackspace, Mod: mod &^ ModCtrl}, true
	case k == tcell.KeyEscape:
		return KeyEvent{Code: KeyEscape, Mod: mod &^ ModCtrl}, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return KeyEvent{Code: KeyRune, Rune: 'a' + rune(k-tcell.KeyCtrlA), Mod: mod | ModCtrl}, true
	default:
		code, ok := tcellKeys[k]
		return KeyEvent{Code: code, Mod: mod}, ok
	}
}

package command

import (
	"errors"
	"testing"

	"github.com/xonecas/quill/internal/terminal"
)

func TestTranslate(t *testing.T) {
	ctrl := func(r rune) terminal.KeyEvent {
		return terminal.KeyEvent{Code: terminal.KeyRune, Rune: r, Mod: terminal.ModCtrl}
	}
	cases := []struct {
		name string
		ev   terminal.Event
		want Command
	}{
		{"rune", terminal.KeyEvent{Code: terminal.KeyRune, Rune: 'a'}, Edit{Kind: Insert, Char: 'a'}},
		{"shifted rune", terminal.KeyEvent{Code: terminal.KeyRune, Rune: 'A', Mod: terminal.ModShift}, Edit{Kind: Insert, Char: 'A'}},
		{"wide rune", terminal.KeyEvent{Code: terminal.KeyRune, Rune: '世'}, Edit{Kind: Insert, Char: '世'}},
		{"zero width joiner", terminal.KeyEvent{Code: terminal.KeyRune, Rune: '\u200d'}, Edit{Kind: Insert, Char: '\u200d'}},
		{"combining mark", terminal.KeyEvent{Code: terminal.KeyRune, Rune: '\u0301'}, Edit{Kind: Insert, Char: '\u0301'}},
		{"tab", terminal.KeyEvent{Code: terminal.KeyTab}, Edit{Kind: Insert, Char: '\t'}},
		{"enter", terminal.KeyEvent{Code: terminal.KeyEnter}, Edit{Kind: InsertNewline}},
		{"delete", terminal.KeyEvent{Code: terminal.KeyDelete}, Edit{Kind: DeleteForward}},
		{"backspace", terminal.KeyEvent{Code: terminal.KeyBackspace}, Edit{Kind: DeleteBackward}},
		{"up", terminal.KeyEvent{Code: terminal.KeyUp}, Move{Direction: Up}},
		{"left", terminal.KeyEvent{Code: terminal.KeyLeft}, Move{Direction: Left}},
		{"pgdown", terminal.KeyEvent{Code: terminal.KeyPgDown}, Move{Direction: PageDown}},
		{"end", terminal.KeyEvent{Code: terminal.KeyEnd}, Move{Direction: End}},
		{"ctrl+q", ctrl('q'), Action{Kind: Quit}},
		{"ctrl+w", ctrl('w'), Action{Kind: ForceQuit}},
		{"ctrl+s", ctrl('s'), Action{Kind: Save}},
		{"ctrl+o", ctrl('o'), Action{Kind: Save}},
		{"esc", terminal.KeyEvent{Code: terminal.KeyEscape}, Action{Kind: Dismiss}},
		{"resize", terminal.ResizeEvent{Width: 80, Height: 24}, Action{Kind: Resize, Size: terminal.Size{Width: 80, Height: 24}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Translate(tc.ev)
			if err != nil {
				t.Fatalf("Translate: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestTranslateUnrecognized(t *testing.T) {
	for _, ev := range []terminal.Event{
		terminal.KeyEvent{Code: terminal.KeyRune, Rune: 'x', Mod: terminal.ModCtrl},
		terminal.KeyEvent{Code: terminal.KeyRune, Rune: 'b', Mod: terminal.ModAlt},
		terminal.KeyEvent{Code: terminal.KeyRune, Rune: '\x00'},
		terminal.KeyEvent{Code: terminal.KeyRune, Rune: '\x1b'},
		terminal.KeyEvent{Code: terminal.KeyRune, Rune: '\u0085'},
		terminal.KeyEvent{Code: terminal.KeyUp, Mod: terminal.ModShift},
		terminal.KeyEvent{Code: terminal.KeyHome, Mod: terminal.ModCtrl},
	} {
		if _, err := Translate(ev); !errors.Is(err, ErrUnrecognized) {
			t.Errorf("Translate(%v) err = %v, want ErrUnrecognized", ev, err)
		}
	}
}

func TestHelpLine(t *testing.T) {
	want := "HELP: ctrl-s = save | ctrl-q = quit | ctrl-w = force quit"
	if got := HelpLine(Keys); got != want {
		t.Errorf("HelpLine = %q, want %q", got, want)
	}
}

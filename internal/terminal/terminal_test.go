package terminal

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func TestFramePrintRow(t *testing.T) {
	f := NewFrame(Size{Width: 12, Height: 3}, DefaultFrameStyles())
	require.NoError(t, PrintRow(f, 0, "hello world"))
	require.NoError(t, f.MoveCaret(Position{Row: 0, Col: 6}))
	require.NoError(t, f.Print("WORLD"))
	require.NoError(t, f.MoveCaret(Position{Row: 2, Col: 3}))
	require.NoError(t, f.Print("x"))

	require.Equal(t, "hello WORLD\n\n   x", f.Plain())
}

func TestFrameClipsToWidth(t *testing.T) {
	f := NewFrame(Size{Width: 5, Height: 1}, DefaultFrameStyles())
	require.NoError(t, PrintRow(f, 0, "abcdefgh"))
	require.Equal(t, "abcde", f.Plain())

	require.NoError(t, PrintRow(f, 4, "ignored"))
	require.Equal(t, "abcde", f.Plain())
}

func TestFrameCaretAdvancesByWidth(t *testing.T) {
	f := NewFrame(Size{Width: 10, Height: 1}, DefaultFrameStyles())
	require.NoError(t, PrintRow(f, 0, "a世"))
	pos, visible := f.Caret()
	require.Equal(t, Position{Row: 0, Col: 3}, pos)
	require.False(t, visible)

	require.NoError(t, f.ShowCaret())
	_, visible = f.Caret()
	require.True(t, visible)
}

func TestFrameInverted(t *testing.T) {
	f := NewFrame(Size{Width: 10, Height: 1}, DefaultFrameStyles())
	require.NoError(t, PrintInvertedRow(f, 0, "status"))
	require.Contains(t, f.Row(0), "\x1b[")
	require.Equal(t, "status", f.Plain())
}

func TestFrameClearLine(t *testing.T) {
	f := NewFrame(Size{Width: 10, Height: 2}, DefaultFrameStyles())
	require.NoError(t, PrintRow(f, 1, "text"))
	require.NoError(t, PrintRow(f, 1, ""))
	require.Equal(t, "\n", f.Plain())
}

func TestFrameResizeKeepsContent(t *testing.T) {
	f := NewFrame(Size{Width: 10, Height: 3}, DefaultFrameStyles())
	require.NoError(t, PrintRow(f, 0, "abcdefghij"))
	require.NoError(t, PrintRow(f, 2, "last"))
	f.Resize(Size{Width: 4, Height: 2})
	require.Equal(t, "abcd\n", f.Plain())

	size, err := f.Size()
	require.NoError(t, err)
	require.Equal(t, Size{Width: 4, Height: 2}, size)
}

func TestFrameExecuteCountsFlushes(t *testing.T) {
	f := NewFrame(Size{Width: 1, Height: 1}, DefaultFrameStyles())
	require.NoError(t, f.Execute())
	require.NoError(t, f.Execute())
	require.Equal(t, 2, f.Flushes())
}

func TestKeyEventString(t *testing.T) {
	cases := []struct {
		ev   KeyEvent
		want string
	}{
		{KeyEvent{Code: KeyRune, Rune: 'q', Mod: ModCtrl}, "ctrl+q"},
		{KeyEvent{Code: KeyRune, Rune: 'A', Mod: ModShift}, "A"},
		{KeyEvent{Code: KeyRune, Rune: 'x'}, "x"},
		{KeyEvent{Code: KeyRune, Rune: ' '}, "space"},
		{KeyEvent{Code: KeyRune, Rune: 'f', Mod: ModAlt | ModCtrl}, "ctrl+alt+f"},
		{KeyEvent{Code: KeyEscape}, "esc"},
		{KeyEvent{Code: KeyEnter}, "enter"},
		{KeyEvent{Code: KeyPgDown}, "pgdown"},
		{KeyEvent{Code: KeyUp, Mod: ModShift}, "shift+up"},
	}
	for _, tc := range cases {
		if got := tc.ev.String(); got != tc.want {
			t.Errorf("%+v.String() = %q, want %q", tc.ev, got, tc.want)
		}
	}
}

func TestPositionSub(t *testing.T) {
	require.Equal(t, Position{Row: 2, Col: 0}, Position{Row: 5, Col: 1}.Sub(Position{Row: 3, Col: 4}))
}

// ---------------------------------------------------------------------------
// Guard
// ---------------------------------------------------------------------------

type fakeTerm struct {
	initErr    error
	inits      int
	terminates int
}

func (f *fakeTerm) Initialize() error {
	f.inits++
	return f.initErr
}

func (f *fakeTerm) Terminate() error {
	f.terminates++
	return nil
}

func TestGuardReleasesOnce(t *testing.T) {
	term := &fakeTerm{}
	g, err := Acquire(term)
	require.NoError(t, err)
	require.NoError(t, g.Release())
	require.NoError(t, g.Release())
	require.Equal(t, 1, term.terminates)
}

func TestGuardInitFailure(t *testing.T) {
	term := &fakeTerm{initErr: errors.New("no tty")}
	_, err := Acquire(term)
	require.ErrorContains(t, err, "no tty")
	require.Zero(t, term.terminates)
}

func TestWithRestoresOnError(t *testing.T) {
	term := &fakeTerm{}
	boom := errors.New("boom")
	err := With(term, func() error { return boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, term.terminates)
}

func TestWithRestoresOnPanic(t *testing.T) {
	term := &fakeTerm{}
	require.Panics(t, func() {
		_ = With(term, func() error { panic("editor crashed") })
	})
	require.Equal(t, 1, term.terminates)
}

// ---------------------------------------------------------------------------
// tcell
// ---------------------------------------------------------------------------

func TestScreenDrawsCells(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	s := NewScreenFrom(sim)
	require.NoError(t, s.Initialize())
	defer s.Terminate()

	require.NoError(t, PrintRow(s, 1, "hi"))
	require.NoError(t, s.Execute())

	cells, w, _ := sim.GetContents()
	row := cells[w : 2*w]
	var got strings.Builder
	for _, c := range row[:3] {
		got.WriteString(string(c.Runes))
	}
	require.Equal(t, "hi ", got.String())
}

func TestScreenNextEvent(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	s := NewScreenFrom(sim)
	require.NoError(t, s.Initialize())
	defer s.Terminate()

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	for range 4 {
		ev, err := s.NextEvent()
		require.NoError(t, err)
		if k, ok := ev.(KeyEvent); ok {
			require.Equal(t, KeyEvent{Code: KeyRune, Rune: 'x'}, k)
			return
		}
	}
	t.Fatal("key event never arrived")
}

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want KeyEvent
		ok   bool
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), KeyEvent{Code: KeyRune, Rune: 'a'}, true},
		{"ctrl+q", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), KeyEvent{Code: KeyRune, Rune: 'q', Mod: ModCtrl}, true},
		{"ctrl+s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModNone), KeyEvent{Code: KeyRune, Rune: 's', Mod: ModCtrl}, true},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), KeyEvent{Code: KeyTab}, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), KeyEvent{Code: KeyEnter}, true},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), KeyEvent{Code: KeyBackspace}, true},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), KeyEvent{Code: KeyEscape}, true},
		{"pgdn", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), KeyEvent{Code: KeyPgDown}, true},
		{"f1", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), KeyEvent{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := translateKey(tc.ev)
			require.Equal(t, tc.ok, ok)
			if ok {
				require.Equal(t, tc.want, got)
			}
		})
	}
}

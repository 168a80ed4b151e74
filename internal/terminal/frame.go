package terminal

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// FrameStyles controls how a Frame styles the text it is given.
type FrameStyles struct {
	Text     lipgloss.Style
	Inverted lipgloss.Style
}

// DefaultFrameStyles prints text as is and inverts with reverse video.
func DefaultFrameStyles() FrameStyles {
	return FrameStyles{
		Text:     lipgloss.NewStyle(),
		Inverted: lipgloss.NewStyle().Reverse(true),
	}
}

// Frame is an in-memory Driver. Each row holds styled text; printing outside
// the frame is clipped.
type Frame struct {
	size    Size
	rows    []string
	caret   Position
	visible bool
	flushes int
	styles  FrameStyles
}

// NewFrame returns a blank frame of the given size.
func NewFrame(size Size, styles FrameStyles) *Frame {
	f := &Frame{styles: styles}
	f.Resize(size)
	return f
}

// Resize changes the frame size, keeping whatever still fits.
func (f *Frame) Resize(size Size) {
	size.Width, size.Height = max(size.Width, 0), max(size.Height, 0)
	rows := make([]string, size.Height)
	for i := range rows {
		if i < len(f.rows) {
			rows[i] = ansi.Truncate(f.rows[i], size.Width, "")
		}
	}
	f.size, f.rows = size, rows
}

// SetStyles replaces the frame's styles. Rows already drawn keep theirs.
func (f *Frame) SetStyles(styles FrameStyles) { f.styles = styles }

func (f *Frame) Size() (Size, error) { return f.size, nil }

func (f *Frame) MoveCaret(p Position) error {
	f.caret = p
	return nil
}

func (f *Frame) ShowCaret() error {
	f.visible = true
	return nil
}

func (f *Frame) HideCaret() error {
	f.visible = false
	return nil
}

func (f *Frame) ClearLine() error {
	if f.inRow() {
		f.rows[f.caret.Row] = ""
	}
	return nil
}

func (f *Frame) Print(text string) error {
	f.write(text, f.styles.Text)
	return nil
}

func (f *Frame) PrintInverted(text string) error {
	f.write(text, f.styles.Inverted)
	return nil
}

func (f *Frame) Execute() error {
	f.flushes++
	return nil
}

func (f *Frame) inRow() bool {
	return f.caret.Row >= 0 && f.caret.Row < len(f.rows)
}

// write overlays text at the caret, keeping what lies on either side of it.
func (f *Frame) write(text string, style lipgloss.Style) {
	w := ansi.StringWidth(text)
	defer func() { f.caret.Col += w }()
	if !f.inRow() || f.caret.Col >= f.size.Width || text == "" {
		return
	}
	row := f.rows[f.caret.Row]
	col := max(f.caret.Col, 0)

	prefix := ansi.Truncate(row, col, "")
	if pw := ansi.StringWidth(prefix); pw < col {
		prefix += strings.Repeat(" ", col-pw)
	}
	suffix := ""
	if ansi.StringWidth(row) > col+w {
		suffix = ansi.TruncateLeft(row, col+w, "")
	}
	f.rows[f.caret.Row] = ansi.Truncate(prefix+style.Render(text)+suffix, f.size.Width, "")
}

// Caret returns the caret position and whether it is shown.
func (f *Frame) Caret() (Position, bool) { return f.caret, f.visible }

// Flushes counts calls to Execute.
func (f *Frame) Flushes() int { return f.flushes }

// Row returns row i with its styling, or "" when out of range.
func (f *Frame) Row(i int) string {
	if i < 0 || i >= len(f.rows) {
		return ""
	}
	return f.rows[i]
}

// PlainRow returns row i with styling removed.
func (f *Frame) PlainRow(i int) string { return ansi.Strip(f.Row(i)) }

// String renders the frame, one row per line.
func (f *Frame) String() string { return strings.Join(f.rows, "\n") }

// Plain renders the frame with all styling removed.
func (f *Frame) Plain() string { return ansi.Strip(f.String()) }

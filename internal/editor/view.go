package editor

import (
	"fmt"
	"strings"

	"github.com/xonecas/quill/internal/buffer"
	"github.com/xonecas/quill/internal/command"
	"github.com/xonecas/quill/internal/constants"
	"github.com/xonecas/quill/internal/terminal"
	"github.com/xonecas/quill/internal/text"
)

// View shows the document and owns the caret and the scroll offset.
type View struct {
	band
	buf    *buffer.Buffer
	caret  buffer.Location
	scroll terminal.Position
}

// NewView returns a view over an empty document.
func NewView() *View {
	return &View{buf: buffer.New(), band: band{dirty: true}}
}

// SetBuffer replaces the document and resets the caret and scroll.
func (v *View) SetBuffer(buf *buffer.Buffer) {
	v.buf = buf
	v.caret = buffer.Location{}
	v.scroll = terminal.Position{}
	v.dirty = true
}

// Buffer returns the document.
func (v *View) Buffer() *buffer.Buffer { return v.buf }

// Caret returns the caret's logical location.
func (v *View) Caret() buffer.Location { return v.caret }

// ScrollOffset returns the rendered top-left corner of the view.
func (v *View) ScrollOffset() terminal.Position { return v.scroll }

// SetSize resizes the view and scrolls the caret back into it.
func (v *View) SetSize(size terminal.Size) {
	v.band.SetSize(size)
	v.scrollToCaret()
}

// MoveTo places the caret at loc, clamped to the document.
func (v *View) MoveTo(loc buffer.Location) {
	v.caret = loc
	v.caret.Line = min(max(v.caret.Line, 0), buffer.LineIdx(v.buf.LineCount()))
	v.caret.Grapheme = max(v.caret.Grapheme, 0)
	v.snapToValidGrapheme()
	v.scrollToCaret()
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// HandleMove moves the caret and keeps it in view.
func (v *View) HandleMove(dir command.Direction) {
	page := max(v.size.Height-1, 0)
	switch dir {
	case command.Up:
		v.moveUp(1)
	case command.Down:
		v.moveDown(1)
	case command.Left:
		if v.caret.Grapheme > 0 {
			v.caret.Grapheme--
		}
	case command.Right:
		if v.caret.Grapheme < v.buf.GraphemeCount(v.caret.Line) {
			v.caret.Grapheme++
		}
	case command.LeftUp:
		v.moveLeftUp()
	case command.RightDown:
		v.moveRightDown()
	case command.PageUp:
		v.moveUp(page)
	case command.PageDown:
		v.moveDown(page)
	case command.Home:
		v.caret.Grapheme = 0
	case command.End:
		v.caret.Grapheme = v.buf.GraphemeCount(v.caret.Line)
	}
	v.scrollToCaret()
}

// HandleEdit applies an edit at the caret.
func (v *View) HandleEdit(e command.Edit) {
	switch e.Kind {
	case command.Insert:
		v.insert(e.Char)
	case command.InsertNewline:
		v.buf.InsertNewline(v.caret)
		v.caret = buffer.Location{Line: v.caret.Line + 1}
	case command.DeleteForward:
		v.buf.DeleteForward(v.caret)
	case command.DeleteBackward:
		v.backspace()
	}
	v.dirty = true
	v.scrollToCaret()
}

func (v *View) insert(r rune) {
	before := v.buf.GraphemeCount(v.caret.Line)
	v.buf.InsertChar(r, v.caret)
	if v.buf.GraphemeCount(v.caret.Line) > before {
		v.moveRightDown()
	}
}

// backspace at the very start of the document does nothing. Elsewhere it
// steps back, wrapping to the previous line, and deletes forward from there.
func (v *View) backspace() {
	if v.caret.Line == 0 && v.caret.Grapheme == 0 {
		return
	}
	v.moveLeftUp()
	v.buf.DeleteForward(v.caret)
}

func (v *View) moveUp(step int) {
	v.caret.Line = max(v.caret.Line-buffer.LineIdx(step), 0)
	v.snapToValidGrapheme()
}

func (v *View) moveDown(step int) {
	v.caret.Line = min(v.caret.Line+buffer.LineIdx(step), buffer.LineIdx(v.buf.LineCount()))
	v.snapToValidGrapheme()
}

func (v *View) moveLeftUp() {
	switch {
	case v.caret.Grapheme > 0:
		v.caret.Grapheme--
	case v.caret.Line > 0:
		v.moveUp(1)
		v.caret.Grapheme = v.buf.GraphemeCount(v.caret.Line)
	}
}

func (v *View) moveRightDown() {
	if v.caret.Grapheme < v.buf.GraphemeCount(v.caret.Line) {
		v.caret.Grapheme++
		return
	}
	if int(v.caret.Line) < v.buf.LineCount() {
		v.caret.Grapheme = 0
		v.moveDown(1)
	}
}

func (v *View) snapToValidGrapheme() {
	v.caret.Grapheme = min(v.caret.Grapheme, v.buf.GraphemeCount(v.caret.Line))
}

// ---------------------------------------------------------------------------
// Scrolling
// ---------------------------------------------------------------------------

// caretRendered is the caret's position in document render space.
func (v *View) caretRendered() terminal.Position {
	col := text.ColIdx(0)
	if l, ok := v.buf.Line(v.caret.Line); ok {
		col = l.WidthUntil(v.caret.Grapheme)
	}
	return terminal.Position{Row: int(v.caret.Line), Col: int(col)}
}

// CaretPosition is where the caret sits on screen relative to the view.
func (v *View) CaretPosition() terminal.Position {
	return v.caretRendered().Sub(v.scroll)
}

func (v *View) scrollToCaret() {
	at := v.caretRendered()
	row, rowChanged := snapAxis(v.scroll.Row, at.Row, v.size.Height)
	col, colChanged := snapAxis(v.scroll.Col, at.Col, v.size.Width)
	v.scroll = terminal.Position{Row: row, Col: col}
	if rowChanged || colChanged {
		v.dirty = true
	}
}

// snapAxis keeps offset while to lies in [offset, offset+extent). Once to
// leaves that window in either direction the offset jumps to to itself.
func snapAxis(offset, to, extent int) (int, bool) {
	if extent <= 0 || (to >= offset && to < offset+extent) {
		return offset, false
	}
	return to, to != offset
}

// ---------------------------------------------------------------------------
// Drawing
// ---------------------------------------------------------------------------

func (v *View) Draw(d terminal.Driver, startRow int) error {
	width, height := v.size.Width, v.size.Height
	left := text.ColIdx(v.scroll.Col)
	right := left + text.ColIdx(width)
	bannerRow := height / 3

	for row := range height {
		var out string
		if l, ok := v.buf.Line(buffer.LineIdx(v.scroll.Row + row)); ok {
			out = l.Visible(left, right)
		} else if row == bannerRow && v.buf.IsEmpty() {
			out = welcomeBanner(width)
		} else {
			out = "~"
		}
		if err := terminal.PrintRow(d, startRow+row, out); err != nil {
			return fmt.Errorf("draw view row %d: %w", row, err)
		}
	}
	return nil
}

// welcomeBanner centers the program name after the "~" gutter. When it does
// not fit only the gutter is shown.
func welcomeBanner(width int) string {
	if width <= 0 {
		return ""
	}
	msg := fmt.Sprintf("%s editor -- version %s", constants.Name, constants.Version)
	room := width - 1
	if room < len(msg) {
		return "~"
	}
	return "~" + strings.Repeat(" ", (room-len(msg))/2) + msg
}

// Status summarizes the document for the status bar.
func (v *View) Status() DocumentStatus {
	return DocumentStatus{
		Filename:  v.buf.Filename(),
		LineCount: v.buf.LineCount(),
		Modified:  v.buf.IsModified(),
		Caret:     v.caret,
	}
}

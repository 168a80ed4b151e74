package editor

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/xonecas/quill/internal/buffer"
	"github.com/xonecas/quill/internal/constants"
	"github.com/xonecas/quill/internal/terminal"
	"github.com/xonecas/quill/internal/text"
)

// ---------------------------------------------------------------------------
// Status bar
// ---------------------------------------------------------------------------

// DocumentStatus is what the status bar shows.
type DocumentStatus struct {
	Filename  string
	LineCount int
	Modified  bool
	Caret     buffer.Location
}

func (s DocumentStatus) left() string {
	name := s.Filename
	if name == "" {
		name = constants.NoName
	}
	out := fmt.Sprintf("%s - %d lines", name, s.LineCount)
	if s.Modified {
		out += " (modified)"
	}
	return out
}

func (s DocumentStatus) right() string {
	return fmt.Sprintf("%d:%d", s.Caret.Line+1, s.Caret.Grapheme+1)
}

// StatusBar is the inverted line above the message bar.
type StatusBar struct {
	band
	status DocumentStatus
}

func NewStatusBar() *StatusBar {
	return &StatusBar{band: band{dirty: true}}
}

// Update replaces the shown status, redrawing only on change.
func (s *StatusBar) Update(status DocumentStatus) {
	if status != s.status {
		s.status = status
		s.dirty = true
	}
}

func (s *StatusBar) Draw(d terminal.Driver, startRow int) error {
	return terminal.PrintInvertedRow(d, startRow, s.line())
}

// line fills the bar's width: file details on the left, caret on the right.
// When both do not fit the bar is left blank.
func (s *StatusBar) line() string {
	left, right := s.status.left(), s.status.right()
	gap := s.size.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return strings.Repeat(" ", max(s.size.Width, 0))
	}
	return left + strings.Repeat(" ", gap) + right
}

// ---------------------------------------------------------------------------
// Message bar
// ---------------------------------------------------------------------------

// messageTTL is how long a message stays up before the next frame clears it.
const messageTTL = 5 * time.Second

// MessageBar shows the latest notice on the bottom line.
type MessageBar struct {
	band
	message string
	posted  time.Time
	cleared bool
	now     func() time.Time
}

func NewMessageBar(now func() time.Time) *MessageBar {
	if now == nil {
		now = time.Now
	}
	return &MessageBar{band: band{dirty: true}, now: now, cleared: true}
}

// Post replaces the message and restarts its lifetime.
func (m *MessageBar) Post(msg string) {
	m.message = msg
	m.posted = m.now()
	m.cleared = false
	m.dirty = true
}

// Message returns the current message, or "" once it has expired.
func (m *MessageBar) Message() string {
	if m.expired() {
		return ""
	}
	return m.message
}

func (m *MessageBar) expired() bool {
	return m.now().Sub(m.posted) > messageTTL
}

// NeedsRedraw also reports an expired message that is still on screen.
func (m *MessageBar) NeedsRedraw() bool {
	return m.dirty || (!m.cleared && m.expired())
}

func (m *MessageBar) Draw(d terminal.Driver, startRow int) error {
	msg := m.Message()
	if msg == "" {
		m.cleared = true
	}
	return terminal.PrintRow(d, startRow, msg)
}

// ---------------------------------------------------------------------------
// Command bar
// ---------------------------------------------------------------------------

// CommandBar is a one-line prompt that takes the message bar's place.
type CommandBar struct {
	band
	prompt string
	input  text.Line
}

func NewCommandBar() *CommandBar {
	return &CommandBar{band: band{dirty: true}}
}

// Open shows prompt with empty input.
func (c *CommandBar) Open(prompt string) {
	c.prompt = prompt
	c.input = text.Line{}
	c.dirty = true
}

// Value returns the text typed so far.
func (c *CommandBar) Value() string { return c.input.String() }

// Append adds r to the input.
func (c *CommandBar) Append(r rune) {
	c.input.Append(r)
	c.dirty = true
}

// DeleteLast removes the last grapheme of the input.
func (c *CommandBar) DeleteLast() {
	c.input.RemoveLast()
	c.dirty = true
}

// inputArea is how many columns the input gets after the prompt.
func (c *CommandBar) inputArea() text.ColIdx {
	return text.ColIdx(max(c.size.Width-lipgloss.Width(c.prompt), 0))
}

// CaretCol is the caret column on the bar's row.
func (c *CommandBar) CaretCol() int {
	col := lipgloss.Width(c.prompt) + int(min(c.input.Width(), c.inputArea()))
	return min(col, max(c.size.Width-1, 0))
}

// Draw shows the prompt and as much of the input's tail as fits.
func (c *CommandBar) Draw(d terminal.Driver, startRow int) error {
	end := c.input.Width()
	start := max(end-c.inputArea(), 0)
	line := c.prompt + c.input.Visible(start, end)
	if lipgloss.Width(line) > c.size.Width {
		line = ""
	}
	return terminal.PrintRow(d, startRow, line)
}

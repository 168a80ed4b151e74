// Package buffer holds the open document: an ordered list of text lines, the
// file it belongs to, and whether it has unsaved changes.
//
// A Buffer never stores a caret. Every mutation takes an explicit Location,
// which is owned by the caller.
package buffer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/xonecas/quill/internal/text"
)

// ErrInvalidUTF8 is returned by Load for files that are not UTF-8 text.
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8")

// LineIdx is an index into the buffer's lines.
type LineIdx int

// Location is a logical caret position: a line and a grapheme on that line.
// Line may equal LineCount(), addressing the empty line past the end.
type Location struct {
	Line     LineIdx
	Grapheme text.GraphemeIdx
}

// Buffer is the document model.
type Buffer struct {
	lines    []text.Line
	filename string
	modified bool
	baseline string // content as of the last load or save
}

// New returns an empty, unnamed buffer.
func New() *Buffer {
	return &Buffer{}
}

// Load reads path into a new buffer. The returned buffer always carries the
// filename; if the file cannot be used it is empty and the error says why.
// A missing file is not an error: it is a new file with a name.
func Load(path string) (*Buffer, error) {
	b := &Buffer{filename: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return b, nil
		}
		return b, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return b, fmt.Errorf("read %s: %w", path, ErrInvalidUTF8)
	}
	b.lines = splitLines(string(data))
	b.baseline = b.String()
	return b, nil
}

// FromString builds an unnamed buffer from s, one line per "\n" record.
func FromString(s string) *Buffer {
	b := &Buffer{lines: splitLines(s)}
	b.baseline = b.String()
	return b
}

func splitLines(s string) []text.Line {
	if s == "" {
		return nil
	}
	raw := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	lines := make([]text.Line, len(raw))
	for i, r := range raw {
		lines[i] = text.NewLine(r)
	}
	return lines
}

// Save writes the buffer to its file. Without a filename it does nothing.
func (b *Buffer) Save() error {
	if b.filename == "" {
		return nil
	}
	return b.saveTo(b.filename)
}

// SaveAs writes the buffer to name and adopts name as the filename once the
// write succeeds.
func (b *Buffer) SaveAs(name string) error {
	if err := b.saveTo(name); err != nil {
		return err
	}
	b.filename = name
	return nil
}

func (b *Buffer) saveTo(name string) error {
	content := b.String()
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil { //nolint:gosec // G306: user document
		return fmt.Errorf("write %s: %w", name, err)
	}
	b.modified = false
	b.baseline = content
	return nil
}

// ---------------------------------------------------------------------------
// Editing operations
// ---------------------------------------------------------------------------

// InsertChar inserts r at the given location. At the line past the end it
// starts a new line holding r.
func (b *Buffer) InsertChar(r rune, at Location) {
	switch {
	case b.hasLine(at.Line):
		b.lines[at.Line].InsertChar(r, at.Grapheme)
	case int(at.Line) == len(b.lines):
		b.lines = append(b.lines, text.NewLine(string(r)))
	default:
		return
	}
	b.modified = true
}

// DeleteForward deletes the grapheme under the caret. At the end of a line
// the next line is joined onto it; at the end of the last line nothing
// happens.
func (b *Buffer) DeleteForward(at Location) {
	if !b.hasLine(at.Line) {
		return
	}
	count := text.GraphemeIdx(b.lines[at.Line].GraphemeCount())
	switch {
	case at.Grapheme >= count && b.IsLastLine(at.Line):
		return
	case at.Grapheme >= count:
		next := b.lines[at.Line+1]
		b.lines = slices.Delete(b.lines, int(at.Line)+1, int(at.Line)+2)
		b.lines[at.Line].Join(next)
	default:
		if err := b.lines[at.Line].RemoveAt(at.Grapheme); err != nil {
			return
		}
	}
	b.modified = true
}

// InsertNewline splits the line at the caret. Past the last line it appends
// an empty line instead.
func (b *Buffer) InsertNewline(at Location) {
	switch {
	case b.hasLine(at.Line):
		rest := b.lines[at.Line].SplitAt(at.Grapheme)
		b.lines = slices.Insert(b.lines, int(at.Line)+1, rest)
	case int(at.Line) == len(b.lines):
		b.lines = append(b.lines, text.Line{})
	default:
		return
	}
	b.modified = true
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func (b *Buffer) hasLine(y LineIdx) bool {
	return y >= 0 && int(y) < len(b.lines)
}

// IsLastLine reports whether y addresses the final stored line.
func (b *Buffer) IsLastLine(y LineIdx) bool {
	return int(y) == len(b.lines)-1
}

// IsEmpty reports whether the buffer holds no lines at all.
func (b *Buffer) IsEmpty() bool { return len(b.lines) == 0 }

// LineCount returns the number of stored lines.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the line at y.
func (b *Buffer) Line(y LineIdx) (text.Line, bool) {
	if !b.hasLine(y) {
		return text.Line{}, false
	}
	return b.lines[y], true
}

// GraphemeCount returns the length of line y, or 0 if there is no such line.
func (b *Buffer) GraphemeCount(y LineIdx) text.GraphemeIdx {
	if !b.hasLine(y) {
		return 0
	}
	return text.GraphemeIdx(b.lines[y].GraphemeCount())
}

// Filename returns the file the buffer saves to, or "" if unnamed.
func (b *Buffer) Filename() string { return b.filename }

// IsModified reports whether there are unsaved changes.
func (b *Buffer) IsModified() bool { return b.modified }

// String serializes the buffer as it would be written: every line followed
// by "\n".
func (b *Buffer) String() string {
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

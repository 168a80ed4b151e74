// Package text models a single editable line as a sequence of grapheme
// clusters, each tagged with the number of terminal columns it occupies.
//
// Two units address a line and they are never interchangeable:
//
//  1. GraphemeIdx: the logical position of a user-perceived character. This is
//     what the caret stores and what every mutation takes.
//  2. ColIdx: a rendered terminal column. This is what the viewport scrolls by
//     and what the terminal driver is told.
//
// WidthUntil converts the first into the second. There is no conversion the
// other way; callers that start from a column walk the line themselves.
package text

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GraphemeIdx is a logical index into a line, counted in grapheme clusters.
type GraphemeIdx int

// ColIdx is a rendered column, counted in terminal cells.
type ColIdx int

// Width is the number of columns a fragment occupies.
type Width uint8

const (
	Half Width = 1
	Full Width = 2
)

// Cols converts a fragment width into rendered columns.
func (w Width) Cols() ColIdx { return ColIdx(w) }

// Glyphs substituted for clusters that would otherwise render as nothing or
// as something misleading.
const (
	tabGlyph       = ' '
	blankGlyph     = '␣'
	zeroWidthGlyph = '·'
	controlGlyph   = '▯'

	// Ellipsis replaces a fragment cut by either edge of a visible window.
	Ellipsis = '⋯'
)

// ErrOutOfRange is returned when a grapheme index does not address a fragment.
var ErrOutOfRange = errors.New("grapheme index out of range")

// Fragment is one grapheme cluster plus how it is drawn.
type Fragment struct {
	Grapheme    string
	Width       Width
	Replacement rune // 0 when the grapheme is drawn as is
}

// Line is an ordered run of fragments. The zero value is an empty line.
type Line struct {
	fragments []Fragment
}

// NewLine segments s into grapheme clusters.
func NewLine(s string) Line {
	return Line{fragments: fragmentsOf(s)}
}

func fragmentsOf(s string) []Fragment {
	if s == "" {
		return nil
	}
	out := make([]Fragment, 0, uniseg.GraphemeClusterCount(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		out = append(out, newFragment(cluster))
	}
	return out
}

func newFragment(cluster string) Fragment {
	w := clusterWidth(cluster)
	f := Fragment{
		Grapheme:    cluster,
		Width:       Half,
		Replacement: replacementFor(cluster, w),
	}
	if w >= 2 {
		f.Width = Full
	}
	return f
}

// clusterWidth measures a cluster in terminal cells. runewidth reports zero
// for some emoji sequences that uniseg measures correctly.
func clusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w == 0 {
		w = uniseg.StringWidth(cluster)
	}
	return w
}

func replacementFor(cluster string, width int) rune {
	switch {
	case cluster == " ":
		return 0
	case cluster == "\t":
		return tabGlyph
	case width > 0 && strings.TrimSpace(cluster) == "":
		return blankGlyph
	case width == 0:
		r, size := utf8.DecodeRuneInString(cluster)
		if size == len(cluster) && unicode.IsControl(r) {
			return controlGlyph
		}
		return zeroWidthGlyph
	}
	return 0
}

// GraphemeCount returns the number of fragments on the line.
func (l Line) GraphemeCount() int { return len(l.fragments) }

// Width returns the rendered width of the whole line.
func (l Line) Width() ColIdx {
	return l.WidthUntil(GraphemeIdx(len(l.fragments)))
}

// WidthUntil returns the column at which the grapheme at index at starts.
// Indexes past the end return the full width.
func (l Line) WidthUntil(at GraphemeIdx) ColIdx {
	var col ColIdx
	for i, f := range l.fragments {
		if GraphemeIdx(i) >= at {
			break
		}
		col += f.Width.Cols()
	}
	return col
}

// Visible returns what the columns [start, end) of the line show. A fragment
// cut by either edge is drawn as a single Ellipsis so a wide glyph is never
// split.
func (l Line) Visible(start, end ColIdx) string {
	if start >= end {
		return ""
	}
	var b strings.Builder
	var pos ColIdx
	for _, f := range l.fragments {
		if pos >= end {
			break
		}
		fragEnd := pos + f.Width.Cols()
		if fragEnd > start {
			switch {
			case fragEnd > end || pos < start:
				b.WriteRune(Ellipsis)
			case f.Replacement != 0:
				b.WriteRune(f.Replacement)
				if f.Width == Full {
					b.WriteByte(' ')
				}
			default:
				b.WriteString(f.Grapheme)
			}
		}
		pos = fragEnd
	}
	return b.String()
}

// InsertChar inserts r before the fragment at index at, or appends it when at
// is past the end. The line is segmented again because r may join an
// adjacent cluster.
func (l *Line) InsertChar(r rune, at GraphemeIdx) {
	if at < 0 {
		at = 0
	}
	var b strings.Builder
	for i, f := range l.fragments {
		if GraphemeIdx(i) == at {
			b.WriteRune(r)
		}
		b.WriteString(f.Grapheme)
	}
	if int(at) >= len(l.fragments) {
		b.WriteRune(r)
	}
	l.fragments = fragmentsOf(b.String())
}

// Append adds r at the end of the line.
func (l *Line) Append(r rune) {
	l.InsertChar(r, GraphemeIdx(len(l.fragments)))
}

// RemoveAt removes the grapheme cluster at index at.
func (l *Line) RemoveAt(at GraphemeIdx) error {
	if at < 0 || int(at) >= len(l.fragments) {
		return fmt.Errorf("remove %d of %d: %w", at, len(l.fragments), ErrOutOfRange)
	}
	var b strings.Builder
	for i, f := range l.fragments {
		if GraphemeIdx(i) != at {
			b.WriteString(f.Grapheme)
		}
	}
	l.fragments = fragmentsOf(b.String())
	return nil
}

// RemoveLast drops the final cluster, if any.
func (l *Line) RemoveLast() {
	if len(l.fragments) > 0 {
		_ = l.RemoveAt(GraphemeIdx(len(l.fragments) - 1))
	}
}

// SplitAt truncates the line to its first at clusters and returns the rest.
func (l *Line) SplitAt(at GraphemeIdx) Line {
	if at < 0 {
		at = 0
	}
	if int(at) >= len(l.fragments) {
		return Line{}
	}
	rest := make([]Fragment, len(l.fragments)-int(at))
	copy(rest, l.fragments[at:])
	l.fragments = l.fragments[:at:at]
	return Line{fragments: rest}
}

// Join appends other to the line. The seam is segmented again since the
// first cluster of other may extend the last cluster of l.
func (l *Line) Join(other Line) {
	if len(other.fragments) == 0 {
		return
	}
	l.fragments = fragmentsOf(l.String() + other.String())
}

// Fragment returns the fragment at index at.
func (l Line) Fragment(at GraphemeIdx) (Fragment, bool) {
	if at < 0 || int(at) >= len(l.fragments) {
		return Fragment{}, false
	}
	return l.fragments[at], true
}

// String returns the raw text of the line.
func (l Line) String() string {
	var b strings.Builder
	for _, f := range l.fragments {
		b.WriteString(f.Grapheme)
	}
	return b.String()
}

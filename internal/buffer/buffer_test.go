package buffer

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xonecas/quill/internal/text"
)

func lines(b *Buffer) []string {
	out := make([]string, b.LineCount())
	for i := range out {
		l, _ := b.Line(LineIdx(i))
		out[i] = l.String()
	}
	return out
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty file", "", []string{}},
		{"single newline", "\n", []string{""}},
		{"trailing newline dropped", "ab\ncd\n", []string{"ab", "cd"}},
		{"no trailing newline", "ab\ncd", []string{"ab", "cd"}},
		{"blank middle line", "a\n\nb\n", []string{"a", "", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.content)
			b, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := lines(b); !slices.Equal(got, tc.want) {
				t.Errorf("lines = %q, want %q", got, tc.want)
			}
			if b.Filename() != path {
				t.Errorf("Filename() = %q", b.Filename())
			}
			if b.IsModified() {
				t.Error("fresh buffer reports modified")
			}
		})
	}
}

func TestLoadMissingFileKeepsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !b.IsEmpty() || b.Filename() != path {
		t.Errorf("got %d lines, name %q", b.LineCount(), b.Filename())
	}
}

func TestLoadInvalidUTF8(t *testing.T) {
	path := writeFile(t, "ok\n\xff\xfe\n")
	b, err := Load(path)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("err = %v, want ErrInvalidUTF8", err)
	}
	if !b.IsEmpty() || b.Filename() != path {
		t.Errorf("degraded buffer: %d lines, name %q", b.LineCount(), b.Filename())
	}
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	b, err := Load(dir)
	if err == nil {
		t.Fatal("expected error reading a directory")
	}
	if !b.IsEmpty() || b.Filename() != dir {
		t.Errorf("degraded buffer: %d lines, name %q", b.LineCount(), b.Filename())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeFile(t, "one\ntwo")
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b.InsertChar('!', Location{Line: 1, Grapheme: 3})
	if !b.IsModified() {
		t.Fatal("insert did not set modified")
	}
	if err := b.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if b.IsModified() {
		t.Error("save did not clear modified")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "one\ntwo!\n" {
		t.Errorf("file = %q", data)
	}
}

func TestSaveWithoutName(t *testing.T) {
	b := New()
	b.InsertChar('x', Location{})
	if err := b.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !b.IsModified() {
		t.Error("unnamed save must not clear modified")
	}
}

func TestSaveAs(t *testing.T) {
	b := FromString("hi\n")
	b.InsertChar('!', Location{Line: 0, Grapheme: 2})

	bad := filepath.Join(t.TempDir(), "missing", "dir", "notes.txt")
	if err := b.SaveAs(bad); err == nil {
		t.Fatal("expected write error")
	}
	if b.Filename() != "" || !b.IsModified() {
		t.Errorf("failed save changed state: name %q modified %v", b.Filename(), b.IsModified())
	}

	good := filepath.Join(t.TempDir(), "notes.txt")
	if err := b.SaveAs(good); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if b.Filename() != good || b.IsModified() {
		t.Errorf("after save: name %q modified %v", b.Filename(), b.IsModified())
	}
}

func TestInsertChar(t *testing.T) {
	b := New()
	b.InsertChar('a', Location{Line: 0})
	b.InsertChar('b', Location{Line: 0, Grapheme: 1})
	b.InsertChar('c', Location{Line: 1})
	b.InsertChar('z', Location{Line: 5})
	b.InsertChar('z', Location{Line: -1})
	if got := lines(b); !slices.Equal(got, []string{"ab", "c"}) {
		t.Errorf("lines = %q", got)
	}
}

func TestInsertNewlineSplitsLine(t *testing.T) {
	b := FromString("ab\ncd")
	b.InsertNewline(Location{Line: 0, Grapheme: 2})
	if got := lines(b); !slices.Equal(got, []string{"ab", "", "cd"}) {
		t.Errorf("lines = %q", got)
	}

	b.InsertNewline(Location{Line: 2, Grapheme: 1})
	if got := lines(b); !slices.Equal(got, []string{"ab", "", "c", "d"}) {
		t.Errorf("lines = %q", got)
	}

	b.InsertNewline(Location{Line: 4})
	if got := lines(b); !slices.Equal(got, []string{"ab", "", "c", "d", ""}) {
		t.Errorf("lines = %q", got)
	}
}

func TestDeleteForward(t *testing.T) {
	b := FromString("ab")
	at := Location{}
	b.DeleteForward(at)
	b.DeleteForward(at)
	if got := lines(b); !slices.Equal(got, []string{""}) {
		t.Fatalf("lines = %q", got)
	}
	b.DeleteForward(at)
	if got := lines(b); !slices.Equal(got, []string{""}) {
		t.Errorf("third delete changed buffer: %q", got)
	}
}

func TestDeleteForwardJoinsLines(t *testing.T) {
	b := FromString("ab\ncd\nef")
	b.DeleteForward(Location{Line: 0, Grapheme: 2})
	if got := lines(b); !slices.Equal(got, []string{"abcd", "ef"}) {
		t.Errorf("lines = %q", got)
	}
}

func TestDeleteForwardPastEndIsNoop(t *testing.T) {
	b := FromString("ab")
	b.DeleteForward(Location{Line: 1})
	b.DeleteForward(Location{Line: 7})
	if b.IsModified() {
		t.Error("no-op delete set modified")
	}
}

func TestChangeSummary(t *testing.T) {
	b := FromString("one\ntwo\nthree\n")
	if s := b.ChangeSummary(); !s.Empty() {
		t.Fatalf("fresh summary = %v", s)
	}
	b.InsertChar('!', Location{Line: 0, Grapheme: 3})
	b.InsertNewline(Location{Line: 2, Grapheme: 5})
	b.InsertChar('x', Location{Line: 3})

	s := b.ChangeSummary()
	if s.Added != 2 || s.Removed != 1 {
		t.Errorf("summary = %v, want +2 -1", s)
	}
	if s.String() != "+2 -1" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestProperty_DeleteForwardAtEndOfLastLine(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		raw := rapid.SliceOfN(rapid.StringMatching(`[a-z世 ]{0,8}`), 1, 6).Draw(rt, "lines")
		b := New()
		for i, l := range raw {
			for _, r := range l {
				b.InsertChar(r, Location{Line: LineIdx(i), Grapheme: b.GraphemeCount(LineIdx(i))})
			}
			if i < len(raw)-1 {
				b.InsertNewline(Location{Line: LineIdx(i), Grapheme: b.GraphemeCount(LineIdx(i))})
			}
		}
		before := lines(b)
		last := LineIdx(b.LineCount() - 1)
		b.DeleteForward(Location{Line: last, Grapheme: b.GraphemeCount(last)})
		require.Equal(rt, before, lines(b))
	})
}

func TestLineAccessors(t *testing.T) {
	b := FromString("世界\nx")
	if !b.IsLastLine(1) || b.IsLastLine(0) {
		t.Error("IsLastLine wrong")
	}
	if got := b.GraphemeCount(0); got != 2 {
		t.Errorf("GraphemeCount(0) = %d", got)
	}
	if got := b.GraphemeCount(9); got != 0 {
		t.Errorf("GraphemeCount(9) = %d", got)
	}
	if _, ok := b.Line(2); ok {
		t.Error("Line(2) should not exist")
	}
	l, _ := b.Line(0)
	if l.Width() != text.ColIdx(4) {
		t.Errorf("width = %d", l.Width())
	}
}

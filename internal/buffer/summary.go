package buffer

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Summary counts lines changed since the last load or save.
type Summary struct {
	Added   int
	Removed int
}

// Empty reports whether nothing changed.
func (s Summary) Empty() bool { return s.Added == 0 && s.Removed == 0 }

func (s Summary) String() string {
	return fmt.Sprintf("+%d -%d", s.Added, s.Removed)
}

// ChangeSummary diffs the current content against the content the buffer had
// when it was last loaded or saved.
func (b *Buffer) ChangeSummary() Summary {
	current := b.String()
	if current == b.baseline {
		return Summary{}
	}
	name := b.filename
	if name == "" {
		name = "untitled"
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), b.baseline, current)
	unified := gotextdiff.ToUnified(name, name, b.baseline, edits)

	var s Summary
	for _, h := range unified.Hunks {
		for _, l := range h.Lines {
			switch l.Kind {
			case gotextdiff.Insert:
				s.Added++
			case gotextdiff.Delete:
				s.Removed++
			}
		}
	}
	return s
}

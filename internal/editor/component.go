// Package editor is the editing core: the main document view, the bars
// beneath it, and the Editor that routes commands between them and decides
// what to redraw each frame.
package editor

import (
	"github.com/rs/zerolog/log"

	"github.com/xonecas/quill/internal/terminal"
)

// UIComponent is a rectangular band of the screen that redraws only when
// something it shows has changed.
type UIComponent interface {
	SetSize(terminal.Size)
	NeedsRedraw() bool
	MarkDirty(bool)
	// Draw paints the component starting at startRow.
	Draw(d terminal.Driver, startRow int) error
}

// Render draws c at row if it is dirty. A failed draw is logged and leaves c
// dirty so the next frame tries again.
func Render(c UIComponent, d terminal.Driver, row int) {
	if !c.NeedsRedraw() {
		return
	}
	if err := c.Draw(d, row); err != nil {
		log.Warn().Err(err).Int("row", row).Msg("draw failed")
		return
	}
	c.MarkDirty(false)
}

// Resize gives c a new size and schedules a redraw.
func Resize(c UIComponent, size terminal.Size) {
	c.SetSize(size)
	c.MarkDirty(true)
}

// band carries the size and dirty flag every component has.
type band struct {
	size  terminal.Size
	dirty bool
}

func (b *band) SetSize(size terminal.Size) { b.size = size }
func (b *band) NeedsRedraw() bool          { return b.dirty }
func (b *band) MarkDirty(dirty bool)       { b.dirty = dirty }

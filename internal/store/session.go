package store

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/quill/internal/buffer"
	"github.com/xonecas/quill/internal/text"
)

// Caret returns the location last recorded for path.
// Safe to call on a nil receiver (returns miss).
func (s *Store) Caret(path string) (buffer.Location, bool) {
	if s == nil || path == "" {
		return buffer.Location{}, false
	}
	var line, grapheme int
	err := s.db.QueryRow(
		"SELECT line, grapheme FROM sessions WHERE path = ?",
		key(path),
	).Scan(&line, &grapheme)
	if err != nil {
		return buffer.Location{}, false
	}
	return buffer.Location{Line: buffer.LineIdx(line), Grapheme: text.GraphemeIdx(grapheme)}, true
}

// SetCaret records the caret location for path. No-op on nil receiver.
func (s *Store) SetCaret(path string, loc buffer.Location) {
	if s == nil || path == "" {
		return
	}
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO sessions (path, line, grapheme, updated) VALUES (?, ?, ?, ?)",
		key(path), int(loc.Line), int(loc.Grapheme), time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("failed to record caret")
	}
}

// key normalizes a file path so relative and absolute spellings share a row.
func key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

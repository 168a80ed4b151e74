// Package terminal defines the narrow surface the editor core draws through
// and reads input from, plus the drivers that implement it.
//
// The core only ever talks to a Driver. Frame renders into memory for the
// bubbletea front end and for tests; Screen drives a real terminal through
// tcell.
package terminal

import "fmt"

// Size is a width and height in terminal cells.
type Size struct {
	Width  int
	Height int
}

// Position is a cell coordinate. Row 0 is the top of the screen.
type Position struct {
	Row int
	Col int
}

// Sub returns p - o, saturating at zero on both axes.
func (p Position) Sub(o Position) Position {
	return Position{Row: max(p.Row-o.Row, 0), Col: max(p.Col-o.Col, 0)}
}

// Driver is the drawing surface.
type Driver interface {
	Size() (Size, error)
	MoveCaret(Position) error
	ShowCaret() error
	HideCaret() error
	// ClearLine blanks the row the caret is on.
	ClearLine() error
	// Print writes text at the caret and advances it by the text's width.
	Print(text string) error
	PrintInverted(text string) error
	// Execute flushes everything queued since the last call.
	Execute() error
}

// Lifecycle is implemented by drivers that own the real terminal: raw mode
// and the alternate screen are entered on Initialize and left on Terminate.
type Lifecycle interface {
	Initialize() error
	Terminate() error
}

// PrintRow clears row and prints line at its start.
func PrintRow(d Driver, row int, line string) error {
	return printRow(d, row, line, d.Print)
}

// PrintInvertedRow clears row and prints line inverted at its start.
func PrintInvertedRow(d Driver, row int, line string) error {
	return printRow(d, row, line, d.PrintInverted)
}

func printRow(d Driver, row int, line string, print func(string) error) error {
	if err := d.MoveCaret(Position{Row: row}); err != nil {
		return fmt.Errorf("move to row %d: %w", row, err)
	}
	if err := d.ClearLine(); err != nil {
		return fmt.Errorf("clear row %d: %w", row, err)
	}
	return print(line)
}

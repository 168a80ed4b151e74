package terminal

import (
	"errors"
	"fmt"
	"sync"
)

// Guard holds an initialized terminal and restores it exactly once.
type Guard struct {
	term Lifecycle
	once sync.Once
	err  error
}

// Acquire initializes t. The caller must Release the guard, typically with
// defer so that a panic still leaves the terminal usable.
func Acquire(t Lifecycle) (*Guard, error) {
	if err := t.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize terminal: %w", err)
	}
	return &Guard{term: t}, nil
}

// Release terminates the terminal. Later calls return the first result.
func (g *Guard) Release() error {
	if g == nil {
		return nil
	}
	g.once.Do(func() {
		if err := g.term.Terminate(); err != nil {
			g.err = fmt.Errorf("terminate terminal: %w", err)
		}
	})
	return g.err
}

// With runs fn while t is acquired and releases it on every exit path,
// including a panic in fn, which is re-raised after the terminal is restored.
func With(t Lifecycle, fn func() error) (err error) {
	g, err := Acquire(t)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, g.Release())
	}()
	return fn()
}

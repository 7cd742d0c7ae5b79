package tile

import (
	"errors"
	"fmt"
)

// ErrEmptyGrid and ErrNoFocus name the two reasons a mutator can be a
// no-op. TileGrid's own methods absorb these locally and report them as
// a plain bool return (the operation becomes a no-op); no method returns
// these values, and the event dispatcher ignores the bool results. They
// are exported for callers that want to name the reason themselves.
var (
	ErrEmptyGrid = errors.New("tile: grid is empty")
	ErrNoFocus   = errors.New("tile: no focused tile")
)

// RendererFailure wraps an error returned by the external renderer
// during a redraw. The tree state is already committed by the time this
// fires, so a caller may simply retry the redraw.
type RendererFailure struct {
	Window WindowID
	Err    error
}

func (e *RendererFailure) Error() string {
	return fmt.Sprintf("tile: renderer failed for window %d: %v", e.Window, e.Err)
}

func (e *RendererFailure) Unwrap() error { return e.Err }

// ErrReentrantRender is returned by Redraw if the renderer callback calls
// Redraw again on the TileGrid it is rendering. Only that nested Redraw is
// detected; the engine's mutators do not check for it. They are not
// reentrant either: a renderer that mutates the grid it is currently
// drawing is a programming error, not a recoverable condition.
var ErrReentrantRender = errors.New("tile: renderer re-entered the grid it is rendering")

// invariant panics if cond is false, naming the structural invariant that
// was violated. These should never fire in correct operation; they are
// the assertion channel for bugs in the engine itself, not for malformed
// caller input.
func invariant(cond bool, which string) {
	if !cond {
		panic("tile: invariant " + which + " violated")
	}
}

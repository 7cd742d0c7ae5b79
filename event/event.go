// Package event dispatches mutation requests into a tile.TileGrid from a
// single owning goroutine, the way the teacher's App coalesces external
// render requests through a buffered, non-blocking channel instead of
// locking shared state. Background producers only ever enqueue; the
// engine itself is never touched from more than one goroutine at a time.
package event

import (
	"fmt"

	"twm/codec"
	"twm/tile"
)

// Kind identifies which mutation an Event requests.
type Kind int

const (
	Push Kind = iota
	Pop
	Focus
	SwapFocused
	MoveFocusedIn
	MoveFocusedOut
	ResetRow
	ResetColumn
	ToggleFullscreen
	SwapColumnsAndRows
	SetNextAxis
	SetNextDirection
	LoadLayout
	DumpLayout
)

// Event is one request to mutate or query a TileGrid. Only the fields
// relevant to Kind are read.
type Event struct {
	Kind      Kind
	Window    tile.WindowID // Push
	Direction tile.Direction // Focus, SwapFocused, MoveFocusedIn, MoveFocusedOut
	Axis      tile.Axis      // SetNextAxis
	Layout    string         // LoadLayout

	// Result, if non-nil, receives the outcome once the Event is applied:
	// the layout or error of LoadLayout/DumpLayout (the only two Kinds that
	// produce a value rather than just mutating the grid), or a zero Result
	// for every other Kind. It is sent on exactly once, from the
	// dispatcher's goroutine, before the next Event is drained.
	Result chan<- Result
}

// Result carries the outcome of a LoadLayout or DumpLayout request.
type Result struct {
	Layout string
	Err    error
}

// Dispatcher owns a TileGrid and applies Events to it one at a time from
// whichever goroutine calls Run. Producers enqueue via Send/TrySend from
// any goroutine.
type Dispatcher struct {
	grid   *tile.TileGrid
	events chan Event
	done   chan struct{}
}

// NewDispatcher wraps grid with a dispatcher whose inbox holds up to
// capacity pending Events before Send blocks.
func NewDispatcher(grid *tile.TileGrid, capacity int) *Dispatcher {
	return &Dispatcher{
		grid:   grid,
		events: make(chan Event, capacity),
		done:   make(chan struct{}),
	}
}

// Grid returns the underlying TileGrid. Only safe to read from the
// goroutine running Run, or after Run has returned (Stop itself returns
// without waiting for Run).
func (d *Dispatcher) Grid() *tile.TileGrid { return d.grid }

// Send enqueues ev, blocking if the inbox is full. Safe to call from any
// goroutine.
func (d *Dispatcher) Send(ev Event) {
	d.events <- ev
}

// TrySend enqueues ev without blocking, reporting false if the inbox is
// full. Useful for high-frequency producers (e.g. a key-repeat stream)
// that would rather drop than back up.
func (d *Dispatcher) TrySend(ev Event) bool {
	select {
	case d.events <- ev:
		return true
	default:
		return false
	}
}

// SendSync enqueues ev and blocks until the owning goroutine has applied
// it, returning whatever Result it produced (zero for Kinds that don't
// populate one). Useful for a single-threaded caller — e.g. a UI loop
// that renders right after dispatching — that needs the mutation visibly
// finished before it reads the grid again, without taking a lock on it.
func (d *Dispatcher) SendSync(ev Event) Result {
	ack := make(chan Result, 1)
	ev.Result = ack
	d.events <- ev
	return <-ack
}

// Stop signals Run to return once it has drained any already-enqueued
// Events. It does not discard pending Events.
func (d *Dispatcher) Stop() {
	close(d.done)
}

// Run drains Events and applies them to the grid until Stop is called.
// It must be invoked from the single goroutine that owns the grid; the
// engine's mutators are not safe for concurrent use, which is exactly
// what routing every mutation through this one loop prevents.
func (d *Dispatcher) Run() {
	for {
		select {
		case ev := <-d.events:
			d.apply(ev)
		case <-d.done:
			// Drain whatever is already queued before returning.
			for {
				select {
				case ev := <-d.events:
					d.apply(ev)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) apply(ev Event) {
	g := d.grid
	var result Result

	switch ev.Kind {
	case Push:
		g.Push(ev.Window)
	case Pop:
		g.Pop()
	case Focus:
		g.Focus(ev.Direction)
	case SwapFocused:
		g.SwapFocused(ev.Direction)
	case MoveFocusedIn:
		g.MoveFocusedIn(ev.Direction)
	case MoveFocusedOut:
		g.MoveFocusedOut(ev.Direction)
	case ResetRow:
		g.ResetRow()
	case ResetColumn:
		g.ResetColumn()
	case ToggleFullscreen:
		g.ToggleFullscreen()
	case SwapColumnsAndRows:
		g.SwapColumnsAndRows()
	case SetNextAxis:
		g.SetNextAxis(ev.Axis)
	case SetNextDirection:
		g.SetNextDirection(ev.Direction)
	case DumpLayout:
		result = Result{Layout: codec.Serialize(g)}
	case LoadLayout:
		parsed, err := codec.Parse(ev.Layout)
		if err != nil {
			result = Result{Err: fmt.Errorf("event: load layout: %w", err)}
		} else {
			d.grid = parsed
		}
	}

	if ev.Result != nil {
		ev.Result <- result
	}
}

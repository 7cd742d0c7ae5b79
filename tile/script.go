package tile

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyScript runs a whitespace/comma-separated sequence of short action
// tokens against tg, in the spirit of the action mini-languages used to
// drive scenario tests in this codebase. Recognized tokens:
//
//	p          push a new Tile (window IDs are auto-assigned, 1, 2, 3...)
//	o          pop (remove) the focused Tile
//	fl fr fu fd    focus left/right/up/down
//	sl sr su sd    swap focused left/right/up/down
//	mil mir miu mid   move focused in, left/right/up/down
//	mol mor mou mod   move focused out, left/right/up/down
//	rr rc          reset row / reset column
//	fs             toggle fullscreen
//	sw             swap columns and rows
//	axh axv        set next axis horizontal/vertical
//	dxf dxb        set next direction forward/backward (maps to Right/Left
//	               or Down/Up depending on the current next axis)
//	dirl dirr diru dird   set next direction directly to Left/Right/Up/Down
//	               (spec.md §8's own scenario notation)
//
// It exists for tests that want to describe a scenario as a compact string
// rather than a long sequence of method calls; it is not part of the
// engine's public surface for production callers.
func (tg *TileGrid) ApplyScript(script string) error {
	gen := NewWindowIDGenerator()
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	for _, tok := range fields {
		switch tok {
		case "p":
			tg.Push(gen.Next())
		case "o":
			tg.Pop()
		case "fl":
			tg.Focus(Left)
		case "fr":
			tg.Focus(Right)
		case "fu":
			tg.Focus(Up)
		case "fd":
			tg.Focus(Down)
		case "sl":
			tg.SwapFocused(Left)
		case "sr":
			tg.SwapFocused(Right)
		case "su":
			tg.SwapFocused(Up)
		case "sd":
			tg.SwapFocused(Down)
		case "mil":
			tg.MoveFocusedIn(Left)
		case "mir":
			tg.MoveFocusedIn(Right)
		case "miu":
			tg.MoveFocusedIn(Up)
		case "mid":
			tg.MoveFocusedIn(Down)
		case "mol":
			tg.MoveFocusedOut(Left)
		case "mor":
			tg.MoveFocusedOut(Right)
		case "mou":
			tg.MoveFocusedOut(Up)
		case "mod":
			tg.MoveFocusedOut(Down)
		case "rr":
			tg.ResetRow()
		case "rc":
			tg.ResetColumn()
		case "fs":
			tg.ToggleFullscreen()
		case "sw":
			tg.SwapColumnsAndRows()
		case "axh":
			tg.SetNextAxis(Horizontal)
		case "axv":
			tg.SetNextAxis(Vertical)
		case "dxf":
			if tg.NextAxis() == Vertical {
				tg.SetNextDirection(Right)
			} else {
				tg.SetNextDirection(Down)
			}
		case "dxb":
			if tg.NextAxis() == Vertical {
				tg.SetNextDirection(Left)
			} else {
				tg.SetNextDirection(Up)
			}
		case "dirl":
			tg.SetNextDirection(Left)
		case "dirr":
			tg.SetNextDirection(Right)
		case "diru":
			tg.SetNextDirection(Up)
		case "dird":
			tg.SetNextDirection(Down)
		default:
			if n, err := strconv.Atoi(tok); err == nil {
				// A bare number pushes a Tile bound to that specific
				// window ID instead of the auto-incrementing default.
				tg.Push(WindowID(n))
				continue
			}
			return fmt.Errorf("tile: unrecognized script token %q", tok)
		}
	}
	return nil
}

package tile

import "testing"

// TestLayoutSingleTileFillsViewport covers the trivial one-Tile tree: the
// whole viewport belongs to the root.
func TestLayoutSingleTileFillsViewport(t *testing.T) {
	tg := New()
	tg.Push(1)

	got := tg.Layout(100, 50)
	want := []RenderInfo{{Window: 1, Rect: Rect{X: 0, Y: 0, W: 100, H: 50}}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

// TestLayoutEqualColumnSplit covers an even three-way Column split (a
// Column places its children left-to-right) at a width that divides
// cleanly, so every span is exactly a third of the total width.
func TestLayoutEqualColumnSplit(t *testing.T) {
	tg := New()
	if err := tg.ApplyScript("p,p,p"); err != nil {
		t.Fatal(err)
	}

	got := tg.Layout(120, 30)
	want := []RenderInfo{
		{Window: 1, Rect: Rect{X: 0, Y: 0, W: 40, H: 30}},
		{Window: 2, Rect: Rect{X: 40, Y: 0, W: 40, H: 30}},
		{Window: 3, Rect: Rect{X: 80, Y: 0, W: 40, H: 30}},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tiles, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tile %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

// TestLayoutRowCoversRemainderWithoutGapsOrOverlaps covers the case where
// the viewport extent does not divide evenly among the children's Unit
// shares: proportionalSpans' largest-remainder rounding must still produce
// spans that exactly tile [0, total) with no gap and no overlap.
func TestLayoutRowCoversRemainderWithoutGapsOrOverlaps(t *testing.T) {
	tg := New()
	if err := tg.ApplyScript("axh,p,p,p"); err != nil {
		t.Fatal(err)
	}

	got := tg.Layout(10, 100)
	if len(got) != 3 {
		t.Fatalf("expected 3 tiles, got %d", len(got))
	}

	pos := 0
	for i, info := range got {
		if info.Rect.Y != pos {
			t.Fatalf("tile %d: expected Y %d, got %d (gap or overlap)", i, pos, info.Rect.Y)
		}
		if info.Rect.X != 0 || info.Rect.W != 10 {
			t.Fatalf("tile %d: expected full-width band, got %+v", i, info.Rect)
		}
		pos += info.Rect.H
	}
	if pos != 100 {
		t.Fatalf("expected spans to cover the full height 100, covered %d", pos)
	}
}

// TestLayoutNestedContainerSubdividesParentSpan covers a Row nested inside
// a Column (the S5 scenario shape): the nested container's children must
// subdivide the rectangle its own node was assigned, not the whole
// viewport. A Column places its children left-to-right; the Row nested
// within it then stacks its own children top-to-bottom down the band the
// Column gave it.
func TestLayoutNestedContainerSubdividesParentSpan(t *testing.T) {
	tg := New()
	if err := tg.ApplyScript("p,p,axh,p,p"); err != nil {
		t.Fatal(err)
	}

	got := tg.Layout(120, 60)
	byWindow := make(map[WindowID]Rect, len(got))
	for _, info := range got {
		byWindow[info.Window] = info.Rect
	}

	if r := byWindow[1]; r != (Rect{X: 0, Y: 0, W: 60, H: 60}) {
		t.Fatalf("window 1: expected left half, got %+v", r)
	}
	if r := byWindow[2]; r != (Rect{X: 60, Y: 0, W: 60, H: 20}) {
		t.Fatalf("window 2: expected top third of right band, got %+v", r)
	}
	if r := byWindow[3]; r != (Rect{X: 60, Y: 20, W: 60, H: 20}) {
		t.Fatalf("window 3: expected middle third of right band, got %+v", r)
	}
	if r := byWindow[4]; r != (Rect{X: 60, Y: 40, W: 60, H: 20}) {
		t.Fatalf("window 4: expected bottom third of right band, got %+v", r)
	}
}

// TestLayoutFullscreenReturnsOnlyFocusedWindowAtFullViewport covers the
// fullscreen branch: Layout must collapse to a single RenderInfo for the
// focused Tile at the full viewport, ignoring every other Tile's size.
func TestLayoutFullscreenReturnsOnlyFocusedWindowAtFullViewport(t *testing.T) {
	tg := New()
	if err := tg.ApplyScript("p,p,p"); err != nil {
		t.Fatal(err)
	}
	tg.Focus(Left)
	tg.Focus(Left)
	tg.ToggleFullscreen()

	got := tg.Layout(200, 80)
	want := RenderInfo{Window: 1, Rect: Rect{X: 0, Y: 0, W: 200, H: 80}}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("expected only %+v, got %+v", want, got)
	}
}

// TestLayoutEmptyGridReturnsNil covers the no-root case.
func TestLayoutEmptyGridReturnsNil(t *testing.T) {
	tg := New()
	if got := tg.Layout(100, 100); got != nil {
		t.Fatalf("expected nil layout for an empty grid, got %+v", got)
	}
}

// TestRedrawInvokesRendererForEveryTile covers the happy path: Redraw walks
// the same rectangles Layout would have computed and calls the renderer
// exactly once per visible Tile.
func TestRedrawInvokesRendererForEveryTile(t *testing.T) {
	tg := New()
	if err := tg.ApplyScript("p,p"); err != nil {
		t.Fatal(err)
	}

	var got []RenderInfo
	renderer := RendererFunc(func(window WindowID, rect Rect) error {
		got = append(got, RenderInfo{Window: window, Rect: rect})
		return nil
	})

	if err := tg.Redraw(renderer, 120, 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := tg.Layout(120, 40)
	if len(got) != len(want) {
		t.Fatalf("expected %d render calls, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

// TestRedrawWrapsRendererError covers the failure path: a renderer error
// is wrapped in a *RendererFailure naming the window it failed on.
func TestRedrawWrapsRendererError(t *testing.T) {
	tg := New()
	tg.Push(1)

	boom := errBoom{}
	renderer := RendererFunc(func(window WindowID, rect Rect) error {
		return boom
	})

	err := tg.Redraw(renderer, 10, 10)
	rf, ok := err.(*RendererFailure)
	if !ok {
		t.Fatalf("expected a *RendererFailure, got %T: %v", err, err)
	}
	if rf.Window != 1 {
		t.Fatalf("expected failure for window 1, got %d", rf.Window)
	}
	if rf.Unwrap() != boom {
		t.Fatalf("expected Unwrap to return the underlying error")
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// TestRedrawRejectsReentrantCall covers the reentrancy guard: a renderer
// callback that calls back into Redraw on the same grid must get
// ErrReentrantRender instead of being allowed to re-walk the tree mid-draw.
func TestRedrawRejectsReentrantCall(t *testing.T) {
	tg := New()
	if err := tg.ApplyScript("p,p"); err != nil {
		t.Fatal(err)
	}

	var reentrantErr error
	renderer := RendererFunc(func(window WindowID, rect Rect) error {
		reentrantErr = tg.Redraw(RendererFunc(func(WindowID, Rect) error { return nil }), 10, 10)
		return nil
	})

	if err := tg.Redraw(renderer, 10, 10); err != nil {
		t.Fatalf("unexpected error from the outer Redraw: %v", err)
	}
	if reentrantErr != ErrReentrantRender {
		t.Fatalf("expected ErrReentrantRender from the reentrant call, got %v", reentrantErr)
	}
}

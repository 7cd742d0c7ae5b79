package tile

import "twm/graph"

// Rect is an axis-aligned rectangle in the coordinate space a TileGrid was
// asked to lay out, expressed in whatever unit the caller's viewport uses
// (terminal cells, pixels, ...).
type Rect struct {
	X, Y, W, H int
}

// RenderInfo pairs a Tile's window with the rectangle it was assigned.
type RenderInfo struct {
	Window WindowID
	Rect   Rect
}

// Renderer is the single capability a TileGrid needs from its host: draw
// one window into one rectangle. Implementations should not call back into
// the TileGrid they were invoked from. Redraw detects and rejects a nested
// Redraw call; calls to the TileGrid's other methods are not detected.
type Renderer interface {
	Render(window WindowID, rect Rect) error
}

// RendererFunc adapts a plain function to the Renderer interface, the way
// http.HandlerFunc adapts a function to http.Handler.
type RendererFunc func(window WindowID, rect Rect) error

func (f RendererFunc) Render(window WindowID, rect Rect) error { return f(window, rect) }

// Layout computes the rectangle for every Tile in the tree within a
// viewport of the given width and height, without invoking a renderer. When
// Fullscreen is set, it returns a single entry: the focused Tile at the
// full viewport.
func (tg *TileGrid) Layout(width, height int) []RenderInfo {
	root, ok := tg.g.Root()
	if !ok {
		return nil
	}

	if tg.fullscreen {
		if w, ok := tg.FocusedWindow(); ok {
			return []RenderInfo{{Window: w, Rect: Rect{X: 0, Y: 0, W: width, H: height}}}
		}
		return nil
	}

	var out []RenderInfo
	tg.layoutNode(root, Rect{X: 0, Y: 0, W: width, H: height}, &out)
	return out
}

func (tg *TileGrid) layoutNode(id graph.ID, bounds Rect, out *[]RenderInfo) {
	n := tg.g.Node(id)
	if n.IsTile() {
		*out = append(*out, RenderInfo{Window: n.Window, Rect: bounds})
		return
	}

	children := tg.g.SortedChildren(id)
	sizes := make([]int, len(children))
	for i, c := range children {
		sizes[i] = tg.g.Node(c).Size
	}

	if n.Axis() == Vertical {
		offsets := proportionalSpans(sizes, bounds.W)
		for i, c := range children {
			tg.layoutNode(c, Rect{X: bounds.X + offsets[i].start, Y: bounds.Y, W: offsets[i].length, H: bounds.H}, out)
		}
		return
	}
	offsets := proportionalSpans(sizes, bounds.H)
	for i, c := range children {
		tg.layoutNode(c, Rect{X: bounds.X, Y: bounds.Y + offsets[i].start, W: bounds.W, H: offsets[i].length}, out)
	}
}

type span struct{ start, length int }

// proportionalSpans divides total (a pixel/cell extent) among sizes
// (Unit-denominated shares that sum to Unit) using the same sum-preserving
// largest-remainder rounding the engine uses for merge-parent, so the
// spans always exactly cover [0, total) with no gaps or overlaps.
func proportionalSpans(sizes []int, total int) []span {
	lengths := largestRemainder(sizes, Unit, total)
	out := make([]span, len(sizes))
	pos := 0
	for i, l := range lengths {
		out[i] = span{start: pos, length: l}
		pos += l
	}
	return out
}

// Redraw computes the current layout and invokes renderer once per visible
// Tile. It refuses to run reentrantly: calling Redraw from within a
// Renderer callback returns ErrReentrantRender instead of re-walking the
// tree mid-draw. Only Redraw checks for this; a callback that calls one of
// the TileGrid's mutators is not rejected.
func (tg *TileGrid) Redraw(renderer Renderer, width, height int) error {
	if tg.rendering {
		return ErrReentrantRender
	}
	tg.rendering = true
	defer func() { tg.rendering = false }()

	for _, info := range tg.Layout(width, height) {
		if err := renderer.Render(info.Window, info.Rect); err != nil {
			return &RendererFailure{Window: info.Window, Err: err}
		}
	}
	return nil
}

package tile

import "twm/graph"

// TileGrid is a mutable tree of Rows, Columns and Tiles rooted in a single
// graph.Graph, plus the cursor (focused tile) and the defaults new Tiles are
// pushed with. It owns all of its own structural invariants (no container
// holding zero or one child, no container whose axis matches its parent's):
// callers only ever see a tree that already satisfies them.
type TileGrid struct {
	g        *graph.Graph[Node]
	focused  graph.ID
	nextAxis Axis
	nextDir  Direction

	fullscreen bool
	rendering  bool
}

// New returns an empty TileGrid. The first Push establishes the root.
func New() *TileGrid {
	return &TileGrid{
		g:        graph.New[Node](),
		focused:  graph.NoID,
		nextAxis: Vertical,
		nextDir:  Right,
	}
}

// FromGraph adopts an already-built graph (typically produced by the codec
// package while parsing a serialized layout) as a TileGrid's backing store.
// root must already be set on g.
func FromGraph(g *graph.Graph[Node], focused graph.ID) *TileGrid {
	return &TileGrid{g: g, focused: focused, nextAxis: Vertical, nextDir: Right}
}

// Graph exposes the backing graph for read access and for packages (codec,
// render) that need to walk the tree directly.
func (tg *TileGrid) Graph() *graph.Graph[Node] { return tg.g }

// Empty reports whether the tree has no nodes at all.
func (tg *TileGrid) Empty() bool {
	_, ok := tg.g.Root()
	return !ok
}

// Focused returns the currently focused node's ID. ok is false on an empty
// grid.
func (tg *TileGrid) Focused() (graph.ID, bool) {
	if tg.focused == graph.NoID {
		return graph.NoID, false
	}
	return tg.focused, true
}

// FocusedWindow returns the window bound to the focused Tile.
func (tg *TileGrid) FocusedWindow() (WindowID, bool) {
	if tg.focused == graph.NoID {
		return NoWindow, false
	}
	return tg.g.Node(tg.focused).Window, true
}

// NextAxis and SetNextAxis control which axis Push wraps into when the
// focused Tile's parent doesn't already run along the desired axis.
func (tg *TileGrid) NextAxis() Axis         { return tg.nextAxis }
func (tg *TileGrid) SetNextAxis(a Axis)     { tg.nextAxis = a }
func (tg *TileGrid) NextDirection() Direction { return tg.nextDir }
func (tg *TileGrid) SetNextDirection(d Direction) { tg.nextDir = d }

// Fullscreen and ToggleFullscreen track a display-only flag; the tree shape
// is unaffected; a renderer consults Fullscreen to decide whether to draw
// only the focused Tile's window at the full viewport.
func (tg *TileGrid) Fullscreen() bool   { return tg.fullscreen }
func (tg *TileGrid) ToggleFullscreen()  { tg.fullscreen = !tg.fullscreen }

// redistribute re-equalizes the sizes of parent's children so they sum to
// Unit again, using the plain equal-split rule.
func (tg *TileGrid) redistribute(parent graph.ID) {
	children := tg.g.SortedChildren(parent)
	sizes := equalSizes(len(children))
	for i, id := range children {
		tg.g.Node(id).Size = sizes[i]
	}
}

// descendFirstTile walks first-children from id until it reaches a Tile.
func (tg *TileGrid) descendFirstTile(id graph.ID) graph.ID {
	for {
		n := tg.g.Node(id)
		if n.IsTile() {
			return id
		}
		id = tg.g.SortedChildren(id)[0]
	}
}

// Push inserts a new Tile bound to window next to the focused Tile.
//
// On an empty grid the new Tile becomes the root. Otherwise, if the focused
// Tile's parent already runs along nextAxis, the new Tile is inserted as a
// sibling there. Otherwise the focused Tile is wrapped: a fresh container
// along nextAxis takes its place, holding both the old and new Tile. When
// the focused Tile is the root, the wrapping container recycles the root's
// own ID (via Graph.SetNode) so external references to "the root" keep
// working; the old root's content is relocated to a freshly allocated ID.
func (tg *TileGrid) Push(window WindowID) {
	before := !tg.nextDir.IsForward()

	_, hasRoot := tg.g.Root()
	if !hasRoot {
		id := tg.g.AddNode(NewTile(window, Unit))
		tg.g.SetRoot(id)
		tg.focused = id
		return
	}

	f := tg.focused
	invariant(f != graph.NoID, "a non-empty grid always has a focused tile")

	desiredKind := axisKind(tg.nextAxis)
	p, hasParent := tg.g.Parent(f)

	if hasParent && tg.g.Node(p).Kind == desiredKind {
		newID := tg.g.AddNode(NewTile(window, 0))
		idx := tg.g.IndexOfChild(p, f)
		insertAt := idx
		if !before {
			insertAt = idx + 1
		}
		tg.g.InsertChild(p, insertAt, newID)
		tg.redistribute(p)
		tg.focused = newID
		return
	}

	newTileID := tg.g.AddNode(NewTile(window, 0))

	if !hasParent {
		// f is the root (and, since it's focused, a Tile): recycle its ID
		// for the new container and move its content to a fresh slot.
		movedF := tg.g.AddNode(*tg.g.Node(f))
		tg.g.SetNode(f, NewContainer(tg.nextAxis, Unit))
		order := [2]graph.ID{movedF, newTileID}
		if before {
			order = [2]graph.ID{newTileID, movedF}
		}
		tg.g.SetChildren(f, order[:])
		tg.redistribute(f)
		tg.focused = newTileID
		return
	}

	fSize := tg.g.Node(f).Size
	containerID := tg.g.AddNode(NewContainer(tg.nextAxis, fSize))
	idx := tg.g.IndexOfChild(p, f)
	tg.g.RemoveChild(p, f)
	tg.g.InsertChild(p, idx, containerID)

	order := [2]graph.ID{f, newTileID}
	if before {
		order = [2]graph.ID{newTileID, f}
	}
	tg.g.SetChildren(containerID, order[:])
	tg.redistribute(containerID)
	tg.focused = newTileID
}

// Pop removes the focused Tile. It reports false (a no-op) on an empty
// grid. Structural cleanup (promote-only-child, merge-parent) runs
// afterward so no container is left with zero or one child, and focus
// falls to the nearest surviving Tile on the removed Tile's side.
func (tg *TileGrid) Pop() bool {
	if tg.focused == graph.NoID {
		return false
	}
	f := tg.focused
	p, hasParent := tg.g.Parent(f)

	if !hasParent {
		tg.g.Remove(f)
		tg.focused = graph.NoID
		return true
	}

	children := tg.g.SortedChildren(p)
	idx := tg.g.IndexOfChild(p, f)
	neighbour := graph.NoID
	if idx > 0 {
		neighbour = children[idx-1]
	} else if idx < len(children)-1 {
		neighbour = children[idx+1]
	}
	nextFocus := graph.NoID
	if neighbour != graph.NoID {
		nextFocus = tg.descendFirstTile(neighbour)
	}

	tg.g.Remove(f)
	tg.collapseAfterRemoval(p)

	if nextFocus == graph.NoID {
		if root, ok := tg.g.Root(); ok {
			nextFocus = tg.descendFirstTile(root)
		}
	}
	tg.focused = nextFocus
	return true
}

// collapseAfterRemoval restores the no-singleton-container invariant after
// a child has been removed from parent: if parent is left with a single
// child, that child is promoted into parent's structural position
// (adopting parent's size); if the promoted child is itself a container
// running along its new parent's axis, its children are spliced directly
// into that parent (merge-parent) by mergeIntoParent, which proportionally
// rescales them to the slot they now occupy — per §4.3, that rescale is
// the final size for the merged children; grandparent's other, untouched
// children are left exactly as they were. Otherwise parent's remaining
// children are simply re-equalized.
func (tg *TileGrid) collapseAfterRemoval(parent graph.ID) {
	if tg.g.ChildCount(parent) != 1 {
		tg.redistribute(parent)
		return
	}

	c := tg.g.SortedChildren(parent)[0]
	parentSize := tg.g.Node(parent).Size
	grandparent, hasGrandparent := tg.g.Parent(parent)

	tg.g.Node(c).Size = parentSize
	tg.g.Replace(parent, c)

	if !hasGrandparent {
		return
	}
	cNode := *tg.g.Node(c)
	if cNode.IsContainer() && cNode.Axis() == tg.g.Node(grandparent).Axis() {
		tg.mergeIntoParent(grandparent, c)
	}
}

// mergeIntoParent splices child's own children directly into parent at
// child's index, rescaling their sizes (which summed to Unit within child)
// down to child's slot size within parent via largest-remainder rounding,
// then discards child. The rescaled sizes are the merge's final result:
// nothing re-equalizes parent afterward, since parent's other children
// already summed to Unit minus child's slot and are left untouched.
func (tg *TileGrid) mergeIntoParent(parent, child graph.ID) {
	idx := tg.g.IndexOfChild(parent, child)
	grandchildren := tg.g.SortedChildren(child)
	weights := make([]int, len(grandchildren))
	for i, id := range grandchildren {
		weights[i] = tg.g.Node(id).Size
	}
	rescaled := largestRemainder(weights, Unit, tg.g.Node(child).Size)
	for i, id := range grandchildren {
		tg.g.Node(id).Size = rescaled[i]
	}

	tg.g.RemoveChild(parent, child)
	for i, id := range grandchildren {
		tg.g.InsertChild(parent, idx+i, id)
	}
	tg.g.Remove(child)
}

// perpendicular returns the axis orthogonal to a.
func perpendicular(a Axis) Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// findNavigationTarget walks upward from start looking for the nearest
// ancestor whose axis matches dir, returning the sibling on dir's side of
// the child that sits on the path from start. ok is false if the search
// reaches the root without finding one (there is nowhere to go).
func (tg *TileGrid) findNavigationTarget(start graph.ID, dir Direction) (graph.ID, bool) {
	child := start
	for {
		parent, ok := tg.g.Parent(child)
		if !ok {
			return graph.NoID, false
		}
		if tg.g.Node(parent).Axis() == dir.Axis() {
			children := tg.g.SortedChildren(parent)
			idx := tg.g.IndexOfChild(parent, child)
			if dir.IsForward() {
				if idx < len(children)-1 {
					return children[idx+1], true
				}
			} else if idx > 0 {
				return children[idx-1], true
			}
		}
		child = parent
	}
}

// descend walks from id toward a Tile in the direction dir came from: it
// always enters the first child of a container whose axis doesn't match
// dir, and the nearest-side child (first for a forward direction, last for
// backward) of a container whose axis does match.
func (tg *TileGrid) descend(id graph.ID, dir Direction) graph.ID {
	for {
		n := tg.g.Node(id)
		if n.IsTile() {
			return id
		}
		children := tg.g.SortedChildren(id)
		if n.Axis() == dir.Axis() {
			if dir.IsForward() {
				id = children[0]
			} else {
				id = children[len(children)-1]
			}
		} else {
			id = children[0]
		}
	}
}

// Focus moves the cursor to the nearest Tile in dir, reporting false if
// there is none (e.g. the focused Tile is already at the edge).
func (tg *TileGrid) Focus(dir Direction) bool {
	if tg.focused == graph.NoID {
		return false
	}
	s, ok := tg.findNavigationTarget(tg.focused, dir)
	if !ok {
		return false
	}
	tg.focused = tg.descend(s, dir)
	return true
}

// SwapFocused exchanges the window bound to the focused Tile with the
// window of the nearest Tile in dir, then moves focus to follow its
// window. Only the windows change hands; every Tile keeps its own size.
func (tg *TileGrid) SwapFocused(dir Direction) bool {
	if tg.focused == graph.NoID {
		return false
	}
	s, ok := tg.findNavigationTarget(tg.focused, dir)
	if !ok {
		return false
	}
	target := tg.descend(s, dir)
	a := tg.g.Node(tg.focused)
	b := tg.g.Node(target)
	a.Window, b.Window = b.Window, a.Window
	tg.focused = target
	return true
}

// MoveFocusedIn moves the focused Tile out of its current parent and into
// the adjacent sibling on dir's side: if that sibling is a container
// running perpendicular to the current parent's axis, the focused Tile is
// appended at the near end of its children; otherwise a fresh perpendicular
// container is created holding the sibling followed by the focused Tile,
// taking the sibling's old slot. If the old parent is left with a single
// child, that child takes the parent's place, as after Pop.
func (tg *TileGrid) MoveFocusedIn(dir Direction) bool {
	if tg.focused == graph.NoID {
		return false
	}
	f := tg.focused
	p, ok := tg.g.Parent(f)
	if !ok {
		return false
	}
	children := tg.g.SortedChildren(p)
	idx := tg.g.IndexOfChild(p, f)
	siblingIdx := idx - 1
	if dir.IsForward() {
		siblingIdx = idx + 1
	}
	if siblingIdx < 0 || siblingIdx >= len(children) {
		return false
	}
	sibling := children[siblingIdx]
	perp := perpendicular(tg.g.Node(p).Axis())

	sNode := *tg.g.Node(sibling)
	if sNode.IsContainer() && sNode.Axis() == perp {
		tg.g.RemoveChild(p, f)
		if dir.IsForward() {
			tg.g.InsertChild(sibling, 0, f)
		} else {
			tg.g.AppendChild(sibling, f)
		}
		tg.redistribute(sibling)
		tg.collapseAfterRemoval(p)
		return true
	}

	tg.g.RemoveChild(p, f)
	tg.g.RemoveChild(p, sibling)
	containerID := tg.g.AddNode(NewContainer(perp, sNode.Size))
	tg.g.AppendChild(containerID, sibling)
	tg.g.AppendChild(containerID, f)
	tg.redistribute(containerID)

	insertIdx := siblingIdx
	if idx < siblingIdx {
		insertIdx = siblingIdx - 1
	}
	tg.g.InsertChild(p, insertIdx, containerID)
	tg.collapseAfterRemoval(p)
	return true
}

// MoveFocusedOut lifts the focused Tile out of its current parent and
// inserts it as a sibling within the nearest ancestor whose axis matches
// dir (mirroring the ancestor search Focus performs), on the side dir
// indicates. If no such ancestor exists (every ancestor up to the root
// runs the wrong way), the whole tree is wrapped in a fresh perpendicular
// container holding the old root and the focused Tile.
func (tg *TileGrid) MoveFocusedOut(dir Direction) bool {
	if tg.focused == graph.NoID {
		return false
	}
	f := tg.focused
	pf, ok := tg.g.Parent(f)
	if !ok {
		return false
	}

	pathChild := pf
	for {
		anc, ok := tg.g.Parent(pathChild)
		if !ok {
			break
		}
		if tg.g.Node(anc).Axis() == dir.Axis() {
			// Capture the insertion index and anc's child count before
			// mutating: if removing f leaves pf with a single child,
			// collapseAfterRemoval promotes that child into pf's old slot
			// (Replace keeps the slot's position), or merges its children
			// into anc starting at that same index. A forward insertion
			// adds the growth in anc's child count so f lands after every
			// merged child.
			idx := tg.g.IndexOfChild(anc, pathChild)
			count := tg.g.ChildCount(anc)

			tg.g.RemoveChild(pf, f)
			tg.collapseAfterRemoval(pf)

			insertIdx := idx
			if dir.IsForward() {
				insertIdx = idx + 1 + tg.g.ChildCount(anc) - count
			}
			tg.g.InsertChild(anc, insertIdx, f)
			tg.redistribute(anc)
			return true
		}
		pathChild = anc
	}

	tg.g.RemoveChild(pf, f)
	tg.collapseAfterRemoval(pf)

	root, _ := tg.g.Root()
	rootSize := tg.g.Node(root).Size
	perp := perpendicular(tg.g.Node(root).Axis())
	containerID := tg.g.AddNode(NewContainer(perp, rootSize))
	if dir.IsForward() {
		tg.g.AppendChild(containerID, root)
		tg.g.AppendChild(containerID, f)
	} else {
		tg.g.AppendChild(containerID, f)
		tg.g.AppendChild(containerID, root)
	}
	tg.g.SetRoot(containerID)
	tg.redistribute(containerID)
	return true
}

// resetNearest re-equalizes the children of the nearest ancestor of the
// focused Tile whose Kind matches kind.
func (tg *TileGrid) resetNearest(kind Kind) bool {
	if tg.focused == graph.NoID {
		return false
	}
	id := tg.focused
	for {
		p, ok := tg.g.Parent(id)
		if !ok {
			return false
		}
		if tg.g.Node(p).Kind == kind {
			tg.redistribute(p)
			return true
		}
		id = p
	}
}

// ResetRow restores equal sizes among the children of the nearest Row
// ancestor of the focused Tile.
func (tg *TileGrid) ResetRow() bool { return tg.resetNearest(KindRow) }

// ResetColumn restores equal sizes among the children of the nearest
// Column ancestor of the focused Tile.
func (tg *TileGrid) ResetColumn() bool { return tg.resetNearest(KindColumn) }

// SwapColumnsAndRows flips every Row to a Column and every Column to a Row
// throughout the tree, leaving child order and every node's size
// untouched. Applying it twice is the identity.
func (tg *TileGrid) SwapColumnsAndRows() {
	for _, id := range tg.g.Nodes() {
		n := tg.g.Node(id)
		switch n.Kind {
		case KindRow:
			n.Kind = KindColumn
		case KindColumn:
			n.Kind = KindRow
		}
	}
}

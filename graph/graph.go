// Package graph implements a labelled rooted tree over an indexed arena.
//
// Nodes are referred to by a stable integer ID. An ID stays attached to
// the same logical node for as long as that node is live: Remove and
// Replace are the only ways a node stops being live, and both return the
// freed slot to an internal free list that a later AddNode may hand out
// for an unrelated node — exactly the node-slab-with-freed-slot-reuse
// shape of a classic arena allocator. Callers may also reuse an existing
// ID's storage in place via SetNode when they want to keep a node's
// identity (most notably the root) while swapping out what it contains.
// The arena itself enforces no constraints on what a node may contain or
// how many children it may have; those rules belong to whatever is built
// on top (see the tile package).
package graph

// ID identifies a node within a single Graph. IDs are only meaningful
// relative to the Graph that produced them.
type ID int

// NoID is the zero value used for "no such node" (no parent, no root).
const NoID ID = -1

type slot[T any] struct {
	alive    bool
	content  T
	parent   ID
	children []ID
}

// Graph is an arena-backed rooted tree with stable node IDs.
type Graph[T any] struct {
	slots []slot[T]
	free  []ID
	root  ID
}

// New returns an empty graph.
func New[T any]() *Graph[T] {
	return &Graph[T]{root: NoID}
}

// Len reports the number of live nodes.
func (g *Graph[T]) Len() int {
	n := 0
	for _, s := range g.slots {
		if s.alive {
			n++
		}
	}
	return n
}

// AddNode allocates an ID for content and returns it, reusing the most
// recently freed slot (if any) before growing the arena. The node starts
// detached: it has no parent and is not the root until the caller wires it
// in with SetRoot or InsertChild.
func (g *Graph[T]) AddNode(content T) ID {
	if n := len(g.free); n > 0 {
		id := g.free[n-1]
		g.free = g.free[:n-1]
		g.slots[id] = slot[T]{alive: true, content: content, parent: NoID}
		return id
	}
	id := ID(len(g.slots))
	g.slots = append(g.slots, slot[T]{alive: true, content: content, parent: NoID})
	return id
}

// SetNode overwrites the content stored at id in place. The node's parent
// and children links are untouched. This is the one sanctioned way to
// recycle an ID: the id keeps flowing to anything that already referenced
// it (a parent's child list, the root slot) while what it names changes.
func (g *Graph[T]) SetNode(id ID, content T) {
	g.slots[id].content = content
}

// SetRoot marks id as the tree's root. It does not validate that id has no
// parent; callers are expected to have detached it first if necessary.
func (g *Graph[T]) SetRoot(id ID) {
	g.root = id
	if id != NoID {
		g.slots[id].parent = NoID
	}
}

// Root returns the current root, if any.
func (g *Graph[T]) Root() (ID, bool) {
	if g.root == NoID {
		return NoID, false
	}
	return g.root, true
}

// Node returns a pointer to id's content for reading or in-place mutation
// (e.g. adjusting a tile's size).
func (g *Graph[T]) Node(id ID) *T {
	return &g.slots[id].content
}

// Nodes returns the IDs of all live nodes in ascending ID order.
func (g *Graph[T]) Nodes() []ID {
	out := make([]ID, 0, len(g.slots))
	for i, s := range g.slots {
		if s.alive {
			out = append(out, ID(i))
		}
	}
	return out
}

// Parent returns id's parent, if any.
func (g *Graph[T]) Parent(id ID) (ID, bool) {
	p := g.slots[id].parent
	if p == NoID {
		return NoID, false
	}
	return p, true
}

// SortedChildren returns id's children in their explicit left-to-right
// (or top-to-bottom) order. The returned slice is a copy; mutating it does
// not affect the graph.
func (g *Graph[T]) SortedChildren(id ID) []ID {
	children := g.slots[id].children
	out := make([]ID, len(children))
	copy(out, children)
	return out
}

// ChildCount reports how many children id currently has.
func (g *Graph[T]) ChildCount(id ID) int {
	return len(g.slots[id].children)
}

// InsertChild inserts child into parent's ordered child list at index,
// shifting later children right, and sets child's parent to parent.
func (g *Graph[T]) InsertChild(parent ID, index int, child ID) {
	children := g.slots[parent].children
	children = append(children, NoID)
	copy(children[index+1:], children[index:])
	children[index] = child
	g.slots[parent].children = children
	g.slots[child].parent = parent
}

// AppendChild inserts child at the end of parent's child list.
func (g *Graph[T]) AppendChild(parent, child ID) {
	g.InsertChild(parent, len(g.slots[parent].children), child)
}

// IndexOfChild returns child's position within parent's ordered child
// list, or -1 if child is not currently a child of parent.
func (g *Graph[T]) IndexOfChild(parent, child ID) int {
	for i, c := range g.slots[parent].children {
		if c == child {
			return i
		}
	}
	return -1
}

// RemoveChild detaches child from parent's ordered child list without
// freeing child's own slot. It is a no-op if child is not in the list.
func (g *Graph[T]) RemoveChild(parent, child ID) {
	children := g.slots[parent].children
	for i, c := range children {
		if c == child {
			g.slots[parent].children = append(children[:i], children[i+1:]...)
			return
		}
	}
}

// SetChildren replaces id's entire ordered child list and reparents every
// member of children to id.
func (g *Graph[T]) SetChildren(id ID, children []ID) {
	g.slots[id].children = children
	for _, c := range children {
		g.slots[c].parent = id
	}
}

// Remove detaches id from its parent's child list (if any) and frees its
// slot. id's own children, if it had any, are left dangling; callers must
// relink or remove them first — Remove never cascades.
func (g *Graph[T]) Remove(id ID) {
	if p, ok := g.Parent(id); ok {
		g.RemoveChild(p, id)
	}
	if g.root == id {
		g.root = NoID
	}
	var zero T
	g.slots[id] = slot[T]{alive: false, content: zero, parent: NoID}
	g.free = append(g.free, id)
}

// Replace splices new into the structural position currently held by old
// — as root if old was the root, otherwise at old's index in its parent's
// child list — and then frees old. new keeps its own ID; old's slot is
// returned to the free list, so a later AddNode may reuse it for an
// unrelated node. Replace does not touch old's children: callers using it
// for promote-only-child or merge-parent must have already relinked or
// removed them.
func (g *Graph[T]) Replace(old, new ID) {
	if g.root == old {
		g.root = new
		g.slots[new].parent = NoID
	} else {
		parent := g.slots[old].parent
		idx := g.IndexOfChild(parent, old)
		g.slots[parent].children[idx] = new
		g.slots[new].parent = parent
	}
	var zero T
	g.slots[old] = slot[T]{alive: false, content: zero, parent: NoID}
	g.free = append(g.free, old)
}

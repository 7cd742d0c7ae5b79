// Package tile implements the node model and the TileGrid layout engine
// for a tiling window manager: a tree of rows, columns, and tiles that
// partitions a display rectangle and assigns each leaf a pixel rectangle.
package tile

// WindowID is an opaque handle supplied by the host. The engine never
// interprets it beyond equality comparison.
type WindowID int

// NoWindow is the sentinel for "not a real window".
const NoWindow WindowID = -1

// Unit is the total number of size units a parent distributes among its
// children, independent of that container's own Size (its share of its
// own parent's units).
const Unit = 120

// Axis is the orientation a container stacks its children along.
type Axis uint8

const (
	// Horizontal is a Row's axis: a Row stacks its children top-to-bottom,
	// each spanning the Row's full width.
	Horizontal Axis = iota
	// Vertical is a Column's axis: a Column places its children
	// left-to-right, each spanning the Column's full height.
	Vertical
)

// Direction is a navigation or insertion direction.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// IsForward reports whether dir moves toward higher indices (Right, Down)
// as opposed to lower indices (Left, Up).
func (d Direction) IsForward() bool {
	return d == Right || d == Down
}

// Axis returns the container axis that dir navigates along: Left/Right
// move within a Column's children, Up/Down within a Row's.
func (d Direction) Axis() Axis {
	if d == Left || d == Right {
		return Vertical
	}
	return Horizontal
}

// Kind identifies which of the three node shapes a Node holds.
type Kind uint8

const (
	KindTile Kind = iota
	KindRow
	KindColumn
)

// Node is a tagged union of the three tree shapes: Tile (a leaf bound to
// a window), Row (stacks children top-to-bottom), and Column (stacks
// children left-to-right). Dispatch on Kind is explicit; the axis is not
// encoded via separate Go types so that TileGrid can treat "the
// container" uniformly where the axis itself is the only difference.
type Node struct {
	Kind   Kind
	Size   int      // this node's share of its parent's Unit units
	Window WindowID // meaningful only when Kind == KindTile
}

// NewTile returns a leaf node bound to window with the given size.
func NewTile(window WindowID, size int) Node {
	return Node{Kind: KindTile, Window: window, Size: size}
}

// NewContainer returns an empty Row or Column node for the given axis.
func NewContainer(axis Axis, size int) Node {
	k := KindRow
	if axis == Vertical {
		k = KindColumn
	}
	return Node{Kind: k, Size: size}
}

// IsTile reports whether n is a leaf.
func (n Node) IsTile() bool { return n.Kind == KindTile }

// IsContainer reports whether n is a Row or Column.
func (n Node) IsContainer() bool { return n.Kind == KindRow || n.Kind == KindColumn }

// Axis returns the container axis for a Row/Column node. Calling it on a
// Tile is meaningless and returns Horizontal.
func (n Node) Axis() Axis {
	if n.Kind == KindColumn {
		return Vertical
	}
	return Horizontal
}

// axisKind maps a desired Axis to the container Kind that implements it.
func axisKind(axis Axis) Kind {
	if axis == Vertical {
		return KindColumn
	}
	return KindRow
}

// WindowIDGenerator hands out auto-incrementing WindowIDs starting at 1,
// the same window_generator closure the original test harness used to
// drive scenario scripts without the caller juggling its own counter.
type WindowIDGenerator struct {
	next WindowID
}

// NewWindowIDGenerator returns a generator whose first Next() is 1.
func NewWindowIDGenerator() *WindowIDGenerator {
	return &WindowIDGenerator{next: 1}
}

// Next returns the next WindowID in sequence.
func (g *WindowIDGenerator) Next() WindowID {
	id := g.next
	g.next++
	return id
}

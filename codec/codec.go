// Package codec serializes and parses the compact textual form of a
// layout tree: tiles as "t<index>|<size>|<window>", and Rows/Columns as
// "r"/"c"<index>|<size>[child,child,...]. index is the node's position
// within its parent's child list (0 for the root, which has none).
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"twm/graph"
	"twm/tile"
)

// ParseError reports where and why parsing failed. Pos is a byte offset
// into the input string.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("codec: parse error at offset %d: %s", e.Pos, e.Msg)
}

// Serialize renders tg's tree into its textual form.
func Serialize(tg *tile.TileGrid) string {
	root, ok := tg.Graph().Root()
	if !ok {
		return ""
	}
	var b strings.Builder
	writeNode(&b, tg.Graph(), root, 0)
	return b.String()
}

func writeNode(b *strings.Builder, g *graph.Graph[tile.Node], id graph.ID, index int) {
	n := g.Node(id)
	if n.IsTile() {
		fmt.Fprintf(b, "t%d|%d|%d", index, n.Size, int(n.Window))
		return
	}
	tag := "r"
	if n.Axis() == tile.Vertical {
		tag = "c"
	}
	fmt.Fprintf(b, "%s%d|%d[", tag, index, n.Size)
	children := g.SortedChildren(id)
	for i, c := range children {
		if i > 0 {
			b.WriteByte(',')
		}
		writeNode(b, g, c, i)
	}
	b.WriteByte(']')
}

// Parse builds a TileGrid from its textual form. Parsing is all-or-nothing:
// on any error the input TileGrid (if any) is left untouched and a
// *ParseError is returned — a partially-valid string never produces a
// partially-built tree. Beyond the grammar itself, the staged graph is
// checked against G4 (no same-axis container directly inside another), G5
// (no container with a single child) and G6 (every internal node's
// children sizes sum to tile.Unit) before it is committed; a
// grammatically well-formed but invariant-violating string (e.g. a Column
// nested directly in a Column, or sizes that sum to anything but 120) is
// rejected with a *ParseError rather than handed to
// the caller as a tree the engine's own invariants would never produce.
func Parse(s string) (*tile.TileGrid, error) {
	p := &parser{input: s, positions: make(map[graph.ID]int)}
	g := graph.New[tile.Node]()
	rootID, err := p.parseNode(g)
	if err != nil {
		return nil, err
	}
	if p.pos != len(s) {
		return nil, &ParseError{Pos: p.pos, Msg: "unexpected trailing input"}
	}
	g.SetRoot(rootID)
	if err := validateInvariants(g, rootID, p.positions); err != nil {
		return nil, err
	}
	focused := firstTile(g, rootID)
	return tile.FromGraph(g, focused), nil
}

// validateInvariants walks the staged graph depth-first and enforces G4
// (a Row cannot hold a Row child, a Column cannot hold a Column child), G5
// (a Row or Column holds at least two children) and G6 (an internal
// node's children sizes sum to tile.Unit), returning a
// *ParseError naming the offending node's byte offset in the input on the
// first violation found.
func validateInvariants(g *graph.Graph[tile.Node], id graph.ID, positions map[graph.ID]int) error {
	n := g.Node(id)
	if n.IsTile() {
		return nil
	}

	children := g.SortedChildren(id)
	sum := 0
	for _, c := range children {
		cn := g.Node(c)
		sum += cn.Size
		if cn.IsContainer() && cn.Axis() == n.Axis() {
			return &ParseError{Pos: positions[c], Msg: "a container cannot hold a same-axis child container"}
		}
		if err := validateInvariants(g, c, positions); err != nil {
			return err
		}
	}
	if len(children) < 2 {
		return &ParseError{Pos: positions[id], Msg: "a Row or Column must have at least two children"}
	}
	if sum != tile.Unit {
		return &ParseError{Pos: positions[id], Msg: fmt.Sprintf("children sizes sum to %d, want %d", sum, tile.Unit)}
	}
	return nil
}

func firstTile(g *graph.Graph[tile.Node], id graph.ID) graph.ID {
	for {
		n := g.Node(id)
		if n.IsTile() {
			return id
		}
		id = g.SortedChildren(id)[0]
	}
}

type parser struct {
	input     string
	pos       int
	positions map[graph.ID]int // node ID -> byte offset its token started at
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *parser) parseInt() (int, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("expected a number")
	}
	n, err := strconv.Atoi(p.input[start:p.pos])
	if err != nil {
		return 0, p.errorf("malformed number %q", p.input[start:p.pos])
	}
	return n, nil
}

// parseNode parses one node (tile or container) and returns its graph ID.
// The node's own "index" field is read and discarded: children are placed
// in the order they appear, and the index is not checked against that
// position.
func (p *parser) parseNode(g *graph.Graph[tile.Node]) (graph.ID, error) {
	start := p.pos
	kind := p.peek()
	switch kind {
	case 't', 'c', 'r':
		p.pos++
	case 0:
		return graph.NoID, p.errorf("unexpected end of input, expected a node")
	default:
		return graph.NoID, p.errorf("unexpected character %q, expected 't', 'c' or 'r'", kind)
	}

	if _, err := p.parseInt(); err != nil { // local index; informational only
		return graph.NoID, err
	}
	if err := p.expect('|'); err != nil {
		return graph.NoID, err
	}
	size, err := p.parseInt()
	if err != nil {
		return graph.NoID, err
	}

	if kind == 't' {
		if err := p.expect('|'); err != nil {
			return graph.NoID, err
		}
		window, err := p.parseInt()
		if err != nil {
			return graph.NoID, err
		}
		id := g.AddNode(tile.NewTile(tile.WindowID(window), size))
		p.positions[id] = start
		return id, nil
	}

	axis := tile.Horizontal
	if kind == 'c' {
		axis = tile.Vertical
	}
	id := g.AddNode(tile.NewContainer(axis, size))
	p.positions[id] = start

	if err := p.expect('['); err != nil {
		return graph.NoID, err
	}
	var children []graph.ID
	for {
		if p.peek() == ']' {
			break
		}
		if len(children) > 0 {
			if err := p.expect(','); err != nil {
				return graph.NoID, err
			}
		}
		child, err := p.parseNode(g)
		if err != nil {
			return graph.NoID, err
		}
		children = append(children, child)
	}
	if len(children) == 0 {
		return graph.NoID, p.errorf("a Row or Column must have at least one child")
	}
	if err := p.expect(']'); err != nil {
		return graph.NoID, err
	}
	g.SetChildren(id, children)
	return id, nil
}

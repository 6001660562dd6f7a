package tree

import (
	"fmt"
	"strconv"

	"github.com/signadot/mpmap/mpath"
)

type Kind uint8

const (
	LeafNode Kind = iota
	MapNode
	ArrayNode
)

func (k Kind) String() string {
	switch k {
	case LeafNode:
		return "leaf"
	case MapNode:
		return "map"
	case ArrayNode:
		return "array"
	default:
		return "<err: " + strconv.Itoa(int(k)) + " is not a node kind>"
	}
}

// BufferID selects the buffer backing a Leaf.
type BufferID uint8

const (
	Source BufferID = iota
	Extract
)

const numBuffers = 2

func (b BufferID) String() string {
	switch b {
	case Source:
		return "source"
	case Extract:
		return "extract"
	default:
		return "<err: " + strconv.Itoa(int(b)) + " is not a buffer>"
	}
}

// Leaf is the position of one encoded value in a backing buffer.
type Leaf struct {
	Buffer BufferID
	Offset int
	Length int
}

func (l Leaf) String() string {
	return fmt.Sprintf("%s[%d:%d]", l.Buffer, l.Offset, l.Offset+l.Length)
}

// Node is a leaf, map or array in a Tree. The kind of a node never
// changes.
type Node struct {
	kind Kind
	leaf Leaf

	// maps: keys[i] maps to vals[i], pos indexes keys
	keys []string
	pos  map[string]int
	// maps and arrays
	vals []*Node
}

func newNode(k Kind) *Node {
	n := &Node{kind: k}
	if k == MapNode {
		n.pos = map[string]int{}
	}
	return n
}

func newLeaf(l Leaf) *Node {
	return &Node{kind: LeafNode, leaf: l}
}

func (n *Node) Kind() Kind { return n.kind }

// Leaf returns the range of a leaf node.
func (n *Node) Leaf() (Leaf, bool) {
	return n.leaf, n.kind == LeafNode
}

// Len returns the number of entries of a map or elements of an array.
func (n *Node) Len() int { return len(n.vals) }

// Keys returns the keys of a map node in order. The result must not be
// modified.
func (n *Node) Keys() []string { return n.keys }

// Field returns the child of a map node under key.
func (n *Node) Field(key string) *Node {
	if n.kind != MapNode {
		return nil
	}
	i, ok := n.pos[key]
	if !ok {
		return nil
	}
	return n.vals[i]
}

// Elem returns element i of an array node.
func (n *Node) Elem(i int) *Node {
	if n.kind != ArrayNode || i < 0 || i >= len(n.vals) {
		return nil
	}
	return n.vals[i]
}

func (n *Node) child(s mpath.Segment) *Node {
	switch s.Kind {
	case mpath.FieldSegment:
		return n.Field(s.Field)
	case mpath.IndexSegment:
		return n.Elem(s.Index)
	}
	return nil
}

// setField sets key to c. A key which is already present keeps its
// position.
func (n *Node) setField(key string, c *Node) {
	if i, ok := n.pos[key]; ok {
		n.vals[i] = c
		return
	}
	n.pos[key] = len(n.keys)
	n.keys = append(n.keys, key)
	n.vals = append(n.vals, c)
}

// setElem replaces element i, or appends when i is the length.
func (n *Node) setElem(i int, c *Node) error {
	switch {
	case i >= 0 && i < len(n.vals):
		n.vals[i] = c
	case i == len(n.vals):
		n.vals = append(n.vals, c)
	default:
		return fmt.Errorf("%w: index %d of array of length %d", ErrIndexOutOfRange, i, len(n.vals))
	}
	return nil
}

func (n *Node) put(s mpath.Segment, c *Node) error {
	switch {
	case s.Kind == mpath.FieldSegment && n.kind == MapNode:
		n.setField(s.Field, c)
		return nil
	case s.Kind == mpath.IndexSegment && n.kind == ArrayNode:
		return n.setElem(s.Index, c)
	}
	return fmt.Errorf("cannot put %s in %s node", s, n.kind)
}

// segment returns the address segment of child i.
func (n *Node) segment(i int) mpath.Segment {
	if n.kind == MapNode {
		return mpath.Field(n.keys[i])
	}
	return mpath.Index(i)
}

// containerFor returns the kind of node which s can address into.
func containerFor(s mpath.Segment) Kind {
	if s.InArray() {
		return ArrayNode
	}
	return MapNode
}

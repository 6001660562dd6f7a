package tree

import (
	"fmt"
	"io"

	"github.com/signadot/mpmap/mpath"
)

// Tree is an addressable tree over up to two backing buffers.
type Tree struct {
	root     *Node
	bufs     [numBuffers][]byte
	maxDepth int
}

// New returns a tree whose root is an empty map, backed by source.
func New(source []byte, opts ...Option) *Tree {
	o := &treeOpts{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	t := &Tree{root: newNode(MapNode), maxDepth: o.maxDepth}
	t.bufs[Source] = source
	return t
}

// Buffer returns the backing buffer id.
func (t *Tree) Buffer(id BufferID) []byte {
	if int(id) >= numBuffers {
		return nil
	}
	return t.bufs[id]
}

// SetBuffer sets the backing buffer id. Leaves already referencing id
// must remain within b.
func (t *Tree) SetBuffer(id BufferID, b []byte) {
	t.bufs[id] = b
}

func (t *Tree) Root() *Node { return t.root }

func (t *Tree) MaxDepth() int { return t.maxDepth }

// Node returns the node at addr.
func (t *Tree) Node(addr mpath.Path) (*Node, bool) {
	n := t.root
	for _, s := range addr {
		n = n.child(s)
		if n == nil {
			return nil, false
		}
	}
	return n, true
}

func (t *Tree) IsLeaf(addr mpath.Path) bool     { return t.is(addr, LeafNode) }
func (t *Tree) IsMapNode(addr mpath.Path) bool  { return t.is(addr, MapNode) }
func (t *Tree) IsArrayNode(addr mpath.Path) bool { return t.is(addr, ArrayNode) }

func (t *Tree) is(addr mpath.Path, k Kind) bool {
	n, ok := t.Node(addr)
	return ok && n.kind == k
}

// Children returns the segments addressing the children of the node at
// addr, in order. Leaves and missing nodes have none.
func (t *Tree) Children(addr mpath.Path) []mpath.Segment {
	n, ok := t.Node(addr)
	if !ok || n.kind == LeafNode {
		return nil
	}
	res := make([]mpath.Segment, len(n.vals))
	for i := range n.vals {
		res[i] = n.segment(i)
	}
	return res
}

// EnsureMapNode makes the node at addr a map, creating it and any missing
// ancestors. Nodes of the wrong kind on the way are replaced.
func (t *Tree) EnsureMapNode(addr mpath.Path) error {
	_, err := t.ensure(addr, MapNode)
	return err
}

// EnsureArrayNode is like EnsureMapNode for an array.
func (t *Tree) EnsureArrayNode(addr mpath.Path) error {
	_, err := t.ensure(addr, ArrayNode)
	return err
}

func (t *Tree) ensure(addr mpath.Path, k Kind) (*Node, error) {
	if err := t.checkAddr(addr); err != nil {
		return nil, err
	}
	want := k
	if len(addr) > 0 {
		want = containerFor(addr[0])
	}
	if t.root.kind != want {
		t.root = newNode(want)
	}
	n := t.root
	for i, s := range addr {
		want = k
		if i+1 < len(addr) {
			want = containerFor(addr[i+1])
		}
		c := n.child(s)
		if c == nil || c.kind != want {
			c = newNode(want)
			if err := n.put(s, c); err != nil {
				return nil, fmt.Errorf("%s: %w", addr[:i+1], err)
			}
		}
		n = c
	}
	return n, nil
}

func (t *Tree) checkAddr(addr mpath.Path) error {
	if len(addr) > t.maxDepth {
		return fmt.Errorf("%w: %s has depth %d (max %d)", ErrMaxDepth, addr, len(addr), t.maxDepth)
	}
	if addr.HasWildcard() {
		return fmt.Errorf("%w: %s", mpath.ErrWildcardTarget, addr)
	}
	return nil
}

// SetLeaf sets the node at addr to a leaf referencing
// buffer id [off:off+n], creating containers on the way as with
// EnsureMapNode. At the root, the whole tree is replaced by the leaf.
func (t *Tree) SetLeaf(addr mpath.Path, id BufferID, off, n int) error {
	l := Leaf{Buffer: id, Offset: off, Length: n}
	if err := t.checkLeaf(l); err != nil {
		return err
	}
	if len(addr) == 0 {
		t.root = newLeaf(l)
		return nil
	}
	if err := t.checkAddr(addr); err != nil {
		return err
	}
	last := addr.Last()
	p, err := t.ensure(addr.Parent(), containerFor(last))
	if err != nil {
		return err
	}
	if err := p.put(last, newLeaf(l)); err != nil {
		return fmt.Errorf("%s: %w", addr, err)
	}
	return nil
}

func (t *Tree) checkLeaf(l Leaf) error {
	if int(l.Buffer) >= numBuffers {
		return fmt.Errorf("%w: unknown buffer %s", ErrOutOfBounds, l.Buffer)
	}
	sz := len(t.bufs[l.Buffer])
	if l.Offset < 0 || l.Length <= 0 || l.Offset > sz-l.Length {
		return fmt.Errorf("%w: %s with %s length %d", ErrOutOfBounds, l, l.Buffer, sz)
	}
	return nil
}

func (t *Tree) leafBytes(l Leaf) ([]byte, error) {
	if err := t.checkLeaf(l); err != nil {
		return nil, err
	}
	return t.bufs[l.Buffer][l.Offset : l.Offset+l.Length], nil
}

// WriteLeaf copies the encoded value of the leaf at addr to w.
func (t *Tree) WriteLeaf(w io.Writer, addr mpath.Path) error {
	n, ok := t.Node(addr)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoNode, addr)
	}
	if n.kind != LeafNode {
		return fmt.Errorf("%w: %s is a %s", ErrNotLeaf, addr, n.kind)
	}
	b, err := t.leafBytes(n.leaf)
	if err != nil {
		return fmt.Errorf("%s: %w", addr, err)
	}
	_, err = w.Write(b)
	return err
}

// Walk calls f for every node in depth first order, parents before
// children. addr is only valid during the call. If f returns an error
// Walk stops and returns it.
func (t *Tree) Walk(f func(addr mpath.Path, n *Node) error) error {
	type item struct {
		depth int
		seg   mpath.Segment
		node  *Node
	}
	stack := []item{{node: t.root}}
	var addr mpath.Path
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.depth > 0 {
			addr = append(addr[:it.depth-1], it.seg)
		} else {
			addr = addr[:0]
		}
		if err := f(addr, it.node); err != nil {
			return err
		}
		for i := len(it.node.vals) - 1; i >= 0; i-- {
			stack = append(stack, item{depth: it.depth + 1, seg: it.node.segment(i), node: it.node.vals[i]})
		}
	}
	return nil
}

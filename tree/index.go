package tree

import (
	"fmt"

	"github.com/signadot/mpmap/debug"
	"github.com/signadot/mpmap/wire"
	"github.com/tinylib/msgp/msgp"
)

// indexFrame is an open map or array whose entries are being read.
type indexFrame struct {
	node *Node
	left uint32
}

// Index builds a tree over the single MessagePack value in buf. Leaves
// reference ranges of buf, which is not modified or copied.
//
// Map keys must be strings. Of duplicate keys, the first position and
// the last value are kept.
func Index(buf []byte, opts ...Option) (*Tree, error) {
	t := New(buf, opts...)
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: empty document", wire.ErrMalformedDocument)
	}
	var (
		stack []indexFrame
		root  *Node
		off   int
	)
	for {
		for len(stack) > 0 && stack[len(stack)-1].left == 0 {
			stack = stack[:len(stack)-1]
		}
		if root != nil && len(stack) == 0 {
			break
		}
		var (
			parent *Node
			key    string
		)
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			top.left--
			parent = top.node
			if parent.kind == MapNode {
				k, n, err := wire.ReadKey(buf, off)
				if err != nil {
					return nil, err
				}
				key = k
				off += n
			}
		}
		if len(stack) > t.maxDepth {
			return nil, fmt.Errorf("%w: value at offset %d has depth %d (max %d)", ErrMaxDepth, off, len(stack), t.maxDepth)
		}
		h, err := wire.ReadHeader(buf, off)
		if err != nil {
			return nil, err
		}
		var n *Node
		switch h.Type {
		case msgp.MapType, msgp.ArrayType:
			n = newNode(MapNode)
			if h.Type == msgp.ArrayType {
				n = newNode(ArrayNode)
				n.vals = make([]*Node, 0, h.Count)
			}
			if debug.Index() {
				debug.Logf("index %s of %d at %d depth %d\n", n.kind, h.Count, off, len(stack))
			}
			off += h.Size
		default:
			sz, err := wire.Span(buf, off)
			if err != nil {
				return nil, err
			}
			n = newLeaf(Leaf{Buffer: Source, Offset: off, Length: sz})
			off += sz
		}
		switch {
		case parent == nil:
			root = n
		case parent.kind == MapNode:
			parent.setField(key, n)
		default:
			parent.vals = append(parent.vals, n)
		}
		if n.kind != LeafNode && h.Count > 0 {
			stack = append(stack, indexFrame{node: n, left: h.Count})
		}
	}
	if off != len(buf) {
		return nil, fmt.Errorf("%w: %d trailing bytes after offset %d", wire.ErrMalformedDocument, len(buf)-off, off)
	}
	t.root = root
	return t, nil
}

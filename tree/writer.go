package tree

import (
	"fmt"

	"github.com/signadot/mpmap/debug"
)

// Writer serializes trees into a Buffer.
type Writer struct {
	out   *Buffer
	limit int
}

func NewWriter(out *Buffer, opts ...WriterOption) *Writer {
	o := &writerOpts{}
	for _, opt := range opts {
		opt(o)
	}
	return &Writer{out: out, limit: o.limit}
}

type writeTask struct {
	key   string
	keyed bool
	node  *Node
}

// Write appends the encoding of t to the output buffer and returns the
// number of bytes written. On error the output holds a partial document.
func (w *Writer) Write(t *Tree) (int, error) {
	start := w.out.Len()
	stack := []writeTask{{node: t.root}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if task.keyed {
			w.out.WriteString(task.key)
		}
		n := task.node
		switch n.kind {
		case LeafNode:
			b, err := t.leafBytes(n.leaf)
			if err != nil {
				return w.out.Len() - start, err
			}
			w.out.Append(b)
		case MapNode:
			w.out.WriteMapHeader(len(n.vals))
			for i := len(n.vals) - 1; i >= 0; i-- {
				stack = append(stack, writeTask{key: n.keys[i], keyed: true, node: n.vals[i]})
			}
		case ArrayNode:
			w.out.WriteArrayHeader(len(n.vals))
			for i := len(n.vals) - 1; i >= 0; i-- {
				stack = append(stack, writeTask{node: n.vals[i]})
			}
		}
		if w.limit > 0 && w.out.Len()-start > w.limit {
			return w.out.Len() - start, fmt.Errorf("%w: more than %d bytes", ErrDocumentTooLarge, w.limit)
		}
	}
	if debug.Write() {
		debug.Logf("write %d bytes: %s\n", w.out.Len()-start, debug.Doc(w.out.Bytes()[start:]))
	}
	return w.out.Len() - start, nil
}

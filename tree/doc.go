// Package tree provides an addressable tree over MessagePack documents.
//
// A Tree is made of map, array and leaf nodes. Leaves do not hold values;
// they hold the position of an encoded value in one of two backing
// buffers, the Source document the tree was indexed from or an Extract
// buffer of bytes copied in later. Nodes are addressed with mpath.Path.
//
// Index builds a Tree from a document in one forward pass:
//
//	t, err := tree.Index(doc)
//	t.IsMapNode(mpath.MustParse("$.meta"))
//
// Trees are edited with EnsureMapNode, EnsureArrayNode and SetLeaf, and
// serialized with a Writer into a Buffer:
//
//	out := tree.NewBuffer(1024)
//	n, err := tree.NewWriter(out).Write(t)
//	result := out.Bytes()[:n]
//
// Indexing and writing use explicit stacks. Nesting is bounded by
// DefaultMaxDepth unless configured with WithMaxDepth.
//
// A Tree is not safe for concurrent use.
package tree

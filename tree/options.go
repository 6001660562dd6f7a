package tree

// DefaultMaxDepth is the deepest nesting of containers accepted by Index
// and by tree edits.
const DefaultMaxDepth = 1000

type treeOpts struct {
	maxDepth int
}

type Option func(*treeOpts)

// WithMaxDepth sets the maximum nesting depth. The root has depth 0.
// Non-positive values select DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(o *treeOpts) {
		if n <= 0 {
			n = DefaultMaxDepth
		}
		o.maxDepth = n
	}
}

type writerOpts struct {
	limit int
}

type WriterOption func(*writerOpts)

// WithLimit makes a Writer fail with ErrDocumentTooLarge once a document
// exceeds n bytes. Zero means no limit.
func WithLimit(n int) WriterOption {
	return func(o *writerOpts) { o.limit = n }
}

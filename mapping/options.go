package mapping

import (
	"log/slog"

	"github.com/signadot/mpmap/tree"
)

// DefaultInitialCapacity is the initial size of an Engine's output
// buffer.
const DefaultInitialCapacity = 1024

type engineOpts struct {
	initialCap int
	maxDepth   int
	maxSize    int
	log        *slog.Logger
	metrics    *Metrics
}

type Option func(*engineOpts)

// WithInitialCapacity sets the initial capacity of the output buffer.
func WithInitialCapacity(n int) Option {
	return func(o *engineOpts) { o.initialCap = n }
}

// WithMaxDepth bounds the nesting of indexed documents and target paths.
func WithMaxDepth(n int) Option {
	return func(o *engineOpts) { o.maxDepth = n }
}

// WithMaxDocumentSize makes results larger than n bytes fail with
// tree.ErrDocumentTooLarge. Zero means no limit.
func WithMaxDocumentSize(n int) Option {
	return func(o *engineOpts) { o.maxSize = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *engineOpts) { o.log = l }
}

// WithMetrics records calls in m.
func WithMetrics(m *Metrics) Option {
	return func(o *engineOpts) { o.metrics = m }
}

func (o *engineOpts) treeOpts() []tree.Option {
	return []tree.Option{tree.WithMaxDepth(o.maxDepth)}
}

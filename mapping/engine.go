package mapping

import (
	"log/slog"

	"github.com/signadot/mpmap/tree"
	"github.com/signadot/mpmap/wire"
)

// Engine runs Extract and Merge with reusable buffers. An Engine is not
// safe for concurrent use.
type Engine struct {
	opts engineOpts
	out  *tree.Buffer
	ext  *tree.Buffer
}

func NewEngine(opts ...Option) *Engine {
	o := engineOpts{
		initialCap: DefaultInitialCapacity,
		maxDepth:   tree.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.Default()
	}
	return &Engine{
		opts: o,
		out:  tree.NewBuffer(o.initialCap),
		ext:  tree.NewBuffer(0),
	}
}

// Extract builds a document from source according to mappings. The
// result aliases e's output buffer and is valid until the next call on
// e.
func (e *Engine) Extract(source []byte, mappings []Mapping) ([]byte, error) {
	res, err := e.extract(source, mappings)
	e.done("extract", len(mappings), res, err)
	return res, err
}

func (e *Engine) extract(source []byte, mappings []Mapping) ([]byte, error) {
	if source == nil {
		return nil, errSourceNil
	}
	if len(mappings) == 0 {
		return nil, errNoMappings
	}
	e.reset()
	src, err := tree.Index(source, e.opts.treeOpts()...)
	if err != nil {
		return nil, err
	}
	dst := tree.New(source, e.opts.treeOpts()...)
	if err := NewExtractor(src, dst, e.ext).Extract(mappings); err != nil {
		return nil, err
	}
	if err := checkResult(dst); err != nil {
		return nil, err
	}
	return e.write(dst)
}

// Merge writes the values selected by mappings from source into target
// and returns the resulting document. Parts of target not addressed by a
// mapping are kept. The result aliases e's output buffer and is valid
// until the next call on e.
func (e *Engine) Merge(source, target []byte, mappings []Mapping) ([]byte, error) {
	res, err := e.merge(source, target, mappings)
	e.done("merge", len(mappings), res, err)
	return res, err
}

func (e *Engine) merge(source, target []byte, mappings []Mapping) ([]byte, error) {
	if target == nil {
		return nil, errTargetNil
	}
	if source == nil {
		return nil, errSourceNil
	}
	if len(mappings) == 0 {
		return nil, errNoMappings
	}
	e.reset()
	src, err := tree.Index(source, e.opts.treeOpts()...)
	if err != nil {
		return nil, err
	}
	dst, err := tree.Index(target, e.opts.treeOpts()...)
	if err != nil {
		return nil, err
	}
	if !src.IsMapNode(nil) {
		return nil, errNonObjectSource
	}
	if !dst.IsMapNode(nil) {
		return nil, errNonObjectTarget
	}
	if err := NewExtractor(src, dst, e.ext).Extract(mappings); err != nil {
		return nil, err
	}
	if err := checkResult(dst); err != nil {
		return nil, err
	}
	return e.write(dst)
}

func (e *Engine) reset() {
	e.out.Reset()
	e.ext.Reset()
}

func (e *Engine) write(t *tree.Tree) ([]byte, error) {
	n, err := tree.NewWriter(e.out, tree.WithLimit(e.opts.maxSize)).Write(t)
	if err != nil {
		return nil, err
	}
	return e.out.Bytes()[:n], nil
}

func (e *Engine) done(op string, n int, res []byte, err error) {
	e.opts.metrics.observe(op, len(res), err)
	if err != nil {
		e.opts.log.Debug("mapping failed", "op", op, "mappings", n, "error", err)
		return
	}
	e.opts.log.Debug("mapped", "op", op, "mappings", n, "bytes", len(res))
}

// checkResult fails unless the root of t is a map node or a leaf holding
// an encoded map.
func checkResult(t *tree.Tree) error {
	root := t.Root()
	switch root.Kind() {
	case tree.MapNode:
		return nil
	case tree.LeafNode:
		l, _ := root.Leaf()
		if wire.IsMap(t.Buffer(l.Buffer)[l.Offset : l.Offset+l.Length]) {
			return nil
		}
	}
	return errNonObjectResult
}

// Extract is like (*Engine).Extract on a new Engine. The result is not
// shared.
func Extract(source []byte, mappings []Mapping, opts ...Option) ([]byte, error) {
	return NewEngine(opts...).Extract(source, mappings)
}

// Merge is like (*Engine).Merge on a new Engine. The result is not
// shared.
func Merge(source, target []byte, mappings []Mapping, opts ...Option) ([]byte, error) {
	return NewEngine(opts...).Merge(source, target, mappings)
}

package mapping

import (
	"fmt"

	"github.com/signadot/mpmap/debug"
	"github.com/signadot/mpmap/tree"
)

// Extractor applies mappings from an indexed source to a destination
// tree.
//
// If the destination is backed by the source document itself, leaves
// reference the source directly. Otherwise matched values are copied to
// the extract buffer, which backs the destination's Extract leaves.
type Extractor struct {
	src  *tree.Tree
	dst  *tree.Tree
	ext  *tree.Buffer
	copy bool
}

func NewExtractor(src, dst *tree.Tree, ext *tree.Buffer) *Extractor {
	return &Extractor{
		src:  src,
		dst:  dst,
		ext:  ext,
		copy: !sameBuffer(src.Buffer(tree.Source), dst.Buffer(tree.Source)),
	}
}

func sameBuffer(a, b []byte) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

// Extract applies mappings in order.
func (x *Extractor) Extract(mappings []Mapping) error {
	if len(mappings) == 0 {
		return errNoMappings
	}
	for i := range mappings {
		if err := x.apply(&mappings[i]); err != nil {
			return err
		}
	}
	return nil
}

func (x *Extractor) apply(m *Mapping) error {
	if m.source == nil {
		return fmt.Errorf("%w: mapping with no source query", ErrInvalidArgument)
	}
	doc := x.src.Buffer(tree.Source)
	match, ok, err := m.source.First(doc)
	if err != nil {
		return err
	}
	if !ok {
		return noMatch(m.source)
	}
	if debug.Extract() {
		debug.Logf("extract %s at %d: %s\n", m, match.Offset, debug.Doc(doc[match.Offset:match.Offset+match.Length]))
	}
	tgt := m.target
	if len(tgt) > 0 {
		if tgt.Last().InArray() {
			err = x.dst.EnsureArrayNode(tgt.Parent())
		} else {
			err = x.dst.EnsureMapNode(tgt.Parent())
		}
		if err != nil {
			return fmt.Errorf("mapping %s: %w", m, err)
		}
	}
	id, off := tree.Source, match.Offset
	if x.copy {
		id = tree.Extract
		off = x.ext.Append(doc[match.Offset : match.Offset+match.Length])
		x.dst.SetBuffer(tree.Extract, x.ext.Bytes())
	}
	if err := x.dst.SetLeaf(tgt, id, off, match.Length); err != nil {
		return fmt.Errorf("mapping %s: %w", m, err)
	}
	return nil
}

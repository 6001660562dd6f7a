package mapping

import (
	"fmt"

	"github.com/signadot/mpmap/mpath"
)

// Mapping relocates the first match of Source to Target.
type Mapping struct {
	source *mpath.Query
	target mpath.Path
}

// New compiles a mapping from a source query and a target path.
func New(source, target string) (Mapping, error) {
	return NewCached(nil, source, target)
}

// NewCached is like New but compiles the source query through c.
func NewCached(c *mpath.Cache, source, target string) (Mapping, error) {
	q, err := c.Compile(source)
	if err != nil {
		return Mapping{}, fmt.Errorf("source: %w", err)
	}
	p, err := mpath.ParseTarget(target)
	if err != nil {
		return Mapping{}, fmt.Errorf("target: %w", err)
	}
	return Mapping{source: q, target: p}, nil
}

// MustNew is like New but panics on error.
func MustNew(source, target string) Mapping {
	m, err := New(source, target)
	if err != nil {
		panic(err)
	}
	return m
}

// Of returns the mapping of q to target. target must not contain
// wildcards.
func Of(q *mpath.Query, target mpath.Path) (Mapping, error) {
	if q == nil {
		return Mapping{}, fmt.Errorf("%w: nil source query", ErrInvalidArgument)
	}
	if target.HasWildcard() {
		return Mapping{}, fmt.Errorf("%w: %s", mpath.ErrWildcardTarget, target)
	}
	return Mapping{source: q, target: target.Append()}, nil
}

func (m Mapping) Source() *mpath.Query { return m.source }

// Target returns the target path. The result must not be modified.
func (m Mapping) Target() mpath.Path { return m.target }

func (m Mapping) String() string {
	if m.source == nil {
		return "<nil> -> " + m.target.String()
	}
	return m.source.String() + " -> " + m.target.String()
}

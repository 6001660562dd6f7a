package mpath

import (
	"github.com/signadot/mpmap/wire"
	"github.com/tinylib/msgp/msgp"
)

// Match is the byte range of one value selected by a Query.
type Match struct {
	Offset int
	Length int
}

// Query is a compiled path expression. A Query is immutable and may be
// shared between goroutines.
type Query struct {
	expr  string
	steps Path
}

// Compile compiles a query expression.
func Compile(expr string) (*Query, error) {
	p, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return &Query{expr: expr, steps: p}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Query {
	q, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return q
}

// String returns the expression q was compiled from.
func (q *Query) String() string { return q.expr }

// Steps returns the steps of q. The result must not be modified.
func (q *Query) Steps() Path { return q.steps }

func (q *Query) HasWildcard() bool { return q.steps.HasWildcard() }

// Match runs q over the document in buf and returns every match in
// document order.
func (q *Query) Match(buf []byte) ([]Match, error) {
	return q.run(buf, -1)
}

// First returns the first match of q in buf, in document order.
func (q *Query) First(buf []byte) (Match, bool, error) {
	ms, err := q.run(buf, 1)
	if err != nil || len(ms) == 0 {
		return Match{}, false, err
	}
	return ms[0], true, nil
}

func (q *Query) run(buf []byte, limit int) ([]Match, error) {
	if len(buf) == 0 {
		return nil, wire.ErrMalformedDocument
	}
	x := &executor{buf: buf, steps: q.steps, limit: limit}
	if err := x.visit(0, 0); err != nil {
		return nil, err
	}
	return x.res, nil
}

type executor struct {
	buf   []byte
	steps Path
	limit int
	res   []Match
}

func (x *executor) done() bool {
	return x.limit >= 0 && len(x.res) >= x.limit
}

// visit matches steps[i:] against the value at off. Recursion depth is
// bounded by the number of steps.
func (x *executor) visit(off, i int) error {
	if i == len(x.steps) {
		n, err := wire.Span(x.buf, off)
		if err != nil {
			return err
		}
		x.res = append(x.res, Match{Offset: off, Length: n})
		return nil
	}
	h, err := wire.ReadHeader(x.buf, off)
	if err != nil {
		return err
	}
	step := x.steps[i]
	switch {
	case h.Type == msgp.MapType && step.InMap():
		return x.visitMap(off, h, i)
	case h.Type == msgp.ArrayType && step.InArray():
		return x.visitArray(off, h, i)
	}
	return nil
}

func (x *executor) visitMap(off int, h wire.Header, i int) error {
	step := x.steps[i]
	pos := off + h.Size
	for range h.Count {
		key, n, err := wire.ReadKeyZC(x.buf, pos)
		if err != nil {
			return err
		}
		pos += n
		if step.Kind == FieldWildcard || string(key) == step.Field {
			if err := x.visit(pos, i+1); err != nil {
				return err
			}
			if x.done() {
				return nil
			}
		}
		n, err = wire.Span(x.buf, pos)
		if err != nil {
			return err
		}
		pos += n
	}
	return nil
}

func (x *executor) visitArray(off int, h wire.Header, i int) error {
	step := x.steps[i]
	if step.Kind == IndexSegment && step.Index >= int(h.Count) {
		return nil
	}
	pos := off + h.Size
	for j := 0; j < int(h.Count); j++ {
		if step.Kind == IndexWildcard || j == step.Index {
			if err := x.visit(pos, i+1); err != nil {
				return err
			}
			if x.done() || step.Kind == IndexSegment {
				return nil
			}
		}
		n, err := wire.Span(x.buf, pos)
		if err != nil {
			return err
		}
		pos += n
	}
	return nil
}

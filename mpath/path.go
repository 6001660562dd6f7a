package mpath

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrSyntax         = errors.New("path syntax error")
	ErrWildcardTarget = errors.New("wildcard in target path")
)

type SegmentKind uint8

const (
	FieldSegment SegmentKind = iota
	IndexSegment
	FieldWildcard
	IndexWildcard
)

func (k SegmentKind) String() string {
	switch k {
	case FieldSegment:
		return "field"
	case IndexSegment:
		return "index"
	case FieldWildcard:
		return "field wildcard"
	case IndexWildcard:
		return "index wildcard"
	default:
		return "<err: " + strconv.Itoa(int(k)) + " is not a segment kind>"
	}
}

// Segment is one step of a Path. Field is set for FieldSegment, Index
// for IndexSegment.
type Segment struct {
	Kind  SegmentKind
	Field string
	Index int
}

func Field(name string) Segment { return Segment{Kind: FieldSegment, Field: name} }
func Index(i int) Segment       { return Segment{Kind: IndexSegment, Index: i} }
func AnyField() Segment         { return Segment{Kind: FieldWildcard} }
func AnyIndex() Segment         { return Segment{Kind: IndexWildcard} }

// IsWild reports whether s matches more than one location.
func (s Segment) IsWild() bool {
	return s.Kind == FieldWildcard || s.Kind == IndexWildcard
}

// InMap reports whether s selects entries of a map.
func (s Segment) InMap() bool {
	return s.Kind == FieldSegment || s.Kind == FieldWildcard
}

// InArray reports whether s selects elements of an array.
func (s Segment) InArray() bool {
	return s.Kind == IndexSegment || s.Kind == IndexWildcard
}

// String returns the segment as it appears in a path expression, with
// its leading '.' or '['.
func (s Segment) String() string {
	switch s.Kind {
	case FieldSegment:
		if plainField(s.Field) {
			return "." + s.Field
		}
		r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
		return "['" + r.Replace(s.Field) + "']"
	case IndexSegment:
		return "[" + strconv.Itoa(s.Index) + "]"
	case FieldWildcard:
		return ".*"
	case IndexWildcard:
		return "[*]"
	}
	return ""
}

func plainField(f string) bool {
	return f != "" && strings.IndexAny(f, "'.*$[]\\ \t\n") == -1
}

// Path is a sequence of segments from the document root. The nil Path
// is the root.
type Path []Segment

// Parse parses a path expression such as "$.a[0]['b c']". Wildcards are
// allowed.
func Parse(expr string) (Path, error) {
	if len(expr) == 0 || expr[0] != '$' {
		return nil, fmt.Errorf("%w: path %q should start with '$'", ErrSyntax, expr)
	}
	var res Path
	frag := expr[1:]
	for len(frag) > 0 {
		seg, rest, err := parseSegment(frag)
		if err != nil {
			return nil, fmt.Errorf("%w in %q at %d: %s", ErrSyntax, expr, len(expr)-len(frag), err)
		}
		res = append(res, seg)
		frag = rest
	}
	return res, nil
}

// ParseTarget parses a path expression which must address a single
// location.
func ParseTarget(expr string) (Path, error) {
	p, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	if p.HasWildcard() {
		return nil, fmt.Errorf("%w: %q", ErrWildcardTarget, expr)
	}
	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func parseSegment(frag string) (Segment, string, error) {
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '.' {
			return Segment{}, "", errors.New("recursive descent '..' is not supported")
		}
		if len(frag) > 1 && frag[1] == '*' {
			return AnyField(), frag[2:], nil
		}
		field, rest, err := parseField(frag[1:])
		if err != nil {
			return Segment{}, "", err
		}
		return Field(field), rest, nil
	case '[':
		if len(frag) > 1 && frag[1] == '\'' {
			field, rest, err := parseField(frag[1:])
			if err != nil {
				return Segment{}, "", err
			}
			if len(rest) == 0 || rest[0] != ']' {
				return Segment{}, "", errors.New("expected ']' after quoted field")
			}
			return Field(field), rest[1:], nil
		}
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return Segment{}, "", errors.New("expected '[' <index> ']'")
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return Segment{}, "", err
		}
		if all {
			return AnyIndex(), frag[i+2:], nil
		}
		return Index(index), frag[i+2:], nil
	default:
		return Segment{}, "", errors.New("expected '.' or '['")
	}
}

func parseIndex(is string) (index int, all bool, err error) {
	if is == "*" {
		return 0, true, nil
	}
	u, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, false, fmt.Errorf("invalid index %q", is)
	}
	return int(u), false, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", errors.New("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			i = len(frag)
		}
		if i == 0 {
			return "", "", errors.New("empty field name")
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch {
		case escaped:
			escaped = false
			res = append(res, c)
		case c == '\\':
			escaped = true
		case c == '\'':
			return string(res), frag[i+1:], nil
		default:
			res = append(res, c)
		}
	}
	return "", "", errors.New("end of string scanning for \"'\"")
}

func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range p {
		b.WriteString(s.String())
	}
	return b.String()
}

func (p Path) IsRoot() bool { return len(p) == 0 }

func (p Path) HasWildcard() bool {
	for _, s := range p {
		if s.IsWild() {
			return true
		}
	}
	return false
}

// Parent returns p without its last segment. The parent of the root is
// the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the last segment of p, which must not be the root.
func (p Path) Last() Segment {
	return p[len(p)-1]
}

// Append returns a new path consisting of p followed by segs. p is not
// modified.
func (p Path) Append(segs ...Segment) Path {
	res := make(Path, 0, len(p)+len(segs))
	res = append(res, p...)
	return append(res, segs...)
}

func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether q is p or an ancestor of p.
func (p Path) HasPrefix(q Path) bool {
	return len(q) <= len(p) && p[:len(q)].Equal(q)
}

// Key returns a string which identifies p: two paths have the same key if
// and only if they are Equal.
func (p Path) Key() string {
	b := make([]byte, 0, 8*len(p))
	for _, s := range p {
		b = append(b, byte(s.Kind))
		switch s.Kind {
		case FieldSegment:
			b = binary.AppendUvarint(b, uint64(len(s.Field)))
			b = append(b, s.Field...)
		case IndexSegment:
			b = binary.AppendUvarint(b, uint64(s.Index))
		}
	}
	return string(b)
}

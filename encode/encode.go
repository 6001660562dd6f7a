package encode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/mpmap/format"
	"github.com/signadot/mpmap/wire"
	"github.com/tinylib/msgp/msgp"
)

const maxDepth = 10000

type EncState struct {
	depth, indent int
	format        format.Format

	scratch *bytes.Buffer
	Color   func(msgp.Type, ColorAttr, string) string
}

// Encode writes the MessagePack document doc to w in the selected format.
// Text formats end with a newline.
func Encode(doc []byte, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
		format: format.JSONFormat,
	}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.MsgPackFormat:
		if _, err := wire.Span(doc, 0); err != nil {
			return err
		}
		_, err := w.Write(doc)
		return err
	case format.YAMLFormat:
		v, err := wire.ToValue(doc)
		if err != nil {
			return err
		}
		d, err := yaml.MarshalWithOptions(v, yaml.Indent(max(es.indent, 1)))
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	case format.JSONFormat:
		es.scratch = bytes.NewBuffer(nil)
		n, err := encodeJSON(doc, 0, w, es)
		if err != nil {
			return err
		}
		if n != len(doc) {
			return fmt.Errorf("%w: %d trailing bytes", wire.ErrMalformedDocument, len(doc)-n)
		}
		return writeString(w, "\n")
	default:
		return fmt.Errorf("%w: %s", format.ErrBadFormat, es.format)
	}
}

// encodeJSON writes the value at doc[off] and returns the offset after it.
func encodeJSON(doc []byte, off int, w io.Writer, es *EncState) (int, error) {
	if es.depth > maxDepth {
		return off, fmt.Errorf("document nested deeper than %d", maxDepth)
	}
	h, err := wire.ReadHeader(doc, off)
	if err != nil {
		return off, err
	}
	if !h.IsContainer() {
		n, err := wire.Span(doc, off)
		if err != nil {
			return off, err
		}
		s, err := scalar(doc[off:off+n], es)
		if err != nil {
			return off, err
		}
		return off + n, writeString(w, es.color(h.Type, ValueColor, s))
	}
	lb, rb := "[", "]"
	if h.Type == msgp.MapType {
		lb, rb = "{", "}"
	}
	if err := writeString(w, es.color(h.Type, SepColor, lb)); err != nil {
		return off, err
	}
	off += h.Size
	es.depth++
	for i := range h.Count {
		if i > 0 {
			if err := writeString(w, es.color(h.Type, SepColor, ",")); err != nil {
				return off, err
			}
		}
		if err := writeNL(w, es); err != nil {
			return off, err
		}
		if h.Type == msgp.MapType {
			_, n, err := wire.ReadKeyZC(doc, off)
			if err != nil {
				return off, err
			}
			k, err := scalar(doc[off:off+n], es)
			if err != nil {
				return off, err
			}
			off += n
			sep := ":"
			if es.indent > 0 {
				sep = ": "
			}
			if err := writeString(w, es.color(msgp.MapType, FieldColor, k)+es.color(msgp.MapType, SepColor, sep)); err != nil {
				return off, err
			}
		}
		if off, err = encodeJSON(doc, off, w, es); err != nil {
			return off, err
		}
	}
	es.depth--
	if h.Count > 0 {
		if err := writeNL(w, es); err != nil {
			return off, err
		}
	}
	return off, writeString(w, es.color(h.Type, SepColor, rb))
}

func scalar(b []byte, es *EncState) (string, error) {
	es.scratch.Reset()
	if err := wire.ToJSON(es.scratch, b); err != nil {
		return "", err
	}
	return es.scratch.String(), nil
}

func (es *EncState) color(t msgp.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func writeNL(w io.Writer, es *EncState) error {
	if es.indent <= 0 {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.depth*es.indent))
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

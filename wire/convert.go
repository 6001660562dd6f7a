package wire

import (
	"fmt"
	"io"
	"maps"
	"math"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/tinylib/msgp/msgp"
)

// maxValueDepth bounds the nesting accepted by ToValue and AppendValue.
const maxValueDepth = 10000

// FromJSON encodes a JSON document as MessagePack. Object keys keep their
// order.
func FromJSON(data []byte) ([]byte, error) {
	// JSON is a subset of YAML 1.2 flow syntax
	return FromYAML(data)
}

// FromYAML encodes a YAML document as MessagePack. Mapping keys keep their
// order.
func FromYAML(data []byte) ([]byte, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return AppendValue(nil, v)
}

// AppendValue appends the MessagePack encoding of v to b. Maps given as
// yaml.MapSlice are encoded in slice order, map[string]any in sorted key
// order. Integers use the smallest encoding.
func AppendValue(b []byte, v any) ([]byte, error) {
	return appendValue(b, v, 0)
}

func appendValue(b []byte, v any, depth int) ([]byte, error) {
	if depth > maxValueDepth {
		return b, fmt.Errorf("value nested deeper than %d", maxValueDepth)
	}
	var err error
	switch x := v.(type) {
	case nil:
		return msgp.AppendNil(b), nil
	case bool:
		return msgp.AppendBool(b, x), nil
	case string:
		return msgp.AppendString(b, x), nil
	case []byte:
		return msgp.AppendBytes(b, x), nil
	case int:
		return msgp.AppendInt64(b, int64(x)), nil
	case int64:
		return msgp.AppendInt64(b, x), nil
	case uint64:
		if x <= math.MaxInt64 {
			return msgp.AppendInt64(b, int64(x)), nil
		}
		return msgp.AppendUint64(b, x), nil
	case float32:
		return msgp.AppendFloat32(b, x), nil
	case float64:
		return msgp.AppendFloat64(b, x), nil
	case yaml.MapSlice:
		b = msgp.AppendMapHeader(b, uint32(len(x)))
		for _, item := range x {
			b = msgp.AppendString(b, keyString(item.Key))
			if b, err = appendValue(b, item.Value, depth+1); err != nil {
				return b, err
			}
		}
		return b, nil
	case map[string]any:
		b = msgp.AppendMapHeader(b, uint32(len(x)))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			b = msgp.AppendString(b, k)
			if b, err = appendValue(b, x[k], depth+1); err != nil {
				return b, err
			}
		}
		return b, nil
	case []any:
		b = msgp.AppendArrayHeader(b, uint32(len(x)))
		for _, e := range x {
			if b, err = appendValue(b, e, depth+1); err != nil {
				return b, err
			}
		}
		return b, nil
	default:
		return msgp.AppendIntf(b, v)
	}
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// ToJSON writes the JSON rendering of the MessagePack document b to w.
func ToJSON(w io.Writer, b []byte) error {
	rest, err := msgp.UnmarshalAsJSON(w, b)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if len(rest) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformedDocument, len(rest))
	}
	return nil
}

// ToValue decodes the MessagePack document b into Go values. Maps are
// returned as yaml.MapSlice to keep their order; arrays as []any.
func ToValue(b []byte) (any, error) {
	v, rest, err := readValue(b, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedDocument, len(rest))
	}
	return v, nil
}

func readValue(b []byte, depth int) (any, []byte, error) {
	if depth > maxValueDepth {
		return nil, b, fmt.Errorf("value nested deeper than %d", maxValueDepth)
	}
	switch msgp.NextType(b) {
	case msgp.MapType:
		sz, rest, err := msgp.ReadMapHeaderBytes(b)
		if err != nil {
			return nil, b, err
		}
		res := make(yaml.MapSlice, 0, min(int(sz), len(rest)))
		for range sz {
			var (
				key []byte
				val any
			)
			key, rest, err = msgp.ReadMapKeyZC(rest)
			if err != nil {
				return nil, b, err
			}
			val, rest, err = readValue(rest, depth+1)
			if err != nil {
				return nil, b, err
			}
			res = append(res, yaml.MapItem{Key: string(key), Value: val})
		}
		return res, rest, nil
	case msgp.ArrayType:
		sz, rest, err := msgp.ReadArrayHeaderBytes(b)
		if err != nil {
			return nil, b, err
		}
		res := make([]any, 0, min(int(sz), len(rest)))
		for range sz {
			var val any
			val, rest, err = readValue(rest, depth+1)
			if err != nil {
				return nil, b, err
			}
			res = append(res, val)
		}
		return res, rest, nil
	default:
		return msgp.ReadIntfBytes(b)
	}
}

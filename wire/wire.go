package wire

import (
	"errors"
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// ErrMalformedDocument is returned whenever bytes are not a valid
// MessagePack encoding.
var ErrMalformedDocument = errors.New("malformed document")

// Header describes the value starting at some offset of a buffer.
type Header struct {
	Type msgp.Type
	// Count is the number of entries of a map or elements of an array.
	Count uint32
	// Size is the length of the map or array header in bytes.
	Size int
}

// IsContainer reports whether h is a map or array header.
func (h Header) IsContainer() bool {
	return h.Type == msgp.MapType || h.Type == msgp.ArrayType
}

// ReadHeader reads the type header of the value at buf[off].
func ReadHeader(buf []byte, off int) (Header, error) {
	if off < 0 || off >= len(buf) {
		return Header{}, fmt.Errorf("%w: no value at offset %d (len %d)", ErrMalformedDocument, off, len(buf))
	}
	b := buf[off:]
	h := Header{Type: msgp.NextType(b)}
	var (
		sz   uint32
		rest []byte
		err  error
	)
	switch h.Type {
	case msgp.InvalidType:
		return h, fmt.Errorf("%w: unrecognized type header 0x%02x at offset %d", ErrMalformedDocument, b[0], off)
	case msgp.MapType:
		sz, rest, err = msgp.ReadMapHeaderBytes(b)
	case msgp.ArrayType:
		sz, rest, err = msgp.ReadArrayHeaderBytes(b)
	default:
		return h, nil
	}
	if err != nil {
		return h, malformed(off, err)
	}
	h.Count = sz
	h.Size = len(b) - len(rest)
	// every element takes at least one byte
	if uint64(sz) > uint64(len(rest)) {
		return h, fmt.Errorf("%w: %s at offset %d declares %d elements with %d bytes left",
			ErrMalformedDocument, h.Type, off, sz, len(rest))
	}
	return h, nil
}

// Span returns the encoded length of the complete value at buf[off],
// including nested values of maps and arrays.
func Span(buf []byte, off int) (int, error) {
	if off < 0 || off >= len(buf) {
		return 0, fmt.Errorf("%w: no value at offset %d (len %d)", ErrMalformedDocument, off, len(buf))
	}
	b := buf[off:]
	rest, err := msgp.Skip(b)
	if err != nil {
		return 0, malformed(off, err)
	}
	return len(b) - len(rest), nil
}

// ReadKeyZC reads the map key at buf[off] without copying it. The
// returned slice aliases buf. n is the encoded length of the key.
func ReadKeyZC(buf []byte, off int) (key []byte, n int, err error) {
	if off < 0 || off >= len(buf) {
		return nil, 0, fmt.Errorf("%w: no map key at offset %d (len %d)", ErrMalformedDocument, off, len(buf))
	}
	b := buf[off:]
	key, rest, err := msgp.ReadMapKeyZC(b)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: map key at offset %d: %w", ErrMalformedDocument, off, err)
	}
	return key, len(b) - len(rest), nil
}

// ReadKey is like ReadKeyZC but returns the key as a string.
func ReadKey(buf []byte, off int) (string, int, error) {
	key, n, err := ReadKeyZC(buf, off)
	if err != nil {
		return "", 0, err
	}
	return string(key), n, nil
}

// IsMap reports whether b starts with a map header.
func IsMap(b []byte) bool {
	return msgp.NextType(b) == msgp.MapType
}

func malformed(off int, err error) error {
	return fmt.Errorf("%w at offset %d: %w", ErrMalformedDocument, off, err)
}

package tree

import (
	"github.com/tinylib/msgp/msgp"
)

const minBufferCap = 64

// Buffer is a growable byte buffer. Growth doubles the capacity, and
// bytes already written are kept. The zero value is an empty buffer.
//
// Bytes returned by Bytes alias the buffer until the next write or Reset.
type Buffer struct {
	b []byte
}

// NewBuffer returns an empty buffer with capacity capHint.
func NewBuffer(capHint int) *Buffer {
	return &Buffer{b: make([]byte, 0, max(capHint, 0))}
}

// Reset empties the buffer, keeping its capacity.
func (b *Buffer) Reset() { b.b = b.b[:0] }

func (b *Buffer) Bytes() []byte { return b.b }
func (b *Buffer) Len() int      { return len(b.b) }
func (b *Buffer) Cap() int      { return cap(b.b) }

// Grow makes room for n more bytes.
func (b *Buffer) Grow(n int) {
	if cap(b.b)-len(b.b) >= n {
		return
	}
	c := max(2*cap(b.b), minBufferCap)
	for c < len(b.b)+n {
		c *= 2
	}
	nb := make([]byte, len(b.b), c)
	copy(nb, b.b)
	b.b = nb
}

// Write appends p. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Append(p)
	return len(p), nil
}

// Append appends p and returns the offset at which it starts.
func (b *Buffer) Append(p []byte) int {
	off := len(b.b)
	b.Grow(len(p))
	b.b = append(b.b, p...)
	return off
}

// WriteMapHeader appends a map header for n entries, using the most
// compact encoding.
func (b *Buffer) WriteMapHeader(n int) {
	b.Grow(5)
	b.b = msgp.AppendMapHeader(b.b, uint32(n))
}

// WriteArrayHeader is like WriteMapHeader for arrays.
func (b *Buffer) WriteArrayHeader(n int) {
	b.Grow(5)
	b.b = msgp.AppendArrayHeader(b.b, uint32(n))
}

// WriteString appends s as a MessagePack str.
func (b *Buffer) WriteString(s string) {
	b.Grow(5 + len(s))
	b.b = msgp.AppendString(b.b, s)
}

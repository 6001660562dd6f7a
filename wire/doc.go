// Package wire adapts the MessagePack primitives of
// github.com/tinylib/msgp/msgp to the offset-based access used by the
// mpmap packages.
//
// Every function here takes a buffer and an offset into it rather than a
// sub-slice, so callers can record positions of values in the buffer
// without copying them.
//
//	h, err := wire.ReadHeader(doc, 0)
//	if err != nil {
//	    return err
//	}
//	if h.Type == msgp.MapType {
//	    // h.Count entries start at offset h.Size
//	}
//
// # Conversion
//
// FromJSON and FromYAML turn text documents into MessagePack, keeping the
// order of object keys. ToJSON and ToValue go the other way. These are
// meant for tools and tests; the mapping engine itself never decodes a
// document into Go values.
//
// # Related Packages
//
//   - github.com/signadot/mpmap/tree - indexes MessagePack documents
//   - github.com/signadot/mpmap/mpath - queries MessagePack documents
package wire

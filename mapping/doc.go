// Package mapping relocates values between MessagePack documents.
//
// A Mapping pairs a source query with a target path. Extract builds a new
// document from the first match of each mapping's source query in a
// source document; Merge writes the matches into an existing target
// document, replacing only the addressed values:
//
//	ms := []mapping.Mapping{
//		mapping.MustNew("$.user.name", "$.name"),
//		mapping.MustNew("$.items[0]", "$.first"),
//	}
//	out, err := mapping.Extract(src, ms)
//	out, err = mapping.Merge(src, target, ms)
//
// Mappings apply in order; a later mapping overwrites an earlier one with
// the same target. The result of both operations must be a map.
//
// An Engine reuses its output buffers between calls. The result of an
// Engine call is only valid until the next call on that Engine, and an
// Engine must not be used by more than one goroutine at a time. The
// package level Extract and Merge allocate per call.
//
// Mapping files list mappings in YAML or JSON:
//
//	mappings:
//	- source: $.user.name
//	  target: $.name
package mapping

// Package mpath provides structured paths into MessagePack documents and
// a small JSONPath-style query language over them.
//
// # Paths
//
// A Path is a sequence of typed segments: field names, array indices and
// their wildcards. The empty Path is the document root "$".
//
//	p, err := mpath.Parse("$.users[0]['full name']")
//	// p[0] is Field("users"), p[1] is Index(0), p[2] is Field("full name")
//
// Paths are compared by value. Path.Key returns an injective string
// encoding of a path for use as a map key; unlike joining the segment
// texts, distinct paths never share a key.
//
// ParseTarget parses a path which names exactly one location and so
// rejects wildcards.
//
// # Queries
//
// A Query is a compiled path expression which may contain wildcards. It is
// executed directly over the encoded bytes of a document:
//
//	q, err := mpath.Compile("$.items[*].id")
//	matches, err := q.Match(doc)
//	for _, m := range matches {
//	    value := doc[m.Offset : m.Offset+m.Length]
//	}
//
// Matches are reported in document order. First stops at the first one.
//
// Cache keeps recently compiled queries, keyed by expression.
//
// # Syntax
//
//	$            root
//	.name        field
//	['a.b']      quoted field, \' escapes a quote
//	[3]          array index
//	.*           any field
//	[*]          any index
package mpath

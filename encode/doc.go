// Package encode renders MessagePack documents as text.
//
// # Usage
//
//	// JSON, two space indent
//	err := encode.Encode(doc, os.Stdout)
//
//	// YAML
//	err = encode.Encode(doc, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//
//	// compact, colored JSON
//	err = encode.Encode(doc, os.Stdout, encode.Indent(0), encode.EncodeColors(encode.NewColors()))
//
// With format.MsgPackFormat the document is written unchanged.
//
// # Related Packages
//
//   - github.com/signadot/mpmap/wire - MessagePack primitives and conversion
//   - github.com/signadot/mpmap/format - format names
package encode

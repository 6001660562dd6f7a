package encode

import "github.com/signadot/mpmap/format"

type EncodeOption func(*EncState)

// EncodeFormat selects the output format. The default is JSON.
func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// Indent sets the JSON indent width. Zero selects compact output.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

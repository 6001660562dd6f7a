// Package format names the document formats read and written by mpmap
// tooling.
package format

import (
	"errors"
	"fmt"

	"github.com/signadot/mpmap/wire"
)

type Format int

const (
	MsgPackFormat Format = iota
	JSONFormat
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"m":       MsgPackFormat,
		"msgpack": MsgPackFormat,
		"j":       JSONFormat,
		"json":    JSONFormat,
		"y":       YAMLFormat,
		"yaml":    YAMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case MsgPackFormat:
		return []byte("msgpack"), nil
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsMsgPack() bool { return f == MsgPackFormat }
func (f Format) IsJSON() bool    { return f == JSONFormat }
func (f Format) IsYAML() bool    { return f == YAMLFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case MsgPackFormat:
		return ".msgpack"
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	default:
		return ""
	}
}

// ToMsgPack converts data in format f to a MessagePack document.
func ToMsgPack(data []byte, f Format) ([]byte, error) {
	switch f {
	case MsgPackFormat:
		return data, nil
	case JSONFormat:
		return wire.FromJSON(data)
	case YAMLFormat:
		return wire.FromYAML(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, f)
	}
}

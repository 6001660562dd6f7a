package encode

import (
	"strings"

	"github.com/fatih/color"
	"github.com/tinylib/msgp/msgp"
)

type Colorable struct {
	Type msgp.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

var types = []msgp.Type{
	msgp.StrType,
	msgp.BinType,
	msgp.MapType,
	msgp.ArrayType,
	msgp.Float64Type,
	msgp.Float32Type,
	msgp.BoolType,
	msgp.IntType,
	msgp.UintType,
	msgp.NilType,
	msgp.ExtensionType,
	msgp.TimeType,
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range types {
		colors.Map[Colorable{Type: t, Attr: SepColor}] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}
	for _, t := range []msgp.Type{msgp.IntType, msgp.UintType, msgp.Float32Type, msgp.Float64Type} {
		able.Type = t
		colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	}

	able.Type = msgp.NilType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Type = msgp.BoolType
	colors.Map[able] = color.CyanString

	able.Type = msgp.BinType
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able.Type = msgp.MapType
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()

	able.Type = msgp.StrType
	able.Attr = ValueColor
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t msgp.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t msgp.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}

package encode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/signadot/mpmap/format"
	"github.com/signadot/mpmap/wire"
)

func mustDoc(t *testing.T, js string) []byte {
	t.Helper()
	d, err := wire.FromJSON([]byte(js))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestEncodeJSON(t *testing.T) {
	doc := mustDoc(t, `{"a": [1, "x"], "b": {}, "c": null}`)
	got := MustString(doc)
	want := `{
  "a": [
    1,
    "x"
  ],
  "b": {},
  "c": null
}`
	if got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
	got = MustString(doc, Indent(0))
	if want := `{"a":[1,"x"],"b":{},"c":null}`; got != want {
		t.Errorf("expected %s got %s", want, got)
	}
}

func TestEncodeYAML(t *testing.T) {
	doc := mustDoc(t, `{"z": [1, "x"], "a": {"k": true}}`)
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "z:") {
		t.Errorf("key order not kept:\n%s", buf.String())
	}
	back, err := wire.FromYAML(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(doc, back) {
		t.Errorf("yaml did not round trip:\n%s", buf.String())
	}
}

func TestEncodeMsgPack(t *testing.T) {
	doc := mustDoc(t, `{"a": 1}`)
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, EncodeFormat(format.MsgPackFormat)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(doc, buf.Bytes()) {
		t.Errorf("expected % x got % x", doc, buf.Bytes())
	}
}

func TestEncodeErrors(t *testing.T) {
	doc := mustDoc(t, `{"a": 1}`)
	for _, f := range []format.Format{format.JSONFormat, format.YAMLFormat, format.MsgPackFormat} {
		err := Encode(doc[:len(doc)-1], bytes.NewBuffer(nil), EncodeFormat(f))
		if !errors.Is(err, wire.ErrMalformedDocument) {
			t.Errorf("%s: expected ErrMalformedDocument got %v", f, err)
		}
	}
	err := Encode(append(bytes.Clone(doc), 0xc0), bytes.NewBuffer(nil))
	if !errors.Is(err, wire.ErrMalformedDocument) {
		t.Errorf("expected ErrMalformedDocument for trailing bytes got %v", err)
	}
}

func TestEncodeColors(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = noColor }()

	doc := mustDoc(t, `{"a": "100%"}`)
	got := MustString(doc, Indent(0), EncodeColors(NewColors()))
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected color escapes in %q", got)
	}
	if !strings.Contains(got, `"100%"`) {
		t.Errorf("value mangled in %q", got)
	}
	if plain := MustString(doc, Indent(0), EncodeColors(nil)); plain != `{"a":"100%"}` {
		t.Errorf("got %q", plain)
	}
}

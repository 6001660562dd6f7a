package main

import (
	"bytes"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/mpmap/encode"
)

// diffDocs writes a line diff of the JSON renderings of a and b to w and
// reports whether they differ.
func diffDocs(w io.Writer, a, b []byte, colored bool) (bool, error) {
	at, err := jsonText(a)
	if err != nil {
		return false, err
	}
	bt, err := jsonText(b)
	if err != nil {
		return false, err
	}
	if at == bt {
		return false, nil
	}
	dmp := diffmatchpatch.New()
	ac, bc, lines := dmp.DiffLinesToChars(at, bt)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ac, bc, false), lines)
	del, ins := fmtLine, fmtLine
	if colored {
		del = color.New(color.FgRed).SprintFunc()
		ins = color.New(color.FgGreen).SprintFunc()
	}
	buf := bytes.NewBuffer(nil)
	for _, d := range diffs {
		prefix, f := "  ", fmtLine
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, f = "- ", del
		case diffmatchpatch.DiffInsert:
			prefix, f = "+ ", ins
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			buf.WriteString(f(prefix + ln))
		}
	}
	_, err = w.Write(buf.Bytes())
	return true, err
}

func fmtLine(a ...any) string {
	return a[0].(string)
}

func jsonText(doc []byte) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

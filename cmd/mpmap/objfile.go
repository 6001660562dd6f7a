package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/mpmap/format"
)

// readFile reads path, or the command input for "-".
func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// getDoc reads path as a MessagePack document, converting from format f.
func getDoc(cc *cli.Context, path string, f format.Format) ([]byte, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	doc, err := format.ToMsgPack(d, f)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return doc, nil
}

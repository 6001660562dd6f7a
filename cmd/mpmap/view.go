package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/mpmap/encode"
	"github.com/signadot/mpmap/format"
	"github.com/signadot/mpmap/wire"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		if err := viewFile(cfg, cc, file); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if i < len(args)-1 && !cfg.outFormat().IsMsgPack() {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// viewFile writes every document of file. MessagePack input may hold a
// sequence of documents.
func viewFile(cfg *ViewConfig, cc *cli.Context, file string) error {
	d, err := readFile(cc, file)
	if err != nil {
		return err
	}
	if !cfg.inFormat().IsMsgPack() {
		doc, err := format.ToMsgPack(d, cfg.inFormat())
		if err != nil {
			return err
		}
		return encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...)
	}
	for i := 0; len(d) > 0; i++ {
		n, err := wire.Span(d, 0)
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		if i > 0 && !cfg.outFormat().IsMsgPack() {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
		if err := encode.Encode(d[:n], cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		d = d[n:]
	}
	return nil
}

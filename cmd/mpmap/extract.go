package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/mpmap/encode"
)

func extract(cfg *ExtractConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Extract.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: extract takes at most one source, got %v", cli.ErrUsage, args)
	}
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	ms, err := cfg.mappings()
	if err != nil {
		return err
	}
	src, err := getDoc(cc, path, cfg.inFormat())
	if err != nil {
		return err
	}
	res, err := cfg.engine().Extract(src, ms)
	if err != nil {
		return err
	}
	return encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...)
}

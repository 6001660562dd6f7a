package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/mpmap/encode"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: merge requires <source> <target>, got %v", cli.ErrUsage, args)
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: source and target cannot both be stdin", cli.ErrUsage)
	}
	ms, err := cfg.mappings()
	if err != nil {
		return err
	}
	src, err := getDoc(cc, args[0], cfg.inFormat())
	if err != nil {
		return err
	}
	target, err := getDoc(cc, args[1], cfg.inFormat())
	if err != nil {
		return err
	}
	res, err := cfg.engine().Merge(src, target, ms)
	if err != nil {
		return err
	}
	if !cfg.Flags.Diff {
		return encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...)
	}
	differs, err := diffDocs(cc.Out, target, res, cfg.colors(cc.Out))
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

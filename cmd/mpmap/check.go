package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/mpmap/mapping"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: check takes no arguments, got %v", cli.ErrUsage, args)
	}
	ms, err := cfg.mappings()
	if err != nil {
		return err
	}
	for _, m := range ms {
		fmt.Fprintln(cc.Out, m)
	}
	if err := mapping.Validate(ms); err != nil {
		fmt.Fprintln(cc.Out, err)
		return cli.ExitCodeErr(1)
	}
	return nil
}

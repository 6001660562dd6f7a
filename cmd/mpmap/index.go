package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/mpmap/mpath"
	"github.com/signadot/mpmap/tree"
)

func index(cfg *IndexConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Index.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: index takes at most one file, got %v", cli.ErrUsage, args)
	}
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	doc, err := getDoc(cc, path, cfg.inFormat())
	if err != nil {
		return err
	}
	if cfg.Query != "" {
		q, err := mpath.Compile(cfg.Query)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		ms, err := q.Match(doc)
		if err != nil {
			return err
		}
		for _, m := range ms {
			fmt.Fprintf(cc.Out, "%d %d\n", m.Offset, m.Length)
		}
		return nil
	}
	t, err := tree.Index(doc)
	if err != nil {
		return err
	}
	return t.Walk(func(addr mpath.Path, n *tree.Node) error {
		if l, ok := n.Leaf(); ok {
			_, err := fmt.Fprintf(cc.Out, "%s\t%s\t%s\n", addr, n.Kind(), l)
			return err
		}
		_, err := fmt.Fprintf(cc.Out, "%s\t%s\t%d\n", addr, n.Kind(), n.Len())
		return err
	})
}

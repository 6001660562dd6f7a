package main

import (
	"github.com/scott-cotton/cli"
	"github.com/signadot/mpmap/mpath"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: msgpack/m, json/j, yaml/y (default msgpack)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: msgpack/m, json/j, yaml/y (default json)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "mpmap").
		WithSynopsis("mpmap [opts] command [opts]").
		WithDescription("mpmap relocates values between MessagePack documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mpmapMain(cfg, cc, args)
		}).
		WithSubs(
			ExtractCommand(cfg),
			MergeCommand(cfg),
			CheckCommand(cfg),
			ViewCommand(cfg),
			IndexCommand(cfg))
}

func mapOpts(cfg *MapConfig) []*cli.Opt {
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return append(opts, &cli.Opt{
		Name:        "map",
		Description: "add a mapping, applied after those of -m",
		Type:        cli.NamedFuncOpt(cfg.mapOpt, "(source=target)"),
	})
}

func ExtractCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExtractConfig{MapConfig: newMapConfig(mainCfg)}
	cmd := cli.NewCommand("extract").
		WithAliases("x", "ex").
		WithSynopsis("extract [-m file] [-map source=target]... [source]").
		WithDescription("build a new document from values of the source document").
		WithOpts(mapOpts(cfg.MapConfig)...).
		WithRun(func(cc *cli.Context, args []string) error {
			return extract(cfg, cc, args)
		})
	cfg.Extract = cmd
	return cmd
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MapConfig: newMapConfig(mainCfg)}
	opts := mapOpts(cfg.MapConfig)
	sOpts, err := cli.StructOpts(&cfg.Flags)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("me").
		WithSynopsis("merge [-m file] [-map source=target]... [-diff] <source> <target>").
		WithDescription("write values of the source document into the target document").
		WithOpts(append(opts, sOpts...)...).
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MapConfig: newMapConfig(mainCfg)}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-m file] [-map source=target]...").
		WithDescription("report wildcard sources and redundant mappings").
		WithOpts(mapOpts(cfg.MapConfig)...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view documents, converting between formats").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func IndexCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &IndexConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Index, "index").
		WithAliases("i").
		WithSynopsis("index [-q query] [file]").
		WithDescription("list the nodes of a document, or the matches of a query").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return index(cfg, cc, args)
		})
}

func newMapConfig(mainCfg *MainConfig) *MapConfig {
	return &MapConfig{MainConfig: mainCfg, cache: mpath.NewCache(0)}
}

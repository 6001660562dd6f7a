package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/mpmap/encode"
	"github.com/signadot/mpmap/format"
	"github.com/signadot/mpmap/mapping"
	"github.com/signadot/mpmap/mpath"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	Gops    bool `cli:"name=gops desc='start a gops diagnostics agent'"`
	Verbose bool `cli:"name=v aliases=verbose desc='log engine calls'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) inFormat() format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return format.MsgPackFormat
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return format.JSONFormat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
	}
	if cfg.colors(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colors reports whether output to w is colored: when -color is given, or
// by default when w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// MapConfig holds the options of commands taking mappings.
type MapConfig struct {
	*MainConfig

	File     string `cli:"name=m desc='mapping file (yaml or json)'"`
	MaxDepth int    `cli:"name=depth desc='maximum document nesting depth'"`
	MaxSize  int    `cli:"name=max desc='maximum result size in bytes'"`

	Maps  []mapping.Mapping
	cache *mpath.Cache
}

func (cfg *MapConfig) mapOpt(_ *cli.Context, a string) (any, error) {
	m, err := mapping.Parse(a, cfg.cache)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Maps = append(cfg.Maps, m)
	return m.String(), nil
}

// mappings returns the mappings of the mapping file followed by those
// given with -map.
func (cfg *MapConfig) mappings() ([]mapping.Mapping, error) {
	var res []mapping.Mapping
	if cfg.File != "" {
		d, err := os.ReadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		res, err = mapping.Load(d, cfg.cache)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", cfg.File, err)
		}
	}
	res = append(res, cfg.Maps...)
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: no mappings, use -m or -map", cli.ErrUsage)
	}
	return res, nil
}

func (cfg *MapConfig) engine() *mapping.Engine {
	if cfg.Verbose {
		logLevel.Set(slog.LevelDebug)
	}
	return mapping.NewEngine(
		mapping.WithLogger(theLog),
		mapping.WithMaxDepth(cfg.MaxDepth),
		mapping.WithMaxDocumentSize(cfg.MaxSize),
	)
}

type ExtractConfig struct {
	*MapConfig

	Extract *cli.Command
}

type MergeFlags struct {
	Diff bool `cli:"name=diff desc='show the changes to the target instead of the result'"`
}

type MergeConfig struct {
	*MapConfig
	Flags MergeFlags

	Merge *cli.Command
}

type CheckConfig struct {
	*MapConfig

	Check *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type IndexConfig struct {
	*MainConfig
	Query string `cli:"name=q desc='list the matches of a query instead of the nodes'"`

	Index *cli.Command
}

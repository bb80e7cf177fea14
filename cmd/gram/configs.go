package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gram-format/go-gram/encode"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type Format int

const (
	GramFormat Format = iota
	JSONFormat
	YAMLFormat
)

func ParseFormat(v string) (Format, error) {
	switch v {
	case "gram", "g":
		return GramFormat, nil
	case "json", "j":
		return JSONFormat, nil
	case "yaml", "y":
		return YAMLFormat, nil
	}
	return 0, fmt.Errorf("unknown format %q", v)
}

func (f Format) String() string {
	return map[Format]string{
		GramFormat: "gram",
		JSONFormat: "json",
		YAMLFormat: "yaml",
	}[f]
}

type MainConfig struct {
	Pretty bool `cli:"name=p aliases=pretty desc='indent output'"`
	Color  bool `cli:"name=color desc='encode with color'"`

	G bool `cli:"name=g aliases=gram desc='do i/o in gram'"`
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) inFormat() Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return cfg.defaultFormat()
}

func (cfg *MainConfig) outFormat() Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return cfg.defaultFormat()
}

func (cfg *MainConfig) defaultFormat() Format {
	switch {
	case cfg.J:
		return JSONFormat
	case cfg.Y:
		return YAMLFormat
	default:
		return GramFormat
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	if cfg.Pretty {
		res = append(res, encode.WithIndent())
	}
	if cfg.Color {
		return append(res, encode.WithColors(encode.NewColors()))
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.WithColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SliceConfig struct {
	*MainConfig

	Slice *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type FilterConfig struct {
	*MainConfig

	Filter *cli.Command
}

type PatchConfig struct {
	*MainConfig
	String bool `cli:"name=s desc='patch arg as string'"`

	Patch *cli.Command
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gram-format/go-gram/access"
	"github.com/gram-format/go-gram/ir"
	"github.com/scott-cotton/cli"
)

func slice(cfg *SliceConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Slice.Parse(cc, args)
	if err != nil {
		cfg.Slice.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: slice requires a lo:hi argument", cli.ErrUsage)
	}
	lo, hi, err := sliceBounds(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	for _, arg := range docArgs(args[1:]) {
		v, err := readDoc(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		res, err := access.Slice(v, lo, hi)
		if err != nil {
			return fmt.Errorf("error slicing %s: %w", arg, err)
		}
		if err := writeDoc(cfg.MainConfig, cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

func sliceBounds(s string) (*ir.Value, *ir.Value, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return nil, nil, fmt.Errorf("bounds %q need a colon", s)
	}
	loV, err := sliceBound(lo)
	if err != nil {
		return nil, nil, err
	}
	hiV, err := sliceBound(hi)
	if err != nil {
		return nil, nil, err
	}
	return loV, hiV, nil
}

func sliceBound(s string) (*ir.Value, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad bound %q: %v", s, err)
	}
	return ir.FromInt(n), nil
}

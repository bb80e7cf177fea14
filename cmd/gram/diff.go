package main

import (
	"fmt"
	"io"

	gram "github.com/gram-format/go-gram"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff takes exactly two documents", cli.ErrUsage)
	}
	a, err := readDoc(cfg.MainConfig, args[0])
	if err != nil {
		return err
	}
	b, err := readDoc(cfg.MainConfig, args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		a, b = b, a
	}
	d, err := gram.Diff(a, b)
	if err != nil {
		return err
	}
	if d == "" {
		return nil
	}
	_, err = io.WriteString(cc.Out, d)
	return err
}

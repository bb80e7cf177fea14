package main

import (
	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range docArgs(args) {
		v, err := readDoc(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		if err := writeDoc(cfg.MainConfig, cc.Out, v); err != nil {
			return err
		}
	}
	return nil
}

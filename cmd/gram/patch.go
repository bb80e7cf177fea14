package main

import (
	"fmt"
	"os"

	gram "github.com/gram-format/go-gram"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	patchDoc := []byte(args[0])
	if !cfg.String {
		patchDoc, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading patch %s: %w", args[0], err)
		}
	}
	for _, arg := range docArgs(args[1:]) {
		v, err := readDoc(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		res, err := gram.Patch(v, patchDoc)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", arg, err)
		}
		if err := writeDoc(cfg.MainConfig, cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

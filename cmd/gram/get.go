package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gram-format/go-gram/access"
	"github.com/gram-format/go-gram/ir"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path argument", cli.ErrUsage)
	}
	steps, err := pathSteps(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	for _, arg := range docArgs(args[1:]) {
		v, err := readDoc(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		res, err := access.Path(v, steps...)
		if err != nil {
			return fmt.Errorf("error executing get on %s: %w", arg, err)
		}
		if res == nil {
			// nothing selected, nothing to say
			continue
		}
		if err := writeDoc(cfg.MainConfig, cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

// pathSteps parses a dotted path like a.b[0].c into access steps.
func pathSteps(p string) ([]*ir.Value, error) {
	var steps []*ir.Value
	i := 0
	for i < len(p) {
		switch p[i] {
		case '.':
			i++
		case '[':
			j := strings.IndexByte(p[i:], ']')
			if j < 0 {
				return nil, fmt.Errorf("unclosed [ in path %q", p)
			}
			n, err := strconv.ParseInt(p[i+1:i+j], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad index in path %q: %v", p, err)
			}
			steps = append(steps, ir.FromInt(n))
			i += j + 1
		default:
			j := strings.IndexAny(p[i:], ".[")
			if j < 0 {
				j = len(p) - i
			}
			k, err := ir.FromString(p[i : i+j])
			if err != nil {
				return nil, err
			}
			steps = append(steps, k)
			i += j
		}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("empty path %q", p)
	}
	return steps, nil
}

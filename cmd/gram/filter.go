package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/gram-format/go-gram/coerce"
	"github.com/gram-format/go-gram/ir"
	"github.com/scott-cotton/cli"
)

func filter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		cfg.Filter.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: filter requires an expression", cli.ErrUsage)
	}
	prg, err := expr.Compile(args[0], expr.AllowUndefinedVariables())
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	for _, arg := range docArgs(args[1:]) {
		v, err := readDoc(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		res, err := filterValue(prg, v)
		if err != nil {
			return fmt.Errorf("error filtering %s: %w", arg, err)
		}
		if res == nil {
			continue
		}
		if err := writeDoc(cfg.MainConfig, cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

// filterValue keeps the array elements for which the program holds, the
// element bound to x. A non-array document passes or drops whole.
func filterValue(prg *vm.Program, v *ir.Value) (*ir.Value, error) {
	if v.Kind == ir.ArrayKind && !v.RawScalar {
		res := &ir.Value{Kind: ir.ArrayKind}
		for _, e := range v.Elems {
			ok, err := evalKeep(prg, e)
			if err != nil {
				return nil, err
			}
			if ok {
				res.Elems = append(res.Elems, e)
			}
		}
		return res, nil
	}
	ok, err := evalKeep(prg, v)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return v, nil
}

func evalKeep(prg *vm.Program, e *ir.Value) (bool, error) {
	n, err := coerce.ToNative(e)
	if err != nil {
		return false, err
	}
	out, err := expr.Run(prg, map[string]any{"x": n})
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("expression is not a predicate, returned %T", out)
	}
	return b, nil
}

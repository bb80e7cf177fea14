package access

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/gram-format/go-gram/ir"
)

// StartsWith reports whether string s begins with prefix. Both operands
// must be scalar strings.
func StartsWith(s, prefix *ir.Value) (*ir.Value, error) {
	a, b, err := stringPair(s, prefix)
	if err != nil {
		return nil, err
	}
	return ir.FromBool(strings.HasPrefix(a, b)), nil
}

// EndsWith reports whether string s ends with suffix.
func EndsWith(s, suffix *ir.Value) (*ir.Value, error) {
	a, b, err := stringPair(s, suffix)
	if err != nil {
		return nil, err
	}
	return ir.FromBool(strings.HasSuffix(a, b)), nil
}

// Contains reports whether string s contains sub.
func Contains(s, sub *ir.Value) (*ir.Value, error) {
	a, b, err := stringPair(s, sub)
	if err != nil {
		return nil, err
	}
	return ir.FromBool(strings.Contains(a, b)), nil
}

func stringPair(x, y *ir.Value) (string, string, error) {
	a, err := scalarString(x)
	if err != nil {
		return "", "", err
	}
	b, err := scalarString(y)
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

func scalarString(v *ir.Value) (string, error) {
	if v == nil {
		return "", fmt.Errorf("%w: string predicate on null", ir.ErrTypeMismatch)
	}
	if s, ok := ir.ExtractScalar(v); ok {
		v = s
	}
	if v.Kind != ir.StringKind {
		return "", fmt.Errorf("%w: string predicate on %v", ir.ErrTypeMismatch, v.Kind)
	}
	return v.Str, nil
}

// CastNumeric converts a number to its numeric form. Null passes through
// as the null result; non-numbers are an error.
func CastNumeric(v *ir.Value) (*ir.Value, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := ir.ExtractScalar(v); ok {
		v = s
	}
	switch v.Kind {
	case ir.NullKind:
		return nil, nil
	case ir.IntegerKind:
		return ir.FromNumeric(apd.New(v.Int64, 0)), nil
	case ir.FloatKind:
		d := new(apd.Decimal)
		if _, err := d.SetFloat64(v.Float64); err != nil {
			return nil, fmt.Errorf("%w: %v", ir.ErrTypeMismatch, err)
		}
		return ir.FromNumeric(d), nil
	case ir.NumericKind:
		return v, nil
	}
	return nil, fmt.Errorf("%w: cannot cast %v to numeric", ir.ErrTypeMismatch, v.Kind)
}

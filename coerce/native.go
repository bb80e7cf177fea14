package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/cockroachdb/apd/v3"
	"github.com/goccy/go-yaml"
	"github.com/gram-format/go-gram/ir"
	"github.com/gram-format/go-gram/stream"
)

// yamlText parses a YAML document and splices it in place, keeping map
// member order via goccy's ordered map mode.
func (c *conv) yamlText(s string, depth int) error {
	var doc any
	if err := yaml.UnmarshalWithOptions([]byte(s), &doc, yaml.UseOrderedMap()); err != nil {
		return fmt.Errorf("%w: yaml: %v", ir.ErrSyntax, err)
	}
	return emitNative(c.b, doc, depth)
}

// FromNative converts a Go value of the shapes produced by YAML and JSON
// decoders. Plain maps emit keys sorted for determinism; yaml.MapSlice
// keeps its order.
func FromNative(v any) (*ir.Value, error) {
	b := stream.NewBuilder()
	if err := emitNative(b, v, 0); err != nil {
		return nil, err
	}
	return b.Result(), nil
}

func emitNative(b *stream.Builder, v any, depth int) error {
	if err := ir.CheckDepth(depth); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		b.Scalar(ir.Null())
	case bool:
		b.Scalar(ir.FromBool(x))
	case string:
		s, err := ir.FromString(x)
		if err != nil {
			return err
		}
		b.Scalar(s)
	case int:
		b.Scalar(ir.FromInt(int64(x)))
	case int64:
		b.Scalar(ir.FromInt(x))
	case uint64:
		if x > math.MaxInt64 {
			b.Scalar(ir.FromFloat(float64(x)))
			break
		}
		b.Scalar(ir.FromInt(int64(x)))
	case float64:
		b.Scalar(ir.FromFloat(x))
	case json.Number:
		if i, err := x.Int64(); err == nil {
			b.Scalar(ir.FromInt(i))
			break
		}
		f, err := x.Float64()
		if err != nil {
			return fmt.Errorf("%w: number %q", ir.ErrSyntax, string(x))
		}
		b.Scalar(ir.FromFloat(f))
	case *apd.Decimal:
		b.Scalar(ir.FromNumeric(x))
	case []any:
		b.BeginArray()
		for _, e := range x {
			if err := emitNative(b, e, depth+1); err != nil {
				return err
			}
		}
		b.EndArray()
	case yaml.MapSlice:
		b.BeginObject()
		for _, item := range x {
			k, err := nativeKey(item.Key)
			if err != nil {
				return err
			}
			b.Key(k)
			if err := emitNative(b, item.Value, depth+1); err != nil {
				return err
			}
		}
		b.EndObject()
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.BeginObject()
		for _, k := range keys {
			if err := ir.CheckStringLen(len(k)); err != nil {
				return err
			}
			b.Key(k)
			if err := emitNative(b, x[k], depth+1); err != nil {
				return err
			}
		}
		b.EndObject()
	default:
		return fmt.Errorf("%w: cannot convert %T", ir.ErrTypeMismatch, v)
	}
	return nil
}

func nativeKey(k any) (string, error) {
	var s string
	switch x := k.(type) {
	case string:
		s = x
	case int:
		s = fmt.Sprintf("%d", x)
	case int64:
		s = fmt.Sprintf("%d", x)
	case bool:
		s = fmt.Sprintf("%t", x)
	default:
		return "", fmt.Errorf("%w: key %T", ir.ErrInvalidKeyType, k)
	}
	if err := ir.CheckStringLen(len(s)); err != nil {
		return "", err
	}
	return s, nil
}

// ToNative converts a value tree to plain Go data for JSON-oriented
// consumers. Raw-scalar wrappers unwrap; numerics come back as their
// canonical text. Trees nested deeper than ir.MaxDepth fail with
// ErrStackDepth.
func ToNative(v *ir.Value) (any, error) {
	return toNative(v, 0)
}

func toNative(v *ir.Value, depth int) (any, error) {
	if err := ir.CheckDepth(depth); err != nil {
		return nil, err
	}
	if s, ok := ir.ExtractScalar(v); ok {
		return scalarNative(s), nil
	}
	switch v.Kind {
	case ir.ArrayKind:
		res := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			n, err := toNative(e, depth+1)
			if err != nil {
				return nil, err
			}
			res[i] = n
		}
		return res, nil
	case ir.ObjectKind, ir.VertexKind, ir.EdgeKind:
		res := make(map[string]any, len(v.Keys))
		for i := range v.Keys {
			k := v.Keys[i].Str
			if _, dup := res[k]; dup {
				continue
			}
			n, err := toNative(v.Vals[i], depth+1)
			if err != nil {
				return nil, err
			}
			res[k] = n
		}
		return res, nil
	default:
		return scalarNative(v), nil
	}
}

func scalarNative(v *ir.Value) any {
	switch v.Kind {
	case ir.NullKind:
		return nil
	case ir.BoolKind:
		return v.Bool
	case ir.IntegerKind:
		return v.Int64
	case ir.FloatKind:
		return v.Float64
	case ir.NumericKind:
		return v.Numeric.Text('f')
	case ir.StringKind:
		return v.Str
	}
	return nil
}

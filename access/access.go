// Package access implements member, index, slice and containment
// operations over value trees. Operations that select a missing element
// return (nil, nil); the null result is the caller's to interpret.
package access

import (
	"fmt"

	"github.com/gram-format/go-gram/ir"
)

// Member selects the value under a string key. The base unwraps through
// the raw-scalar wrapper; vertex and edge bases select within their
// properties. A null key yields null; a non-string key is an error.
func Member(base, key *ir.Value) (*ir.Value, error) {
	if base == nil || key == nil {
		return nil, nil
	}
	if k, ok := ir.ExtractScalar(key); ok {
		key = k
	}
	switch key.Kind {
	case ir.NullKind:
		return nil, nil
	case ir.StringKind:
	default:
		return nil, fmt.Errorf("%w: object access with %v key", ir.ErrTypeMismatch, key.Kind)
	}
	obj := objectBase(base)
	if obj == nil {
		return nil, nil
	}
	return ir.Get(obj, key.Str), nil
}

// Field selects by a bare key name.
func Field(base *ir.Value, name string) (*ir.Value, error) {
	k, err := ir.FromString(name)
	if err != nil {
		return nil, err
	}
	return Member(base, k)
}

// objectBase resolves the object an access applies to: objects directly,
// composites through their properties.
func objectBase(v *ir.Value) *ir.Value {
	switch v.Kind {
	case ir.ObjectKind:
		return v
	case ir.VertexKind, ir.EdgeKind:
		return ir.Properties(v)
	}
	return nil
}

// Index selects an array element. Negative indices count from the end;
// out-of-range selection is null. A null index is null; a non-integer
// index is an error.
func Index(base, idx *ir.Value) (*ir.Value, error) {
	if base == nil || idx == nil {
		return nil, nil
	}
	if i, ok := ir.ExtractScalar(idx); ok {
		idx = i
	}
	switch idx.Kind {
	case ir.NullKind:
		return nil, nil
	case ir.IntegerKind:
	default:
		return nil, fmt.Errorf("%w: array access with %v index", ir.ErrTypeMismatch, idx.Kind)
	}
	if base.Kind != ir.ArrayKind {
		return nil, nil
	}
	i := idx.Int64
	size := int64(len(base.Elems))
	if i < 0 {
		i = size + i
	}
	if i < 0 || i >= size {
		return nil, nil
	}
	return base.Elems[i], nil
}

// Path applies a chain of member and index steps, stopping at the first
// null intermediate.
func Path(base *ir.Value, steps ...*ir.Value) (*ir.Value, error) {
	cur := base
	for _, step := range steps {
		if cur == nil {
			return nil, nil
		}
		s := step
		if x, ok := ir.ExtractScalar(s); ok {
			s = x
		}
		var err error
		switch s.Kind {
		case ir.StringKind:
			cur, err = Member(cur, s)
		case ir.IntegerKind, ir.NullKind:
			cur, err = Index(cur, s)
		default:
			return nil, fmt.Errorf("%w: path step of kind %v", ir.ErrTypeMismatch, s.Kind)
		}
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// Slice selects base[lo:hi] as a well-formed array. A null bound defaults
// to the respective end, but at least one bound must be given. Negative
// bounds wrap once, then clamp to the array.
func Slice(base, lo, hi *ir.Value) (*ir.Value, error) {
	if base == nil {
		return nil, nil
	}
	if base.Kind != ir.ArrayKind || base.RawScalar {
		return nil, fmt.Errorf("%w: slice of %v", ir.ErrTypeMismatch, base.Kind)
	}
	loNull, loIdx, err := sliceBound(lo)
	if err != nil {
		return nil, err
	}
	hiNull, hiIdx, err := sliceBound(hi)
	if err != nil {
		return nil, err
	}
	if loNull && hiNull {
		return nil, fmt.Errorf("%w: slice must have at least one bound", ir.ErrTypeMismatch)
	}
	size := int64(len(base.Elems))
	if loNull {
		loIdx = 0
	}
	if hiNull {
		hiIdx = size
	}
	loIdx = clampBound(loIdx, size)
	hiIdx = clampBound(hiIdx, size)
	res := &ir.Value{Kind: ir.ArrayKind}
	for i := loIdx; i < hiIdx; i++ {
		res.Elems = append(res.Elems, base.Elems[i])
	}
	return res, nil
}

func sliceBound(v *ir.Value) (null bool, idx int64, err error) {
	if v == nil {
		return true, 0, nil
	}
	if s, ok := ir.ExtractScalar(v); ok {
		v = s
	}
	switch v.Kind {
	case ir.NullKind:
		return true, 0, nil
	case ir.IntegerKind:
		return false, v.Int64, nil
	}
	return false, 0, fmt.Errorf("%w: slice bound of kind %v", ir.ErrTypeMismatch, v.Kind)
}

func clampBound(i, size int64) int64 {
	if i < 0 {
		i = size + i
	}
	if i < 0 {
		return 0
	}
	if i > size {
		return size
	}
	return i
}

// In reports whether item occurs in arr. A null array or item yields the
// null result; a non-array left operand is an error. Scalars match only
// scalars of the same kind; containers match by full comparison.
func In(item, arr *ir.Value) (*ir.Value, error) {
	if item == nil || arr == nil {
		return nil, nil
	}
	if s, ok := ir.ExtractScalar(arr); ok {
		if s.Kind == ir.NullKind {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: object of IN must be a list", ir.ErrTypeMismatch)
	}
	if arr.Kind != ir.ArrayKind {
		return nil, fmt.Errorf("%w: object of IN must be a list", ir.ErrTypeMismatch)
	}
	needle := item
	if s, ok := ir.ExtractScalar(needle); ok {
		needle = s
	}
	if needle.Kind == ir.NullKind {
		return nil, nil
	}
	for _, e := range arr.Elems {
		if e.Kind != needle.Kind {
			continue
		}
		c, err := ir.Compare(needle, e)
		if err != nil {
			return nil, err
		}
		if c == 0 {
			return ir.FromBool(true), nil
		}
	}
	return ir.FromBool(false), nil
}

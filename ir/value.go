package ir

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// MaxStringLen is the largest string the wire encoding can address. Entry
// words reserve 28 bits for offsets and lengths.
const MaxStringLen = 1<<28 - 1

// Value is a node in a gram value tree, discriminated by Kind.
//
// Object-shaped values (Object, Vertex, Edge) keep their pairs in the
// parallel Keys/Vals slices in insertion order. Keys are always StringKind.
// Duplicate keys are retained; lookups take the first match.
type Value struct {
	Kind Kind

	Bool    bool
	Int64   int64
	Float64 float64
	Numeric *apd.Decimal
	Str     string

	// RawScalar marks an Array that is a synthetic one-element wrapper
	// around a root scalar, so a bare scalar document and a true
	// one-element array stay distinguishable on the wire.
	RawScalar bool
	Elems     []*Value

	Keys []*Value
	Vals []*Value
}

func Null() *Value {
	return &Value{Kind: NullKind}
}

func FromBool(b bool) *Value {
	return &Value{Kind: BoolKind, Bool: b}
}

func FromInt(i int64) *Value {
	return &Value{Kind: IntegerKind, Int64: i}
}

func FromFloat(f float64) *Value {
	return &Value{Kind: FloatKind, Float64: f}
}

func FromNumeric(d *apd.Decimal) *Value {
	return &Value{Kind: NumericKind, Numeric: d}
}

func FromString(s string) (*Value, error) {
	if err := CheckStringLen(len(s)); err != nil {
		return nil, err
	}
	return &Value{Kind: StringKind, Str: s}, nil
}

// MustString is FromString for strings known to be within bounds, such as
// fixed field names.
func MustString(s string) *Value {
	v, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func CheckStringLen(n int) error {
	if n > MaxStringLen {
		return fmt.Errorf("%w: string of %d bytes cannot be represented (limit %d)",
			ErrValueTooLarge, n, MaxStringLen)
	}
	return nil
}

func FromSlice(elems ...*Value) *Value {
	return &Value{Kind: ArrayKind, Elems: elems}
}

// RawScalarArray wraps a single root scalar in the synthetic one-element
// array used for top-level scalars.
func RawScalarArray(scalar *Value) *Value {
	return &Value{Kind: ArrayKind, RawScalar: true, Elems: []*Value{scalar}}
}

// ExtractScalar unwraps a raw-scalar pseudo-array. The second result is
// false when v is not such a wrapper.
func ExtractScalar(v *Value) (*Value, bool) {
	if v == nil || v.Kind != ArrayKind || !v.RawScalar || len(v.Elems) != 1 {
		return nil, false
	}
	return v.Elems[0], true
}

// Scalar returns v itself for scalar kinds and the wrapped scalar for a
// raw-scalar array; ok is false for true containers.
func Scalar(v *Value) (*Value, bool) {
	if v == nil {
		return nil, false
	}
	if v.Kind.IsScalar() {
		return v, true
	}
	return ExtractScalar(v)
}

type KeyVal struct {
	Key string
	Val *Value
}

func FromKeyVals(kvs ...KeyVal) *Value {
	res := &Value{Kind: ObjectKind}
	res.Keys = make([]*Value, len(kvs))
	res.Vals = make([]*Value, len(kvs))
	for i := range kvs {
		res.Keys[i] = MustString(kvs[i].Key)
		res.Vals[i] = kvs[i].Val
	}
	return res
}

func EmptyObject() *Value {
	return &Value{Kind: ObjectKind}
}

// Get returns the value of the first pair whose key equals field, or nil if
// v is not object-shaped or no pair matches. Later duplicates are ignored.
func Get(v *Value, field string) *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case ObjectKind, VertexKind, EdgeKind:
	default:
		return nil
	}
	for i := range v.Keys {
		if v.Keys[i].Str == field {
			return v.Vals[i]
		}
	}
	return nil
}

package ir

import (
	"bytes"
	"cmp"
	"math"

	"github.com/cockroachdb/apd/v3"
)

// Compare returns an integer comparing two values under the total order
// used for sorting, equality, and containment. The result is 0 if a==b,
// -1 if a < b, and +1 if a > b. A nil value sorts before everything.
// Trees nested deeper than MaxDepth fail with ErrStackDepth.
func Compare(a, b *Value) (int, error) {
	return compare(a, b, 0)
}

func compare(a, b *Value, depth int) (int, error) {
	if err := CheckDepth(depth); err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}
	if a == nil {
		return -1, nil
	}
	if b == nil {
		return 1, nil
	}

	rankA := rank(a.Kind)
	rankB := rank(b.Kind)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB), nil
	}

	switch a.Kind {
	case NullKind:
		return 0, nil
	case BoolKind:
		if a.Bool == b.Bool {
			return 0, nil
		}
		if !a.Bool {
			return -1, nil
		}
		return 1, nil
	case IntegerKind, FloatKind, NumericKind:
		return compareNumbers(a, b), nil
	case StringKind:
		return bytes.Compare([]byte(a.Str), []byte(b.Str)), nil
	case ArrayKind:
		return compareArrays(a, b, depth)
	case ObjectKind, VertexKind, EdgeKind:
		return compareObjects(a, b, depth)
	}
	panic("unknown kind in Compare")
}

// rank orders kinds across categories:
// Null < Bool < number family < String < Array < Object < Vertex < Edge.
func rank(k Kind) int {
	switch k {
	case NullKind:
		return 0
	case BoolKind:
		return 1
	case IntegerKind, FloatKind, NumericKind:
		return 2
	case StringKind:
		return 3
	case ArrayKind:
		return 4
	case ObjectKind:
		return 5
	case VertexKind:
		return 6
	case EdgeKind:
		return 7
	}
	return 100
}

// compareNumbers compares across the number family numerically, regardless
// of representation.
func compareNumbers(a, b *Value) int {
	if a.Kind == IntegerKind && b.Kind == IntegerKind {
		return cmp.Compare(a.Int64, b.Int64)
	}
	if a.Kind == FloatKind && b.Kind == FloatKind {
		return cmp.Compare(a.Float64, b.Float64)
	}
	da, aOK := decimalOf(a)
	db, bOK := decimalOf(b)
	if aOK && bOK {
		return da.Cmp(db)
	}
	// A non-finite float is involved; fall back to float comparison.
	return cmp.Compare(floatOf(a), floatOf(b))
}

func decimalOf(v *Value) (*apd.Decimal, bool) {
	switch v.Kind {
	case IntegerKind:
		return apd.New(v.Int64, 0), true
	case FloatKind:
		d, err := new(apd.Decimal).SetFloat64(v.Float64)
		if err != nil {
			return nil, false
		}
		return d, true
	case NumericKind:
		return v.Numeric, true
	}
	return nil, false
}

func floatOf(v *Value) float64 {
	switch v.Kind {
	case IntegerKind:
		return float64(v.Int64)
	case FloatKind:
		return v.Float64
	case NumericKind:
		f, err := v.Numeric.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	}
	return math.NaN()
}

func compareArrays(a, b *Value, depth int) (int, error) {
	lenA := len(a.Elems)
	lenB := len(b.Elems)
	for i := 0; i < min(lenA, lenB); i++ {
		c, err := compare(a.Elems[i], b.Elems[i], depth+1)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return cmp.Compare(lenA, lenB), nil
}

// compareObjects compares pairs in stored order, keys before values, then
// by pair count. Positional stability matters here: duplicate keys are
// retained and graph composites have a fixed field order.
func compareObjects(a, b *Value, depth int) (int, error) {
	lenA := len(a.Keys)
	lenB := len(b.Keys)
	for i := 0; i < min(lenA, lenB); i++ {
		c, err := compare(a.Keys[i], b.Keys[i], depth+1)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
		c, err = compare(a.Vals[i], b.Vals[i], depth+1)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return cmp.Compare(lenA, lenB), nil
}

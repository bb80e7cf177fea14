package wire

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/gram-format/go-gram/ir"
)

func mustString(t *testing.T, s string) *ir.Value {
	t.Helper()
	v, err := ir.FromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func sampleObject(t *testing.T) *ir.Value {
	t.Helper()
	return ir.FromKeyVals(
		ir.KeyVal{Key: "name", Val: mustString(t, "n1")},
		ir.KeyVal{Key: "on", Val: ir.FromBool(true)},
		ir.KeyVal{Key: "count", Val: ir.FromInt(7)},
		ir.KeyVal{Key: "ratio", Val: ir.FromFloat(2.5)},
		ir.KeyVal{Key: "exact", Val: ir.FromNumeric(apd.New(314, -2))},
		ir.KeyVal{Key: "none", Val: ir.Null()},
		ir.KeyVal{Key: "tags", Val: ir.FromSlice(ir.FromInt(1), ir.FromInt(2))},
	)
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name string
		v    *ir.Value
	}{
		{"empty array", ir.FromSlice()},
		{"empty object", ir.EmptyObject()},
		{"flat array", ir.FromSlice(ir.FromInt(1), ir.Null(), ir.FromBool(false))},
		{"object", nil}, // filled in below from sampleObject
		{"nested", ir.FromSlice(
			ir.FromSlice(ir.FromInt(1)),
			ir.FromKeyVals(ir.KeyVal{Key: "a", Val: ir.FromSlice()}),
		)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.v
			if v == nil {
				v = sampleObject(t)
			}
			c, err := Encode(v)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Decode(c)
			if err != nil {
				t.Fatal(err)
			}
			if c, err := ir.Compare(got, v); err != nil || c != 0 {
				t.Fatalf("round trip changed value: got %v want %v (err %v)", got.Kind, v.Kind, err)
			}
		})
	}
}

func TestRoundTripRawScalar(t *testing.T) {
	c, err := Encode(ir.FromInt(42))
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsScalar() {
		t.Fatal("scalar flag not set")
	}
	got, err := Decode(c)
	if err != nil {
		t.Fatal(err)
	}
	if !got.RawScalar || len(got.Elems) != 1 {
		t.Fatalf("expected raw-scalar wrapper, got %v", got.Kind)
	}
	if got.Elems[0].Int64 != 42 {
		t.Fatalf("got %d", got.Elems[0].Int64)
	}
}

func TestIndex(t *testing.T) {
	c, err := Encode(ir.FromSlice(ir.FromInt(10), ir.FromInt(20), ir.FromInt(30)))
	if err != nil {
		t.Fatal(err)
	}
	v, err := c.Index(1)
	if err != nil {
		t.Fatal(err)
	}
	if v.Int64 != 20 {
		t.Fatalf("got %d", v.Int64)
	}
	for _, i := range []int{-1, 3} {
		v, err := c.Index(i)
		if err != nil || v != nil {
			t.Fatalf("index %d: got %v, %v", i, v, err)
		}
	}
}

func TestField(t *testing.T) {
	c, err := Encode(sampleObject(t))
	if err != nil {
		t.Fatal(err)
	}
	v, err := c.Field("count")
	if err != nil {
		t.Fatal(err)
	}
	if v.Int64 != 7 {
		t.Fatalf("got %d", v.Int64)
	}
	v, err = c.Field("missing")
	if err != nil || v != nil {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestFieldFirstMatch(t *testing.T) {
	dup := ir.FromKeyVals(
		ir.KeyVal{Key: "k", Val: ir.FromInt(1)},
		ir.KeyVal{Key: "k", Val: ir.FromInt(2)},
	)
	c, err := Encode(dup)
	if err != nil {
		t.Fatal(err)
	}
	v, err := c.Field("k")
	if err != nil {
		t.Fatal(err)
	}
	if v.Int64 != 1 {
		t.Fatalf("duplicate key lookup returned %d", v.Int64)
	}
}

func TestCompareContainers(t *testing.T) {
	enc := func(v *ir.Value) Container {
		c, err := Encode(v)
		if err != nil {
			t.Fatal(err)
		}
		return c
	}
	for _, tc := range []struct {
		name string
		a, b *ir.Value
		want int
	}{
		{"equal arrays", ir.FromSlice(ir.FromInt(1)), ir.FromSlice(ir.FromInt(1)), 0},
		{"shorter first", ir.FromSlice(ir.FromInt(1)), ir.FromSlice(ir.FromInt(1), ir.FromInt(2)), -1},
		{"element order", ir.FromSlice(ir.FromInt(1)), ir.FromSlice(ir.FromInt(2)), -1},
		{"int vs float", ir.FromSlice(ir.FromInt(2)), ir.FromSlice(ir.FromFloat(2.0)), 0},
		{"key order", ir.FromKeyVals(ir.KeyVal{Key: "a", Val: ir.Null()}),
			ir.FromKeyVals(ir.KeyVal{Key: "b", Val: ir.Null()}), -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CompareContainers(enc(tc.a), enc(tc.b))
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}

func TestEncodeDepthGuard(t *testing.T) {
	v := ir.FromSlice()
	for i := 0; i < ir.MaxDepth+2; i++ {
		v = ir.FromSlice(v)
	}
	if _, err := Encode(v); err == nil {
		t.Fatal("expected depth error")
	}
}

func TestFromBytesRejectsGarbage(t *testing.T) {
	if _, err := FromBytes(nil); err == nil {
		t.Fatal("expected error")
	}
	if _, err := FromBytes([]byte{0, 0, 0, 0}); err == nil {
		t.Fatal("expected error")
	}
}

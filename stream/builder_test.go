package stream

import (
	"errors"
	"testing"

	"github.com/gram-format/go-gram/ir"
)

func TestBuilderObject(t *testing.T) {
	b := NewBuilder()
	b.BeginObject()
	b.Key("a")
	b.Scalar(ir.FromInt(1))
	b.Key("b")
	b.BeginArray()
	b.Scalar(ir.FromBool(true))
	b.Scalar(ir.Null())
	b.EndArray()
	b.EndObject()

	v := b.Result()
	if v.Kind != ir.ObjectKind || len(v.Keys) != 2 {
		t.Fatalf("result = %v, want object of two pairs", v)
	}
	if got := ir.Get(v, "a"); got == nil || got.Int64 != 1 {
		t.Errorf("a = %v, want 1", got)
	}
	arr := ir.Get(v, "b")
	if arr == nil || arr.Kind != ir.ArrayKind || len(arr.Elems) != 2 {
		t.Fatalf("b = %v, want two-element array", arr)
	}
	if arr.RawScalar {
		t.Error("nested array must not carry the raw-scalar mark")
	}
	if arr.Elems[1].Kind != ir.NullKind {
		t.Errorf("b[1] = %v, want null", arr.Elems[1])
	}
}

func TestBuilderBareScalar(t *testing.T) {
	b := NewBuilder()
	b.Scalar(ir.MustString("solo"))

	v := b.Result()
	s, ok := ir.ExtractScalar(v)
	if !ok {
		t.Fatalf("result = %v, want raw-scalar wrapper", v)
	}
	if s.Str != "solo" {
		t.Errorf("wrapped scalar = %v, want \"solo\"", s)
	}
}

func TestBuilderComposite(t *testing.T) {
	b := NewBuilder()
	b.Push(Event{Type: EventBeginObject, Composite: ir.VertexKind})
	b.Key("id")
	b.Scalar(ir.FromInt(1))
	b.Key("label")
	b.Scalar(ir.MustString("Person"))
	b.Key("properties")
	b.BeginObject()
	b.EndObject()
	b.Push(Event{Type: EventEndObject, Composite: ir.VertexKind})

	v := b.Result()
	if v.Kind != ir.VertexKind {
		t.Errorf("kind = %v, want Vertex", v.Kind)
	}
	if p := ir.Properties(v); p == nil || p.Kind != ir.ObjectKind {
		t.Errorf("properties = %v, want object", p)
	}
}

func TestEmitRoundTrip(t *testing.T) {
	vertex, err := ir.NewVertex(ir.FromInt(5), ir.MustString("City"), nil)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		v    *ir.Value
	}{
		{"object", ir.FromKeyVals(
			ir.KeyVal{Key: "n", Val: ir.FromFloat(2.5)},
			ir.KeyVal{Key: "l", Val: ir.FromSlice(ir.FromInt(1), ir.MustString("x"))},
		)},
		{"empty array", ir.FromSlice()},
		{"vertex", vertex},
		{"duplicate keys", ir.FromKeyVals(
			ir.KeyVal{Key: "k", Val: ir.FromInt(1)},
			ir.KeyVal{Key: "k", Val: ir.FromInt(2)},
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			if err := Emit(b, tt.v); err != nil {
				t.Fatal(err)
			}
			got := b.Result()
			if c, err := ir.Compare(got, tt.v); err != nil || c != 0 {
				t.Errorf("round trip changed value: got %v, want %v (err %v)", got, tt.v, err)
			}
			if got.Kind != tt.v.Kind {
				t.Errorf("kind = %v, want %v", got.Kind, tt.v.Kind)
			}
		})
	}
}

func TestEmitPreservesRawScalar(t *testing.T) {
	b := NewBuilder()
	if err := Emit(b, ir.RawScalarArray(ir.FromInt(3))); err != nil {
		t.Fatal(err)
	}
	v := b.Result()
	if s, ok := ir.ExtractScalar(v); !ok || s.Int64 != 3 {
		t.Errorf("result = %v, want raw-scalar wrapper around 3", v)
	}
}

func TestEmitDepthGuard(t *testing.T) {
	deep := ir.FromInt(1)
	for i := 0; i < ir.MaxDepth+10; i++ {
		deep = ir.FromSlice(deep)
	}
	b := NewBuilder()
	if err := Emit(b, deep); !errors.Is(err, ir.ErrStackDepth) {
		t.Errorf("err = %v, want ErrStackDepth", err)
	}
}

func TestReplayUnwrapsIntoContainer(t *testing.T) {
	b := NewBuilder()
	b.BeginArray()
	if err := Replay(b, ir.RawScalarArray(ir.FromInt(9))); err != nil {
		t.Fatal(err)
	}
	b.EndArray()

	v := b.Result()
	if len(v.Elems) != 1 || v.Elems[0].Kind != ir.IntegerKind {
		t.Fatalf("result = %v, want [9]", v)
	}
}

func TestReplayAtTopLevelKeepsWrapper(t *testing.T) {
	b := NewBuilder()
	if err := Replay(b, ir.RawScalarArray(ir.FromInt(9))); err != nil {
		t.Fatal(err)
	}
	v := b.Result()
	if _, ok := ir.ExtractScalar(v); !ok {
		t.Errorf("result = %v, want raw-scalar wrapper", v)
	}
}

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

func TestBuilderPanicsOnMisuse(t *testing.T) {
	mustPanic(t, "key at top level", func() {
		NewBuilder().Key("k")
	})
	mustPanic(t, "value in object with no key", func() {
		b := NewBuilder()
		b.BeginObject()
		b.Scalar(ir.FromInt(1))
	})
	mustPanic(t, "event after completed document", func() {
		b := NewBuilder()
		b.Scalar(ir.FromInt(1))
		b.Scalar(ir.FromInt(2))
	})
	mustPanic(t, "result before complete", func() {
		b := NewBuilder()
		b.BeginArray()
		b.Result()
	})
}

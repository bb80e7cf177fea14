package coerce

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/gram-format/go-gram/encode"
	"github.com/gram-format/go-gram/ir"
)

func testCategorizer() MapCategorizer {
	return MapCategorizer{
		"bool":    {Category: Bool},
		"int8":    {Category: Integer},
		"float8":  {Category: Float},
		"numeric": {Category: Decimal},
		"text":    {Category: Other, Stringifier: textOut},
		"date": {Category: Date, Stringifier: func(v any) (string, error) {
			return v.(time.Time).Format("2006-01-02"), nil
		}},
		"timestamptz": {Category: TimestampTZ, Stringifier: func(v any) (string, error) {
			return v.(time.Time).Format(time.RFC3339), nil
		}},
		"json":  {Category: JSONText},
		"yaml":  {Category: YAMLText},
		"gram":  {Category: Document},
		"_int8": {Category: Array},
		"row":   {Category: RecordCategory},
		"point": {Category: JSONCast, Stringifier: func(v any) (string, error) {
			p := v.([2]float64)
			return fmt.Sprintf(`{"x": %g, "y": %g}`, p[0], p[1]), nil
		}},
		"opaque": {Category: Other},
	}
}

func textOut(v any) (string, error) {
	return v.(string), nil
}

func fmtValue(t *testing.T, v *ir.Value) string {
	t.Helper()
	s, err := encode.FormatValue(v)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestToValueScalars(t *testing.T) {
	cat := testCategorizer()
	day := time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		name string
		d    Datum
		want string
	}{
		{"null flag", Datum{Type: "int8", Null: true}, "null"},
		{"bool", Datum{Type: "bool", Value: true}, "true"},
		{"int", Datum{Type: "int8", Value: int64(-3)}, "-3"},
		{"float", Datum{Type: "float8", Value: 2.5}, "2.5"},
		{"numeric", Datum{Type: "numeric", Value: apd.New(25, -1)}, "2.5::numeric"},
		{"numeric text", Datum{Type: "numeric", Value: "3.14"}, "3.14::numeric"},
		{"numeric nan", Datum{Type: "numeric", Value: "NaN"}, `"NaN"`},
		{"text", Datum{Type: "text", Value: "hi"}, `"hi"`},
		{"date", Datum{Type: "date", Value: day}, `"2023-04-05"`},
		{"json doc", Datum{Type: "json", Value: `{"a": [1]}`}, `{"a": [1]}`},
		{"json scalar", Datum{Type: "json", Value: "7"}, "7"},
		{"yaml", Datum{Type: "yaml", Value: "b: 1\na: 2\n"}, `{"b": 1, "a": 2}`},
		{"json cast", Datum{Type: "point", Value: [2]float64{1, 2}}, `{"x": 1, "y": 2}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ToValue(cat, tc.d)
			if err != nil {
				t.Fatal(err)
			}
			if got := fmtValue(t, v); got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestToValueErrors(t *testing.T) {
	cat := testCategorizer()
	for _, tc := range []struct {
		name string
		d    Datum
	}{
		{"bad payload", Datum{Type: "bool", Value: "yes"}},
		{"no stringifier", Datum{Type: "opaque", Value: struct{}{}}},
		{"bad nested json", Datum{Type: "json", Value: "{"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ToValue(cat, tc.d); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestArrayShapes(t *testing.T) {
	cat := testCategorizer()
	for _, tc := range []struct {
		name  string
		shape ArrayShape
		want  string
	}{
		{"empty", ArrayShape{Elem: "int8"}, "[]"},
		{"flat", ArrayShape{
			Dims: []int{3}, Elem: "int8",
			Elems: []any{int64(1), int64(2), int64(3)},
		}, "[1, 2, 3]"},
		{"nulls", ArrayShape{
			Dims: []int{2}, Elem: "int8",
			Elems: []any{int64(1), nil},
			Nulls: []bool{false, true},
		}, "[1, null]"},
		{"two dims", ArrayShape{
			Dims: []int{2, 2}, Elem: "int8",
			Elems: []any{int64(1), int64(2), int64(3), int64(4)},
		}, "[[1, 2], [3, 4]]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ToValue(cat, Datum{Type: "_int8", Value: tc.shape})
			if err != nil {
				t.Fatal(err)
			}
			if got := fmtValue(t, v); got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestRecordSkipsDropped(t *testing.T) {
	cat := testCategorizer()
	rec := Record{
		Fields: []Field{
			{Name: "a", Type: "int8"},
			{Name: "gone", Type: "int8", Dropped: true},
			{Name: "b", Type: "text"},
		},
		Values: []any{int64(1), int64(9), "x"},
		Nulls:  []bool{false, false, false},
	}
	v, err := ToValue(cat, Datum{Type: "row", Value: rec})
	if err != nil {
		t.Fatal(err)
	}
	if got := fmtValue(t, v); got != `{"a": 1, "b": "x"}` {
		t.Fatalf("got %s", got)
	}
}

func TestRecordShapeMismatch(t *testing.T) {
	cat := testCategorizer()
	tests := []struct {
		name string
		rec  Record
	}{
		{"short values", Record{
			Fields: []Field{{Name: "a", Type: "int8"}, {Name: "b", Type: "text"}},
			Values: []any{int64(1)},
		}},
		{"short nulls", Record{
			Fields: []Field{{Name: "a", Type: "int8"}, {Name: "b", Type: "text"}},
			Values: []any{int64(1), "x"},
			Nulls:  []bool{false},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToValue(cat, Datum{Type: "row", Value: tt.rec})
			if !errors.Is(err, ir.ErrTypeMismatch) {
				t.Fatalf("got %v, want ErrTypeMismatch", err)
			}
		})
	}
}

func TestToNativeDepthGuard(t *testing.T) {
	deep := ir.FromInt(1)
	for i := 0; i < ir.MaxDepth+10; i++ {
		deep = ir.FromSlice(deep)
	}
	if _, err := ToNative(deep); !errors.Is(err, ir.ErrStackDepth) {
		t.Fatalf("got %v, want ErrStackDepth", err)
	}
}

func TestBuildList(t *testing.T) {
	cat := testCategorizer()
	v, err := BuildList(cat, []Datum{
		{Type: "int8", Value: int64(1)},
		{Type: "text", Value: "a"},
		{Type: "json", Value: "[2, 3]"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := fmtValue(t, v); got != `[1, "a", [2, 3]]` {
		t.Fatalf("got %s", got)
	}
	empty, err := BuildList(cat, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := fmtValue(t, empty); got != "[]" {
		t.Fatalf("got %s", got)
	}
}

func TestBuildMap(t *testing.T) {
	cat := testCategorizer()
	v, err := BuildMap(cat, []Datum{
		{Type: "text", Value: "s"}, {Type: "int8", Value: int64(1)},
		{Type: "int8", Value: int64(2)}, {Type: "bool", Value: true},
		{Type: "float8", Value: 3.0}, {Type: "text", Value: "f"},
		{Type: "numeric", Value: apd.New(15, -1)}, {Type: "text", Value: "n"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"s": 1, "2": true, "3.0": "f", "1.5": "n"}`
	if got := fmtValue(t, v); got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestBuildMapErrors(t *testing.T) {
	cat := testCategorizer()
	if _, err := BuildMap(cat, []Datum{{Type: "text", Value: "odd"}}); err == nil {
		t.Fatal("expected error on odd argument count")
	}
	_, err := BuildMap(cat, []Datum{
		{Type: "text", Null: true}, {Type: "int8", Value: int64(1)},
	})
	if !errors.Is(err, ir.ErrInvalidKeyType) {
		t.Fatalf("got %v", err)
	}
	_, err = BuildMap(cat, []Datum{
		{Type: "json", Value: "[1]"}, {Type: "int8", Value: int64(1)},
	})
	if !errors.Is(err, ir.ErrInvalidKeyType) {
		t.Fatalf("got %v", err)
	}
}

func TestNativeRoundTrip(t *testing.T) {
	v, err := FromNative(map[string]any{
		"a": []any{int64(1), 2.5, nil},
		"b": "x",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := fmtValue(t, v); got != `{"a": [1, 2.5, null], "b": "x"}` {
		t.Fatalf("got %s", got)
	}
	back, err := ToNative(v)
	if err != nil {
		t.Fatal(err)
	}
	m, ok := back.(map[string]any)
	if !ok {
		t.Fatalf("got %T", back)
	}
	if m["b"] != "x" {
		t.Fatalf("got %v", m["b"])
	}
}

package encode

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/gram-format/go-gram/ir"
	"github.com/gram-format/go-gram/parse"
	"github.com/gram-format/go-gram/wire"
	"github.com/sebdah/goldie/v2"
)

func format(t *testing.T, in string, opts ...EncodeOption) string {
	t.Helper()
	v, err := parse.Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	c, err := wire.Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	s, err := Format(c, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFormatCompact(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"null", "null"},
		{"true", "true"},
		{"-3", "-3"},
		{"2.5", "2.5"},
		{`"a\nb"`, `"a\nb"`},
		{"[]", "[]"},
		{"{}", "{}"},
		{"1::numeric", "1::numeric"},
		{"2.5::numeric", "2.5::numeric"},
		{`[1, "a", {"b": 2.5::numeric}]`, `[1, "a", {"b": 2.5::numeric}]`},
		{`{"a":1,"a":2}`, `{"a": 1, "a": 2}`},
		{"[[],[[]]]", "[[], [[]]]"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			if got := format(t, tc.in); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestFloatRendering(t *testing.T) {
	for _, tc := range []struct {
		v    *ir.Value
		want string
	}{
		{ir.FromFloat(1), "1.0"},
		{ir.FromFloat(-3), "-3.0"},
		{ir.FromFloat(2.5), "2.5"},
		{ir.FromFloat(1e21), "1e+21"},
		{ir.FromFloat(1e-7), "1e-07"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			got, err := FormatValue(tc.v)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestFormatComposite(t *testing.T) {
	props := ir.FromKeyVals(ir.KeyVal{Key: "name", Val: mustStr(t, "n")})
	vx, err := ir.NewVertex(ir.FromInt(1), mustStr(t, "Person"), props)
	if err != nil {
		t.Fatal(err)
	}
	got, err := FormatValue(vx)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id": 1, "label": "Person", "properties": {"name": "n"}}::vertex`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatNumericValue(t *testing.T) {
	got, err := FormatValue(ir.FromNumeric(apd.New(314, -2)))
	if err != nil {
		t.Fatal(err)
	}
	if got != "3.14::numeric" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatIndent(t *testing.T) {
	g := goldie.New(t)
	for _, tc := range []struct {
		name, in string
	}{
		{"object", `{"a": [1, 2], "b": null, "c": {"d": true}}`},
		{"array", `[1, [2, 3], {}]`},
		{"scalar", "7"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g.Assert(t, "indent_"+tc.name, []byte(format(t, tc.in, WithIndent())))
		})
	}
}

func mustStr(t *testing.T, s string) *ir.Value {
	t.Helper()
	v, err := ir.FromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

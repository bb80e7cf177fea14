// Package gram is a semi-structured value engine: documents of nulls,
// booleans, 64-bit integers, floats, arbitrary-precision numerics, strings,
// arrays, objects and graph composites, with a text form, a binary
// container form and ordering, access and containment operations.
package gram

import (
	"github.com/gram-format/go-gram/debug"
	"github.com/gram-format/go-gram/encode"
	"github.com/gram-format/go-gram/ir"
	"github.com/gram-format/go-gram/parse"
	"github.com/gram-format/go-gram/wire"
)

// Parse reads one text document into a value tree.
func Parse(d []byte) (*ir.Value, error) {
	return parse.Parse(d)
}

// Compile parses a text document straight to its binary container.
func Compile(d []byte) (wire.Container, error) {
	v, err := parse.Parse(d)
	if err != nil {
		return wire.Container{}, err
	}
	return wire.Encode(v)
}

// Format renders a container as text.
func Format(c wire.Container, opts ...encode.EncodeOption) (string, error) {
	return encode.Format(c, opts...)
}

// FormatValue renders a value tree as text.
func FormatValue(v *ir.Value, opts ...encode.EncodeOption) (string, error) {
	return encode.FormatValue(v, opts...)
}

// Equal reports whether two values compare equal under the engine order.
func Equal(a, b *ir.Value) (bool, error) {
	c, err := ir.Compare(a, b)
	if err != nil {
		return false, err
	}
	if debug.Compare() {
		debug.Logf("compare: %d\n", c)
	}
	return c == 0, nil
}

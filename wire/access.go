package wire

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/gram-format/go-gram/ir"
)

func parseDecimal(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	return d, err
}

// Index returns the i'th element of an array container without touching
// its siblings. Out-of-range indices yield (nil, nil).
func (c Container) Index(i int) (*ir.Value, error) {
	if !c.IsArray() {
		return nil, fmt.Errorf("%w: index on %v container", ir.ErrTypeMismatch, c.Kind())
	}
	if i < 0 || i >= c.Count() {
		return nil, nil
	}
	e, err := c.entry(i)
	if err != nil {
		return nil, err
	}
	return c.childValue(e)
}

// Field returns the value under the first pair whose key equals name, or
// (nil, nil) when no pair matches. Later duplicates are never consulted.
func (c Container) Field(name string) (*ir.Value, error) {
	if !c.IsObject() {
		return nil, fmt.Errorf("%w: field on %v container", ir.ErrTypeMismatch, c.Kind())
	}
	want := []byte(name)
	for i := 0; i < c.Count(); i++ {
		e, err := c.entry(2 * i)
		if err != nil {
			return nil, err
		}
		if entryType(e) != tString {
			return nil, fmt.Errorf("%w: non-string key entry", ErrCorrupt)
		}
		b, err := c.varBytesAt(entryOffset(e))
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(b, want) {
			continue
		}
		ve, err := c.entry(2*i + 1)
		if err != nil {
			return nil, err
		}
		return c.childValue(ve)
	}
	return nil, nil
}

func (c Container) childValue(e uint32) (*ir.Value, error) {
	if entryType(e) == tContainer {
		sub, err := c.childAt(e)
		if err != nil {
			return nil, err
		}
		return Decode(sub)
	}
	return decodeScalar(c, e)
}

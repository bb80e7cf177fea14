// Package coerce converts externally typed data into value trees. Callers
// describe their types with a Categorizer and hand in Datum payloads; the
// conversion drives a stream.Builder so nested documents splice in place.
package coerce

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/gram-format/go-gram/debug"
	"github.com/gram-format/go-gram/encode"
	"github.com/gram-format/go-gram/ir"
	"github.com/gram-format/go-gram/parse"
	"github.com/gram-format/go-gram/stream"
)

// TypeID names an external type. IDs are opaque here; the Categorizer
// gives them meaning.
type TypeID string

type Category int

const (
	Other Category = iota
	Null
	Bool
	Integer
	Float
	Decimal
	Date
	Timestamp
	TimestampTZ
	Document
	JSONText
	YAMLText
	Array
	RecordCategory
	JSONCast
)

// Stringifier renders an external payload as text, standing in for the
// type's output function.
type Stringifier func(any) (string, error)

type Categorizer interface {
	Categorize(t TypeID) (Category, Stringifier)
}

// MapCategorizer is a table-backed Categorizer.
type MapCategorizer map[TypeID]CatEntry

type CatEntry struct {
	Category    Category
	Stringifier Stringifier
}

func (m MapCategorizer) Categorize(t TypeID) (Category, Stringifier) {
	e := m[t]
	return e.Category, e.Stringifier
}

// Datum is one externally typed value.
type Datum struct {
	Type  TypeID
	Value any
	Null  bool
}

// ArrayShape describes a possibly multidimensional external array with a
// single element type. Elems holds the elements flattened in row-major
// order; Nulls, when non-nil, parallels Elems.
type ArrayShape struct {
	Dims  []int
	Elem  TypeID
	Elems []any
	Nulls []bool
}

type Field struct {
	Name    string
	Type    TypeID
	Dropped bool
}

// Record describes an external row in declared field order.
type Record struct {
	Fields []Field
	Values []any
	Nulls  []bool
}

// ToValue converts one datum to a value tree. Scalar results come back in
// the raw-scalar wrapper.
func ToValue(cat Categorizer, d Datum) (*ir.Value, error) {
	b := stream.NewBuilder()
	c := &conv{cat: cat, b: b}
	if err := c.datum(d, 0); err != nil {
		return nil, err
	}
	v := b.Result()
	if debug.Coerce() {
		if n, err := ToNative(v); err == nil {
			debug.Logf("coerced %q: ", d.Type)
			debug.LogAny(n)
		}
	}
	return v, nil
}

// BuildList converts the elements to an array in order. No elements yield
// the well-formed empty array.
func BuildList(cat Categorizer, elems []Datum) (*ir.Value, error) {
	b := stream.NewBuilder()
	c := &conv{cat: cat, b: b}
	b.BeginArray()
	for _, d := range elems {
		if err := c.datum(d, 1); err != nil {
			return nil, err
		}
	}
	b.EndArray()
	return b.Result(), nil
}

// BuildMap converts alternating key and value datums to an object. Keys
// are stringified scalars and must not be null.
func BuildMap(cat Categorizer, pairs []Datum) (*ir.Value, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("%w: map needs an even number of arguments, got %d",
			ir.ErrTypeMismatch, len(pairs))
	}
	b := stream.NewBuilder()
	c := &conv{cat: cat, b: b}
	b.BeginObject()
	for i := 0; i < len(pairs); i += 2 {
		if err := c.key(pairs[i]); err != nil {
			return nil, err
		}
		if err := c.datum(pairs[i+1], 1); err != nil {
			return nil, err
		}
	}
	b.EndObject()
	return b.Result(), nil
}

type conv struct {
	cat Categorizer
	b   *stream.Builder
}

func (c *conv) datum(d Datum, depth int) error {
	if err := ir.CheckDepth(depth); err != nil {
		return err
	}
	if d.Null {
		c.b.Scalar(ir.Null())
		return nil
	}
	cat, strf := c.cat.Categorize(d.Type)
	switch cat {
	case Null:
		c.b.Scalar(ir.Null())
	case Bool:
		v, ok := d.Value.(bool)
		if !ok {
			return payloadErr(d, "bool")
		}
		c.b.Scalar(ir.FromBool(v))
	case Integer:
		i, ok := asInt64(d.Value)
		if !ok {
			return payloadErr(d, "integer")
		}
		c.b.Scalar(ir.FromInt(i))
	case Float:
		f, ok := asFloat64(d.Value)
		if !ok {
			return payloadErr(d, "float")
		}
		c.b.Scalar(ir.FromFloat(f))
	case Decimal:
		dec, err := asDecimal(d)
		if err != nil {
			return err
		}
		if dec.Form != apd.Finite {
			// non-finite spellings are not numbers in a document
			return c.scalarString(dec.Text('f'))
		}
		c.b.Scalar(ir.FromNumeric(dec))
	case Date, Timestamp, TimestampTZ, Other:
		s, err := stringify(strf, d)
		if err != nil {
			return err
		}
		return c.scalarString(s)
	case Document:
		v, ok := d.Value.(*ir.Value)
		if !ok {
			return payloadErr(d, "*ir.Value")
		}
		return stream.Replay(c.b, v)
	case JSONText:
		s, ok := asText(d.Value)
		if !ok {
			return payloadErr(d, "text")
		}
		return parse.ParseInto(c.b, []byte(s))
	case JSONCast:
		s, err := stringify(strf, d)
		if err != nil {
			return err
		}
		return parse.ParseInto(c.b, []byte(s))
	case YAMLText:
		s, ok := asText(d.Value)
		if !ok {
			return payloadErr(d, "text")
		}
		return c.yamlText(s, depth)
	case Array:
		shape, ok := d.Value.(ArrayShape)
		if !ok {
			return payloadErr(d, "ArrayShape")
		}
		return c.array(shape, depth)
	case RecordCategory:
		rec, ok := d.Value.(Record)
		if !ok {
			return payloadErr(d, "Record")
		}
		return c.record(rec, depth)
	default:
		return fmt.Errorf("%w: unknown category for type %q", ir.ErrTypeMismatch, d.Type)
	}
	return nil
}

// key stringifies a scalar datum into an object key. Container-shaped
// categories cannot be keys.
func (c *conv) key(d Datum) error {
	if d.Null {
		return fmt.Errorf("%w: key must not be null", ir.ErrInvalidKeyType)
	}
	cat, strf := c.cat.Categorize(d.Type)
	var s string
	switch cat {
	case Bool:
		v, ok := d.Value.(bool)
		if !ok {
			return payloadErr(d, "bool")
		}
		s = strconv.FormatBool(v)
	case Integer:
		i, ok := asInt64(d.Value)
		if !ok {
			return payloadErr(d, "integer")
		}
		s = strconv.FormatInt(i, 10)
	case Float:
		f, ok := asFloat64(d.Value)
		if !ok {
			return payloadErr(d, "float")
		}
		s = encode.FloatString(f)
	case Decimal:
		dec, err := asDecimal(d)
		if err != nil {
			return err
		}
		s = dec.Text('f')
	case Date, Timestamp, TimestampTZ, Other:
		var err error
		s, err = stringify(strf, d)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: type %q cannot be a key", ir.ErrInvalidKeyType, d.Type)
	}
	if err := ir.CheckStringLen(len(s)); err != nil {
		return err
	}
	c.b.Key(s)
	return nil
}

func (c *conv) array(s ArrayShape, depth int) error {
	if err := ir.CheckDepth(depth); err != nil {
		return err
	}
	total := 0
	if len(s.Dims) > 0 {
		total = 1
		for _, d := range s.Dims {
			total *= d
		}
	}
	if total == 0 {
		c.b.BeginArray()
		c.b.EndArray()
		return nil
	}
	if total != len(s.Elems) {
		return fmt.Errorf("%w: array shape %v holds %d elements, got %d",
			ir.ErrTypeMismatch, s.Dims, total, len(s.Elems))
	}
	idx := 0
	return c.arrayDim(s, s.Dims, &idx, depth)
}

func (c *conv) arrayDim(s ArrayShape, dims []int, idx *int, depth int) error {
	if err := ir.CheckDepth(depth); err != nil {
		return err
	}
	c.b.BeginArray()
	if len(dims) == 1 {
		for i := 0; i < dims[0]; i++ {
			d := Datum{Type: s.Elem, Value: s.Elems[*idx]}
			if s.Nulls != nil {
				d.Null = s.Nulls[*idx]
			}
			*idx++
			if err := c.datum(d, depth+1); err != nil {
				return err
			}
		}
		c.b.EndArray()
		return nil
	}
	for i := 0; i < dims[0]; i++ {
		if err := c.arrayDim(s, dims[1:], idx, depth+1); err != nil {
			return err
		}
	}
	c.b.EndArray()
	return nil
}

func (c *conv) record(rec Record, depth int) error {
	if err := ir.CheckDepth(depth); err != nil {
		return err
	}
	if len(rec.Values) != len(rec.Fields) {
		return fmt.Errorf("%w: record has %d fields but %d values",
			ir.ErrTypeMismatch, len(rec.Fields), len(rec.Values))
	}
	if rec.Nulls != nil && len(rec.Nulls) != len(rec.Fields) {
		return fmt.Errorf("%w: record has %d fields but %d null flags",
			ir.ErrTypeMismatch, len(rec.Fields), len(rec.Nulls))
	}
	c.b.BeginObject()
	for i, f := range rec.Fields {
		if f.Dropped {
			continue
		}
		if err := ir.CheckStringLen(len(f.Name)); err != nil {
			return err
		}
		c.b.Key(f.Name)
		d := Datum{Type: f.Type, Value: rec.Values[i]}
		if rec.Nulls != nil {
			d.Null = rec.Nulls[i]
		}
		if err := c.datum(d, depth+1); err != nil {
			return err
		}
	}
	c.b.EndObject()
	return nil
}

func (c *conv) scalarString(s string) error {
	v, err := ir.FromString(s)
	if err != nil {
		return err
	}
	c.b.Scalar(v)
	return nil
}

func stringify(strf Stringifier, d Datum) (string, error) {
	if strf == nil {
		return "", fmt.Errorf("%w: no stringifier for type %q", ir.ErrTypeMismatch, d.Type)
	}
	return strf(d.Value)
}

func payloadErr(d Datum, want string) error {
	return fmt.Errorf("%w: type %q expects a %s payload, got %T",
		ir.ErrTypeMismatch, d.Type, want, d.Value)
}

func asInt64(v any) (int64, bool) {
	switch i := v.(type) {
	case int64:
		return i, true
	case int:
		return int64(i), true
	case int32:
		return int64(i), true
	case int16:
		return int64(i), true
	case int8:
		return int64(i), true
	case uint32:
		return int64(i), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	}
	return 0, false
}

func asText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

func asDecimal(d Datum) (*apd.Decimal, error) {
	switch v := d.Value.(type) {
	case *apd.Decimal:
		return v, nil
	case string:
		dec, _, err := apd.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("%w: decimal %q: %v", ir.ErrTypeMismatch, v, err)
		}
		return dec, nil
	}
	return nil, payloadErr(d, "decimal")
}

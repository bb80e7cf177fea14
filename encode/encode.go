// Package encode renders container blobs and value trees as text.
package encode

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gram-format/go-gram/ir"
	"github.com/gram-format/go-gram/stream"
	"github.com/gram-format/go-gram/token"
	"github.com/gram-format/go-gram/wire"
)

type EncState struct {
	indent bool
	level  int

	Color func(ir.Kind, ColorAttr, string) string
}

type EncodeOption func(*EncState)

// WithIndent switches from the compact one-line form to one element per
// line with four spaces per nesting level.
func WithIndent() EncodeOption {
	return func(es *EncState) {
		es.indent = true
	}
}

func WithColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		es.Color = c.Color
	}
}

// Encode renders the container to w.
func Encode(c wire.Container, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	enc := &encoder{w: w, es: es, first: true}
	it := wire.NewIterator(c)
	for {
		ev, err := it.Next()
		if err != nil {
			return err
		}
		if ev == nil {
			return enc.err
		}
		enc.event(ev)
	}
}

// Format renders the container to a string.
func Format(c wire.Container, opts ...EncodeOption) (string, error) {
	sb := &strings.Builder{}
	if err := Encode(c, sb, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// FormatValue renders a value tree without encoding it first.
func FormatValue(v *ir.Value, opts ...EncodeOption) (string, error) {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	sb := &strings.Builder{}
	enc := &encoder{w: sb, es: es, first: true}
	err := stream.Emit(sinkFunc(func(ev stream.Event) {
		enc.event(&ev)
	}), v)
	if enc.err != nil {
		return "", enc.err
	}
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

type sinkFunc func(stream.Event)

func (f sinkFunc) Push(ev stream.Event) { f(ev) }

// encoder tracks the flat serialization state: a single first flag and a
// last-was-key flag reproduce sibling separators and indent placement.
type encoder struct {
	w          io.Writer
	es         *EncState
	first      bool
	lastWasKey bool
	started    bool
	err        error
}

func (e *encoder) event(ev *stream.Event) {
	es := e.es
	switch ev.Type {
	case stream.EventBeginArray:
		if !e.first {
			e.sep()
		}
		e.first = true
		if !ev.RawScalar {
			e.addIndent(!e.lastWasKey)
			e.color(ir.ArrayKind, SepColor, "[")
			es.level++
		}
		e.lastWasKey = false
	case stream.EventEndArray:
		if !ev.RawScalar {
			es.level--
			e.addIndent(true)
			e.color(ir.ArrayKind, SepColor, "]")
		}
		e.first = false
	case stream.EventBeginObject:
		if !e.first {
			e.sep()
		}
		e.first = true
		e.addIndent(!e.lastWasKey)
		e.color(ir.ObjectKind, SepColor, "{")
		es.level++
		e.lastWasKey = false
	case stream.EventEndObject:
		es.level--
		e.addIndent(true)
		e.color(ir.ObjectKind, SepColor, "}")
		switch ev.Composite {
		case ir.VertexKind:
			e.color(ir.VertexKind, TagColor, "::vertex")
		case ir.EdgeKind:
			e.color(ir.EdgeKind, TagColor, "::edge")
		}
		e.first = false
	case stream.EventKey:
		if !e.first {
			e.sep()
		}
		e.first = true
		e.addIndent(true)
		e.color(ir.ObjectKind, FieldColor, token.Quote(ev.Key))
		e.write(": ")
		e.lastWasKey = true
	case stream.EventScalar:
		if !e.first {
			e.sep()
		}
		e.first = false
		e.addIndent(!e.lastWasKey)
		e.scalar(ev.Value)
		e.lastWasKey = false
	}
}

func (e *encoder) scalar(v *ir.Value) {
	switch v.Kind {
	case ir.NullKind:
		e.color(ir.NullKind, ValueColor, "null")
	case ir.BoolKind:
		s := "false"
		if v.Bool {
			s = "true"
		}
		e.color(ir.BoolKind, ValueColor, s)
	case ir.IntegerKind:
		e.color(ir.IntegerKind, ValueColor, strconv.FormatInt(v.Int64, 10))
	case ir.FloatKind:
		e.color(ir.FloatKind, ValueColor, FloatString(v.Float64))
	case ir.NumericKind:
		e.color(ir.NumericKind, ValueColor, v.Numeric.Text('f'))
		e.color(ir.NumericKind, TagColor, "::numeric")
	case ir.StringKind:
		e.color(ir.StringKind, ValueColor, token.Quote(v.Str))
	default:
		panic("gram encode: container in scalar event")
	}
}

// FloatString renders a float the shortest way that reads back exactly,
// appending ".0" when the result would otherwise look like an integer.
func FloatString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if isDecimalNeeded(s) {
		s += ".0"
	}
	return s
}

func isDecimalNeeded(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i = 1
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (e *encoder) sep() {
	if e.es.indent {
		e.write(",")
		return
	}
	e.write(", ")
}

func (e *encoder) addIndent(indent bool) {
	if !e.es.indent || !indent {
		return
	}
	// no newline before the first line
	if e.started {
		e.write("\n")
	}
	e.write(strings.Repeat(" ", e.es.level*4))
}

func (e *encoder) color(k ir.Kind, attr ColorAttr, s string) {
	if e.es.Color != nil {
		s = e.es.Color(k, attr, s)
	}
	e.write(s)
}

func (e *encoder) write(s string) {
	if e.err != nil || s == "" {
		return
	}
	e.started = true
	_, err := e.w.Write([]byte(s))
	if err != nil {
		e.fail(err)
	}
}

func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

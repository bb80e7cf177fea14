package stream

import (
	"fmt"

	"github.com/gram-format/go-gram/ir"
)

// Builder turns an ordered event stream into a value tree. It owns the
// tree it is constructing until Result returns it.
//
// Misuse (mismatched nesting, a key outside an object, events after the
// document is complete) is a programming contract violation and panics.
// User input validation happens before events are emitted, never here.
type Builder struct {
	state *State
	open  []*ir.Value
	root  *ir.Value
	done  bool
}

func NewBuilder() *Builder {
	return &Builder{state: NewState()}
}

// Push applies one event. The convenience methods below are sugar over it.
func (b *Builder) Push(ev Event) {
	if b.done {
		panic("gram builder: event after completed document")
	}
	if err := b.state.ProcessEvent(&ev); err != nil {
		panic(fmt.Sprintf("gram builder: %v", err))
	}
	switch ev.Type {
	case EventBeginArray:
		node := &ir.Value{Kind: ir.ArrayKind, RawScalar: ev.RawScalar}
		b.attach(node)
		b.open = append(b.open, node)
	case EventBeginObject:
		kind := ir.ObjectKind
		if ev.Composite.IsComposite() {
			kind = ev.Composite
		}
		node := &ir.Value{Kind: kind}
		b.attach(node)
		b.open = append(b.open, node)
	case EventEndArray, EventEndObject:
		top := b.open[len(b.open)-1]
		b.open = b.open[:len(b.open)-1]
		if len(b.open) == 0 {
			b.root = top
			b.done = true
		}
	case EventKey:
		top := b.open[len(b.open)-1]
		top.Keys = append(top.Keys, ir.MustString(ev.Key))
	case EventScalar:
		if len(b.open) == 0 {
			// A bare scalar document resolves to a raw-scalar wrapper so
			// the grammar "a stream always yields one container" holds.
			b.root = ir.RawScalarArray(ev.Value)
			b.done = true
			return
		}
		b.attach(ev.Value)
	}
}

func (b *Builder) attach(node *ir.Value) {
	if len(b.open) == 0 {
		return
	}
	top := b.open[len(b.open)-1]
	switch top.Kind {
	case ir.ArrayKind:
		top.Elems = append(top.Elems, node)
	case ir.ObjectKind, ir.VertexKind, ir.EdgeKind:
		top.Vals = append(top.Vals, node)
	default:
		panic("gram builder: unexpected parent of nested structure")
	}
}

func (b *Builder) BeginArray()  { b.Push(Event{Type: EventBeginArray}) }
func (b *Builder) EndArray()    { b.Push(Event{Type: EventEndArray}) }
func (b *Builder) BeginObject() { b.Push(Event{Type: EventBeginObject}) }
func (b *Builder) EndObject()   { b.Push(Event{Type: EventEndObject}) }

func (b *Builder) Key(k string) {
	b.Push(Event{Type: EventKey, Key: k})
}

func (b *Builder) Scalar(v *ir.Value) {
	b.Push(Event{Type: EventScalar, Value: v})
}

// Depth returns the current nesting depth.
func (b *Builder) Depth() int {
	return b.state.Depth()
}

// Result returns the single completed top-level value. Calling it before
// all containers are closed is a contract violation.
func (b *Builder) Result() *ir.Value {
	if !b.done {
		panic("gram builder: result requested before document complete")
	}
	return b.root
}

// Sink receives build events. Builder is the canonical sink; serializers
// implement it to render an event stream directly.
type Sink interface {
	Push(Event)
}

// Replay emits v into b as the event sequence that would have built it.
// A raw-scalar wrapper replays as its inner scalar, so replaying a parsed
// scalar document into an open container embeds the scalar itself.
func Replay(b *Builder, v *ir.Value) error {
	if s, ok := ir.ExtractScalar(v); ok && b.Depth() > 0 {
		b.Scalar(s)
		return nil
	}
	return Emit(b, v)
}

// Emit pushes the full event sequence for v, begin and end events carrying
// the raw-scalar and composite markers of the tree. Trees nested deeper
// than ir.MaxDepth fail with ErrStackDepth.
func Emit(s Sink, v *ir.Value) error {
	return emit(s, v, 0)
}

func emit(s Sink, v *ir.Value, depth int) error {
	if err := ir.CheckDepth(depth); err != nil {
		return err
	}
	switch v.Kind {
	case ir.ArrayKind:
		s.Push(Event{Type: EventBeginArray, RawScalar: v.RawScalar})
		for _, e := range v.Elems {
			if err := emit(s, e, depth+1); err != nil {
				return err
			}
		}
		s.Push(Event{Type: EventEndArray, RawScalar: v.RawScalar})
	case ir.ObjectKind, ir.VertexKind, ir.EdgeKind:
		comp := ir.Kind(0)
		if v.Kind.IsComposite() {
			comp = v.Kind
		}
		s.Push(Event{Type: EventBeginObject, Composite: comp})
		for i := range v.Keys {
			s.Push(Event{Type: EventKey, Key: v.Keys[i].Str})
			if err := emit(s, v.Vals[i], depth+1); err != nil {
				return err
			}
		}
		s.Push(Event{Type: EventEndObject, Composite: comp})
	default:
		s.Push(Event{Type: EventScalar, Value: v})
	}
	return nil
}

package stream

import (
	"fmt"

	"github.com/gram-format/go-gram/ir"
)

// Event is one structural event in the six-event vocabulary shared by the
// Builder, the wire Iterator, and the text codec. A producer emits the
// exact sequence the Builder would consume to rebuild the same value.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key string

	// Value carries the payload of an EventScalar. It may be any completed
	// value, not only a scalar kind: replaying an existing subtree into a
	// builder pushes it whole.
	Value *ir.Value

	// RawScalar marks an EventBeginArray that opens the synthetic
	// one-element wrapper around a root scalar.
	RawScalar bool

	// Composite distinguishes an object-shaped begin/end pair that closes
	// over a vertex or edge; zero otherwise.
	Composite ir.Kind
}

// EventType enumerates the structural events.
type EventType int

const (
	EventBeginArray EventType = iota
	EventEndArray
	EventBeginObject
	EventEndObject
	EventKey
	EventScalar
)

func (t EventType) String() string {
	switch t {
	case EventBeginArray:
		return "BeginArray"
	case EventEndArray:
		return "EndArray"
	case EventBeginObject:
		return "BeginObject"
	case EventEndObject:
		return "EndObject"
	case EventKey:
		return "Key"
	case EventScalar:
		return "Scalar"
	default:
		return "Unknown"
	}
}

// IsValueStart returns true if this event starts a value, as opposed to a
// key or an end marker.
func (t EventType) IsValueStart() bool {
	switch t {
	case EventBeginArray, EventBeginObject, EventScalar:
		return true
	default:
		return false
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	et, ok := map[string]EventType{
		"BeginArray":  EventBeginArray,
		"EndArray":    EventEndArray,
		"BeginObject": EventBeginObject,
		"EndObject":   EventEndObject,
		"Key":         EventKey,
		"Scalar":      EventScalar,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unknown event type %q", d)
	}
	*t = et
	return nil
}

package stream

import (
	"testing"

	"github.com/gram-format/go-gram/ir"
)

func process(t *testing.T, s *State, evs ...Event) {
	t.Helper()
	for i := range evs {
		if err := s.ProcessEvent(&evs[i]); err != nil {
			t.Fatalf("event %d (%v): %v", i, evs[i].Type, err)
		}
	}
}

func TestStateDepth(t *testing.T) {
	s := NewState()
	if s.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", s.Depth())
	}

	process(t, s, Event{Type: EventBeginObject})
	if s.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", s.Depth())
	}

	process(t, s, Event{Type: EventKey, Key: "a"}, Event{Type: EventBeginArray})
	if s.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", s.Depth())
	}

	process(t, s, Event{Type: EventEndArray})
	if s.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", s.Depth())
	}

	process(t, s, Event{Type: EventEndObject})
	if s.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", s.Depth())
	}
}

func TestStateErrors(t *testing.T) {
	scalar := Event{Type: EventScalar, Value: ir.FromInt(1)}
	tests := []struct {
		name string
		evs  []Event
		want string
	}{
		{"end object at top", []Event{{Type: EventEndObject}},
			"end of object at top level"},
		{"end array at top", []Event{{Type: EventEndArray}},
			"end of array at top level"},
		{"end object closing array", []Event{{Type: EventBeginArray}, {Type: EventEndObject}},
			"end of object closing an array"},
		{"end array closing object", []Event{{Type: EventBeginObject}, {Type: EventEndArray}},
			"end of array closing an object"},
		{"key at top", []Event{{Type: EventKey, Key: "k"}},
			"key at top level"},
		{"key in array", []Event{{Type: EventBeginArray}, {Type: EventKey, Key: "k"}},
			"key in array"},
		{"key after key", []Event{
			{Type: EventBeginObject}, {Type: EventKey, Key: "a"}, {Type: EventKey, Key: "b"}},
			"key after key"},
		{"value with no key", []Event{{Type: EventBeginObject}, scalar},
			"value in object with no key"},
		{"key with no value", []Event{
			{Type: EventBeginObject}, {Type: EventKey, Key: "a"}, {Type: EventEndObject}},
			"key with no value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			var err error
			for i := range tt.evs {
				if err = s.ProcessEvent(&tt.evs[i]); err != nil {
					break
				}
			}
			if err == nil || err.Error() != tt.want {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestStateIsInObject(t *testing.T) {
	s := NewState()
	if s.IsInObject() {
		t.Error("should not be in object at start")
	}
	process(t, s, Event{Type: EventBeginObject})
	if !s.IsInObject() {
		t.Error("should be in object")
	}
	if s.IsInArray() {
		t.Error("should not be in array inside an object")
	}
	process(t, s, Event{Type: EventEndObject})
	if s.IsInObject() {
		t.Error("should not be in object after closing")
	}
}

func TestStateIsInArray(t *testing.T) {
	s := NewState()
	if s.IsInArray() {
		t.Error("should not be in array at start")
	}
	process(t, s, Event{Type: EventBeginArray})
	if !s.IsInArray() {
		t.Error("should be in array")
	}
	process(t, s, Event{Type: EventEndArray})
	if s.IsInArray() {
		t.Error("should not be in array after closing")
	}
}

func TestStateCurrentKey(t *testing.T) {
	s := NewState()
	if _, ok := s.CurrentKey(); ok {
		t.Error("no key at start")
	}

	process(t, s, Event{Type: EventBeginObject})
	if _, ok := s.CurrentKey(); ok {
		t.Error("no key before the first EventKey")
	}

	process(t, s, Event{Type: EventKey, Key: "k"})
	if k, ok := s.CurrentKey(); !ok || k != "k" {
		t.Errorf("CurrentKey() = %q, %v; want k, true", k, ok)
	}

	process(t, s, Event{Type: EventScalar, Value: ir.FromInt(1)})
	if _, ok := s.CurrentKey(); ok {
		t.Error("key consumed once its value is seen")
	}
}

func TestStateCurrentIndex(t *testing.T) {
	s := NewState()
	if _, ok := s.CurrentIndex(); ok {
		t.Error("no index at top level")
	}

	process(t, s, Event{Type: EventBeginArray})
	if i, ok := s.CurrentIndex(); !ok || i != -1 {
		t.Errorf("CurrentIndex() = %d, %v; want -1 before first element", i, ok)
	}

	process(t, s, Event{Type: EventScalar, Value: ir.FromInt(1)})
	if i, ok := s.CurrentIndex(); !ok || i != 0 {
		t.Errorf("CurrentIndex() = %d, %v; want 0", i, ok)
	}

	process(t, s, Event{Type: EventScalar, Value: ir.FromInt(2)})
	if i, ok := s.CurrentIndex(); !ok || i != 1 {
		t.Errorf("CurrentIndex() = %d, %v; want 1", i, ok)
	}

	process(t, s, Event{Type: EventBeginObject})
	if _, ok := s.CurrentIndex(); ok {
		t.Error("no index inside an object")
	}
}

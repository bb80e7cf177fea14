package stream

import "errors"

// State provides minimal stack management for event sequences. It tracks
// nesting and key/value alternation and nothing else; callers that need a
// value out of the events use a Builder.
type State struct {
	stack []item
}

type item struct {
	object bool
	n      int
	hasKey bool
	key    string
}

// NewState creates a State for tracking event sequence well-formedness.
func NewState() *State {
	return &State{}
}

func (s *State) pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *State) current() *item {
	return &s.stack[len(s.stack)-1]
}

// ProcessEvent validates one event against the current nesting state and
// updates it. Call this for each event in order.
func (s *State) ProcessEvent(event *Event) error {
	switch event.Type {
	case EventBeginObject:
		if err := s.value(); err != nil {
			return err
		}
		s.stack = append(s.stack, item{object: true})
	case EventEndObject:
		if s.Depth() <= 0 {
			return errors.New("end of object at top level")
		}
		cur := s.current()
		if !cur.object {
			return errors.New("end of object closing an array")
		}
		if cur.hasKey {
			return errors.New("key with no value")
		}
		s.pop()
	case EventBeginArray:
		if err := s.value(); err != nil {
			return err
		}
		s.stack = append(s.stack, item{n: -1})
	case EventEndArray:
		if s.Depth() <= 0 {
			return errors.New("end of array at top level")
		}
		if s.current().object {
			return errors.New("end of array closing an object")
		}
		s.pop()
	case EventScalar:
		if err := s.value(); err != nil {
			return err
		}
	case EventKey:
		if s.Depth() == 0 {
			return errors.New("key at top level")
		}
		cur := s.current()
		if !cur.object {
			return errors.New("key in array")
		}
		if cur.hasKey {
			return errors.New("key after key")
		}
		cur.hasKey = true
		cur.key = event.Key
	}
	return nil
}

func (s *State) value() error {
	if s.Depth() == 0 {
		return nil
	}
	cur := s.current()
	if cur.object && !cur.hasKey {
		return errors.New("value in object with no key")
	}
	cur.n++
	cur.hasKey = false
	return nil
}

// Depth returns the current nesting depth (0 = top level).
func (s *State) Depth() int {
	return len(s.stack)
}

// IsInObject returns true if currently inside an object.
func (s *State) IsInObject() bool {
	return len(s.stack) > 0 && s.current().object
}

// IsInArray returns true if currently inside an array.
func (s *State) IsInArray() bool {
	return len(s.stack) > 0 && !s.current().object
}

// CurrentKey returns the pending object key, if one has been seen and its
// value has not.
func (s *State) CurrentKey() (string, bool) {
	if len(s.stack) == 0 {
		return "", false
	}
	cur := s.current()
	if !cur.object || !cur.hasKey {
		return "", false
	}
	return cur.key, true
}

// CurrentIndex returns the index of the last value seen in the innermost
// array, -1 before the first.
func (s *State) CurrentIndex() (int, bool) {
	if len(s.stack) == 0 {
		return 0, false
	}
	cur := s.current()
	if cur.object {
		return 0, false
	}
	return cur.n, true
}

package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gram-format/go-gram/debug"
	"github.com/gram-format/go-gram/ir"
	"github.com/gram-format/go-gram/stream"
)

// Iterator walks a container blob and reproduces the event sequence that
// built it: a key event always immediately precedes its value, and the
// raw-scalar and composite markers on begin/end events match the original
// tree. Feeding every event to a stream.Builder reconstructs the value.
type Iterator struct {
	stack []iterFrame
}

type iterFrame struct {
	c     Container
	count int
	next  int
	begun bool
	onVal bool
}

// NewIterator positions an iterator before the first event of c.
func NewIterator(c Container) *Iterator {
	it := &Iterator{}
	it.push(c)
	return it
}

func (it *Iterator) push(c Container) {
	it.stack = append(it.stack, iterFrame{c: c, count: c.Count()})
}

// Next returns the next event, or nil when the container is exhausted.
func (it *Iterator) Next() (*stream.Event, error) {
	if len(it.stack) == 0 {
		return nil, nil
	}
	if err := ir.CheckDepth(len(it.stack)); err != nil {
		return nil, err
	}
	f := &it.stack[len(it.stack)-1]
	if !f.begun {
		f.begun = true
		return beginEvent(f.c), nil
	}
	if f.c.IsObject() {
		if f.onVal {
			f.onVal = false
			e, err := f.c.entry(2*f.next + 1)
			if err != nil {
				return nil, err
			}
			f.next++
			return it.emitChild(f.c, e)
		}
		if f.next == f.count {
			return it.endEvent(f.c), nil
		}
		e, err := f.c.entry(2 * f.next)
		if err != nil {
			return nil, err
		}
		key, err := decodeKey(f.c, e)
		if err != nil {
			return nil, err
		}
		f.onVal = true
		return &stream.Event{Type: stream.EventKey, Key: key}, nil
	}
	if f.next == f.count {
		return it.endEvent(f.c), nil
	}
	e, err := f.c.entry(f.next)
	if err != nil {
		return nil, err
	}
	f.next++
	return it.emitChild(f.c, e)
}

// emitChild turns an entry into a scalar event, or descends into a nested
// container and returns its begin event.
func (it *Iterator) emitChild(c Container, e uint32) (*stream.Event, error) {
	if entryType(e) == tContainer {
		sub, err := c.childAt(e)
		if err != nil {
			return nil, err
		}
		it.push(sub)
		it.stack[len(it.stack)-1].begun = true
		return beginEvent(sub), nil
	}
	v, err := decodeScalar(c, e)
	if err != nil {
		return nil, err
	}
	return &stream.Event{Type: stream.EventScalar, Value: v}, nil
}

func (it *Iterator) endEvent(c Container) *stream.Event {
	it.stack = it.stack[:len(it.stack)-1]
	if c.IsObject() {
		return &stream.Event{Type: stream.EventEndObject, Composite: c.Kind()}
	}
	return &stream.Event{Type: stream.EventEndArray, RawScalar: c.IsScalar()}
}

func beginEvent(c Container) *stream.Event {
	if c.IsObject() {
		return &stream.Event{Type: stream.EventBeginObject, Composite: c.Kind()}
	}
	return &stream.Event{Type: stream.EventBeginArray, RawScalar: c.IsScalar()}
}

func (c Container) childAt(e uint32) (Container, error) {
	off := entryOffset(e)
	if off < 4 || off+4 > len(c.data) {
		return Container{}, fmt.Errorf("%w: nested container at %d", ErrCorrupt, off)
	}
	return Container{data: c.data[off:]}, nil
}

func decodeKey(c Container, e uint32) (string, error) {
	if entryType(e) != tString {
		return "", fmt.Errorf("%w: non-string key entry", ErrCorrupt)
	}
	b, err := c.varBytesAt(entryOffset(e))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeScalar(c Container, e uint32) (*ir.Value, error) {
	switch entryType(e) {
	case tNull:
		return ir.Null(), nil
	case tFalse:
		return ir.FromBool(false), nil
	case tTrue:
		return ir.FromBool(true), nil
	case tInteger:
		b, err := c.bytesAt(entryOffset(e), 8)
		if err != nil {
			return nil, err
		}
		return ir.FromInt(int64(binary.LittleEndian.Uint64(b))), nil
	case tFloat:
		b, err := c.bytesAt(entryOffset(e), 8)
		if err != nil {
			return nil, err
		}
		return ir.FromFloat(math.Float64frombits(binary.LittleEndian.Uint64(b))), nil
	case tString:
		b, err := c.varBytesAt(entryOffset(e))
		if err != nil {
			return nil, err
		}
		return ir.FromString(string(b))
	case tNumeric:
		b, err := c.varBytesAt(entryOffset(e))
		if err != nil {
			return nil, err
		}
		d, err := parseDecimal(string(b))
		if err != nil {
			return nil, fmt.Errorf("%w: numeric payload: %v", ErrCorrupt, err)
		}
		return ir.FromNumeric(d), nil
	}
	return nil, fmt.Errorf("%w: entry type %d", ErrCorrupt, entryType(e))
}

// Decode reconstructs the value tree from a container blob. A raw-scalar
// container decodes to its single-element wrapper array.
func Decode(c Container) (*ir.Value, error) {
	if debug.Wire() {
		debug.Logf("decode container: kind=%v count=%d size=%d\n",
			c.Kind(), c.Count(), len(c.Bytes()))
	}
	it := NewIterator(c)
	b := stream.NewBuilder()
	for {
		ev, err := it.Next()
		if err != nil {
			return nil, err
		}
		if ev == nil {
			break
		}
		b.Push(*ev)
	}
	return b.Result(), nil
}

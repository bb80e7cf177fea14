// Package wire implements the binary container encoding of a value tree:
// an addressable blob supporting random access to children without
// decoding siblings, and an Iterator replaying the builder's event stream.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gram-format/go-gram/ir"
)

// A container blob is a sequence of little-endian uint32 words followed by
// a payload area:
//
//	header   count (28 bits) | container kind (3 bits) | scalar flag (1 bit)
//	entries  one word per array element, two per object pair (key, value)
//	payload  out-of-line scalar bytes and nested container blobs
//
// Each entry word holds a 3-bit type tag and a 28-bit offset into the blob
// (from the start of this container). Null and booleans are fully inline.
// The 28-bit offset field is what bounds single strings to 2^28-1 bytes.
const (
	entryMask  = 0x0FFFFFFF
	countMask  = 0x0FFFFFFF
	kindShift  = 28
	kindMask   = 0x7
	scalarFlag = 0x80000000

	typeShift = 28
)

// entry type tags
const (
	tNull uint32 = iota
	tFalse
	tTrue
	tInteger
	tFloat
	tString
	tNumeric
	tContainer
)

// container kind bits
const (
	ckArray uint32 = iota + 1
	ckObject
	ckVertex
	ckEdge
)

// ErrCorrupt reports a blob that does not decode as a container. Blobs are
// opaque to callers; a truncated or foreign byte string surfaces here.
var ErrCorrupt = errors.New("corrupt container")

// Container is the read-only binary form of a fully-built array or object.
type Container struct {
	data []byte
}

// Bytes returns the underlying blob. Callers must not modify it.
func (c Container) Bytes() []byte {
	return c.data
}

// FromBytes wraps a previously encoded blob after a shallow header check.
func FromBytes(d []byte) (Container, error) {
	if len(d) < 4 {
		return Container{}, fmt.Errorf("%w: %d bytes", ErrCorrupt, len(d))
	}
	c := Container{data: d}
	if kindOf(c.header()) == 0 {
		return Container{}, fmt.Errorf("%w: bad header", ErrCorrupt)
	}
	return c, nil
}

func (c Container) header() uint32 {
	return binary.LittleEndian.Uint32(c.data)
}

// Count returns the number of elements (array) or pairs (object).
func (c Container) Count() int {
	return int(c.header() & countMask)
}

// Kind returns the container's value kind.
func (c Container) Kind() ir.Kind {
	switch kindOf(c.header()) {
	case ckArray:
		return ir.ArrayKind
	case ckObject:
		return ir.ObjectKind
	case ckVertex:
		return ir.VertexKind
	case ckEdge:
		return ir.EdgeKind
	}
	return ir.NullKind
}

func (c Container) IsArray() bool {
	return kindOf(c.header()) == ckArray
}

func (c Container) IsObject() bool {
	k := kindOf(c.header())
	return k == ckObject || k == ckVertex || k == ckEdge
}

// IsScalar reports whether c is the raw-scalar wrapper around a single
// root scalar.
func (c Container) IsScalar() bool {
	return c.header()&scalarFlag != 0
}

func kindOf(header uint32) uint32 {
	return (header >> kindShift) & kindMask
}

func (c Container) entry(i int) (uint32, error) {
	off := 4 + 4*i
	if off+4 > len(c.data) {
		return 0, fmt.Errorf("%w: entry %d out of range", ErrCorrupt, i)
	}
	return binary.LittleEndian.Uint32(c.data[off:]), nil
}

func entryType(e uint32) uint32 {
	return e >> typeShift
}

func entryOffset(e uint32) int {
	return int(e & entryMask)
}

func (c Container) bytesAt(off, n int) ([]byte, error) {
	if off < 0 || off+n > len(c.data) {
		return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrCorrupt, n, off)
	}
	return c.data[off : off+n], nil
}

func (c Container) varBytesAt(off int) ([]byte, error) {
	lenb, err := c.bytesAt(off, 4)
	if err != nil {
		return nil, err
	}
	n := int(binary.LittleEndian.Uint32(lenb))
	return c.bytesAt(off+4, n)
}

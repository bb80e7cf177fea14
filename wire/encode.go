package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gram-format/go-gram/ir"
)

// Encode serializes a built value tree to its container blob. A bare scalar
// is wrapped in the raw-scalar array first, so the result is always a
// container.
func Encode(v *ir.Value) (Container, error) {
	if v == nil {
		v = ir.Null()
	}
	switch v.Kind {
	case ir.ArrayKind, ir.ObjectKind, ir.VertexKind, ir.EdgeKind:
	default:
		v = ir.RawScalarArray(v)
	}
	blob, err := encodeContainer(v, 0)
	if err != nil {
		return Container{}, err
	}
	return Container{data: blob}, nil
}

func encodeContainer(v *ir.Value, depth int) ([]byte, error) {
	if err := ir.CheckDepth(depth); err != nil {
		return nil, err
	}
	var (
		header   uint32
		children []*ir.Value
	)
	switch v.Kind {
	case ir.ArrayKind:
		header = uint32(len(v.Elems)) | ckArray<<kindShift
		if v.RawScalar {
			header |= scalarFlag
		}
		children = v.Elems
	case ir.ObjectKind, ir.VertexKind, ir.EdgeKind:
		ck := ckObject
		switch v.Kind {
		case ir.VertexKind:
			ck = ckVertex
		case ir.EdgeKind:
			ck = ckEdge
		}
		header = uint32(len(v.Keys)) | ck<<kindShift
		children = make([]*ir.Value, 0, 2*len(v.Keys))
		for i, k := range v.Keys {
			children = append(children, k, v.Vals[i])
		}
	default:
		panic(fmt.Sprintf("wire: encodeContainer on %v", v.Kind))
	}
	if len(children) > countMask {
		return nil, fmt.Errorf("%w: %d entries", ir.ErrValueTooLarge, len(children))
	}

	entries := make([]uint32, len(children))
	base := 4 + 4*len(children)
	var payload bytes.Buffer
	for i, child := range children {
		e, err := encodeChild(child, base, &payload, depth)
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}

	out := make([]byte, base, base+payload.Len())
	binary.LittleEndian.PutUint32(out, header)
	for i, e := range entries {
		binary.LittleEndian.PutUint32(out[4+4*i:], e)
	}
	return append(out, payload.Bytes()...), nil
}

func encodeChild(v *ir.Value, base int, payload *bytes.Buffer, depth int) (uint32, error) {
	off := base + payload.Len()
	if off > entryMask {
		return 0, fmt.Errorf("%w: offset %d", ir.ErrValueTooLarge, off)
	}
	switch v.Kind {
	case ir.NullKind:
		return tNull << typeShift, nil
	case ir.BoolKind:
		if v.Bool {
			return tTrue << typeShift, nil
		}
		return tFalse << typeShift, nil
	case ir.IntegerKind:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v.Int64))
		payload.Write(b[:])
		return tInteger<<typeShift | uint32(off), nil
	case ir.FloatKind:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v.Float64))
		payload.Write(b[:])
		return tFloat<<typeShift | uint32(off), nil
	case ir.StringKind:
		if err := ir.CheckStringLen(len(v.Str)); err != nil {
			return 0, err
		}
		writeVarBytes(payload, []byte(v.Str))
		return tString<<typeShift | uint32(off), nil
	case ir.NumericKind:
		text := v.Numeric.Text('f')
		if err := ir.CheckStringLen(len(text)); err != nil {
			return 0, err
		}
		writeVarBytes(payload, []byte(text))
		return tNumeric<<typeShift | uint32(off), nil
	case ir.ArrayKind, ir.ObjectKind, ir.VertexKind, ir.EdgeKind:
		sub, err := encodeContainer(v, depth+1)
		if err != nil {
			return 0, err
		}
		payload.Write(sub)
		return tContainer<<typeShift | uint32(off), nil
	}
	panic(fmt.Sprintf("wire: encodeChild on %v", v.Kind))
}

func writeVarBytes(payload *bytes.Buffer, b []byte) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(b)))
	payload.Write(n[:])
	payload.Write(b)
}

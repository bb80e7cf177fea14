package wire

import (
	"strings"

	"github.com/gram-format/go-gram/ir"
	"github.com/gram-format/go-gram/stream"
)

// CompareContainers orders two container blobs without decoding either into
// a tree. The order is total and agrees with ir.Compare on the decoded
// values: a shorter container sorts before a longer one with the same
// prefix, and the first differing child decides otherwise.
func CompareContainers(a, b Container) (int, error) {
	ita, itb := NewIterator(a), NewIterator(b)
	for {
		eva, err := ita.Next()
		if err != nil {
			return 0, err
		}
		evb, err := itb.Next()
		if err != nil {
			return 0, err
		}
		if eva == nil && evb == nil {
			return 0, nil
		}
		if eva == nil {
			return -1, nil
		}
		if evb == nil {
			return 1, nil
		}
		c, err := compareEvents(eva, evb)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
}

func compareEvents(a, b *stream.Event) (int, error) {
	if a.Type != b.Type {
		ra, rb := eventRank(a), eventRank(b)
		if ra != rb {
			if ra < rb {
				return -1, nil
			}
			return 1, nil
		}
		return 0, nil
	}
	switch a.Type {
	case stream.EventKey:
		return strings.Compare(a.Key, b.Key), nil
	case stream.EventScalar:
		return ir.Compare(a.Value, b.Value)
	case stream.EventBeginObject, stream.EventEndObject:
		if a.Composite != b.Composite {
			if a.Composite < b.Composite {
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, nil
}

// eventRank orders mismatched event types: a container that ends here sorts
// below one that continues, and scalars sort below nested containers the
// same way scalar kinds rank below container kinds.
func eventRank(e *stream.Event) int {
	switch e.Type {
	case stream.EventEndArray, stream.EventEndObject:
		return 0
	case stream.EventKey, stream.EventScalar:
		return 1
	case stream.EventBeginArray:
		return 2
	case stream.EventBeginObject:
		switch e.Composite {
		case ir.VertexKind:
			return 4
		case ir.EdgeKind:
			return 5
		}
		return 3
	}
	return 6
}

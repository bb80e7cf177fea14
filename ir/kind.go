package ir

import "fmt"

// Kind discriminates the variants of a Value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntegerKind
	FloatKind
	NumericKind
	StringKind
	ArrayKind
	ObjectKind
	VertexKind
	EdgeKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		NullKind:    "Null",
		BoolKind:    "Bool",
		IntegerKind: "Integer",
		FloatKind:   "Float",
		NumericKind: "Numeric",
		StringKind:  "String",
		ArrayKind:   "Array",
		ObjectKind:  "Object",
		VertexKind:  "Vertex",
		EdgeKind:    "Edge",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Null":    NullKind,
		"Bool":    BoolKind,
		"Integer": IntegerKind,
		"Float":   FloatKind,
		"Numeric": NumericKind,
		"String":  StringKind,
		"Array":   ArrayKind,
		"Object":  ObjectKind,
		"Vertex":  VertexKind,
		"Edge":    EdgeKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		NullKind,
		BoolKind,
		IntegerKind,
		FloatKind,
		NumericKind,
		StringKind,
		ArrayKind,
		ObjectKind,
		VertexKind,
		EdgeKind,
	}
}

// IsScalar reports whether values of kind k carry no children.
func (k Kind) IsScalar() bool {
	switch k {
	case ArrayKind, ObjectKind, VertexKind, EdgeKind:
		return false
	default:
		return true
	}
}

// IsNumber reports whether k belongs to the number family, whose members
// compare numerically with each other regardless of representation.
func (k Kind) IsNumber() bool {
	switch k {
	case IntegerKind, FloatKind, NumericKind:
		return true
	default:
		return false
	}
}

// IsComposite reports whether k is a graph composite.
func (k Kind) IsComposite() bool {
	return k == VertexKind || k == EdgeKind
}

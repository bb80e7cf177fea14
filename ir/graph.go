package ir

import "fmt"

// Positional indexes of graph composite fields. Downstream code addresses
// these fields by position, not by key lookup; the order is part of the
// wire contract.
const (
	VertexIDField    = 0
	VertexLabelField = 1
	VertexPropsField = 2

	EdgeIDField      = 0
	EdgeStartIDField = 1
	EdgeEndIDField   = 2
	EdgeLabelField   = 3
	EdgePropsField   = 4
)

// NewVertex builds a vertex composite with the fixed field order
// id, label, properties. A nil or null props argument yields an empty
// properties object.
func NewVertex(id, label, props *Value) (*Value, error) {
	idv, err := graphID(id, "vertex id")
	if err != nil {
		return nil, err
	}
	labelv, err := graphLabel(label)
	if err != nil {
		return nil, err
	}
	propsv, err := graphProps(props)
	if err != nil {
		return nil, err
	}
	return &Value{
		Kind: VertexKind,
		Keys: []*Value{MustString("id"), MustString("label"), MustString("properties")},
		Vals: []*Value{idv, labelv, propsv},
	}, nil
}

// NewEdge builds an edge composite with the fixed field order
// id, start_id, end_id, label, properties.
func NewEdge(id, startID, endID, label, props *Value) (*Value, error) {
	idv, err := graphID(id, "edge id")
	if err != nil {
		return nil, err
	}
	startv, err := graphID(startID, "edge start_id")
	if err != nil {
		return nil, err
	}
	endv, err := graphID(endID, "edge end_id")
	if err != nil {
		return nil, err
	}
	labelv, err := graphLabel(label)
	if err != nil {
		return nil, err
	}
	propsv, err := graphProps(props)
	if err != nil {
		return nil, err
	}
	return &Value{
		Kind: EdgeKind,
		Keys: []*Value{
			MustString("id"), MustString("start_id"), MustString("end_id"),
			MustString("label"), MustString("properties"),
		},
		Vals: []*Value{idv, startv, endv, labelv, propsv},
	}, nil
}

// Properties returns the properties object of a vertex or edge by its
// positional field, or nil for other kinds.
func Properties(v *Value) *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case VertexKind:
		return v.Vals[VertexPropsField]
	case EdgeKind:
		return v.Vals[EdgePropsField]
	default:
		return nil
	}
}

func graphID(id *Value, what string) (*Value, error) {
	if id == nil || id.Kind == NullKind {
		return nil, fmt.Errorf("%w: %s must not be null", ErrMalformedComposite, what)
	}
	if id.Kind != IntegerKind {
		return nil, fmt.Errorf("%w: %s must be an integer, not %s",
			ErrMalformedComposite, what, id.Kind)
	}
	return id, nil
}

func graphLabel(label *Value) (*Value, error) {
	if label == nil || label.Kind == NullKind {
		return nil, fmt.Errorf("%w: label must not be null", ErrMalformedComposite)
	}
	if label.Kind != StringKind {
		return nil, fmt.Errorf("%w: label must be a string, not %s",
			ErrMalformedComposite, label.Kind)
	}
	return label, nil
}

func graphProps(props *Value) (*Value, error) {
	if props == nil || props.Kind == NullKind {
		return EmptyObject(), nil
	}
	if props.Kind != ObjectKind {
		return nil, fmt.Errorf("%w: properties argument must be an object, not %s",
			ErrMalformedComposite, props.Kind)
	}
	return props, nil
}

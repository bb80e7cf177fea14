package ir

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax reports malformed text input.
	ErrSyntax = errors.New("syntax error")
	// ErrTypeMismatch reports a wrong operand kind for an operator.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidKeyType reports a non-scalar used as an object key.
	ErrInvalidKeyType = errors.New("invalid key type")
	// ErrValueTooLarge reports a value exceeding an encoding bound.
	ErrValueTooLarge = errors.New("value too large")
	// ErrStackDepth reports that the recursion guard tripped.
	ErrStackDepth = errors.New("stack depth exceeded")
	// ErrMalformedComposite reports an invalid vertex or edge shape.
	ErrMalformedComposite = errors.New("malformed composite")
)

// MaxDepth bounds recursion on nested values. Deeper nesting fails with
// ErrStackDepth rather than exhausting the native stack.
const MaxDepth = 1000

func CheckDepth(depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w: nesting deeper than %d", ErrStackDepth, MaxDepth)
	}
	return nil
}

package optimizer

import "errors"

var (
	// ErrInvalidLValue is returned when the left side of an assignment is not
	// an assignable location.
	ErrInvalidLValue = errors.New("invalid lvalue")
	// ErrTreeTooDeep is returned when a tree is nested deeper than the
	// configured limit.
	ErrTreeTooDeep = errors.New("tree too deep")
	// ErrUnknownPass is returned when building a pipeline from an unknown
	// pass name.
	ErrUnknownPass = errors.New("unknown pass")
)

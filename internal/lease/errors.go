package lease

import "errors"

var (
	// ErrValidation indicates malformed input, such as a reversed date interval.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the caller is authenticated but not authorized.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidState indicates the operation is not legal for the current status.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict indicates the operation would violate the no-overlap or
	// room-attachment invariant.
	ErrConflict = errors.New("conflict")
)

package member

import "errors"

var (
	// ErrMemberNotFound indicates the member doesn't exist.
	ErrMemberNotFound = errors.New("member not found")
	// ErrInvalidInput indicates invalid member input.
	ErrInvalidInput = errors.New("invalid member input")
)

package buffer

import "errors"

// Errors returned by buffer operations.
var (
	ErrLineOutOfRange    = errors.New("line out of range")
	ErrPointOutOfRange   = errors.New("point out of range")
	ErrRangeInvalid      = errors.New("invalid range")
	ErrEditsOverlap      = errors.New("edits overlap or are not in reverse order")
	ErrInvalidLineEnding = errors.New("invalid line ending")
)

package sanitizer

import "errors"

var (
	ErrNotStructPointer = errors.New("sanitizer: value must be a non-nil pointer to a struct")
	ErrUnknownRule      = errors.New("sanitizer: unknown rule")
	ErrInvalidRule      = errors.New("sanitizer: invalid rule argument")
)

package site

import "errors"

var (
	ErrUnknownStoreDriver = errors.New("unknown store driver")
	ErrNilOption          = errors.New("option value cannot be nil")
)

package binder

import "errors"

var (
	// ErrUnsupportedMediaType is returned when Content-Type names a format the binder does not read.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrMissingContentType is returned when a body binder gets no Content-Type header.
	ErrMissingContentType = errors.New("missing content type")

	ErrFailedToParseJSON  = errors.New("failed to parse JSON request body")
	ErrFailedToParseForm  = errors.New("failed to parse form data")
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")
	ErrFailedToParsePath  = errors.New("failed to parse path parameters")

	// ErrInvalidTarget is returned when v is not a non-nil pointer to a struct
	// or carries malformed tags.
	ErrInvalidTarget = errors.New("invalid binding target")
)

// IsMediaTypeError reports whether err was caused by the request's Content-Type.
func IsMediaTypeError(err error) bool {
	return errors.Is(err, ErrUnsupportedMediaType) || errors.Is(err, ErrMissingContentType)
}

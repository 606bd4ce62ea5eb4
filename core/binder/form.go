package binder

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
)

// DefaultMaxMemory is the in-memory limit for multipart forms; larger parts
// spill to disk.
const DefaultMaxMemory = 10 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data
// values into fields tagged `form:"name"`. Untagged fields use their
// lowercased name and `form:"-"` skips a field. Query string values are
// ignored.
func Form() Binder {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected a form", ErrMissingContentType)
		}
		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, contentType)
		}

		var values url.Values
		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
			}
			values = r.PostForm

		case "multipart/form-data":
			if !validBoundary(params["boundary"]) {
				return fmt.Errorf("%w: invalid boundary", ErrFailedToParseForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %w", ErrFailedToParseForm, err)
			}
			values = r.MultipartForm.Value

		default:
			return fmt.Errorf("%w: got %q, expected a form", ErrUnsupportedMediaType, mediaType)
		}

		return bindValues(v, "form", values, ErrFailedToParseForm)
	}
}

// validBoundary rejects empty, oversized or line-breaking multipart boundaries.
func validBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > 70 {
		return false
	}
	for _, r := range boundary {
		if r == 0 || r == '\r' || r == '\n' {
			return false
		}
	}
	return true
}

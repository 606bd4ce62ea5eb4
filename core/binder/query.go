package binder

import "net/http"

// Query binds URL query parameters into fields tagged `query:"name"`.
// Slices accept repeated keys or comma-separated values.
func Query() Binder {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}

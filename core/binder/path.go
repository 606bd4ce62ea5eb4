package binder

import "net/http"

// Path binds route wildcards into fields tagged `path:"name"`. Values come
// from http.Request.PathValue, which the router fills for every
// "{name}" segment.
func Path() Binder {
	return PathWithExtractor(func(r *http.Request, name string) string {
		return r.PathValue(name)
	})
}

// PathWithExtractor is Path for routers that keep wildcards elsewhere.
func PathWithExtractor(extract func(r *http.Request, name string) string) Binder {
	return func(r *http.Request, v any) error {
		if extract == nil {
			return ErrInvalidTarget
		}
		return bindFields(v, "path", func(name string) []string {
			if s := extract(r, name); s != "" {
				return []string{s}
			}
			return nil
		}, ErrFailedToParsePath)
	}
}

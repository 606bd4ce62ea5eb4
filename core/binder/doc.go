// Package binder maps request data onto Go structs.
//
// Each Binder reads one source: JSON bodies, url-encoded or multipart forms,
// query strings or route wildcards. Bind chains binders and then runs the
// sanitizer and validator packages over the result, so a handler gets a
// cleaned, checked value or an error it can map to a status code:
//
//	type articleRequest struct {
//		Title string `json:"title" sanitize:"strip_html,text" validate:"required;max:500"`
//	}
//
//	var req articleRequest
//	err := binder.Bind(r, &req, binder.JSON())
//	switch {
//	case binder.IsMediaTypeError(err):
//		// 415
//	case validator.IsValidationError(err):
//		// 422
//	case err != nil:
//		// 400
//	}
//
// String values from forms, queries and paths have control characters
// other than tab and line breaks removed.
package binder

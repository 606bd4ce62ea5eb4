package binder

import (
	"fmt"
	"net/http"

	"github.com/sagetools/sagekit/core/sanitizer"
	"github.com/sagetools/sagekit/core/validator"
)

// Binder fills v from one part of the request.
type Binder func(r *http.Request, v any) error

// Bind runs binders in order, then applies the `sanitize` tags and checks
// the `validate` tags of v. Validation failures are returned as
// validator.ValidationErrors, everything else wraps one of this package's
// sentinel errors.
func Bind(r *http.Request, v any, binders ...Binder) error {
	for _, bind := range binders {
		if err := bind(r, v); err != nil {
			return err
		}
	}
	if err := sanitizer.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}
	return validator.ValidateStruct(v)
}

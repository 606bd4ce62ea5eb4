// Package validator checks struct fields against rules declared in a
// `validate` struct tag.
//
// Rules are separated by semicolons and take comma-separated parameters
// after a colon:
//
//	type articleRequest struct {
//		Title string `validate:"required;max:500"`
//		Slug  string `validate:"max:255;slug"`
//	}
//
//	if err := validator.ValidateStruct(&req); err != nil {
//		var verrs validator.ValidationErrors
//		if errors.As(err, &verrs) {
//			// verrs[i].TranslationKey feeds an i18n translator
//		}
//	}
//
// Built-in rules: required, min, max, len, in, not_in, uuid, slug,
// timezone, name, regex and half_step. Empty values only run "required",
// so every other rule is optional by default. RegisterValidator adds
// project-specific rules.
//
// The helpers behind the tags (Required, MaxLenString, ValidTimezone, ...)
// can also be called directly when a check does not fit a struct tag.
package validator

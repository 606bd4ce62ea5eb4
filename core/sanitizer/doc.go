// Package sanitizer cleans user-supplied strings before they are stored or
// turned into slugs. Rules are listed in a struct tag:
//
//	type articleRequest struct {
//		Title string `json:"title" sanitize:"strip_html,text,max:200"`
//	}
//
//	if err := sanitizer.Struct(&req); err != nil {
//		return err
//	}
//
// Built-in rules: trim, lower, single_line, strip_html, no_control, text and
// max:N. Register adds custom rules.
package sanitizer

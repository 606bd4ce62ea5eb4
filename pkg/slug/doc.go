// Package slug turns arbitrary text into URL-safe slugs.
//
// By default the output is restricted to [a-z0-9_-]: text is decomposed with
// NFKD, combining marks are dropped, a handful of letters without a
// decomposition (ß, æ, ø, ł, đ, œ, þ) are spelled out, and anything left that
// is not ASCII is removed. AllowUnicode keeps letters from any script after
// NFKC normalization instead.
//
//	slug.Make("Straße in München")              // "strasse-in-munchen"
//	slug.Make("Привет мир", slug.AllowUnicode(true)) // "привет-мир"
//	slug.Make("Document Title", slug.Separator("_")) // "document_title"
//
// Punctuation is removed in place, whitespace and hyphen runs become a single
// separator, and leading or trailing separators and underscores are trimmed.
// MaxLength truncates on rune boundaries; WithSuffix appends a random suffix
// and reserves room for it within MaxLength.
package slug

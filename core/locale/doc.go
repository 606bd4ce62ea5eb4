// Package locale keeps request paths and the language cookie consistent with
// a set of supported languages.
//
// The default language is served without a path prefix; every other language
// lives under /<code>/. A Rewriter built from Config answers, for each
// request, which language to activate and whether the client should be
// redirected to the canonical URL for it:
//
//	rw, err := locale.New(locale.Config{
//		Languages: locale.Languages{{Code: "en"}, {Code: "fr"}, {Code: "es"}},
//		Default:   "en",
//	})
//
//	d := rw.Decide(locale.Input{Path: "/about/", CookieLanguage: "fr"})
//	// d.Language == "fr", d.Redirect == "/fr/about/"
//
// The HTTP wiring lives in middleware.Locale. SetLanguage is a handler for
// language switch forms.
//
// Config loads from the environment (LOCALE_LANGUAGES="en:English,fr",
// LOCALE_DEFAULT, LOCALE_COOKIE_NAME, LOCALE_EXCLUDED_PREFIXES) or from TOML
// with LoadTOML:
//
//	[locale]
//	default = "en"
//	languages = [
//		{ code = "en", name = "English" },
//		{ code = "fr" },
//	]
//
// Codes must be valid BCP 47 tags. Missing names are filled with the
// language's name for itself ("français").
package locale

// Package i18n translates messages by language and namespace, with CLDR
// plural rules and %{name} placeholders.
//
// Catalogs are immutable once built:
//
//	tr, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithTOML(translations, "translations"),
//	)
//
//	tr.T("es", "site", "welcome", i18n.M{"app": "sagekit"})
//	tr.Tn("es", "site", "articles", 3)
//
// Lookups fall back to the default language and then to the key itself;
// WithMissingKeyHandler reports those misses. Plural categories come from
// golang.org/x/text/feature/plural, and a missing category falls back to
// "other".
//
// A Translator fixes the language and namespace for one request; the
// I18n middleware stores one in the request context.
package i18n

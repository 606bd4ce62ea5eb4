package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// CLDR plural categories used as translation sub-keys.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// PluralCategory returns the CLDR cardinal category of the integer n in lang.
// Unknown languages use the root rules, where every number is "other".
func PluralCategory(lang string, n int) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	if n < 0 {
		n = -n
	}

	switch plural.Cardinal.MatchPlural(tag, n, 0, 0, 0, 0) {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	}
	return PluralOther
}

// pluralForms lists the sub-keys to try for n, most specific first.
// An explicit "zero" form wins for 0 even where CLDR files 0 under another
// category, so catalogs can say "no articles".
func pluralForms(lang string, n int) []string {
	category := PluralCategory(lang, n)
	var forms []string
	if n == 0 && category != PluralZero {
		forms = append(forms, PluralZero)
	}
	forms = append(forms, category)

	switch category {
	case PluralTwo:
		forms = append(forms, PluralFew, PluralMany)
	case PluralFew:
		forms = append(forms, PluralMany)
	}
	if category != PluralOther {
		forms = append(forms, PluralOther)
	}
	return forms
}

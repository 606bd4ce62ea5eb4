package locale

// Input is what the rewriter needs to know about an inbound request.
type Input struct {
	// Path is the request path, without query string.
	Path string
	// CookieLanguage is the raw language cookie value, "" if absent.
	CookieLanguage string
	// AcceptLanguage is the raw Accept-Language header; only consulted for
	// excluded paths.
	AcceptLanguage string
}

// Decision is the outcome for one request.
type Decision struct {
	// Language is the language to activate. Always a supported code.
	Language string
	// Redirect is the canonical path to redirect to, "" for none.
	Redirect string
	// Bypass is set when the path matched an excluded prefix.
	Bypass bool
}

// Decide evaluates the request against the prefix rules in priority order.
// The first matching rule wins:
//
//  1. Excluded path: no rewrite. The language is taken from a valid cookie,
//     then Accept-Language, then the default.
//  2. Valid cookie: activate it. A non-default cookie redirects unless the
//     URL already carries that prefix; a default cookie redirects a prefixed
//     URL to its unprefixed form.
//  3. Valid URL prefix: activate it. A non-default prefix that differs from
//     the cookie redirects to its canonical form.
//  4. Otherwise the default is activated, redirecting to the unprefixed path
//     only when a prefix was present and the cookie is not the default.
//
// Unknown codes from either source count as absent. A redirect that would
// point at the input path itself, or off this host, is dropped.
func (rw *Rewriter) Decide(in Input) Decision {
	if rw.IsExcluded(in.Path) {
		lang := in.CookieLanguage
		if !rw.IsSupported(lang) {
			lang = rw.MatchAcceptLanguage(in.AcceptLanguage)
		}
		return Decision{Language: lang, Bypass: true}
	}

	def := rw.cfg.Default
	urlLang := rw.LanguageFromPath(in.Path)
	cookieLang := in.CookieLanguage
	clean := rw.StripPrefix(in.Path)

	var d Decision
	switch {
	case rw.IsSupported(cookieLang):
		d.Language = cookieLang
		switch {
		case cookieLang != def && (urlLang == "" || urlLang != cookieLang):
			d.Redirect = rw.AddPrefix(clean, cookieLang)
		case cookieLang == def && urlLang != "" && urlLang != def:
			d.Redirect = clean
		}

	case rw.IsSupported(urlLang):
		d.Language = urlLang
		if urlLang != def && urlLang != cookieLang {
			d.Redirect = rw.AddPrefix(clean, urlLang)
		}

	default:
		d.Language = def
		if urlLang != "" && cookieLang != def {
			d.Redirect = clean
		}
	}

	if d.Redirect == in.Path || !IsLocalPath(d.Redirect) {
		d.Redirect = ""
	}
	return d
}

// NeedsCookie reports whether the language cookie must be rewritten so that
// it holds active.
func NeedsCookie(active, cookieValue string) bool {
	return active != "" && active != cookieValue
}

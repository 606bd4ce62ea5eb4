package locale

import (
	"net/http"

	"github.com/sagetools/sagekit/core/cookie"
)

// CookieMaxAge is the lifetime of the language cookie in seconds (one year).
const CookieMaxAge = 365 * 24 * 60 * 60

// ReadCookie returns the raw language cookie value, "" if absent.
func (rw *Rewriter) ReadCookie(r *http.Request) string {
	c, err := r.Cookie(rw.cfg.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// WriteCookie stores lang in the language cookie. The value is a plain
// language code readable by client-side code. A nil manager writes the cookie
// with net/http defaults.
func (rw *Rewriter) WriteCookie(w http.ResponseWriter, m *cookie.Manager, lang string) error {
	if m != nil {
		return m.Set(w, rw.cfg.CookieName, lang,
			cookie.WithMaxAge(CookieMaxAge),
			cookie.WithHTTPOnly(false),
		)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     rw.cfg.CookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

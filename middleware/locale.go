package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sagetools/sagekit/core/cookie"
	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/locale"
	"github.com/sagetools/sagekit/core/logger"
)

type languageContextKey struct{}

// LocaleConfig configures the locale middleware.
type LocaleConfig struct {
	Skip func(ctx handler.Context) bool
	// Rewriter holds the language configuration (required).
	Rewriter *locale.Rewriter
	// Cookies writes the language cookie. Nil uses plain net/http cookies.
	Cookies *cookie.Manager
	// RedirectStatus is used for canonical redirects (default: 302).
	RedirectStatus int
	Logger         *slog.Logger
}

// Locale activates the request language and redirects to the canonical
// language-prefixed URL when needed.
func Locale[C handler.Context](rw *locale.Rewriter) handler.Middleware[C] {
	return LocaleWithConfig[C](LocaleConfig{Rewriter: rw})
}

// LocaleWithConfig runs locale.Rewriter.Decide for each request. The active
// language is stored in the context, a redirect short-circuits the handler,
// and the language cookie is rewritten on every response where it differs
// from the active language. Query strings survive redirects.
func LocaleWithConfig[C handler.Context](cfg LocaleConfig) handler.Middleware[C] {
	if cfg.Rewriter == nil {
		panic("locale middleware: rewriter is required")
	}
	if cfg.RedirectStatus < 300 || cfg.RedirectStatus >= 400 {
		cfg.RedirectStatus = http.StatusFound
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	rw := cfg.Rewriter

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			current := rw.ReadCookie(req)
			d := rw.Decide(locale.Input{
				Path:           req.URL.Path,
				CookieLanguage: current,
				AcceptLanguage: req.Header.Get("Accept-Language"),
			})
			ctx.SetValue(languageContextKey{}, d.Language)

			syncCookie := func(w http.ResponseWriter) {
				if !locale.NeedsCookie(d.Language, current) {
					return
				}
				if err := rw.WriteCookie(w, cfg.Cookies, d.Language); err != nil {
					cfg.Logger.WarnContext(ctx, "failed to write language cookie",
						logger.Language(d.Language),
						logger.Error(err),
					)
				}
			}

			if d.Redirect != "" {
				target := d.Redirect
				if req.URL.RawQuery != "" {
					target += "?" + req.URL.RawQuery
				}
				cfg.Logger.DebugContext(ctx, "redirecting to canonical language path",
					logger.Path(req.URL.Path),
					logger.Redirect(target),
					logger.Language(d.Language),
				)
				return func(w http.ResponseWriter, r *http.Request) error {
					syncCookie(w)
					http.Redirect(w, r, target, cfg.RedirectStatus)
					return nil
				}
			}

			resp := next(ctx)
			if resp == nil {
				return nil
			}
			return func(w http.ResponseWriter, r *http.Request) error {
				syncCookie(w)
				return resp(w, r)
			}
		}
	}
}

// GetLanguage returns the language activated by the locale middleware.
func GetLanguage(ctx context.Context) (string, bool) {
	lang, ok := ctx.Value(languageContextKey{}).(string)
	return lang, ok
}

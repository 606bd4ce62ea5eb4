package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sagetools/sagekit/core/cookie"
	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/logger"
	"github.com/sagetools/sagekit/core/response"
)

type csrfContextKey struct{}

// Defaults for the CSRF middleware.
const (
	DefaultCSRFFieldName  = "csrf_token"
	DefaultCSRFHeaderName = "X-CSRF-Token"
	DefaultCSRFCookieName = "_csrf"

	csrfTokenLength = 32
)

// CSRFEnvConfig holds the environment-backed names used by the CSRF middleware.
type CSRFEnvConfig struct {
	// FieldName is the form field that carries the token.
	FieldName  string `env:"CSRF_FIELD_NAME" envDefault:"csrf_token"`
	HeaderName string `env:"CSRF_HEADER_NAME" envDefault:"X-CSRF-Token"`
	CookieName string `env:"CSRF_COOKIE_NAME" envDefault:"_csrf"`
}

// CSRFConfig configures the CSRF middleware.
type CSRFConfig struct {
	Skip func(ctx handler.Context) bool
	// Cookies signs the token cookie (required).
	Cookies *cookie.Manager
	// FieldName is the form field checked on unsafe requests (default: "csrf_token").
	FieldName string
	// HeaderName is checked before the form field (default: "X-CSRF-Token").
	HeaderName string
	// CookieName holds the signed token (default: "_csrf").
	CookieName string
	// ErrorHandler renders rejected requests (default: 403 Forbidden).
	ErrorHandler func(ctx handler.Context, err error) handler.Response
	Logger       *slog.Logger
}

// CSRF protects unsafe methods with a double-submit token whose cookie copy
// is signed by cookies.
func CSRF[C handler.Context](cookies *cookie.Manager) handler.Middleware[C] {
	return CSRFWithConfig[C](CSRFConfig{Cookies: cookies})
}

// CSRFFromEnv builds the middleware from environment-backed names.
func CSRFFromEnv[C handler.Context](env CSRFEnvConfig, cookies *cookie.Manager, log *slog.Logger) handler.Middleware[C] {
	return CSRFWithConfig[C](CSRFConfig{
		Cookies:    cookies,
		FieldName:  env.FieldName,
		HeaderName: env.HeaderName,
		CookieName: env.CookieName,
		Logger:     log,
	})
}

// CSRFWithConfig issues a random token in a signed cookie and exposes it
// through GetCSRFToken. GET, HEAD, OPTIONS and TRACE pass through; any other
// method must echo the token in HeaderName or the FieldName form field.
func CSRFWithConfig[C handler.Context](cfg CSRFConfig) handler.Middleware[C] {
	if cfg.Cookies == nil {
		panic("csrf middleware: cookie manager is required")
	}
	if cfg.FieldName == "" {
		cfg.FieldName = DefaultCSRFFieldName
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultCSRFHeaderName
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCSRFCookieName
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(_ handler.Context, err error) handler.Response {
			return response.Error(err)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			token, err := cfg.Cookies.GetSigned(req, cfg.CookieName)
			fresh := err != nil || len(token) == 0
			if fresh {
				if token, err = newCSRFToken(); err != nil {
					return response.Error(err)
				}
			}

			if !isSafeMethod(req.Method) {
				sent := req.Header.Get(cfg.HeaderName)
				if sent == "" {
					sent = req.PostFormValue(cfg.FieldName)
				}
				if fresh || sent == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
					cfg.Logger.WarnContext(ctx, "csrf token rejected",
						logger.Group("csrf",
							logger.Key("cookie", !fresh),
							logger.Key("submitted", sent != ""),
						),
						logger.Method(req.Method),
						logger.Path(req.URL.Path),
					)
					return cfg.ErrorHandler(ctx, response.ErrForbidden.WithMessage("invalid CSRF token"))
				}
			}

			ctx.SetValue(csrfContextKey{}, csrfState{token: token, field: cfg.FieldName})
			resp := next(ctx)
			if !fresh || resp == nil {
				return resp
			}
			return func(w http.ResponseWriter, r *http.Request) error {
				if err := cfg.Cookies.SetSigned(w, cfg.CookieName, token,
					cookie.WithHTTPOnly(true),
					cookie.WithSameSite(http.SameSiteLaxMode),
				); err != nil {
					cfg.Logger.WarnContext(ctx, "failed to write csrf cookie", logger.Error(err))
				}
				return resp(w, r)
			}
		}
	}
}

type csrfState struct {
	token string
	field string
}

// GetCSRFToken returns the token that forms must echo back.
func GetCSRFToken(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(csrfContextKey{}).(csrfState)
	return s.token, ok
}

// CSRFField returns the form field name and token to render in a hidden
// input. Both are empty outside the CSRF middleware.
func CSRFField(ctx context.Context) (name, token string) {
	s, _ := ctx.Value(csrfContextKey{}).(csrfState)
	return s.field, s.token
}

func isSafeMethod(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sagetools/sagekit/core/cookie"
	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/logger"
)

type timezoneContextKey struct{}

// TimezoneConfig configures the timezone middleware.
type TimezoneConfig struct {
	Skip func(ctx handler.Context) bool
	// Cookies verifies the signed timezone cookie. Nil reads a plain cookie.
	Cookies *cookie.Manager
	// CookieName holds the IANA zone name (default: "tz").
	CookieName string
	// Source reads the zone name and replaces the cookie lookup when set.
	// SessionTimezone builds one that reads session data.
	Source func(ctx handler.Context) (string, error)
	// Default is used when no zone is stored or it is invalid (default: UTC).
	Default *time.Location
	Logger  *slog.Logger
}

// Timezone activates the zone stored in a signed "tz" cookie.
func Timezone[C handler.Context](cookies *cookie.Manager) handler.Middleware[C] {
	return TimezoneWithConfig[C](TimezoneConfig{Cookies: cookies})
}

// SessionTimezone returns a TimezoneConfig.Source that reads the zone name
// from the session data loaded by the session middleware.
func SessionTimezone[Data any](field func(Data) string) func(ctx handler.Context) (string, error) {
	return func(ctx handler.Context) (string, error) {
		sess, ok := GetSession[Data](ctx)
		if !ok {
			return "", nil
		}
		return field(sess.Data), nil
	}
}

// TimezoneWithConfig resolves the user's time zone for each request and stores
// it in the context. Unknown zone names are logged and replaced by Default.
func TimezoneWithConfig[C handler.Context](cfg TimezoneConfig) handler.Middleware[C] {
	if cfg.CookieName == "" {
		cfg.CookieName = "tz"
	}
	if cfg.Default == nil {
		cfg.Default = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	read := cfg.Source
	if read == nil {
		read = func(ctx handler.Context) (string, error) {
			if cfg.Cookies != nil {
				return cfg.Cookies.GetSigned(ctx.Request(), cfg.CookieName)
			}
			c, err := ctx.Request().Cookie(cfg.CookieName)
			if err != nil {
				return "", cookie.ErrCookieNotFound
			}
			return c.Value, nil
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			loc := cfg.Default
			name, err := read(ctx)
			switch {
			case errors.Is(err, cookie.ErrCookieNotFound):
			case err != nil:
				cfg.Logger.WarnContext(ctx, "failed to read timezone", logger.Error(err))
			case name != "":
				if l, lerr := time.LoadLocation(name); lerr == nil {
					loc = l
				} else {
					cfg.Logger.ErrorContext(ctx, "unknown timezone",
						logger.Key("timezone", name),
						logger.Error(lerr),
					)
				}
			}

			ctx.SetValue(timezoneContextKey{}, loc)
			return next(ctx)
		}
	}
}

// GetTimezone returns the location activated by the timezone middleware.
func GetTimezone(ctx context.Context) (*time.Location, bool) {
	loc, ok := ctx.Value(timezoneContextKey{}).(*time.Location)
	return loc, ok
}

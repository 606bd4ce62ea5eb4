package sessiontransport

import (
	"github.com/sagetools/sagekit/core/cookie"
	"github.com/sagetools/sagekit/core/session"
)

// DefaultCookieName names the session cookie when none is configured.
const DefaultCookieName = "__session"

// CookieConfig provides environment-based configuration for the cookie transport.
type CookieConfig struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
}

// NewCookieFromConfig creates a cookie transport from configuration.
func NewCookieFromConfig[Data any](cfg CookieConfig, mgr *session.Manager[Data], cookieMgr *cookie.Manager) *Cookie[Data] {
	return NewCookie(mgr, cookieMgr, cfg.CookieName)
}

package sessiontransport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sagetools/sagekit/core/cookie"
	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/session"
)

// Cookie carries the session token in a signed cookie.
type Cookie[Data any] struct {
	manager   *session.Manager[Data]
	cookieMgr *cookie.Manager
	name      string
}

// NewCookie creates a cookie-based session transport.
func NewCookie[Data any](mgr *session.Manager[Data], cookieMgr *cookie.Manager, name string) *Cookie[Data] {
	if mgr == nil || cookieMgr == nil {
		panic("sessiontransport: session and cookie managers are required")
	}
	if name == "" {
		name = DefaultCookieName
	}
	return &Cookie[Data]{manager: mgr, cookieMgr: cookieMgr, name: name}
}

// Load returns the session named by the request cookie. A missing, tampered
// or expired cookie yields a fresh session; only store failures are errors.
func (c *Cookie[Data]) Load(ctx handler.Context) (session.Session[Data], error) {
	token, err := c.cookieMgr.GetSigned(ctx.Request(), c.name)
	if err != nil {
		return c.manager.New()
	}

	sess, err := c.manager.GetByToken(ctx, token)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return c.manager.New()
	}
	return session.Session[Data]{}, fmt.Errorf("sessiontransport: load session: %w", err)
}

// Store persists sess and keeps the cookie in step with it: the cookie is
// written when the session was saved and removed when it was destroyed.
func (c *Cookie[Data]) Store(ctx handler.Context, sess session.Session[Data]) error {
	written, err := c.manager.Store(ctx, sess)
	if err != nil {
		return err
	}
	if !written {
		return nil
	}
	if sess.IsDeleted() {
		c.cookieMgr.Delete(ctx.ResponseWriter(), c.name)
		return nil
	}
	return c.save(ctx.ResponseWriter(), sess)
}

func (c *Cookie[Data]) save(w http.ResponseWriter, sess session.Session[Data]) error {
	until := time.Until(sess.ExpiresAt)
	if until <= 0 {
		return fmt.Errorf("%w: expired %v ago", ErrExpiredSession, -until)
	}
	return c.cookieMgr.SetSigned(w, c.name, sess.Token,
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithMaxAge(int(until.Seconds())),
	)
}

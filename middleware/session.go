package middleware

import (
	"log/slog"

	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/logger"
	"github.com/sagetools/sagekit/core/response"
	"github.com/sagetools/sagekit/core/session"
)

type sessionKey struct{}

// SessionTransport loads and stores sessions for a request.
type SessionTransport[Data any] interface {
	Load(handler.Context) (session.Session[Data], error)
	Store(handler.Context, session.Session[Data]) error
}

// SessionConfig configures the session middleware.
type SessionConfig[C handler.Context, Data any] struct {
	Skip func(ctx C) bool
	// Transport loads the session before the handler and stores it after (required).
	Transport SessionTransport[Data]
	Logger    *slog.Logger
	// ErrorHandler builds the response when storing fails
	// (default: 500 Internal Server Error).
	ErrorHandler func(ctx C, err error) handler.Response
}

// Session loads the session before the handler runs and stores it after.
//
//	r.Use(middleware.Session[*router.Context, Prefs](transport))
//
//	func handler(ctx *router.Context) handler.Response {
//		sess := middleware.MustGetSession[Prefs](ctx)
//		sess.SetData(Prefs{Timezone: "Europe/Madrid"})
//		middleware.SetSession(ctx, sess)
//		...
//	}
func Session[C handler.Context, Data any](transport SessionTransport[Data]) handler.Middleware[C] {
	return SessionWithConfig(SessionConfig[C, Data]{Transport: transport})
}

// SessionWithConfig creates a session middleware with custom configuration.
// A session that fails to load is logged and replaced by an empty one so the
// request still succeeds.
func SessionWithConfig[C handler.Context, Data any](cfg SessionConfig[C, Data]) handler.Middleware[C] {
	if cfg.Transport == nil {
		panic("session middleware: transport is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(C, error) handler.Response {
			return response.Error(response.ErrInternalServerError)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess, err := cfg.Transport.Load(ctx)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return response.Error(ctxErr)
				}
				cfg.Logger.ErrorContext(ctx, "failed to load session",
					logger.Component("session"),
					logger.Action("load"),
					logger.Error(err),
				)
				sess = session.Session[Data]{}
			}

			ctx.SetValue(sessionKey{}, sess)
			resp := next(ctx)

			current, ok := GetSession[Data](ctx)
			if !ok || current.Token == "" {
				return resp
			}
			if err := cfg.Transport.Store(ctx, current); err != nil {
				cfg.Logger.ErrorContext(ctx, "failed to store session",
					logger.Component("session"),
					logger.Action("store"),
					logger.Error(err),
				)
				return cfg.ErrorHandler(ctx, err)
			}
			return resp
		}
	}
}

// GetSession returns the session loaded by the session middleware.
func GetSession[Data any](ctx handler.Context) (session.Session[Data], bool) {
	if ctx == nil {
		return session.Session[Data]{}, false
	}
	sess, ok := ctx.Value(sessionKey{}).(session.Session[Data])
	return sess, ok
}

// MustGetSession returns the session or panics when the middleware is missing.
func MustGetSession[Data any](ctx handler.Context) session.Session[Data] {
	sess, ok := GetSession[Data](ctx)
	if !ok {
		panic("session not found in context")
	}
	return sess
}

// SetSession replaces the session stored in ctx. Changes are persisted by
// the session middleware once the handler returns.
func SetSession[Data any](ctx handler.Context, sess session.Session[Data]) {
	ctx.SetValue(sessionKey{}, sess)
}

package site

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sagetools/sagekit/core/cookie"
	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/health"
	"github.com/sagetools/sagekit/core/i18n"
	"github.com/sagetools/sagekit/core/locale"
	"github.com/sagetools/sagekit/core/logger"
	"github.com/sagetools/sagekit/core/router"
	"github.com/sagetools/sagekit/core/server"
	"github.com/sagetools/sagekit/core/session"
	"github.com/sagetools/sagekit/core/sessiontransport"
	"github.com/sagetools/sagekit/core/slugger"
	"github.com/sagetools/sagekit/middleware"
)

const sessionCleanupInterval = time.Hour

// preferences is the per-visitor data kept in the session.
type preferences struct {
	Timezone string `json:"timezone,omitempty"`
}

// App wires configuration, storage, the slug resolver, the locale rewriter
// and the HTTP stack into one runnable unit.
type App struct {
	cfg          Config
	log          *slog.Logger
	store        slugger.Store
	sessionStore session.Store[preferences]
	resolver     *slugger.Resolver
	rewriter     *locale.Rewriter
	translations *i18n.I18n
	cookies      *cookie.Manager
	sessionMgr   *session.Manager[preferences]
	sessions     *sessiontransport.Cookie[preferences]
	router       router.Router[*router.Context]
	server       *server.Server

	checks  []health.Check
	closers []func()
}

// Option customizes an App before its defaults are filled in.
type Option func(*App) error

// WithLogger replaces the logger built from Config.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) error {
		if log == nil {
			return ErrNilOption
		}
		a.log = log
		return nil
	}
}

// WithStore bypasses STORE_DRIVER and uses store directly.
func WithStore(store slugger.Store) Option {
	return func(a *App) error {
		if store == nil {
			return ErrNilOption
		}
		a.store = store
		return nil
	}
}

// WithCookieManager replaces the manager built from Config.Cookie.
func WithCookieManager(m *cookie.Manager) Option {
	return func(a *App) error {
		if m == nil {
			return ErrNilOption
		}
		a.cookies = m
		return nil
	}
}

// New builds the application. Close releases the store connections.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	a := &App{cfg: cfg}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.log == nil {
		a.log = newLogger(cfg)
	}

	if a.store == nil {
		h, err := openStore(ctx, cfg.StoreDriver, cfg.Collection, a.log)
		if err != nil {
			return nil, err
		}
		a.store = h.store
		a.sessionStore = h.sessions
		a.closers = append(a.closers, h.close)
		if h.check.Fn != nil {
			a.checks = append(a.checks, h.check)
		}
	}

	resolver, err := slugger.New(a.store,
		slugger.WithConfig(cfg.Slug),
		slugger.WithLogger(a.log),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.resolver = resolver

	localeCfg, err := cfg.localeConfig()
	if err != nil {
		a.Close()
		return nil, err
	}
	if a.rewriter, err = locale.New(localeCfg); err != nil {
		a.Close()
		return nil, err
	}

	if a.translations, err = newTranslations(a.rewriter, a.log); err != nil {
		a.Close()
		return nil, err
	}

	if a.cookies == nil {
		if a.cookies, err = cookie.NewFromConfig(cfg.Cookie); err != nil {
			a.Close()
			return nil, err
		}
	}

	if a.sessionStore == nil {
		a.sessionStore = session.NewMemoryStore[preferences]()
	}
	a.sessionMgr = session.NewManager(a.sessionStore, session.WithConfig(cfg.Session))
	a.sessions = sessiontransport.NewCookieFromConfig(cfg.SessionCookie, a.sessionMgr, a.cookies)

	if a.server, err = server.New(cfg.Server, server.WithLogger(a.log)); err != nil {
		a.Close()
		return nil, err
	}

	a.router = router.New[*router.Context](
		router.WithLogger[*router.Context](a.log),
		router.WithMiddleware(
			middleware.RequestID[*router.Context](),
			middleware.Logging[*router.Context](a.log),
			middleware.MaintenanceWithConfig[*router.Context](middleware.MaintenanceConfig{
				Mode: cfg.Maintenance,
				Skip: isHealthRequest,
			}),
		),
	)
	a.routes()

	return a, nil
}

// Handler exposes the router for tests and embedding.
func (a *App) Handler() http.Handler {
	return a.router
}

// Resolver returns the slug resolver backing the article API.
func (a *App) Resolver() *slugger.Resolver {
	return a.resolver
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.log.InfoContext(ctx, "starting application",
		slog.String("store", a.cfg.StoreDriver),
		slog.Any("languages", a.rewriter.Languages().Codes()),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.router))
	g.Go(func() error {
		a.cleanupSessions(ctx, sessionCleanupInterval)
		return nil
	})
	return g.Wait()
}

// cleanupSessions drops expired sessions every interval until ctx is done.
func (a *App) cleanupSessions(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := a.sessionMgr.CleanupExpired(ctx)
			if err != nil {
				a.log.ErrorContext(ctx, "session cleanup failed",
					logger.Component("session"),
					logger.Action("cleanup"),
					logger.Error(err),
				)
				continue
			}
			if n > 0 {
				a.log.DebugContext(ctx, "expired sessions removed",
					logger.Component("session"),
					logger.Action("cleanup"),
					logger.Key("count", n),
				)
			}
		}
	}
}

// Close releases store connections. It is safe to call more than once.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithContextExtractors(requestIDAttr, languageAttr),
	}
	switch cfg.Env {
	case "production":
		opts = append(opts, logger.WithProduction(cfg.AppName))
	case "staging":
		opts = append(opts, logger.WithStaging(cfg.AppName))
	default:
		opts = append(opts, logger.WithDevelopment(cfg.AppName))
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	return logger.New(opts...)
}

func requestIDAttr(ctx context.Context) (slog.Attr, bool) {
	id, ok := middleware.GetRequestID(ctx)
	return slog.String("request_id", id), ok
}

func languageAttr(ctx context.Context) (slog.Attr, bool) {
	lang, ok := middleware.GetLanguage(ctx)
	return logger.Language(lang), ok
}

func isHealthRequest(ctx handler.Context) bool {
	return strings.HasPrefix(ctx.Request().URL.Path, "/health/")
}

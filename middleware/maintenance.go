package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/response"
)

type maintenanceContextKey struct{}

// MaintenanceMode holds site-wide mode flags, typically loaded from the environment.
type MaintenanceMode struct {
	UnderConstruction bool `env:"UNDER_CONSTRUCTION_MODE" envDefault:"false"`
	ComingSoon        bool `env:"COMING_SOON_MODE" envDefault:"false"`
}

// MaintenanceConfig configures the maintenance middleware.
type MaintenanceConfig struct {
	// Skip lets requests through while under construction, e.g. health checks.
	Skip func(ctx handler.Context) bool
	Mode MaintenanceMode
	// RetryAfter is sent with the 503 response when positive.
	RetryAfter time.Duration
	// Response renders blocked requests (default: 503 Service Unavailable error).
	Response handler.Response
}

// Maintenance exposes mode flags to handlers and blocks requests while the
// site is under construction.
func Maintenance[C handler.Context](mode MaintenanceMode) handler.Middleware[C] {
	return MaintenanceWithConfig[C](MaintenanceConfig{Mode: mode})
}

// MaintenanceWithConfig stores the mode in the context for every request.
// When UnderConstruction is set, requests not skipped get Response instead of
// reaching the handler. ComingSoon is informational only.
func MaintenanceWithConfig[C handler.Context](cfg MaintenanceConfig) handler.Middleware[C] {
	if cfg.Response == nil {
		cfg.Response = response.Error(response.ErrServiceUnavailable.WithMessage("Site is under construction"))
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			ctx.SetValue(maintenanceContextKey{}, cfg.Mode)

			if !cfg.Mode.UnderConstruction || (cfg.Skip != nil && cfg.Skip(ctx)) {
				return next(ctx)
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				if cfg.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(cfg.RetryAfter.Seconds())))
				}
				return cfg.Response(w, r)
			}
		}
	}
}

// GetMaintenanceMode returns the flags stored by the maintenance middleware.
func GetMaintenanceMode(ctx context.Context) (MaintenanceMode, bool) {
	mode, ok := ctx.Value(maintenanceContextKey{}).(MaintenanceMode)
	return mode, ok
}

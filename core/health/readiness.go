package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/logger"
	"github.com/sagetools/sagekit/core/response"
)

// DefaultCheckTimeout bounds the whole readiness check.
const DefaultCheckTimeout = 5 * time.Second

// Check is a named dependency check, usually a store Healthcheck.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Named pairs a check function with the name reported in logs.
func Named(name string, fn func(context.Context) error) Check {
	return Check{Name: name, Fn: fn}
}

// Readiness runs all checks concurrently and answers "READY", or 503 when
// any of them fails or the run exceeds DefaultCheckTimeout.
//
//	r.Get("/health/ready", health.Readiness[*router.Context](log,
//		health.Named("postgres", pg.Healthcheck(pool)),
//	))
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Nop()
	}

	return func(ctx C) handler.Response {
		if err := runChecks(ctx, checks); err != nil {
			log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
			return response.Error(response.ErrServiceUnavailable)
		}
		return response.String("READY")
	}
}

func runChecks(ctx context.Context, checks []Check) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultCheckTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range checks {
		if c.Fn == nil {
			continue
		}
		g.Go(func() error {
			if err := c.Fn(gctx); err != nil {
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	Skip   func(ctx handler.Context) bool
	Logger *slog.Logger
	// Level for successful requests (default: info). 5xx responses log at error.
	Level slog.Level
	// SlowRequestThreshold logs slower requests at warn (default: 5s).
	SlowRequestThreshold time.Duration
}

// Logging writes one structured record per request.
func Logging[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig logs method, path, status, duration and, when present,
// the request ID and active language after the response is rendered.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	log := cfg.Logger.With(logger.Component("http"))

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			resp := next(ctx)
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				rec := &statusRecorder{ResponseWriter: w}
				err := resp(rec, r)

				status := rec.status
				if status == 0 && err == nil {
					status = http.StatusOK
				}
				duration := time.Since(start)

				attrs := []slog.Attr{
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.Duration(duration),
				}
				// Errors are rendered later by the router, so the status may be unknown here.
				if status != 0 {
					attrs = append(attrs, logger.StatusCode(status))
				}
				if id, ok := GetRequestID(ctx); ok {
					attrs = append(attrs, logger.ID("request_id", id))
				}
				if lang, ok := GetLanguage(ctx); ok {
					attrs = append(attrs, logger.Language(lang))
				}
				if err != nil {
					attrs = append(attrs, logger.Error(err))
				}

				level := cfg.Level
				switch {
				case err != nil || status >= http.StatusInternalServerError:
					level = slog.LevelError
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
				}
				log.LogAttrs(ctx, level, "http request", attrs...)

				return err
			}
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

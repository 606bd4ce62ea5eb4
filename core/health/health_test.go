package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagetools/sagekit/core/health"
	"github.com/sagetools/sagekit/core/router"
)

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/health/live", health.Liveness[*router.Context])
	r.Get("/ping", health.NoContent[*router.Context])

	w := get(r, "/health/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())

	w = get(r, "/ping")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks []health.Check
		status int
	}{
		{name: "no checks", status: http.StatusOK},
		{name: "all pass", checks: []health.Check{health.Named("db", ok), health.Named("cache", ok)}, status: http.StatusOK},
		{name: "one fails", checks: []health.Check{health.Named("db", ok), health.Named("cache", fail)}, status: http.StatusServiceUnavailable},
		{name: "nil check ignored", checks: []health.Check{{Name: "empty"}}, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := router.New[*router.Context]()
			r.Get("/health/ready", health.Readiness[*router.Context](nil, tt.checks...))

			w := get(r, "/health/ready")
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "READY", w.Body.String())
			}
		})
	}
}

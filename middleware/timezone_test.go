package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagetools/sagekit/core/cookie"
	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/response"
	"github.com/sagetools/sagekit/core/router"
	"github.com/sagetools/sagekit/middleware"
)

func TestTimezone(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{"a-very-long-secret-key-of-32-chars!!"})
	require.NoError(t, err)

	r := router.New[*router.Context](router.WithMiddleware(middleware.Timezone[*router.Context](m)))
	r.Get("/", func(ctx *router.Context) handler.Response {
		loc, ok := middleware.GetTimezone(ctx)
		require.True(t, ok)
		return response.String(loc.String())
	})

	signed := func(value string) *http.Cookie {
		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "tz", value))
		return w.Result().Cookies()[0]
	}

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   string
	}{
		{"no cookie", nil, "UTC"},
		{"valid zone", signed("Europe/Paris"), "Europe/Paris"},
		{"unknown zone", signed("Mars/Olympus"), "UTC"},
		{"unsigned value", &http.Cookie{Name: "tz", Value: "Asia/Tokyo"}, "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestTimezonePlainCookie(t *testing.T) {
	t.Parallel()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	r := router.New[*router.Context](router.WithMiddleware(
		middleware.TimezoneWithConfig[*router.Context](middleware.TimezoneConfig{
			CookieName: "user_tz",
			Default:    tokyo,
		}),
	))
	r.Get("/", func(ctx *router.Context) handler.Response {
		loc, _ := middleware.GetTimezone(ctx)
		return response.String(loc.String())
	})

	w := get(r, "/", "")
	assert.Equal(t, "Asia/Tokyo", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "user_tz", Value: "America/New_York"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "America/New_York", w.Body.String())
}

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/i18n"
	"github.com/sagetools/sagekit/core/locale"
	"github.com/sagetools/sagekit/core/response"
	"github.com/sagetools/sagekit/core/router"
	"github.com/sagetools/sagekit/middleware"
)

func newTranslations(t *testing.T) *i18n.I18n {
	t.Helper()
	catalog, err := i18n.New(
		i18n.WithTranslations("en", "site", map[string]any{"hello": "Hello"}),
		i18n.WithTranslations("es", "site", map[string]any{"hello": "Hola"}),
		i18n.WithTranslations("fr", "site", map[string]any{"hello": "Bonjour"}),
	)
	require.NoError(t, err)
	return catalog
}

func greet(ctx *router.Context) handler.Response {
	tr, ok := middleware.GetTranslator(ctx)
	if !ok {
		return response.String("no translator")
	}
	return response.String(tr.Language() + " " + tr.T("hello"))
}

func TestI18nFollowsActiveLanguage(t *testing.T) {
	t.Parallel()

	rw, err := locale.New(locale.Config{
		Languages: locale.Languages{{Code: "en"}, {Code: "fr"}, {Code: "es"}},
		Default:   "en",
	})
	require.NoError(t, err)

	r := router.New[*router.Context](router.WithMiddleware(
		middleware.Locale[*router.Context](rw),
		middleware.I18n[*router.Context](newTranslations(t), "site"),
	))
	r.Get("/*", greet)
	r.Get("/", greet)

	assert.Equal(t, "es Hola", get(r, "/es/", "es").Body.String())
	assert.Equal(t, "en Hello", get(r, "/", "").Body.String())
	assert.Equal(t, "fr Bonjour", get(r, "/fr/about", "fr").Body.String())
}

func TestI18nAcceptLanguageFallback(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context](router.WithMiddleware(
		middleware.I18n[*router.Context](newTranslations(t), "site"),
	))
	r.Get("/", greet)

	tests := []struct {
		header string
		want   string
	}{
		{"", "en Hello"},
		{"fr-CA,fr;q=0.8", "fr Bonjour"},
		{"ja", "en Hello"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Accept-Language", tt.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Body.String(), tt.header)
	}
}

func TestI18nWithConfig(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context](router.WithMiddleware(
		middleware.I18nWithConfig[*router.Context](middleware.I18nConfig{
			I18n:              newTranslations(t),
			Namespace:         "site",
			LanguageExtractor: func(handler.Context) string { return "" },
			FallbackLanguage:  "es",
			Skip: func(ctx handler.Context) bool {
				return ctx.Request().URL.Path == "/skip"
			},
		}),
	))
	r.Get("/", greet)
	r.Get("/skip", greet)

	assert.Equal(t, "es Hola", get(r, "/", "").Body.String())
	assert.Equal(t, "no translator", get(r, "/skip", "").Body.String())

	assert.Panics(t, func() { middleware.I18n[*router.Context](nil, "site") })
	assert.Panics(t, func() { middleware.I18n[*router.Context](newTranslations(t), "") })
}

package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagetools/sagekit/core/i18n"
)

func newCatalog(t *testing.T, opts ...i18n.Option) *i18n.I18n {
	t.Helper()
	base := []i18n.Option{
		i18n.WithTranslations("en", "site", map[string]any{
			"welcome": "Welcome to %{app}",
			"home":    map[string]any{"title": "Home"},
			"articles": map[string]any{
				"zero":  "No articles",
				"one":   "%{count} article",
				"other": "%{count} articles",
			},
		}),
		i18n.WithTranslations("ru", "site", map[string]any{
			"welcome": "Добро пожаловать в %{app}",
			"articles": map[string]string{
				"one":  "%{count} статья",
				"few":  "%{count} статьи",
				"many": "%{count} статей",
			},
		}),
	}
	c, err := i18n.New(append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := i18n.New(i18n.WithDefaultLanguage(""))
	assert.ErrorIs(t, err, i18n.ErrEmptyLanguage)

	_, err = i18n.New(i18n.WithTranslations("", "site", nil))
	assert.ErrorIs(t, err, i18n.ErrEmptyLanguage)

	_, err = i18n.New(i18n.WithTranslations("en", "", nil))
	assert.ErrorIs(t, err, i18n.ErrEmptyNamespace)

	c := newCatalog(t, i18n.WithLanguages("es", "en"))
	assert.Equal(t, []string{"en", "es", "ru"}, c.Languages())
	assert.Equal(t, "en", c.DefaultLanguage())
}

func TestT(t *testing.T) {
	t.Parallel()

	var missing []string
	c := newCatalog(t, i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
		missing = append(missing, lang+":"+namespace+":"+key)
	}))

	assert.Equal(t, "Welcome to sagekit", c.T("en", "site", "welcome", i18n.M{"app": "sagekit"}))
	assert.Equal(t, "Добро пожаловать в sagekit", c.T("ru", "site", "welcome", i18n.M{"app": "sagekit"}))
	assert.Equal(t, "Home", c.T("en", "site", "home.title"))

	// Falls back to the default language, then to the key.
	assert.Equal(t, "Home", c.T("ru", "site", "home.title"))
	assert.Equal(t, "nope", c.T("ru", "site", "nope"))
	assert.Equal(t, []string{"ru:site:nope"}, missing)

	assert.True(t, c.Has("en", "site", "home.title"))
	assert.False(t, c.Has("ru", "site", "home.title"))
}

func TestTn(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)

	tests := []struct {
		lang string
		n    int
		want string
	}{
		{"en", 0, "No articles"},
		{"en", 1, "1 article"},
		{"en", 2, "2 articles"},
		{"ru", 1, "1 статья"},
		{"ru", 3, "3 статьи"},
		{"ru", 5, "5 статей"},
		{"ru", 21, "21 статья"},
		{"es", 4, "4 articles"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Tn(tt.lang, "site", "articles", tt.n), "%s %d", tt.lang, tt.n)
	}

	assert.Equal(t, "missing", c.Tn("en", "site", "missing", 1))
}

func TestPluralCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, i18n.PluralOne, i18n.PluralCategory("en", 1))
	assert.Equal(t, i18n.PluralOther, i18n.PluralCategory("en", 0))
	assert.Equal(t, i18n.PluralOne, i18n.PluralCategory("en", -1))
	assert.Equal(t, i18n.PluralFew, i18n.PluralCategory("ru", 2))
	assert.Equal(t, i18n.PluralMany, i18n.PluralCategory("ru", 11))
	assert.Equal(t, i18n.PluralOther, i18n.PluralCategory("", 1))
}

func TestWithTOML(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"translations/en.toml": {Data: []byte("[site]\nwelcome = \"Welcome\"\n\n[site.articles]\none = \"%{count} article\"\nother = \"%{count} articles\"\n")},
		"translations/es.toml": {Data: []byte("[site]\nwelcome = \"Bienvenido\"\n")},
		"translations/README":  {Data: []byte("not a catalog")},
	}

	c, err := i18n.New(i18n.WithTOML(fsys, "translations"))
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "es"}, c.Languages())
	assert.Equal(t, "Bienvenido", c.T("es", "site", "welcome"))
	assert.Equal(t, "7 articles", c.Tn("es", "site", "articles", 7))

	_, err = i18n.New(i18n.WithTOML(fstest.MapFS{
		"t/en.toml": {Data: []byte("title = \"top-level string\"\n")},
	}, "t"))
	assert.ErrorIs(t, err, i18n.ErrNamespaceNotMap)

	_, err = i18n.New(i18n.WithTOML(fstest.MapFS{
		"t/en.toml": {Data: []byte("[site\n")},
	}, "t"))
	assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)
}

func TestTranslator(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	tr := i18n.NewTranslator(c, "ru", "site")
	assert.Equal(t, "ru", tr.Language())
	assert.Equal(t, "site", tr.Namespace())
	assert.Equal(t, "5 статей", tr.Tn("articles", 5))
	assert.Equal(t, "Home", tr.T("home.title"))

	assert.Equal(t, "en", i18n.NewTranslator(c, "", "site").Language())
	assert.Panics(t, func() { i18n.NewTranslator(nil, "en", "site") })
}

func TestReplacePlaceholders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hi Ana, 3 new", i18n.ReplacePlaceholders("Hi %{name}, %{n} new", i18n.M{"name": "Ana", "n": 3}))
	assert.Equal(t, "Hi %{name}", i18n.ReplacePlaceholders("Hi %{name}", i18n.M{"other": 1}))
	assert.Equal(t, "plain", i18n.ReplacePlaceholders("plain", nil))
}

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	available := []string{"en", "es", "ru"}
	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"es-MX,es;q=0.9", "es"},
		{"fr;q=1, ru;q=0.5", "ru"},
		{"de", "en"},
		{";;;", "en"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, i18n.ParseAcceptLanguage(tt.header, available), tt.header)
	}
	assert.Empty(t, i18n.ParseAcceptLanguage("en", nil))
}

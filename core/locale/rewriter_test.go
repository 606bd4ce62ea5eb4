package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagetools/sagekit/core/locale"
)

func newRewriter(t *testing.T) *locale.Rewriter {
	t.Helper()
	rw, err := locale.New(locale.Config{
		Languages: locale.Languages{
			{Code: "en", Name: "English"},
			{Code: "fr", Name: "Français"},
			{Code: "es", Name: "Español"},
			{Code: "pt-br"},
		},
		Default: "en",
	})
	require.NoError(t, err)
	return rw
}

func TestPrefixPrimitives(t *testing.T) {
	t.Parallel()

	rw := newRewriter(t)

	tests := []struct {
		path     string
		lang     string
		stripped string
	}{
		{"/about/", "", "/about/"},
		{"/fr/about/", "fr", "/about/"},
		{"/fr/", "fr", "/"},
		{"/fr", "fr", "/"},
		{"/pt-br/docs/intro", "pt-br", "/docs/intro"},
		{"/de/about/", "", "/de/about/"},
		{"/french/about/", "", "/french/about/"},
		{"/", "", "/"},
		{"", "", ""},
		{"/es//evil.example/x", "es", "/evil.example/x"},
		{"/es/\\evil.example", "es", "/evil.example"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.lang, rw.LanguageFromPath(tt.path), "LanguageFromPath(%q)", tt.path)
		assert.Equal(t, tt.stripped, rw.StripPrefix(tt.path), "StripPrefix(%q)", tt.path)
	}

	assert.Equal(t, "/fr/about/", rw.AddPrefix("/about/", "fr"))
	assert.Equal(t, "/fr/about", rw.AddPrefix("about", "fr"))
	assert.Equal(t, "/es/", rw.AddPrefix("/", "es"))
}

func TestLocalizedPath(t *testing.T) {
	t.Parallel()

	rw := newRewriter(t)
	assert.Equal(t, "/fr/about/", rw.LocalizedPath("/about/", "fr"))
	assert.Equal(t, "/fr/about/", rw.LocalizedPath("/es/about/", "fr"))
	assert.Equal(t, "/about/", rw.LocalizedPath("/es/about/", "en"))
	assert.Equal(t, "/about/", rw.LocalizedPath("/es/about/", "xx"))
}

func TestDecide(t *testing.T) {
	t.Parallel()

	rw := newRewriter(t)

	tests := []struct {
		name     string
		in       locale.Input
		lang     string
		redirect string
		bypass   bool
	}{
		{
			name: "no prefix no cookie",
			in:   locale.Input{Path: "/about/"},
			lang: "en",
		},
		{
			name: "url language without cookie is already canonical",
			in:   locale.Input{Path: "/es/about/"},
			lang: "es",
		},
		{
			name:     "cookie adds prefix",
			in:       locale.Input{Path: "/about/", CookieLanguage: "fr"},
			lang:     "fr",
			redirect: "/fr/about/",
		},
		{
			name:     "default cookie strips prefix",
			in:       locale.Input{Path: "/fr/about/", CookieLanguage: "en"},
			lang:     "en",
			redirect: "/about/",
		},
		{
			name:     "cookie wins over url language",
			in:       locale.Input{Path: "/es/about/", CookieLanguage: "fr"},
			lang:     "fr",
			redirect: "/fr/about/",
		},
		{
			name: "cookie matches url language",
			in:   locale.Input{Path: "/fr/about/", CookieLanguage: "fr"},
			lang: "fr",
		},
		{
			name: "default cookie without prefix",
			in:   locale.Input{Path: "/about/", CookieLanguage: "en"},
			lang: "en",
		},
		{
			name: "default prefix with default cookie is left alone",
			in:   locale.Input{Path: "/en/about/", CookieLanguage: "en"},
			lang: "en",
		},
		{
			name: "default prefix without cookie",
			in:   locale.Input{Path: "/en/about/"},
			lang: "en",
		},
		{
			name: "unknown cookie falls through to url language",
			in:   locale.Input{Path: "/es/about/", CookieLanguage: "klingon"},
			lang: "es",
		},
		{
			name: "unknown cookie and no prefix",
			in:   locale.Input{Path: "/about/", CookieLanguage: "xx"},
			lang: "en",
		},
		{
			name:     "bare language segment is canonicalized",
			in:       locale.Input{Path: "/es"},
			lang:     "es",
			redirect: "/es/",
		},
		{
			name:     "cookie on root",
			in:       locale.Input{Path: "/", CookieLanguage: "pt-br"},
			lang:     "pt-br",
			redirect: "/pt-br/",
		},
		{
			name:   "excluded prefix uses cookie",
			in:     locale.Input{Path: "/set-language/", CookieLanguage: "fr"},
			lang:   "fr",
			bypass: true,
		},
		{
			name:   "excluded prefix uses accept-language",
			in:     locale.Input{Path: "/i18n/catalog.js", AcceptLanguage: "es-MX,es;q=0.9,en;q=0.5"},
			lang:   "es",
			bypass: true,
		},
		{
			name:   "excluded prefix falls back to default",
			in:     locale.Input{Path: "/i18n/", AcceptLanguage: "ja"},
			lang:   "en",
			bypass: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := rw.Decide(tt.in)
			assert.Equal(t, tt.lang, d.Language)
			assert.Equal(t, tt.redirect, d.Redirect)
			assert.Equal(t, tt.bypass, d.Bypass)
		})
	}
}

func TestDecideNeverRedirectsToSelf(t *testing.T) {
	t.Parallel()

	rw := newRewriter(t)
	paths := []string{"/", "/about/", "/fr/about/", "/es/", "/en/", "/pt-br/x", "/de/x"}
	cookies := []string{"", "en", "fr", "es", "pt-br", "zz"}

	for _, p := range paths {
		for _, c := range cookies {
			d := rw.Decide(locale.Input{Path: p, CookieLanguage: c})
			assert.NotEqual(t, p, d.Redirect, "path %q cookie %q", p, c)
			assert.True(t, rw.IsSupported(d.Language), "path %q cookie %q", p, c)
		}
	}
}

func TestNeedsCookie(t *testing.T) {
	t.Parallel()

	assert.True(t, locale.NeedsCookie("fr", ""))
	assert.True(t, locale.NeedsCookie("fr", "en"))
	assert.False(t, locale.NeedsCookie("fr", "fr"))
	assert.False(t, locale.NeedsCookie("", "fr"))
}

func TestMatchAcceptLanguage(t *testing.T) {
	t.Parallel()

	rw := newRewriter(t)
	assert.Equal(t, "fr", rw.MatchAcceptLanguage("fr-CA,fr;q=0.9"))
	assert.Equal(t, "pt-br", rw.MatchAcceptLanguage("pt-BR"))
	assert.Equal(t, "en", rw.MatchAcceptLanguage(""))
	assert.Equal(t, "en", rw.MatchAcceptLanguage("not a header;;;"))
}

func TestIsLocalPath(t *testing.T) {
	t.Parallel()

	assert.True(t, locale.IsLocalPath("/"))
	assert.True(t, locale.IsLocalPath("/es/about/?q=1#top"))
	assert.False(t, locale.IsLocalPath(""))
	assert.False(t, locale.IsLocalPath("about"))
	assert.False(t, locale.IsLocalPath("//evil.example/x"))
	assert.False(t, locale.IsLocalPath("/\\evil.example"))
	assert.False(t, locale.IsLocalPath("https://evil.example"))
}

func TestDecideRedirectStaysOnHost(t *testing.T) {
	t.Parallel()

	rw := newRewriter(t)

	for _, in := range []locale.Input{
		{Path: "/es//evil.example/x", CookieLanguage: "en"},
		{Path: "/es///evil.example/x", CookieLanguage: "en"},
		{Path: "/es/\\evil.example/x", CookieLanguage: "en"},
		{Path: "/es//evil.example/x", CookieLanguage: "fr"},
		{Path: "/es//evil.example/x"},
		{Path: "//evil.example/x", CookieLanguage: "fr"},
	} {
		d := rw.Decide(in)
		if d.Redirect == "" {
			continue
		}
		assert.True(t, locale.IsLocalPath(d.Redirect), "Decide(%+v) redirected to %q", in, d.Redirect)
	}

	d := rw.Decide(locale.Input{Path: "/es//evil.example/x", CookieLanguage: "en"})
	assert.Equal(t, "en", d.Language)
	assert.Equal(t, "/evil.example/x", d.Redirect)
}

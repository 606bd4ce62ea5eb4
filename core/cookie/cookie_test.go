package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagetools/sagekit/core/cookie"
)

const (
	secretA = "a-very-long-secret-key-of-32-chars!!"
	secretB = "another-long-secret-key-of-32-chars!"
)

// roundTrip copies cookies set on a recorder into a fresh request.
func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestPlain(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA}, cookie.WithHTTPOnly(false))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "lang", "fr", cookie.WithMaxAge(3600)))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "fr", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.False(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	got, err := m.Get(roundTrip(w), "lang")
	require.NoError(t, err)
	assert.Equal(t, "fr", got)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "lang")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)

	assert.ErrorIs(t, m.Set(w, "", "x"), cookie.ErrInvalidName)
}

func TestSigned(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "tz", "Europe/Paris"))

	got, err := m.GetSigned(roundTrip(w), "tz")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", got)

	t.Run("tampered", func(t *testing.T) {
		raw := w.Result().Cookies()[0].Value
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "tz", Value: "RXVyb3BlL0xvbmRvbg." + strings.SplitN(raw, ".", 2)[1]})
		_, err := m.GetSigned(r, "tz")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("renamed", func(t *testing.T) {
		raw := w.Result().Cookies()[0].Value
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "other", Value: raw})
		_, err := m.GetSigned(r, "other")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "tz", Value: "no-dot"})
		_, err := m.GetSigned(r, "tz")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestEncrypted(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(w, "session", "user-42"))
	assert.NotContains(t, w.Result().Cookies()[0].Value, "user-42")

	got, err := m.GetEncrypted(roundTrip(w), "session")
	require.NoError(t, err)
	assert.Equal(t, "user-42", got)

	other, err := cookie.New([]string{secretB})
	require.NoError(t, err)
	_, err = other.GetEncrypted(roundTrip(w), "session")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
}

func TestKeyRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{secretB, secretA})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, old.SetSigned(w, "a", "signed"))
	require.NoError(t, old.SetEncrypted(w, "b", "sealed"))
	r := roundTrip(w)

	got, err := rotated.GetSigned(r, "a")
	require.NoError(t, err)
	assert.Equal(t, "signed", got)

	got, err = rotated.GetEncrypted(r, "b")
	require.NoError(t, err)
	assert.Equal(t, "sealed", got)
}

func TestTooLarge(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{Secrets: secretA, MaxSize: 64, Path: "/"})
	require.NoError(t, err)

	err = m.Set(httptest.NewRecorder(), "big", strings.Repeat("x", 100))
	var tooLarge cookie.TooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "big", tooLarge.Name)
	assert.Equal(t, 64, tooLarge.Max)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.Delete(w, "lang")
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestNewFromConfigRotationList(t *testing.T) {
	t.Parallel()

	_, err := cookie.NewFromConfig(cookie.Config{Secrets: " , "})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	m, err := cookie.NewFromConfig(cookie.Config{Secrets: secretB + ", " + secretA, Path: "/"})
	require.NoError(t, err)

	old, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	require.NoError(t, old.SetSigned(w, "k", "v"))

	got, err := m.GetSigned(roundTrip(w), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

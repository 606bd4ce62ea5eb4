package router_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/router"
)

func text(s string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		_, err := w.Write([]byte(s))
		return err
	}
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestRouterMethodsAndParams(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/articles/{slug}", func(ctx *router.Context) handler.Response {
		return text("get " + ctx.Param("slug"))
	})
	r.Post("/articles/{slug}", func(ctx *router.Context) handler.Response {
		return text("post " + ctx.Param("slug"))
	})
	r.Get("/files/*", func(ctx *router.Context) handler.Response {
		return text(ctx.Param("*"))
	})

	w := serve(t, r, http.MethodGet, "/articles/hello-world")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "get hello-world", w.Body.String())

	w = serve(t, r, http.MethodPost, "/articles/hello-world")
	assert.Equal(t, "post hello-world", w.Body.String())

	w = serve(t, r, http.MethodGet, "/files/a/b/c.txt")
	assert.Equal(t, "a/b/c.txt", w.Body.String())

	assert.Len(t, r.Routes(), 3)
}

func TestRouterTrailingSlashIsExact(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/about/", func(ctx *router.Context) handler.Response { return text("about") })

	assert.Equal(t, http.StatusOK, serve(t, r, http.MethodGet, "/about/").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, r, http.MethodGet, "/about/team/").Code)
}

func TestRouterNotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	var handled []error
	r := router.New[*router.Context](
		router.WithErrorHandler(func(ctx *router.Context, err error) {
			handled = append(handled, err)
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}),
	)
	r.Get("/only-get", func(ctx *router.Context) handler.Response { return text("ok") })

	w := serve(t, r, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusTeapot, w.Code)

	w = serve(t, r, http.MethodDelete, "/only-get")
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, w.Header().Get("Allow"), http.MethodGet)

	require.Len(t, handled, 2)
	assert.ErrorIs(t, handled[0], router.ErrNotFound)
	assert.ErrorIs(t, handled[1], router.ErrMethodNotAllowed)
}

func TestRouterDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/fail", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			return errors.New("boom")
		}
	})
	r.Get("/nil", func(ctx *router.Context) handler.Response { return nil })
	r.Get("/panic", func(ctx *router.Context) handler.Response { panic("kaboom") })

	assert.Equal(t, http.StatusInternalServerError, serve(t, r, http.MethodGet, "/fail").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(t, r, http.MethodGet, "/nil").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(t, r, http.MethodGet, "/panic").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, r, http.MethodGet, "/nope").Code)
}

func TestRouterMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) handler.Middleware[*router.Context] {
		return func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
			return func(ctx *router.Context) handler.Response {
				order = append(order, name)
				return next(ctx)
			}
		}
	}

	r := router.New[*router.Context](router.WithMiddleware(mw("root")))
	r.With(mw("inline")).Get("/a", func(ctx *router.Context) handler.Response {
		order = append(order, "handler")
		return text("a")
	})
	r.Route("/admin", func(r router.Router[*router.Context]) {
		r.Use(mw("admin"))
		r.Get("/users", func(ctx *router.Context) handler.Response {
			order = append(order, "users")
			return text("users")
		})
	})

	serve(t, r, http.MethodGet, "/a")
	assert.Equal(t, []string{"root", "inline", "handler"}, order)

	order = nil
	w := serve(t, r, http.MethodGet, "/admin/users")
	assert.Equal(t, "users", w.Body.String())
	assert.Equal(t, []string{"root", "admin", "users"}, order)
}

func TestRouterUseAfterRoutesPanics(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/", func(ctx *router.Context) handler.Response { return text("") })

	assert.Panics(t, func() {
		r.Use(func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] { return next })
	})
}

func TestContextSetValue(t *testing.T) {
	t.Parallel()

	type key struct{}
	r := router.New[*router.Context]()
	r.Use(func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
		return func(ctx *router.Context) handler.Response {
			ctx.SetValue(key{}, "stored")
			return next(ctx)
		}
	})
	r.Get("/", func(ctx *router.Context) handler.Response {
		v, _ := ctx.Value(key{}).(string)
		fromReq, _ := ctx.Request().Context().Value(key{}).(string)
		return text(v + "/" + fromReq)
	})

	assert.Equal(t, "stored/stored", serve(t, r, http.MethodGet, "/").Body.String())
}

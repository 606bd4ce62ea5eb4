package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/sagetools/sagekit/core/handler"
)

// wildcardName is the ServeMux wildcard a trailing "/*" pattern is rewritten to.
const wildcardName = "wildcard"

var allowedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// routeTable is shared by a root mux and every inline or prefixed router derived from it.
type routeTable struct {
	mu     sync.RWMutex
	sm     *http.ServeMux
	routes []Route
	sealed bool
}

// mux is the Router implementation. Pattern matching is delegated to http.ServeMux;
// the mux adds typed contexts, middleware chains, and centralized error handling.
type mux[C handler.Context] struct {
	table        *routeTable
	root         *mux[C]
	middlewares  []handler.Middleware[C] // root only, applied per request
	inline       []handler.Middleware[C] // With/Group/Route, applied at registration
	prefix       string
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		table:        &routeTable{sm: http.NewServeMux()},
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	m.root = m

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	m.table.mu.RLock()
	sm := m.table.sm
	m.table.mu.RUnlock()

	h, pattern := sm.Handler(r)
	if pattern != "" {
		sm.ServeHTTP(ww, r)
		return
	}

	// No route matched: ask ServeMux what it would have done.
	rec := &fallbackWriter{}
	h.ServeHTTP(rec, r)

	switch {
	case rec.status >= 300 && rec.status < 400:
		// Path cleaning redirect (e.g. "/a//b" -> "/a/b").
		h.ServeHTTP(ww, r)
	case rec.status == http.StatusMethodNotAllowed:
		if allow := rec.Header().Get("Allow"); allow != "" {
			ww.Header().Set("Allow", allow)
		}
		m.root.errorHandler(m.root.newContext(ww, r), ErrMethodNotAllowed)
	default:
		m.root.errorHandler(m.root.newContext(ww, r), ErrNotFound)
	}
}

// Get registers a handler for GET requests (HEAD is served by the same handler).
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

// Patch registers a handler for PATCH requests.
func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, h)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !slices.Contains(allowedMethods, method) {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

// Use appends middleware. Root middleware runs for every matched route;
// on inline routers it applies to routes registered afterwards.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.root == m {
		m.table.mu.RLock()
		sealed := m.table.sealed
		m.table.mu.RUnlock()
		if sealed {
			panic("sagekit: all middlewares must be defined before routes on a mux")
		}
		m.middlewares = append(m.middlewares, middlewares...)
		return
	}
	m.inline = append(m.inline, middlewares...)
}

// With returns an inline router whose routes get the extra middlewares.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	inline := make([]handler.Middleware[C], 0, len(m.inline)+len(middlewares))
	inline = append(inline, m.inline...)
	inline = append(inline, middlewares...)

	return &mux[C]{
		table:        m.table,
		root:         m.root,
		inline:       inline,
		prefix:       m.prefix,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

// Group creates an inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Route registers routes under a path prefix.
func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilSubrouter, pattern))
	}
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}

	sub := m.With().(*mux[C])
	sub.prefix = m.prefix + strings.TrimSuffix(pattern, "/")
	fn(sub)
	return sub
}

// Routes returns all registered routes in registration order.
func (m *mux[C]) Routes() []Route {
	m.table.mu.RLock()
	defer m.table.mu.RUnlock()
	return slices.Clone(m.table.routes)
}

func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}

	full := m.prefix + pattern
	h := fn
	if len(m.inline) > 0 {
		h = handler.Chain(fn, m.inline...)
	}

	smPattern := toServeMuxPattern(full)
	if method != "" {
		smPattern = method + " " + smPattern
	}

	m.table.mu.Lock()
	defer m.table.mu.Unlock()
	m.table.sealed = true
	m.table.routes = append(m.table.routes, Route{Method: method, Pattern: full})
	m.table.sm.Handle(smPattern, m.root.serve(h))
}

// serve adapts a typed handler to http.Handler.
func (m *mux[C]) serve(h handler.HandlerFunc[C]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww, ok := w.(*responseWriter)
		if !ok {
			ww = newResponseWriter(w)
		}

		ctx := m.newContext(ww, r)

		defer func() {
			if p := recover(); p != nil {
				perr := &panicError{value: p, stack: debug.Stack()}
				if ww.Written() {
					m.logger.Error("panic after response written",
						"value", perr.value,
						"path", r.URL.Path,
						"method", r.Method,
						"status", ww.Status(),
					)
					return
				}
				m.errorHandler(ctx, perr)
			}
		}()

		fn := h
		if len(m.middlewares) > 0 {
			fn = handler.Chain(h, m.middlewares...)
		}

		resp := fn(ctx)
		if resp == nil {
			m.errorHandler(ctx, ErrNilResponse)
			return
		}

		if err := resp(ww, ctx.Request()); err != nil {
			m.errorHandler(ctx, err)
		}
	})
}

// toServeMuxPattern translates router patterns to http.ServeMux syntax:
// "/files/*" becomes a trailing wildcard and "/about/" matches only itself.
func toServeMuxPattern(p string) string {
	switch {
	case strings.HasSuffix(p, "/*"):
		return p[:len(p)-1] + "{" + wildcardName + "...}"
	case strings.HasSuffix(p, "/"):
		return p + "{$}"
	default:
		return p
	}
}

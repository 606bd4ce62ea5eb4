// Package router provides a generic HTTP router with typed request contexts,
// middleware chaining, route grouping, and centralized error handling.
//
// Pattern matching is delegated to net/http's ServeMux, so path wildcards use
// the standard "{name}" syntax. Two conveniences are layered on top:
//
//   - a pattern ending in "/" matches only that exact path ("/about/" does not
//     match "/about/team/");
//   - a trailing "/*" captures the rest of the path, available as ctx.Param("*").
//
// Basic usage:
//
//	r := router.New[*router.Context](
//		router.WithMiddleware(middleware.Locale[*router.Context](rw, cookies)),
//	)
//
//	r.Get("/articles/{slug}", func(ctx *router.Context) handler.Response {
//		return response.String(ctx.Param("slug"))
//	})
//
//	r.Route("/admin", func(r router.Router[*router.Context]) {
//		r.Get("/", dashboard)
//	})
//
//	http.ListenAndServe(":8080", r)
//
// Root middleware (WithMiddleware or Use) runs for every matched route. Middleware
// passed to With, Group, or Route applies only to the routes registered through
// that inline router. Unmatched requests go to the error handler with ErrNotFound
// or ErrMethodNotAllowed; panics are recovered and reported as PanicError.
package router

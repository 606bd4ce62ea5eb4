// Package handler defines the request-processing contract shared by the router,
// middleware, and HTTP handlers in sagekit.
//
// Handlers receive a typed context and return a Response closure instead of writing
// to the ResponseWriter directly. Middleware can therefore run code both before the
// handler (by inspecting ctx) and after it (by wrapping the returned Response):
//
//	func Greeting[C handler.Context](ctx C) handler.Response {
//		return func(w http.ResponseWriter, r *http.Request) error {
//			_, err := w.Write([]byte("hello"))
//			return err
//		}
//	}
//
// The locale middleware relies on this split: the redirect decision is made before
// the handler runs, while the language cookie is written when the Response renders.
package handler

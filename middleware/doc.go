// Package middleware provides HTTP middleware for the generic router.
//
// Every middleware comes in two forms: X[C]() with defaults and
// XWithConfig[C](cfg) for full control. Config structs carry an optional Skip
// predicate. Values stored in the request context are read back with the
// matching GetX helper, which accepts any context.Context.
//
//	r := router.New[*router.Context](
//		router.WithMiddleware(
//			middleware.RequestID[*router.Context](),
//			middleware.Logging[*router.Context](log),
//			middleware.Locale[*router.Context](rw),
//		),
//	)
//
// Locale keeps the URL language prefix and the language cookie in sync with
// the active language (see core/locale) and I18n hands handlers a translator
// for it. Session loads and stores the visitor session, and Timezone
// activates the zone kept there (or in a signed cookie). CSRF guards form
// posts with a double-submit token under a configurable field name.
// Maintenance exposes site mode flags and blocks traffic while the site is
// under construction.
package middleware

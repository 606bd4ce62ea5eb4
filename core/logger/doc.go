// Package logger provides slog construction helpers and attribute constructors
// used across sagekit.
//
//	log := logger.New(logger.WithDevelopment("sagekit"))
//	log.Info("slug resolved",
//		logger.Component("slugger"),
//		logger.Slug("hello-world-2"),
//		logger.Attempt(3),
//	)
//
// WithProduction and WithStaging switch to JSON output. WithContextValue and
// WithContextExtractors copy request-scoped values (e.g. the active language)
// from the context passed to InfoContext and friends into every record.
package logger

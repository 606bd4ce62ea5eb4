// Package health provides liveness and readiness handlers.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Get("/health/ready", health.Readiness[*router.Context](log,
//		health.Named("sqlite", sqlite.Healthcheck(db)),
//	))
//	r.Get("/ping", health.NoContent[*router.Context])
package health

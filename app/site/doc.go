// Package site assembles the demo application served by cmd/sagekit.
//
// Routes:
//
//	GET  /health/live, /health/ready, /ping
//	POST /set-language/             form: language, next
//	POST /set-timezone/             form: timezone
//	POST /api/articles              JSON {"title", "slug"}
//	GET  /api/articles/{id}
//	PUT  /api/articles/{id}
//	GET  /[{lang}/]                 home page
//	GET  /[{lang}/]articles/{slug}  article page
//
// STORE_DRIVER selects memory, sqlite, postgres, redis or mongo storage for
// slugs. Each backend reads its own environment variables on demand.
package site

package sqlite

import "time"

// Config holds SQLite settings. Path ":memory:" opens a private in-memory
// database.
type Config struct {
	Path            string        `env:"SQLITE_PATH" envDefault:"sagekit.db"`
	MaxOpenConns    int           `env:"SQLITE_MAX_OPEN_CONNS" envDefault:"1"`
	BusyTimeout     time.Duration `env:"SQLITE_BUSY_TIMEOUT" envDefault:"5s"`
	MigrationsTable string        `env:"SQLITE_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}

package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/sagetools/sagekit/core/logger"
)

const memoryPath = ":memory:"

//go:embed migrations/*.sql
var migrations embed.FS

var gooseMu sync.Mutex

// Open opens the database at cfg.Path, creating its parent directory when
// needed, and applies the embedded migrations.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (*sql.DB, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, ErrEmptyPath
	}
	if log == nil {
		log = logger.Nop()
	}

	if path != memoryPath {
		path = filepath.Clean(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, errors.Join(ErrFailedToOpenDB, err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path, cfg))
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDB, err)
	}
	// A second connection to ":memory:" would see an empty database.
	if path == memoryPath || cfg.MaxOpenConns <= 0 {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToOpenDB, err)
	}

	if err := migrate(ctx, db, cfg, log.With(slog.String("db", path))); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Healthcheck returns a check that pings the database.
func Healthcheck(db *sql.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

func dsn(path string, cfg Config) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "synchronous(NORMAL)")
	if path != memoryPath {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	if cfg.BusyTimeout > 0 {
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	}
	q.Set("_time_format", "sqlite")
	return path + "?" + q.Encode()
}

func migrate(ctx context.Context, db *sql.DB, cfg Config, log *slog.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(slog.NewLogLogger(log.With(logger.Component("migrations")).Handler(), slog.LevelDebug))
	if cfg.MigrationsTable != "" {
		goose.SetTableName(cfg.MigrationsTable)
	}
	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

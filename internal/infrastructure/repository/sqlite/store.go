package sqlite

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/riskibarqy/volleyball-stats/internal/platform/logging"
	qb "github.com/riskibarqy/volleyball-stats/internal/platform/querybuilder"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const DefaultPath = "volleyball_data.db"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Store owns the SQLite file. Every operation opens its own single
// connection and closes it when done.
type Store struct {
	path   string
	logger *logging.Logger
}

func NewStore(path string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path, logger: logger}
}

func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the store file is present on disk.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.filePath())
	return err == nil && !info.IsDir()
}

// Reset deletes the store file together with its journal siblings.
func (s *Store) Reset(ctx context.Context) error {
	base := s.filePath()
	for _, name := range []string{base, base + "-wal", base + "-shm", base + "-journal"} {
		if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	s.logger.InfoContext(ctx, "store removed", "path", base)
	return nil
}

// EnsureSchema creates every table and index that is not there yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	m, err := s.NewMigrator(ctx)
	if err != nil {
		return err
	}
	defer closeMigrator(ctx, m, s.logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// NewMigrator returns a migrator bound to a fresh connection. Closing the
// migrator closes that connection.
func (s *Store) NewMigrator(ctx context.Context) (*migrate.Migrate, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load embedded migrations: %w", err)
	}
	drv, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, driverName, drv)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// Count returns the number of rows stored in table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	query, args, err := qb.Select("COUNT(1)").From(table).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count %s query: %w", table, err)
	}

	var count int64
	err = s.withDB(ctx, func(db *sqlx.DB) error {
		return db.GetContext(ctx, &count, query, args...)
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

func (s *Store) open(ctx context.Context) (*sqlx.DB, error) {
	return s.openDSN(ctx, buildDSN(s.path))
}

func (s *Store) openDSN(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := otelsqlx.Open(driverName, dsn,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName(dbNameFromPath(s.path)),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", s.path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

func (s *Store) withDB(ctx context.Context, fn func(db *sqlx.DB) error) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}

// withReadOnlyDB is withDB on a connection SQLite opened with mode=ro.
func (s *Store) withReadOnlyDB(ctx context.Context, fn func(db *sqlx.DB) error) error {
	db, err := s.openDSN(ctx, buildReadOnlyDSN(s.path))
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}

// withTx runs fn in one transaction. Any error rolls back every write fn made.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return s.withDB(ctx, func(db *sqlx.DB) error {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		if err := fn(tx); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.WarnContext(ctx, "rollback failed", "error", rbErr)
			}
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

func (s *Store) filePath() string {
	base, _, _ := strings.Cut(s.path, "?")
	return strings.TrimPrefix(base, "file:")
}

func closeMigrator(ctx context.Context, m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.WarnContext(ctx, "close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.WarnContext(ctx, "close migration db", "error", dbErr)
	}
}

// upsert writes model into table inside tx, replacing the row that shares
// the conflict columns.
func upsert(ctx context.Context, tx *sqlx.Tx, table string, model any, conflict ...string) error {
	query, args, err := qb.UpsertModel(table, model, conflict...)
	if err != nil {
		return fmt.Errorf("build upsert %s query: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/TobiAkinkuotu/flashcard-server/internal/logger"
)

//go:embed migrations
var migrationFiles embed.FS

// DB wraps the sql.DB connection pool together with the active dialect so
// callers never have to care which engine they are talking to.
type DB struct {
	conn    *sql.DB
	dialect Dialect
	log     *logger.Logger
}

// Open connects to the configured database, applies connection settings and
// runs any pending migrations.
func Open(driver, path, url string, log *logger.Logger) (*DB, error) {
	dialect, err := NewDialect(driver)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(dialect.DriverName(), dialect.DSN(path, url))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := dialect.ConfigureConnection(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("configuring connection: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &DB{conn: conn, dialect: dialect, log: log.WithField("component", "db")}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error { return d.conn.Close() }

// Dialect returns the active dialect for query building.
func (d *DB) Dialect() Dialect { return d.dialect }

// Ping checks connectivity, used by the health endpoint.
func (d *DB) Ping(ctx context.Context) error { return d.conn.PingContext(ctx) }

func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.conn.ExecContext(ctx, d.dialect.RewriteQuery(query), args...)
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.conn.QueryContext(ctx, d.dialect.RewriteQuery(query), args...)
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.conn.QueryRowContext(ctx, d.dialect.RewriteQuery(query), args...)
}

// BeginTx starts a transaction. Queries run against the returned Tx must
// already be rewritten for the dialect; use Rewrite for that.
func (d *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return d.conn.BeginTx(ctx, nil)
}

// Rewrite converts ? placeholders for the active dialect.
func (d *DB) Rewrite(query string) string { return d.dialect.RewriteQuery(query) }

// ExecReturningID inserts a row and returns the generated ID. Postgres does
// not support LastInsertId, so the statement is amended with RETURNING id.
func (d *DB) ExecReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	if d.dialect.Name() == "postgres" {
		var id int64
		err := d.conn.QueryRowContext(ctx, d.dialect.RewriteQuery(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := d.conn.ExecContext(ctx, d.dialect.RewriteQuery(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (d *DB) migrate() error {
	_, err := d.conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(191) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	dir := "migrations/" + d.dialect.Name()
	entries, err := fs.ReadDir(migrationFiles, dir)
	if err != nil {
		return fmt.Errorf("reading migrations for %s: %w", d.dialect.Name(), err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := d.migrationApplied(name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		content, err := migrationFiles.ReadFile(dir + "/" + name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		// The mysql driver does not allow multiple statements per Exec.
		for _, stmt := range strings.Split(string(content), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := d.conn.Exec(stmt); err != nil {
				return fmt.Errorf("applying migration %s: %w", name, err)
			}
		}
		if _, err := d.conn.Exec(d.dialect.RewriteQuery("INSERT INTO schema_migrations (version) VALUES (?)"), name); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		d.log.Info("applied migration %s", name)
	}
	return nil
}

func (d *DB) migrationApplied(version string) (bool, error) {
	var count int
	query := d.dialect.RewriteQuery("SELECT COUNT(*) FROM schema_migrations WHERE version = ?")
	if err := d.conn.QueryRow(query, version).Scan(&count); err != nil {
		return false, fmt.Errorf("checking migration %s: %w", version, err)
	}
	return count > 0, nil
}

package db

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect abstracts the differences between the supported SQL engines so the
// repositories can be written once against ? placeholders.
type Dialect interface {
	// Name returns the canonical dialect name (sqlite, mysql, postgres).
	Name() string

	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// DSN builds the data source name from the configured path or URL.
	DSN(path, url string) string

	// RewriteQuery converts ? placeholders if the engine needs a different
	// syntax (postgres uses $1, $2, ...).
	RewriteQuery(query string) string

	// Placeholder returns the squirrel placeholder format for built queries.
	Placeholder() squirrel.PlaceholderFormat

	// UpsertProgressQuery returns the engine-specific insert-or-replace
	// statement for the progress table.
	UpsertProgressQuery() string

	// ConfigureConnection applies engine-specific connection settings.
	ConfigureConnection(db *sql.DB) error
}

// NewDialect returns the dialect for the given driver name.
func NewDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3", "":
		return sqliteDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	case "postgres", "postgresql":
		return postgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string       { return "sqlite" }
func (sqliteDialect) DriverName() string { return "sqlite3" }

func (sqliteDialect) DSN(path, _ string) string {
	return fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", path)
}

func (sqliteDialect) RewriteQuery(query string) string { return query }

func (sqliteDialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Question }

func (sqliteDialect) UpsertProgressQuery() string {
	return `
INSERT INTO progress (user_id, completed, total_correct, total_answered, accuracy, streak, last_completed, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (user_id) DO UPDATE SET
    completed = excluded.completed,
    total_correct = excluded.total_correct,
    total_answered = excluded.total_answered,
    accuracy = excluded.accuracy,
    streak = excluded.streak,
    last_completed = excluded.last_completed,
    updated_at = CURRENT_TIMESTAMP
`
}

func (sqliteDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(1) // SQLite best practice for single writer
	return nil
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string       { return "mysql" }
func (mysqlDialect) DriverName() string { return "mysql" }

func (mysqlDialect) DSN(_, url string) string {
	if strings.Contains(url, "parseTime=") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "parseTime=true"
}

func (mysqlDialect) RewriteQuery(query string) string { return query }

func (mysqlDialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Question }

func (mysqlDialect) UpsertProgressQuery() string {
	return `
INSERT INTO progress (user_id, completed, total_correct, total_answered, accuracy, streak, last_completed)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
    completed = VALUES(completed),
    total_correct = VALUES(total_correct),
    total_answered = VALUES(total_answered),
    accuracy = VALUES(accuracy),
    streak = VALUES(streak),
    last_completed = VALUES(last_completed)
`
}

func (mysqlDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(10)
	return nil
}

type postgresDialect struct{}

func (postgresDialect) Name() string       { return "postgres" }
func (postgresDialect) DriverName() string { return "postgres" }

func (postgresDialect) DSN(_, url string) string { return url }

var placeholderRegexp = regexp.MustCompile(`\?`)

func (postgresDialect) RewriteQuery(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

func (postgresDialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Dollar }

func (postgresDialect) UpsertProgressQuery() string {
	return `
INSERT INTO progress (user_id, completed, total_correct, total_answered, accuracy, streak, last_completed, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
ON CONFLICT (user_id) DO UPDATE SET
    completed = EXCLUDED.completed,
    total_correct = EXCLUDED.total_correct,
    total_answered = EXCLUDED.total_answered,
    accuracy = EXCLUDED.accuracy,
    streak = EXCLUDED.streak,
    last_completed = EXCLUDED.last_completed,
    updated_at = CURRENT_TIMESTAMP
`
}

func (postgresDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(10)
	return nil
}

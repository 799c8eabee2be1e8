package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDialect(t *testing.T) {
	tests := []struct {
		driver      string
		expected    string
		expectError bool
	}{
		{driver: "sqlite", expected: "sqlite"},
		{driver: "sqlite3", expected: "sqlite"},
		{driver: "", expected: "sqlite"},
		{driver: "mysql", expected: "mysql"},
		{driver: "postgres", expected: "postgres"},
		{driver: "POSTGRESQL", expected: "postgres"},
		{driver: "oracle", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := NewDialect(tt.driver)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Name())
		})
	}
}

func TestPostgresRewriteQuery(t *testing.T) {
	d := postgresDialect{}

	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{
			name:     "no placeholders",
			in:       "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "single placeholder",
			in:       "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = $1",
		},
		{
			name:     "numbered in order",
			in:       "INSERT INTO decks (user_id, title) VALUES (?, ?)",
			expected: "INSERT INTO decks (user_id, title) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.RewriteQuery(tt.in))
		})
	}
}

func TestSQLiteRewriteQueryIsIdentity(t *testing.T) {
	d := sqliteDialect{}
	q := "SELECT * FROM progress WHERE user_id = ?"
	assert.Equal(t, q, d.RewriteQuery(q))
}

func TestMySQLDSNAddsParseTime(t *testing.T) {
	d := mysqlDialect{}

	assert.Equal(t, "user:pw@tcp(localhost:3306)/flash?parseTime=true",
		d.DSN("", "user:pw@tcp(localhost:3306)/flash"))
	assert.Equal(t, "user:pw@tcp(localhost:3306)/flash?charset=utf8mb4&parseTime=true",
		d.DSN("", "user:pw@tcp(localhost:3306)/flash?charset=utf8mb4"))
	assert.Equal(t, "user:pw@tcp(localhost:3306)/flash?parseTime=true",
		d.DSN("", "user:pw@tcp(localhost:3306)/flash?parseTime=true"))
}

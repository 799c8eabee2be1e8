package testutil

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TobiAkinkuotu/flashcard-server/internal/db"
	"github.com/TobiAkinkuotu/flashcard-server/internal/logger"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	log := logger.New(logger.WithOutput(io.Discard))
	database, err := db.Open("sqlite", ":memory:", "", log)
	require.NoError(t, err)
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

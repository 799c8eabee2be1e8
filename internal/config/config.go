package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBDriver          string // sqlite, mysql or postgres
	DBPath            string // sqlite file path
	DBURL             string // mysql/postgres connection string
	ProgressStore     string // sql or mongo
	MongoURI          string
	MongoDatabase     string
	LogLevel          string
	ImportWorkerCount int
	ImportQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBDriver:          envOr("DB_DRIVER", "sqlite"),
		DBPath:            envOr("DB_PATH", "file:flashcards.db"),
		DBURL:             envOr("DB_URL", ""),
		ProgressStore:     envOr("PROGRESS_STORE", "sql"),
		MongoURI:          envOr("MONGO_URI", ""),
		MongoDatabase:     envOr("MONGO_DATABASE", "flashcards"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		ImportWorkerCount: envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:   envIntOr("IMPORT_QUEUE_SIZE", 32),
	}
}

// Validate checks the configuration for values that would prevent startup.
// All problems are reported at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}

	switch strings.ToLower(c.DBDriver) {
	case "sqlite", "sqlite3":
		if c.DBPath == "" {
			problems = append(problems, "DB_PATH cannot be empty for the sqlite driver")
		}
	case "mysql", "postgres", "postgresql":
		if c.DBURL == "" {
			problems = append(problems, "DB_URL is required for the "+c.DBDriver+" driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("DB_DRIVER must be sqlite, mysql or postgres, got %q", c.DBDriver))
	}

	switch strings.ToLower(c.ProgressStore) {
	case "sql":
	case "mongo", "mongodb":
		if c.MongoURI == "" {
			problems = append(problems, "MONGO_URI is required when PROGRESS_STORE=mongo")
		}
	default:
		problems = append(problems, fmt.Sprintf("PROGRESS_STORE must be sql or mongo, got %q", c.ProgressStore))
	}

	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}

	if c.ImportWorkerCount <= 0 {
		problems = append(problems, "IMPORT_WORKER_COUNT must be positive")
	}
	if c.ImportQueueSize <= 0 {
		problems = append(problems, "IMPORT_QUEUE_SIZE must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// UsesMongo reports whether the progress store is backed by MongoDB.
// Validate accepts both spellings, so the lookup must too.
func (c Config) UsesMongo() bool {
	switch strings.ToLower(c.ProgressStore) {
	case "mongo", "mongodb":
		return true
	}
	return false
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

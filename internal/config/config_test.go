package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Addr:              ":8080",
		DBDriver:          "sqlite",
		DBPath:            "file:flashcards.db",
		ProgressStore:     "sql",
		MongoDatabase:     "flashcards",
		LogLevel:          "INFO",
		ImportWorkerCount: 2,
		ImportQueueSize:   32,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid defaults", mutate: func(c *Config) {}},
		{
			name:    "empty addr",
			mutate:  func(c *Config) { c.Addr = "" },
			wantErr: "ADDR",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.DBDriver = "oracle" },
			wantErr: "DB_DRIVER",
		},
		{
			name:    "mysql without url",
			mutate:  func(c *Config) { c.DBDriver = "mysql"; c.DBURL = "" },
			wantErr: "DB_URL",
		},
		{
			name: "postgres with url",
			mutate: func(c *Config) {
				c.DBDriver = "postgres"
				c.DBURL = "postgres://user:pw@localhost/flash"
			},
		},
		{
			name:    "mongo without uri",
			mutate:  func(c *Config) { c.ProgressStore = "mongo"; c.MongoURI = "" },
			wantErr: "MONGO_URI",
		},
		{
			name: "mongo with uri",
			mutate: func(c *Config) {
				c.ProgressStore = "mongo"
				c.MongoURI = "mongodb://localhost:27017"
			},
		},
		{
			name:    "unknown progress store",
			mutate:  func(c *Config) { c.ProgressStore = "redis" },
			wantErr: "PROGRESS_STORE",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "LOUD" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.ImportWorkerCount = 0 },
			wantErr: "IMPORT_WORKER_COUNT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""
	cfg.LogLevel = "LOUD"
	cfg.ImportQueueSize = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "IMPORT_QUEUE_SIZE")
}

func TestUsesMongo(t *testing.T) {
	tests := []struct {
		store    string
		expected bool
	}{
		{store: "mongo", expected: true},
		{store: "mongodb", expected: true},
		{store: "MongoDB", expected: true},
		{store: "sql", expected: false},
		{store: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.store, func(t *testing.T) {
			cfg := validConfig()
			cfg.ProgressStore = tt.store
			assert.Equal(t, tt.expected, cfg.UsesMongo())
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "sql", cfg.ProgressStore)
	assert.Equal(t, 2, cfg.ImportWorkerCount)
	assert.Equal(t, 32, cfg.ImportQueueSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_URL", "postgres://user:pw@localhost/flash")
	t.Setenv("IMPORT_WORKER_COUNT", "8")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 8, cfg.ImportWorkerCount)
	assert.NoError(t, cfg.Validate())
}

func TestLoadIgnoresInvalidInts(t *testing.T) {
	t.Setenv("IMPORT_QUEUE_SIZE", "lots")

	cfg := Load()
	assert.Equal(t, 32, cfg.ImportQueueSize)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Catalog.Format)
	assert.Equal(t, "./res/catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, 5.0, cfg.Planning.MaxCredits)
	assert.Equal(t, 6, cfg.Planning.RecommendationLimit)
	assert.Equal(t, 14*24*time.Hour, cfg.Planning.DeadlineWindow)
	assert.Equal(t, 50, cfg.Planning.Priorities.Academic)
	assert.Equal(t, "badger", cfg.Store.Driver)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, ';', cfg.Delimiter())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog:
  format: csv
  courses: ./data/courses.csv
  delimiter: ","
planning:
  max_credits: 4.5
  deadline_window: 168h
  priorities:
    career: 90
store:
  driver: memory
server:
  port: 8080
`), 0o600))
	t.Setenv("CP_SERVER_PORT", "9090")
	t.Setenv("CP_PLANNING_PRIORITIES_ACADEMIC", "75")
	t.Setenv("CP_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Catalog.Format)
	assert.Equal(t, "./data/courses.csv", cfg.Catalog.Courses)
	assert.Equal(t, ',', cfg.Delimiter())
	assert.Equal(t, 4.5, cfg.Planning.MaxCredits)
	assert.Equal(t, 7*24*time.Hour, cfg.Planning.DeadlineWindow)
	assert.Equal(t, 90, cfg.Planning.Priorities.Career)
	assert.Equal(t, 75, cfg.Planning.Priorities.Academic)
	assert.Equal(t, 50, cfg.Planning.Priorities.Balance)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)

	pc := cfg.PlannerConfiguration()
	assert.Equal(t, "./data/courses.csv", pc.CoursesFile)
	assert.Equal(t, 4.5, pc.MaxCredits)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 4000\n"), 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("CP_STORE_DRIVER", "redis")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown format", func(c *Config) { c.Catalog.Format = "xml" }},
		{"yaml without path", func(c *Config) { c.Catalog.Path = "" }},
		{"csv without courses", func(c *Config) { c.Catalog.Format = "csv"; c.Catalog.Courses = "" }},
		{"long delimiter", func(c *Config) { c.Catalog.Format = "csv"; c.Catalog.Delimiter = ";;" }},
		{"negative credits", func(c *Config) { c.Planning.MaxCredits = -1 }},
		{"zero limit", func(c *Config) { c.Planning.RecommendationLimit = 0 }},
		{"zero window", func(c *Config) { c.Planning.DeadlineWindow = 0 }},
		{"priority too high", func(c *Config) { c.Planning.Priorities.Balance = 101 }},
		{"badger without dir", func(c *Config) { c.Store.Dir = "" }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	assert.Equal(t, "planning.max_credits", envTransformFunc("CP_PLANNING_MAX_CREDITS"))
	assert.Equal(t, "planning.priorities.balance", envTransformFunc("CP_PLANNING_PRIORITIES_BALANCE"))
	assert.Equal(t, "store.dir", envTransformFunc("CP_STORE_DIR"))
	assert.Equal(t, "", envTransformFunc("CP_CONFIG"))
}

// Package config loads planner settings in layers: built-in defaults, an
// optional YAML file, then CP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/rhyrak/course-planner/internal/logging"
	"github.com/rhyrak/course-planner/internal/planner"
	"github.com/rhyrak/course-planner/pkg/model"
)

const (
	EnvPrefix        = "CP_"
	ConfigPathEnvVar = "CP_CONFIG"
)

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/course-planner/config.yaml",
}

type Config struct {
	Catalog  CatalogConfig  `koanf:"catalog"`
	Planning PlanningConfig `koanf:"planning"`
	Store    StoreConfig    `koanf:"store"`
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
}

type CatalogConfig struct {
	// Format is yaml or csv.
	Format      string `koanf:"format"`
	Path        string `koanf:"path"`
	Courses     string `koanf:"courses"`
	Slots       string `koanf:"slots"`
	Assessments string `koanf:"assessments"`
	Bids        string `koanf:"bids"`
	Delimiter   string `koanf:"delimiter"`
	// Rules optionally replaces the built-in recommendation rule table.
	Rules string `koanf:"rules"`
}

type PlanningConfig struct {
	MaxCredits          float64          `koanf:"max_credits"`
	RecommendationLimit int              `koanf:"recommendation_limit"`
	DeadlineWindow      time.Duration    `koanf:"deadline_window"`
	BusyWeekThreshold   int              `koanf:"busy_week_threshold"`
	Priorities          model.Priorities `koanf:"priorities"`
}

type StoreConfig struct {
	// Driver is memory or badger.
	Driver string `koanf:"driver"`
	Dir    string `koanf:"dir"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

func defaultConfig() *Config {
	p := planner.NewDefaultConfiguration()
	return &Config{
		Catalog: CatalogConfig{
			Format:      "yaml",
			Path:        p.CatalogFile,
			Courses:     p.CoursesFile,
			Slots:       p.SlotsFile,
			Assessments: p.AssessmentsFile,
			Bids:        p.BidsFile,
			Delimiter:   ";",
			Rules:       p.RulesFile,
		},
		Planning: PlanningConfig{
			MaxCredits:          p.MaxCredits,
			RecommendationLimit: p.RecommendationLimit,
			DeadlineWindow:      p.DeadlineWindow,
			BusyWeekThreshold:   p.BusyWeekThreshold,
			Priorities:          model.Priorities{Academic: 50, Career: 50, Balance: 50},
		},
		Store: StoreConfig{
			Driver: "badger",
			Dir:    "./db",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3001,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration. An empty path searches CP_CONFIG and then
// DefaultConfigPaths; a missing file is not an error.
// Precedence: env > file > defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		logging.Debug().Str("path", path).Msg("loaded config file")
	}

	// CP_PLANNING_MAX_CREDITS -> planning.max_credits
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "config" {
		return ""
	}
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	if section == "planning" && strings.HasPrefix(rest, "priorities_") {
		return "planning.priorities." + strings.TrimPrefix(rest, "priorities_")
	}
	return section + "." + rest
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Catalog.Format {
	case "yaml":
		if c.Catalog.Path == "" {
			errs = append(errs, errors.New("catalog.path is required for yaml catalogs"))
		}
	case "csv":
		if c.Catalog.Courses == "" {
			errs = append(errs, errors.New("catalog.courses is required for csv catalogs"))
		}
		if utf8.RuneCountInString(c.Catalog.Delimiter) != 1 {
			errs = append(errs, fmt.Errorf("catalog.delimiter must be a single character, got %q", c.Catalog.Delimiter))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.format must be yaml or csv, got %q", c.Catalog.Format))
	}

	if c.Planning.MaxCredits < 0 {
		errs = append(errs, errors.New("planning.max_credits must not be negative"))
	}
	if c.Planning.RecommendationLimit <= 0 {
		errs = append(errs, errors.New("planning.recommendation_limit must be positive"))
	}
	if c.Planning.DeadlineWindow <= 0 {
		errs = append(errs, errors.New("planning.deadline_window must be positive"))
	}
	for name, v := range map[string]int{
		"academic": c.Planning.Priorities.Academic,
		"career":   c.Planning.Priorities.Career,
		"balance":  c.Planning.Priorities.Balance,
	} {
		if v < 0 || v > 100 {
			errs = append(errs, fmt.Errorf("planning.priorities.%s must be within 0..100, got %d", name, v))
		}
	}

	switch c.Store.Driver {
	case "memory":
	case "badger":
		if c.Store.Dir == "" {
			errs = append(errs, errors.New("store.dir is required for the badger driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver must be memory or badger, got %q", c.Store.Driver))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}

	return errors.Join(errs...)
}

// PlannerConfiguration converts the settings for the planner and csv loader.
func (c *Config) PlannerConfiguration() *planner.Configuration {
	return &planner.Configuration{
		CatalogFile:         c.Catalog.Path,
		CoursesFile:         c.Catalog.Courses,
		SlotsFile:           c.Catalog.Slots,
		AssessmentsFile:     c.Catalog.Assessments,
		BidsFile:            c.Catalog.Bids,
		RulesFile:           c.Catalog.Rules,
		MaxCredits:          c.Planning.MaxCredits,
		RecommendationLimit: c.Planning.RecommendationLimit,
		DeadlineWindow:      c.Planning.DeadlineWindow,
		BusyWeekThreshold:   c.Planning.BusyWeekThreshold,
	}
}

// Delimiter returns the csv delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Catalog.Delimiter)
	return r
}

func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Caller: c.Log.Caller,
		Output: os.Stderr,
	}
}

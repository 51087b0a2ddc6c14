// Package config handles configuration for locator-advisor.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/core"
)

// Config represents the service configuration (config.yaml).
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port         string        `yaml:"port"`
	AuthToken    string        `yaml:"authToken"`    // Bearer token required on every API route
	MaxBodyBytes int64         `yaml:"maxBodyBytes"` // Request body cap
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// AnalysisConfig controls the analyzer and the status view.
type AnalysisConfig struct {
	Workers             int  `yaml:"workers"`             // 0 = GOMAXPROCS
	IncludeDuplicateIDs bool `yaml:"includeDuplicateIds"` // Suggest for shared resource-ids too
	ExampleLimit        int  `yaml:"exampleLimit"`        // Suggestions per example in /status
}

// FetchConfig controls document and screenshot downloads.
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"maxRetries"`
	MaxBodySize int64         `yaml:"maxBodySize"`
}

// StoreConfig controls the in-memory job store.
type StoreConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanupInterval"`
}

// LogConfig controls logging.
type LogConfig struct {
	File    string `yaml:"file"` // Empty = stderr
	Verbose bool   `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "3000",
			MaxBodyBytes: 2 << 20, // 2MB
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Analysis: AnalysisConfig{
			IncludeDuplicateIDs: true,
			ExampleLimit:        5,
		},
		Fetch: FetchConfig{
			Timeout:     30 * time.Second,
			MaxRetries:  2,
			MaxBodySize: 20 << 20, // 20MB
		},
		Store: StoreConfig{
			TTL:             1 * time.Hour,
			CleanupInterval: 5 * time.Minute,
		},
	}
}

// Load loads configuration from a file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// configNames are the file names LoadFromDir tries, in order.
var configNames = []string{"config.yaml", "config.yml"}

// LoadFromDir loads the first config file found in dir, or returns the
// defaults when there is none.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// ApplyEnv overrides fields from LOCATOR_* environment variables.
// PORT is honored as well for container platforms.
func (c *Config) ApplyEnv() {
	c.Server.Port = envOr("PORT", c.Server.Port)
	c.Server.Port = envOr("LOCATOR_PORT", c.Server.Port)
	c.Server.AuthToken = envOr("LOCATOR_AUTH_TOKEN", c.Server.AuthToken)
	c.Server.MaxBodyBytes = envInt64("LOCATOR_MAX_BODY_BYTES", c.Server.MaxBodyBytes)

	c.Analysis.Workers = envInt("LOCATOR_WORKERS", c.Analysis.Workers)
	c.Analysis.IncludeDuplicateIDs = envBool("LOCATOR_INCLUDE_DUPLICATE_IDS", c.Analysis.IncludeDuplicateIDs)
	c.Analysis.ExampleLimit = envInt("LOCATOR_EXAMPLE_LIMIT", c.Analysis.ExampleLimit)

	c.Fetch.Timeout = envDuration("LOCATOR_FETCH_TIMEOUT", c.Fetch.Timeout)
	c.Fetch.MaxRetries = envInt("LOCATOR_FETCH_RETRIES", c.Fetch.MaxRetries)

	c.Store.TTL = envDuration("LOCATOR_JOB_TTL", c.Store.TTL)

	c.Log.File = envOr("LOCATOR_LOG_FILE", c.Log.File)
	c.Log.Verbose = envBool("LOCATOR_VERBOSE", c.Log.Verbose)
}

// Validate checks the settings the HTTP server depends on.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return core.ErrInvalidConfig.WithMessage("server port is required")
	}
	if c.Server.AuthToken == "" {
		return core.ErrInvalidConfig.WithMessage("server auth token is required (LOCATOR_AUTH_TOKEN)")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return core.ErrInvalidConfig.WithMessage("server maxBodyBytes must be positive")
	}
	if c.Analysis.Workers < 0 {
		return core.ErrInvalidConfig.WithMessage("analysis workers must not be negative")
	}
	if c.Fetch.MaxRetries < 0 {
		return core.ErrInvalidConfig.WithMessage("fetch maxRetries must not be negative")
	}
	if c.Store.TTL <= 0 {
		return core.ErrInvalidConfig.WithMessage("store ttl must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// Package config assembles the runtime settings from an optional YAML file,
// a .env file and TASKBOARD_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"taskboard/internal/util"
)

// Storage drivers accepted by Config.Storage.Driver.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl"`
	Admins   []string      `yaml:"admins"`
}

// Config is the full runtime configuration of the taskboard binary.
type Config struct {
	Addr        string        `yaml:"addr"`
	StaticDir   string        `yaml:"static_dir"`
	LogLevel    string        `yaml:"log_level"`
	CORSOrigins []string      `yaml:"cors_origins"`
	Storage     StorageConfig `yaml:"storage"`
	Auth        AuthConfig    `yaml:"auth"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Addr:      ":8080",
		StaticDir: "web/dist",
		LogLevel:  "info",
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   "data/taskboard.db",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
	}
}

// Load reads path when it is not empty, then applies .env and environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.Addr = util.EnvOrDefault("TASKBOARD_ADDR", c.Addr)
	c.StaticDir = util.EnvOrDefault("TASKBOARD_STATIC_DIR", c.StaticDir)
	c.LogLevel = util.EnvOrDefault("TASKBOARD_LOG_LEVEL", c.LogLevel)
	c.CORSOrigins = util.EnvList("TASKBOARD_CORS_ORIGINS", c.CORSOrigins)

	c.Storage.Driver = util.EnvOrDefault("TASKBOARD_STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.Path = util.EnvOrDefault("TASKBOARD_DB_PATH", c.Storage.Path)
	c.Storage.DSN = util.EnvOrDefault("TASKBOARD_DB_DSN", c.Storage.DSN)

	c.Auth.Secret = util.EnvOrDefault("TASKBOARD_JWT_SECRET", c.Auth.Secret)
	c.Auth.Admins = util.EnvList("TASKBOARD_ADMINS", c.Auth.Admins)
	ttl, ok := util.EnvDuration("TASKBOARD_TOKEN_TTL", c.Auth.TokenTTL)
	if !ok {
		return fmt.Errorf("invalid TASKBOARD_TOKEN_TTL %q", os.Getenv("TASKBOARD_TOKEN_TTL"))
	}
	c.Auth.TokenTTL = ttl
	return nil
}

// Validate checks that the selected storage driver has what it needs.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.Path == "" {
			return errors.New("sqlite storage needs a database path")
		}
	case DriverPostgres, DriverPgx:
		if c.Storage.DSN == "" {
			return fmt.Errorf("%s storage needs a DSN", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

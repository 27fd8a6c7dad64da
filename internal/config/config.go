package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Export    ExportConfig    `yaml:"export"`
	Activity  ActivityConfig  `yaml:"activity"`
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

type SourceConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// ActivityConfig locates the activity log database. An empty DSN uses the
// source database for SQLite sources and a file next to the source
// otherwise.
type ActivityConfig struct {
	DSN string `yaml:"dsn"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Backend is the persistence used for the source table.
type Backend string

const (
	BackendSheet  Backend = "sheet"
	BackendSQLite Backend = "sqlite"
)

// ErrUnknownBackend is returned for source paths with an unsupported extension.
var ErrUnknownBackend = errors.New("unknown source backend")

const activityFileName = "consolidacao_activity.db"

// Backend picks the persistence from the source file extension.
func (c SourceConfig) Backend() (Backend, error) {
	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".xlsx", ".csv":
		return BackendSheet, nil
	case ".db", ".sqlite", ".sqlite3":
		return BackendSQLite, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownBackend, c.Path)
}

// ActivityDataSource resolves the activity log DSN.
func (c Config) ActivityDataSource() string {
	if c.Activity.DSN != "" {
		return c.Activity.DSN
	}
	if b, err := c.Source.Backend(); err == nil && b == BackendSQLite {
		return c.Source.Path
	}
	return filepath.Join(filepath.Dir(c.Source.Path), activityFileName)
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Source: SourceConfig{
			Path:  "inventario_preliminar_app.xlsx",
			Watch: true,
		},
		Export: ExportConfig{
			Dir:    ".",
			Format: "xlsx",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("CONSOLIDACAO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if path := os.Getenv("CONSOLIDACAO_SOURCE_PATH"); path != "" {
		cfg.Source.Path = path
	}
	if watch := os.Getenv("CONSOLIDACAO_WATCH"); watch != "" {
		v, err := strconv.ParseBool(watch)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CONSOLIDACAO_WATCH: %w", err)
		}
		cfg.Source.Watch = v
	}
	if dir := os.Getenv("CONSOLIDACAO_EXPORT_DIR"); dir != "" {
		cfg.Export.Dir = dir
	}
	if format := os.Getenv("CONSOLIDACAO_EXPORT_FORMAT"); format != "" {
		cfg.Export.Format = format
	}
	if dsn := os.Getenv("CONSOLIDACAO_ACTIVITY_DSN"); dsn != "" {
		cfg.Activity.DSN = dsn
	}
	if host := os.Getenv("CONSOLIDACAO_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("CONSOLIDACAO_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CONSOLIDACAO_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("CONSOLIDACAO_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("CONSOLIDACAO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("CONSOLIDACAO_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}

	if err := cfg.Transport.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the transport mode. Callers overriding Mode after Load
// must validate again.
func (t TransportConfig) Validate() error {
	switch t.Mode {
	case "stdio", "http":
		return nil
	}
	return fmt.Errorf("invalid transport mode %q (want stdio or http)", t.Mode)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Package config loads introboard settings: defaults, then an optional YAML
// file, then environment overrides. Command-line flags are applied last by the
// caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"
	_ "time/tzdata"

	"introboard/internal/intro"
	"introboard/internal/sheetclient"
	"introboard/internal/view"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	EnvEndpointURL = "INTROBOARD_ENDPOINT_URL"
	EnvAddr        = "INTROBOARD_ADDR"
	EnvLogLevel    = "INTROBOARD_LOG_LEVEL"
	EnvDatabaseURL = "DATABASE_URL"
)

// Store drivers for the sheet stub.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Addr     string         `yaml:"addr"`
	Log      LogConfig      `yaml:"log"`
	Endpoint EndpointConfig `yaml:"endpoint"`
	Locale   LocaleConfig   `yaml:"locale"`
	Form     FormConfig     `yaml:"form"`
	Toast    ToastConfig    `yaml:"toast"`
	Session  SessionConfig  `yaml:"session"`
	Sheet    SheetConfig    `yaml:"sheet"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// EndpointConfig describes the remote spreadsheet endpoint.
type EndpointConfig struct {
	URL                  string        `yaml:"url"`
	ReadAction           string        `yaml:"read_action"`
	Timeout              time.Duration `yaml:"timeout"`
	AllowedRedirectHosts []string      `yaml:"allowed_redirect_hosts"`
}

type LocaleConfig struct {
	Default  string `yaml:"default"`
	Timezone string `yaml:"timezone"`
}

type FormConfig struct {
	Required []string `yaml:"required"`
}

type ToastConfig struct {
	Duration time.Duration `yaml:"duration"`
}

type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// SheetConfig configures the local stand-in for the remote endpoint.
type SheetConfig struct {
	Addr        string `yaml:"addr"`
	Path        string `yaml:"path"`
	Store       string `yaml:"store"`
	DatabaseURL string `yaml:"database_url"`
	SQLitePath  string `yaml:"sqlite_path"`
	Migrations  string `yaml:"migrations"`
}

func Default() *Config {
	return &Config{
		Addr: ":8080",
		Log:  LogConfig{Level: "info"},
		Endpoint: EndpointConfig{
			ReadAction:           sheetclient.DefaultReadAction,
			Timeout:              sheetclient.DefaultTimeout,
			AllowedRedirectHosts: slices.Clone(sheetclient.DefaultAllowedRedirectHosts),
		},
		Locale: LocaleConfig{Default: "ko", Timezone: "Asia/Seoul"},
		Form:   FormConfig{Required: slices.Clone(intro.DefaultRequired)},
		Toast:  ToastConfig{Duration: view.DefaultToastDuration},
		Session: SessionConfig{
			TTL:           30 * time.Minute,
			SweepInterval: time.Minute,
		},
		Sheet: SheetConfig{
			Addr:       ":8090",
			Path:       "/exec",
			Store:      StoreMemory,
			SQLitePath: "introboard.db",
			Migrations: "file://migrations",
		},
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvEndpointURL); v != "" {
		c.Endpoint.URL = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.Sheet.DatabaseURL = v
	}
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the settings the web app needs.
func (c *Config) Validate() error {
	var errs []error
	if c.Endpoint.URL == "" {
		errs = append(errs, fmt.Errorf("endpoint.url is required (or set %s)", EnvEndpointURL))
	}
	if c.Endpoint.Timeout <= 0 {
		errs = append(errs, errors.New("endpoint.timeout must be positive"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if c.Session.SweepInterval <= 0 {
		errs = append(errs, errors.New("session.sweep_interval must be positive"))
	}
	if _, err := language.Parse(c.Locale.Default); err != nil {
		errs = append(errs, fmt.Errorf("locale.default: %w", err))
	}
	if _, err := time.LoadLocation(c.Locale.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("locale.timezone: %w", err))
	}
	return errors.Join(errs...)
}

// ValidateSheet checks the settings the sheet stub needs.
func (c *Config) ValidateSheet() error {
	switch c.Sheet.Store {
	case StoreMemory:
	case StorePostgres:
		if c.Sheet.DatabaseURL == "" {
			return fmt.Errorf("sheet.database_url is required for the postgres store (or set %s)", EnvDatabaseURL)
		}
	case StoreSQLite:
		if c.Sheet.SQLitePath == "" {
			return errors.New("sheet.sqlite_path is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown sheet store %q", c.Sheet.Store)
	}
	return nil
}

// Language returns the parsed default language, Korean when unparsable.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale.Default)
	if err != nil {
		return language.Korean
	}
	return tag
}

// Location returns the display timezone, UTC when unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Locale.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

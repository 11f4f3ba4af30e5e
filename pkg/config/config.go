// Package config loads pthscan settings from defaults, an optional TOML
// or YAML file and the environment.
//
// Precedence, lowest first: [Default], the file passed to [Load],
// environment variables, then whatever the caller applies from flags.
// Call [Config.Validate] after the last layer.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pthscan/pkg/errors"
)

// Environment variables consulted by [Config.ApplyEnv].
const (
	EnvIndexURL = "PTHSCAN_INDEX_URL"
	EnvRedisURL = "PTHSCAN_REDIS_URL"
)

// Config holds every tunable of a scan.
type Config struct {
	Index IndexConfig `toml:"index" yaml:"index"`
	Scan  ScanConfig  `toml:"scan" yaml:"scan"`
	HTTP  HTTPConfig  `toml:"http" yaml:"http"`
	Cache CacheConfig `toml:"cache" yaml:"cache"`
}

// IndexConfig locates the package index.
type IndexConfig struct {
	URL      string `toml:"url" yaml:"url"`             // scheme and host, no trailing slash
	RootPath string `toml:"root_path" yaml:"root_path"` // catalog listing path
}

// ScanConfig controls the worker pool and progress output.
type ScanConfig struct {
	Workers       int `toml:"workers" yaml:"workers"`
	BatchSize     int `toml:"batch_size" yaml:"batch_size"`
	ProgressEvery int `toml:"progress_every" yaml:"progress_every"`
}

// HTTPConfig controls fetching.
type HTTPConfig struct {
	Timeout   Duration `toml:"timeout" yaml:"timeout"`
	Retries   int      `toml:"retries" yaml:"retries"`
	UserAgent string   `toml:"user_agent" yaml:"user_agent"`
}

// CacheConfig controls listing caching. Redis wins over Dir when both
// are set.
type CacheConfig struct {
	Enabled  bool     `toml:"enabled" yaml:"enabled"`
	Dir      string   `toml:"dir" yaml:"dir"`
	RedisURL string   `toml:"redis_url" yaml:"redis_url"`
	TTL      Duration `toml:"ttl" yaml:"ttl"`
}

// Duration is a time.Duration written as "30s" or "5m" in config files.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML decoder.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Index: IndexConfig{
			URL:      "https://pypi.org",
			RootPath: "/simple",
		},
		Scan: ScanConfig{
			Workers:       8,
			BatchSize:     10,
			ProgressEvery: 100,
		},
		HTTP: HTTPConfig{
			Timeout: Duration{5 * time.Minute},
			Retries: 1,
		},
		Cache: CacheConfig{
			TTL: Duration{24 * time.Hour},
		},
	}
}

// Load returns the defaults overlaid with the file at path and then the
// environment. An empty path skips the file. The format follows the
// extension: .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
	return nil
}

// ApplyEnv overrides fields from the environment. lookup is usually
// os.LookupEnv. Setting PTHSCAN_REDIS_URL also enables caching.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvIndexURL); ok && v != "" {
		c.Index.URL = v
	}
	if v, ok := lookup(EnvRedisURL); ok && v != "" {
		c.Cache.RedisURL = v
		c.Cache.Enabled = true
	}
}

// Validate reports the first setting that cannot produce a working scan.
func (c Config) Validate() error {
	if err := errors.ValidateBaseURL(c.Index.URL); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Index.RootPath, "/") {
		return errors.New(errors.ErrCodeInvalidConfig, "index root path must start with /: %q", c.Index.RootPath)
	}
	if c.Scan.Workers <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be positive, got %d", c.Scan.Workers)
	}
	if c.Scan.BatchSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "batch size must be positive, got %d", c.Scan.BatchSize)
	}
	if c.Scan.ProgressEvery <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "progress interval must be positive, got %d", c.Scan.ProgressEvery)
	}
	if c.HTTP.Timeout.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "http timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if c.HTTP.Retries < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "http retries must be at least 1, got %d", c.HTTP.Retries)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

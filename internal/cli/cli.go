// Package cli implements the pthscan command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pthscan/pkg/buildinfo"
	"github.com/matzehuels/pthscan/pkg/cache"
	"github.com/matzehuels/pthscan/pkg/config"
	"github.com/matzehuels/pthscan/pkg/index"
	"github.com/matzehuels/pthscan/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pthscan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool // debug level: run summary and hook logging on stderr
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level, index requests,
// cache lookups and verdicts are logged and scans end with a summary.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.verbose = level <= log.DebugLevel
	if c.verbose {
		registerDebugHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "pthscan finds packages whose newest release installs a .pth file",
		Long: `pthscan walks a Python package index and reports every package whose newest
wheel or source archive ships a .pth file. Such files run code at interpreter
startup, so they deserve a closer look.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml or .yml)")

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Index
// =============================================================================

// loadConfig reads the --config file and the environment.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newIndex creates an index client for cfg. The returned cache must be
// closed by the caller.
func (c *CLI) newIndex(ctx context.Context, cfg config.Config) (*index.Client, cache.Cache) {
	store := c.openCache(ctx, cfg.Cache)
	userAgent := cfg.HTTP.UserAgent
	if userAgent == "" {
		userAgent = buildinfo.UserAgent()
	}
	client := index.NewClient(index.Options{
		BaseURL:  cfg.Index.URL,
		RootPath: cfg.Index.RootPath,
		Timeout:  cfg.HTTP.Timeout.Duration,
		Retries:  cfg.HTTP.Retries,
		Cache:    store,
		CacheTTL: cfg.Cache.TTL.Duration,
		Headers:  map[string]string{"User-Agent": userAgent},
		Logger:   c.Logger,
	})
	return client, store
}

// openCache picks the listing cache backend. A backend that cannot be
// opened is logged and replaced by no caching.
func (c *CLI) openCache(ctx context.Context, cfg config.CacheConfig) cache.Cache {
	if !cfg.Enabled {
		return cache.NewNullCache()
	}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, continuing without cache", "err", err)
			return cache.NewNullCache()
		}
		c.Logger.Debug("using redis cache")
		return cache.Namespace(rc, appName+":")
	}

	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			c.Logger.Warn("no cache directory, continuing without cache", "err", err)
			return cache.NewNullCache()
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, continuing without cache", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	c.Logger.Debug("using file cache", "dir", dir)
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pthscan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Hooks
// =============================================================================

// registerDebugHooks routes observability events to logger.
func registerDebugHooks(logger *log.Logger) {
	h := &logHooks{logger: logger}
	observability.SetHTTPHooks(h)
	observability.SetCacheHooks(h)
	observability.SetScanHooks(h)
}

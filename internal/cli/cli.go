// Package cli implements the darkroom command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jverel/darkroom/pkg/buildinfo"
	"github.com/jverel/darkroom/pkg/cache"
	"github.com/jverel/darkroom/pkg/genedit"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "darkroom"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the config
// loaded from disk (falling back to defaults if no config file exists).
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: LoadConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "darkroom",
		Short:        "Darkroom is an image workspace with selection, crop, and generative editing",
		Long:         `Darkroom is a terminal image workspace: import images, drag out selections to crop, send marked assets to a generative edit service, and walk the whole session back and forth with undo/redo.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.studioCommand())
	root.AddCommand(c.cropCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Factories
// =============================================================================

// newCache creates the edit-result cache selected by config and flags.
// Backend failures degrade to a null cache so commands still run.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache()
	}

	if c.Config.Cache.Backend == "redis" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, falling back to file cache", "err", err)
		} else {
			return rc
		}
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// newEditClient creates the edit service client from config.
func (c *CLI) newEditClient(ctx context.Context, noCache bool) (*genedit.Client, error) {
	return genedit.NewClient(genedit.Config{
		BaseURL: c.Config.Service.URL,
		APIKey:  c.Config.Service.APIKey,
		Model:   c.Config.Service.Model,
		Cache:   c.newCache(ctx, noCache),
	})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/darkroom/).
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

// configDir returns the config directory using XDG standard (~/.config/darkroom/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

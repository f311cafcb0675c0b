// Package cli implements the gummygrid command-line interface.
//
// This package provides commands for generating avatars, serving them over
// HTTP, previewing seeds interactively, and managing the avatar cache. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Render the avatar for a seed to a file or stdout
//   - serve: Run the avatar HTTP service
//   - preview: Explore seeds interactively in the terminal
//   - cache: Manage the local avatar cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so commands and the HTTP server share one
// configured logger.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/boradatti/gummygrid/pkg/buildinfo"
	"github.com/boradatti/gummygrid/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "gummygrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a timestamped logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. The logger is attached to the command context in
// PersistentPreRun so every command can retrieve it.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gummygrid generates deterministic grid avatars",
		Long:         `Gummygrid turns any seed string into a reproducible SVG avatar: a mirrored grid pattern with configurable colors, rounding, and spacing. The same seed always yields the same image.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Cache backend names accepted by --cache flags.
const (
	cacheBackendNone  = "none"
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendMongo = "mongo"
)

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/gummygrid/).
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

// newFileCache opens the default file-backed avatar cache.
func newFileCache() (cache.Cache, error) {
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// Package cli implements the autolayout command-line interface.
//
// Commands operate on scenario documents (TOML, YAML or JSON) describing a
// layout tree, its constraints and the environment to solve in:
//
//   - solve: solve a scenario and print or render the frames
//   - vfl: expand a visual format string into constraints
//   - graph: draw the constraint graph with Graphviz
//   - explore: resize, rotate and toggle the keyboard interactively
//   - cache: manage the rendered-artifact cache
//
// All commands accept --verbose (-v) for debug logging, which also routes
// solver, store and environment events to the log.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autolayout/pkg/cache"
)

const (
	// appName is the application name used for directories and display.
	appName = "autolayout"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	stdout io.Writer
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), stdout: os.Stdout}
}

// SetLogLevel updates the logger's level. Debug level also installs the
// logging observability hooks.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		installHooks(c.Logger)
	}
}

// newCache returns the artifact cache, or a null cache when caching is
// disabled or no cache directory is available.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	fc, err := openFileCache()
	if err != nil {
		c.Logger.Warn("artifact cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/autolayout/).
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

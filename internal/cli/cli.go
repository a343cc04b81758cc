package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/matzehuels/infographic/pkg/buildinfo"
	"github.com/matzehuels/infographic/pkg/cache"
	"github.com/matzehuels/infographic/pkg/options"
	"github.com/matzehuels/infographic/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "infographic"

	// envRedisAddr and envMongoURI provide defaults for the serve flags.
	envRedisAddr = "INFOGRAPHIC_REDIS_ADDR"
	envMongoURI  = "INFOGRAPHIC_MONGO_URI"
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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	artifacts, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(artifacts, newKeyer(), c.Logger), nil
}

// newKeyer scopes artifact keys by release, so upgrading never serves
// artifacts drawn by an older layout.
func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.Version+":")
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the artifact cache directory (~/.cache/infographic/ on
// Linux, honoring XDG_CACHE_HOME).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// loadSpec reads a spec file, or stdin when path is "-". Stdin is read as
// stdinFormat.
func loadSpec(path, stdinFormat string) (options.Options, error) {
	if path == "-" {
		return options.Decode(os.Stdin, stdinFormat)
	}
	return options.Load(path)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// envOr returns the environment variable key, or def when it is unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

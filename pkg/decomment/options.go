// Package decomment provides the public API for stripping HTML comments
// from files and directory trees.
package decomment

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds all Decommenter configuration.
type Config struct {
	// Filter removes only comments containing this literal, case-sensitive
	// substring. Empty removes every comment.
	Filter string

	// Recursive descends into subdirectories when the input is a directory.
	Recursive bool

	// OutputDir mirrors results under this directory instead of rewriting
	// files in place.
	OutputDir string

	// Encoding forces a charset for reading and writing files. Empty means
	// detect per file.
	Encoding string

	// Extensions selects which files a directory walk picks up. Ignored
	// when the input is a single file.
	Extensions []string `validate:"required,min=1,dive,startswith=."`

	// MaxFileSize skips files larger than this many bytes. Zero disables
	// the guard.
	MaxFileSize int64 `validate:"gte=0"`

	// Logger receives per-file progress. Defaults to the package logger.
	Logger *slog.Logger `validate:"-"`
}

var validate = validator.New()

// DefaultExtensions returns the file extensions a directory walk considers.
func DefaultExtensions() []string {
	return []string{".html", ".htm", ".php", ".asp", ".aspx", ".jsp", ".tpl"}
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Extensions: DefaultExtensions(),
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// normalize trims extensions and ensures each carries a leading dot. Case is
// preserved: suffixes are compared against file names exactly as given.
func (c *Config) normalize() {
	exts := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Extensions = exts
}

// Option configures a Decommenter.
type Option func(*Config)

// WithFilter removes only comments containing the given literal substring.
func WithFilter(filter string) Option {
	return func(c *Config) {
		c.Filter = filter
	}
}

// WithRecursive enables descending into subdirectories.
func WithRecursive(enabled bool) Option {
	return func(c *Config) {
		c.Recursive = enabled
	}
}

// WithOutputDir mirrors results under dir instead of rewriting in place.
func WithOutputDir(dir string) Option {
	return func(c *Config) {
		c.OutputDir = dir
	}
}

// WithEncoding forces a charset instead of detecting one per file.
func WithEncoding(name string) Option {
	return func(c *Config) {
		c.Encoding = name
	}
}

// WithExtensions overrides the extensions a directory walk considers.
func WithExtensions(exts []string) Option {
	return func(c *Config) {
		c.Extensions = exts
	}
}

// WithMaxFileSize skips files larger than n bytes. Zero disables the guard.
func WithMaxFileSize(n int64) Option {
	return func(c *Config) {
		c.MaxFileSize = n
	}
}

// WithLogger sets the logger used for per-file progress.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// Package config loads engine settings from defaults, an optional TOML or
// YAML file and ANNOTATE_ environment variables, in that order of
// precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/annotate/internal/engine/history"
	"github.com/dshills/annotate/internal/logging"
)

// Config holds all settings.
type Config struct {
	History HistoryConfig `toml:"history" yaml:"history"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// HistoryConfig configures the undo stack.
type HistoryConfig struct {
	// MaxEntries bounds the number of undo steps kept.
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`

	// MergeEnabled allows compatible consecutive commands to fold into
	// one undo step.
	MergeEnabled bool `toml:"merge_enabled" yaml:"merge_enabled"`

	// MergeWindow limits merging to commands pushed within this long of
	// the previous one. Zero means no limit.
	MergeWindow Duration `toml:"merge_window" yaml:"merge_window"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		History: HistoryConfig{
			MaxEntries:   history.DefaultMaxEntries,
			MergeEnabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string
	if c.History.MaxEntries <= 0 {
		problems = append(problems, fmt.Sprintf("history.max_entries must be positive, got %d", c.History.MaxEntries))
	}
	if c.History.MergeWindow < 0 {
		problems = append(problems, fmt.Sprintf("history.merge_window must not be negative, got %s", c.History.MergeWindow))
	}
	if !logging.IsLevel(c.Logging.Level) {
		problems = append(problems, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	if !logging.IsFormat(c.Logging.Format) {
		problems = append(problems, fmt.Sprintf("logging.format %q is not text or json", c.Logging.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Duration is a time.Duration written as a Go duration string ("750ms",
// "2s") in config files.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

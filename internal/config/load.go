package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "ANNOTATE_"

// Load returns the defaults overlaid with the file at path, if it exists.
// An empty path or a missing file yields the defaults. Environment
// overrides are not applied; see ApplyEnv.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := Decode(path, data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode unmarshals data into v, choosing TOML or YAML by the extension of
// path. Unknown keys are rejected.
func Decode(path string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return tomlError(path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

func tomlError(path string, err error) error {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
	}
	return pe
}

// ApplyEnv overrides settings from ANNOTATE_ environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		c.Logging.Format = v
	}
	if v, ok := lookup("HISTORY_MAX_ENTRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("HISTORY_MAX_ENTRIES", v, err)
		}
		c.History.MaxEntries = n
	}
	if v, ok := lookup("HISTORY_MERGE_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError("HISTORY_MERGE_ENABLED", v, err)
		}
		c.History.MergeEnabled = b
	}
	if v, ok := lookup("HISTORY_MERGE_WINDOW"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError("HISTORY_MERGE_WINDOW", v, err)
		}
		c.History.MergeWindow = Duration(d)
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	return strings.TrimSpace(v), ok
}

func envError(name, value string, err error) error {
	return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, name, value, err)
}

// LoadAll loads path, applies environment overrides and validates the
// result.
func LoadAll(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

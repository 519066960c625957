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

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file settings.
const (
	EnvLogLevel  = "AUTOBULLET_LOG_LEVEL"
	EnvLogFormat = "AUTOBULLET_LOG_FORMAT"
	EnvEnabled   = "AUTOBULLET_ENABLED"
)

// Format is a config file format.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format for a file path based on its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load builds a configuration from defaults, the file at path and the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		format, err := FormatOf(path)
		if err != nil {
			return nil, err
		}
		if err := Decode(data, format, cfg); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode expands ${VAR} references in data and decodes it into cfg.
// Settings absent from data keep their current values.
func Decode(data []byte, format Format, cfg *Config) error {
	expanded := []byte(os.ExpandEnv(string(data)))

	switch format {
	case FormatTOML:
		return toml.NewDecoder(bytes.NewReader(expanded)).DisallowUnknownFields().Decode(cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(expanded))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ApplyEnv overrides cfg with AUTOBULLET_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		cfg.Log.Format = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvEnabled); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvEnabled, v)
		}
		cfg.AutoBullet.Enabled = enabled
	}
	return nil
}

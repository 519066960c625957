package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dshills/autobullet/internal/input"
	"github.com/dshills/autobullet/internal/logging"
)

// Config holds all autobullet settings.
type Config struct {
	Log        LogConfig         `toml:"log" yaml:"log"`
	AutoBullet AutoBulletConfig  `toml:"autobullet" yaml:"autobullet"`
	Keymap     map[string]string `toml:"keymap" yaml:"keymap"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	// Output is "stderr", "stdout" or a file path.
	Output string `toml:"output" yaml:"output"`
	Color  bool   `toml:"color" yaml:"color"`
}

// AutoBulletConfig configures the bullet continuation extension.
type AutoBulletConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatConsole,
			Output: "stderr",
		},
		AutoBullet: AutoBulletConfig{
			Enabled: true,
		},
		Keymap: map[string]string{},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return &ValidationError{Section: "log", Err: err}
	}
	if err := validateKeymap(c.Keymap); err != nil {
		return &ValidationError{Section: "keymap", Err: err}
	}
	return nil
}

// Validate validates the logging configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.By(isLevel)),
		validation.Field(&c.Format, validation.Required, validation.In(logging.FormatConsole, logging.FormatJSON)),
		validation.Field(&c.Output, validation.Required),
	)
}

func isLevel(value any) error {
	s, _ := value.(string)
	if _, ok := logging.ParseLevel(s); !ok {
		return errors.New("must be one of debug, info, warn, error")
	}
	return nil
}

func validateKeymap(keymap map[string]string) error {
	errs := validation.Errors{}
	for name, command := range keymap {
		switch key := input.KeyFromName(name); key {
		case input.KeyNone:
			errs[name] = errors.New("unknown key")
		default:
			if strings.TrimSpace(command) == "" {
				errs[name] = errors.New("command is required")
			}
		}
	}
	return errs.Filter()
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	level, ok := logging.ParseLevel(c.Log.Level)
	if !ok {
		level = logging.LevelInfo
	}
	return logging.Config{
		Level:  level,
		Format: c.Log.Format,
		Output: c.Log.Output,
		Color:  c.Log.Color,
	}
}

// Bindings returns the keymap as keys and commands, sorted by key name.
// Entries with unknown keys are skipped.
func (c *Config) Bindings() []Binding {
	names := make([]string, 0, len(c.Keymap))
	for name := range c.Keymap {
		names = append(names, name)
	}
	sort.Strings(names)

	bindings := make([]Binding, 0, len(names))
	for _, name := range names {
		key := input.KeyFromName(name)
		if key == input.KeyNone {
			continue
		}
		bindings = append(bindings, Binding{Key: key, Command: c.Keymap[name]})
	}
	return bindings
}

// Binding maps a key to a command.
type Binding struct {
	Key     input.Key
	Command string
}

func (b Binding) String() string {
	return fmt.Sprintf("%s -> %s", b.Key, b.Command)
}

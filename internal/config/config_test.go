package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/autobullet/internal/input"
	"github.com/dshills/autobullet/internal/logging"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !cfg.AutoBullet.Enabled {
		t.Error("extension should be enabled by default")
	}
	if got := cfg.Logging(); got.Level != logging.LevelInfo || got.Format != logging.FormatConsole {
		t.Errorf("unexpected logging config %+v", got)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[log]
level = "debug"
format = "json"

[autobullet]
enabled = false

[keymap]
backspace = "deleteLeft"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Log.Output != "stderr" {
		t.Errorf("output should keep its default, got %q", cfg.Log.Output)
	}
	if cfg.AutoBullet.Enabled {
		t.Error("enabled should be false")
	}
	bindings := cfg.Bindings()
	if len(bindings) != 1 || bindings[0].Key != input.KeyBackspace || bindings[0].Command != "deleteLeft" {
		t.Errorf("bindings = %v", bindings)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yml", `
log:
  level: warn
autobullet:
  enabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Logging().Level != logging.LevelWarn {
		t.Errorf("Logging().Level = %v", cfg.Logging().Level)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", ""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("level = %q, want default", cfg.Log.Level)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("AB_TEST_LOG", "/tmp/autobullet.log")
	path := writeFile(t, "config.toml", `
[log]
output = "${AB_TEST_LOG}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Output != "/tmp/autobullet.log" {
		t.Errorf("output = %q", cfg.Log.Output)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "ERROR")
	t.Setenv(EnvEnabled, "false")
	path := writeFile(t, "config.toml", "[log]\nlevel = \"debug\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("level = %q, want error", cfg.Log.Level)
	}
	if cfg.AutoBullet.Enabled {
		t.Error("enabled should be overridden to false")
	}
}

func TestLoadNoFile(t *testing.T) {
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Log.Format)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		env     map[string]string
		check   func(error) bool
	}{
		{
			name:  "missing file",
			file:  "",
			check: func(err error) bool { return errors.Is(err, os.ErrNotExist) },
		},
		{
			name:    "unsupported format",
			file:    "config.json",
			content: "{}",
			check:   func(err error) bool { return errors.Is(err, ErrUnsupportedFormat) },
		},
		{
			name:    "bad toml",
			file:    "config.toml",
			content: "[log\nlevel=",
			check: func(err error) bool {
				var pe *ParseError
				return errors.As(err, &pe)
			},
		},
		{
			name:    "unknown field",
			file:    "config.yaml",
			content: "log:\n  colour: true\n",
			check: func(err error) bool {
				var pe *ParseError
				return errors.As(err, &pe)
			},
		},
		{
			name:    "invalid level",
			file:    "config.toml",
			content: "[log]\nlevel = \"loud\"\n",
			check: func(err error) bool {
				var ve *ValidationError
				return errors.As(err, &ve) && ve.Section == "log" && strings.Contains(err.Error(), "Level")
			},
		},
		{
			name:    "invalid format",
			file:    "config.toml",
			content: "[log]\nformat = \"xml\"\n",
			check: func(err error) bool {
				var ve *ValidationError
				return errors.As(err, &ve) && ve.Section == "log"
			},
		},
		{
			name:    "unknown key",
			file:    "config.toml",
			content: "[keymap]\nhyper = \"deleteLeft\"\n",
			check: func(err error) bool {
				var ve *ValidationError
				return errors.As(err, &ve) && ve.Section == "keymap" && strings.Contains(err.Error(), "hyper")
			},
		},
		{
			name:    "empty command",
			file:    "config.toml",
			content: "[keymap]\nenter = \" \"\n",
			check: func(err error) bool {
				var ve *ValidationError
				return errors.As(err, &ve) && ve.Section == "keymap"
			},
		},
		{
			name:    "bad env bool",
			file:    "config.toml",
			content: "",
			env:     map[string]string{EnvEnabled: "maybe"},
			check:   func(err error) bool { return errors.Is(err, ErrInvalidEnv) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "missing.toml")
			if tt.file != "" {
				path = writeFile(t, tt.file, tt.content)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error %T: %v", err, err)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a.toml":     FormatTOML,
		"a.TOML":     FormatTOML,
		"a.yaml":     FormatYAML,
		"dir/a.yml":  FormatYAML,
		"config.ini": "",
	} {
		got, err := FormatOf(path)
		if got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", path, got, want)
		}
		if want == "" && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatOf(%q) error = %v", path, err)
		}
	}
}

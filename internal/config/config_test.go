package config

// Notes:
// - LoadConfig tests that resolve by name change the working directory or
//   XDG_CONFIG_HOME, so they use t.Chdir/t.Setenv and cannot run in parallel.
// - The unreadable-file case is skipped when running as root, where chmod
//   000 does not prevent reads.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Theme.Name != "" || cfg.Footer.Enabled || cfg.Output.DisableErrorReport {
		t.Errorf("DefaultConfig() = %+v, want zero features", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidateFieldLength
// ---------------------------------------------------------------------------

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty value is valid", "", false},
		{"value at limit is valid", "1234567890", false},
		{"value over limit returns error", "12345678901", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, 10)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Fatalf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"zero config", func(c *Config) {}, nil},
		{"input format json", func(c *Config) { c.Input.Format = "json" }, nil},
		{"input format case-insensitive", func(c *Config) { c.Input.Format = "Markdown" }, nil},
		{"input format unknown", func(c *Config) { c.Input.Format = "xml" }, ErrInvalidValue},
		{"output format pdf", func(c *Config) { c.Output.Format = "pdf" }, nil},
		{"output format unknown", func(c *Config) { c.Output.Format = "odt" }, ErrInvalidValue},
		{"workers in range", func(c *Config) { c.Render.Workers = 4 }, nil},
		{"workers negative", func(c *Config) { c.Render.Workers = -1 }, ErrInvalidValue},
		{"workers too many", func(c *Config) { c.Render.Workers = MaxWorkers + 1 }, ErrInvalidValue},
		{"timeout valid", func(c *Config) { c.Render.Timeout = "45s" }, nil},
		{"timeout unparsable", func(c *Config) { c.Render.Timeout = "soon" }, ErrInvalidValue},
		{"timeout zero", func(c *Config) { c.Render.Timeout = "0s" }, ErrInvalidValue},
		{"author too long", func(c *Config) { c.Document.Author = strings.Repeat("a", MaxNameLength+1) }, ErrFieldTooLong},
		{"title too long", func(c *Config) { c.Document.Title = strings.Repeat("t", MaxTitleLength+1) }, ErrFieldTooLong},
		{"footer text too long", func(c *Config) { c.Footer.Text = strings.Repeat("f", MaxTextLength+1) }, ErrFieldTooLong},
		{"theme name too long", func(c *Config) { c.Theme.Name = strings.Repeat("n", MaxNameLength+1) }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderConfig_TimeoutDuration(t *testing.T) {
	t.Parallel()

	d, err := RenderConfig{Timeout: "1m30s"}.TimeoutDuration()
	if err != nil || d != 90*time.Second {
		t.Errorf("TimeoutDuration() = %v, %v; want 1m30s", d, err)
	}
	d, err = RenderConfig{}.TimeoutDuration()
	if err != nil || d != 0 {
		t.Errorf("empty TimeoutDuration() = %v, %v; want 0", d, err)
	}
}

// ---------------------------------------------------------------------------
// TestParse - YAML and TOML syntaxes
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	yamlSrc := `theme:
  name: corporate
document:
  author: "Ana Lima"
  date: auto
footer:
  enabled: true
  showPageNumber: true
render:
  workers: 2
`
	tomlSrc := `[theme]
name = "corporate"

[document]
author = "Ana Lima"
date = "auto"

[footer]
enabled = true
showPageNumber = true

[render]
workers = 2
`

	for _, tc := range []struct {
		ext string
		src string
	}{{".yaml", yamlSrc}, {".toml", tomlSrc}, {".TOML", tomlSrc}} {
		t.Run(tc.ext, func(t *testing.T) {
			t.Parallel()

			cfg, err := Parse([]byte(tc.src), tc.ext)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if cfg.Theme.Name != "corporate" {
				t.Errorf("Theme.Name = %q, want corporate", cfg.Theme.Name)
			}
			if cfg.Document.Author != "Ana Lima" || cfg.Document.Date != "auto" {
				t.Errorf("Document = %+v", cfg.Document)
			}
			if !cfg.Footer.Enabled || !cfg.Footer.ShowPageNumber {
				t.Errorf("Footer = %+v", cfg.Footer)
			}
			if cfg.Render.Workers != 2 {
				t.Errorf("Render.Workers = %d, want 2", cfg.Render.Workers)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		ext     string
		wantErr error
	}{
		{"yaml syntax", "theme: [unclosed", ".yaml", ErrConfigParse},
		{"yaml unknown field", "unknownField: x\n", ".yaml", ErrConfigParse},
		{"toml unknown field", "[theme]\nname = \"x\"\ncolor = \"red\"\n", ".toml", ErrConfigParse},
		{"toml syntax", "[theme\n", ".toml", ErrConfigParse},
		{"validation runs", "output:\n  format: odt\n", ".yml", ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse([]byte(tt.src), tt.ext); !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file path loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "test.yaml", "input:\n  defaultDir: /in\noutput:\n  defaultDir: /out\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.DefaultDir != "/in" || cfg.Output.DefaultDir != "/out" {
			t.Errorf("dirs = %q, %q", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
		}
	})

	t.Run("toml file path loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "test.toml", "[output]\nformat = \"html\"\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.Format != "html" {
			t.Errorf("Output.Format = %q, want html", cfg.Output.Format)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/path/config.yaml"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unreadable file returns read error", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root can read mode 000 files")
		}
		path := writeConfig(t, t.TempDir(), "unreadable.yaml", "theme:\n  name: x\n")
		if err := os.Chmod(path, 0o000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		t.Cleanup(func() { _ = os.Chmod(path, 0o600) })

		_, err := LoadConfig(path)
		if err == nil || errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want read error", err)
		}
	})

	t.Run("name resolves in current directory by extension order", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "myconfig.yml", "theme:\n  name: fromyml\n")
		writeConfig(t, dir, "myconfig.toml", "[theme]\nname = \"fromtoml\"\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Theme.Name != "fromyml" {
			t.Errorf("Theme.Name = %q, want fromyml (.yml before .toml)", cfg.Theme.Name)
		}
	})

	t.Run("name resolves toml when alone", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "only.toml", "[theme]\nname = \"fromtoml\"\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("only")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Theme.Name != "fromtoml" {
			t.Errorf("Theme.Name = %q, want fromtoml", cfg.Theme.Name)
		}
	})

	t.Run("name resolves from user config directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		t.Setenv("HOME", home)
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			t.Skip("cannot get user config dir")
		}
		appDir := filepath.Join(userConfigDir, AppDir)
		if err := os.MkdirAll(appDir, 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		writeConfig(t, appDir, "userconf.yaml", "theme:\n  name: userdir\n")
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig("userconf")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Theme.Name != "userdir" {
			t.Errorf("Theme.Name = %q, want userdir", cfg.Theme.Name)
		}
	})

	t.Run("unknown name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("missing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "missing.toml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

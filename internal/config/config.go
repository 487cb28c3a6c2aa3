// Package config loads and validates json2docx configuration files.
//
// Files are YAML (.yaml, .yml) or TOML (.toml), both decoded strictly so a
// misspelled key is an error rather than a silently ignored setting.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-json2docx/internal/codec"
	"github.com/alnah/go-json2docx/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory under the user config dir searched for config files.
const AppDir = "go-json2docx"

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxNameLength        = 100  // author, theme name
	MaxTitleLength       = 200  // document title
	MaxSubjectLength     = 200  // document subject
	MaxDescriptionLength = 1000 // document description
	MaxDateLength        = 30   // "2025-12-31" or "auto:DD/MM/YYYY"
	MaxIDLength          = 100  // document identifier
	MaxTextLength        = 500  // footer free-form text
	MaxWorkers           = 32
)

// Accepted enum values.
var (
	InputFormats  = []string{"json", "yaml", "markdown", "text"}
	OutputFormats = []string{"docx", "html", "pdf"}
)

// Config holds all configuration for document generation.
type Config struct {
	Input    InputConfig    `yaml:"input" toml:"input"`
	Output   OutputConfig   `yaml:"output" toml:"output"`
	Theme    ThemeConfig    `yaml:"theme" toml:"theme"`
	Assets   AssetsConfig   `yaml:"assets" toml:"assets"`
	Document DocumentConfig `yaml:"document" toml:"document"`
	Footer   FooterConfig   `yaml:"footer" toml:"footer"`
	Render   RenderConfig   `yaml:"render" toml:"render"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // empty = must specify
	Format     string `yaml:"format" toml:"format"`         // json, yaml, markdown, text (empty = by extension)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir         string `yaml:"defaultDir" toml:"defaultDir"`                 // empty = same as source
	Format             string `yaml:"format" toml:"format"`                         // docx, html, pdf (default docx)
	FallbackPath       string `yaml:"fallbackPath" toml:"fallbackPath"`             // empty = report_fallback.docx
	DisableErrorReport bool   `yaml:"disableErrorReport" toml:"disableErrorReport"` // skip error_report.docx
}

// ThemeConfig selects the document theme.
type ThemeConfig struct {
	Name string `yaml:"name" toml:"name"` // empty = "default"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" toml:"basePath"` // empty = embedded themes only
}

// DocumentConfig holds document properties written to docProps/core.xml.
type DocumentConfig struct {
	Title       string `yaml:"title" toml:"title"`             // empty = first heading
	Author      string `yaml:"author" toml:"author"`
	Subject     string `yaml:"subject" toml:"subject"`
	Description string `yaml:"description" toml:"description"`
	Date        string `yaml:"date" toml:"date"` // YYYY-MM-DD, "auto" or "auto:FORMAT"
	ID          string `yaml:"id" toml:"id"`     // empty = random UUID
}

// FooterConfig defines page footer options.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled" toml:"enabled"`
	ShowPageNumber bool   `yaml:"showPageNumber" toml:"showPageNumber"`
	Text           string `yaml:"text" toml:"text"`
}

// RenderConfig defines conversion runtime options.
type RenderConfig struct {
	Workers int    `yaml:"workers" toml:"workers"` // 0 = auto
	Timeout string `yaml:"timeout" toml:"timeout"` // Go duration, e.g. "30s" (empty = default)
}

// TimeoutDuration parses Render.Timeout. An empty value returns 0.
func (r RenderConfig) TimeoutDuration() (time.Duration, error) {
	if r.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: render.timeout: must be positive, got %s", ErrInvalidValue, r.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and enum values.
// Called by LoadConfig, but available for callers that build a Config by hand.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.fallbackPath", c.Output.FallbackPath, MaxPathLength},
		{"theme.name", c.Theme.Name, MaxNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.author", c.Document.Author, MaxNameLength},
		{"document.subject", c.Document.Subject, MaxSubjectLength},
		{"document.description", c.Document.Description, MaxDescriptionLength},
		{"document.date", c.Document.Date, MaxDateLength},
		{"document.id", c.Document.ID, MaxIDLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if err := validateEnum("input.format", c.Input.Format, InputFormats); err != nil {
		return err
	}
	if err := validateEnum("output.format", c.Output.Format, OutputFormats); err != nil {
		return err
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Render.Workers)
	}
	if _, err := c.Render.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts an empty value or one of allowed, case-insensitively.
func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns a configuration with every optional feature off.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched for by name in standard locations.
// Returns an error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data, filepath.Ext(configPath))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes config data. ext selects the syntax: ".toml" for TOML,
// anything else for YAML. The result is validated.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	var err error
	if strings.EqualFold(ext, ".toml") {
		err = codec.UnmarshalTOMLStrict(data, &cfg)
	} else {
		err = codec.UnmarshalYAMLStrict(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// configExtensions are tried in order when resolving a config name.
var configExtensions = []string{".yaml", ".yml", ".toml"}

// resolveConfigPath searches for a config file by name: first in the current
// directory, then in the user config directory under AppDir.
func resolveConfigPath(name string) (string, error) {
	triedPaths := make([]string, 0, len(configExtensions)*2)

	for _, ext := range configExtensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range configExtensions {
			userPath := filepath.Join(userConfigDir, AppDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-json2docx/internal/config"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "JSON2DOCX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // JSON2DOCX_CONFIG: config file path
	Theme      string        // JSON2DOCX_THEME: theme name or directory
	Format     string        // JSON2DOCX_FORMAT: docx, html, pdf
	Timeout    time.Duration // JSON2DOCX_TIMEOUT: PDF export timeout

	// Tier 2 - I/O and identity
	InputDir  string // JSON2DOCX_INPUT_DIR: default input directory
	OutputDir string // JSON2DOCX_OUTPUT_DIR: default output directory
	Author    string // JSON2DOCX_AUTHOR: document author
	Title     string // JSON2DOCX_TITLE: document title

	// Tier 3 - Extended
	Date    string // JSON2DOCX_DATE: document date
	Workers int    // JSON2DOCX_WORKERS: parallel workers
}

// knownEnvVars lists valid JSON2DOCX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"JSON2DOCX_CONFIG":  true,
	"JSON2DOCX_THEME":   true,
	"JSON2DOCX_FORMAT":  true,
	"JSON2DOCX_TIMEOUT": true,
	// Tier 2 - I/O and identity
	"JSON2DOCX_INPUT_DIR":  true,
	"JSON2DOCX_OUTPUT_DIR": true,
	"JSON2DOCX_AUTHOR":     true,
	"JSON2DOCX_TITLE":      true,
	// Tier 3 - Extended
	"JSON2DOCX_DATE":    true,
	"JSON2DOCX_WORKERS": true,
	// Read by doctor
	"JSON2DOCX_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("JSON2DOCX_CONFIG"),
		Theme:      os.Getenv("JSON2DOCX_THEME"),
		Format:     os.Getenv("JSON2DOCX_FORMAT"),
		InputDir:   os.Getenv("JSON2DOCX_INPUT_DIR"),
		OutputDir:  os.Getenv("JSON2DOCX_OUTPUT_DIR"),
		Author:     os.Getenv("JSON2DOCX_AUTHOR"),
		Title:      os.Getenv("JSON2DOCX_TITLE"),
		Date:       os.Getenv("JSON2DOCX_DATE"),
	}

	if timeout := os.Getenv("JSON2DOCX_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("JSON2DOCX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized JSON2DOCX_* variables.
// Helps catch typos like JSON2DOCX_THEMES.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" && cfg.Theme.Name == "" {
		cfg.Theme.Name = env.Theme
	}
	if env.Format != "" && cfg.Output.Format == "" {
		cfg.Output.Format = env.Format
	}
	if env.Timeout > 0 && cfg.Render.Timeout == "" {
		cfg.Render.Timeout = env.Timeout.String()
	}

	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Author != "" && cfg.Document.Author == "" {
		cfg.Document.Author = env.Author
	}
	if env.Title != "" && cfg.Document.Title == "" {
		cfg.Document.Title = env.Title
	}

	if env.Date != "" && cfg.Document.Date == "" {
		cfg.Document.Date = env.Date
	}
	if env.Workers > 0 && cfg.Render.Workers == 0 {
		cfg.Render.Workers = env.Workers
	}
}

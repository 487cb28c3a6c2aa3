package main

// Notes:
// - This file contains test helpers shared across command tests.
// - These are not functions under test themselves, but supporting infrastructure.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-json2docx/internal/config"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// validBlocks is a small document touching every block type.
const validBlocks = `[
  {"type": "heading", "level": 1, "text": "Quarterly Review"},
  {"type": "paragraph", "text": "Revenue **grew** this quarter."},
  {"type": "list", "items": ["North", {"text": "South", "value": 3}, ["East", "West"]]}
]`

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// testEnv returns an environment writing to buffers, reading stdin from in.
func testEnv(in string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  strings.NewReader(in),
		Config: config.DefaultConfig(),
	}, stdout, stderr
}

// writeTestFile writes content under dir, creating parents, and returns its path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// convert runs the convert command with a background context.
func convert(env *Environment, args ...string) error {
	return runConvertCmd(context.Background(), args, env)
}

// readDocumentXML opens a DOCX package and returns word/document.xml.
func readDocumentXML(t *testing.T, path string) string {
	t.Helper()
	return readZipPart(t, path, "word/document.xml")
}

// assertFileExists fails when path is missing or empty.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected %s to be non-empty", path)
	}
}

// assertNoFile fails when path exists.
func assertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("expected %s not to exist", path)
	}
}

// readZipPart returns one part of a DOCX package.
func readZipPart(t *testing.T, path, name string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening %s as zip: %v", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("%s has no %s", path, name)
	return ""
}

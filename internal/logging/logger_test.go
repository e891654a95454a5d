package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLines(t *testing.T, dir string) []map[string]any {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		out = append(out, entry)
	}
	return out
}

func TestNewLogger(t *testing.T) {
	t.Run("creates log file in directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")

		logger, err := NewLogger(dir, LevelDebug)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
			t.Errorf("log file was not created: %v", err)
		}
	})

	t.Run("writes to stderr when dir is empty", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		if logger.file != nil {
			t.Error("expected no file when dir is empty")
		}
		if err := logger.Close(); err != nil {
			t.Errorf("Close on stderr logger failed: %v", err)
		}
	})
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, "warn")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")
	logger.Close()

	lines := readLines(t, dir)
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	if lines[0]["level"] != "WARN" || lines[1]["level"] != "ERROR" {
		t.Errorf("unexpected levels: %v, %v", lines[0]["level"], lines[1]["level"])
	}
}

func TestWithAddsAttributes(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	child := logger.With("component", "ui")
	child.Info("day selected", "day", 2)
	logger.Info("plain")
	logger.Close()

	lines := readLines(t, dir)
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	if lines[0]["component"] != "ui" || lines[0]["day"] != float64(2) {
		t.Errorf("child entry = %v", lines[0])
	}
	if _, ok := lines[1]["component"]; ok {
		t.Error("parent logger should not inherit child attributes")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.With("k", "v").Error("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

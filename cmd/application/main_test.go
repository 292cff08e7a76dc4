package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeUserConfig(t *testing.T, dir, logPath, extra string) {
	t.Helper()
	content := fmt.Sprintf("logging:\n  output:\n    - %s\n%s", logPath, extra)
	if err := os.WriteFile(filepath.Join(dir, "application.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write user config: %v", err)
	}
}

func TestRunStartsWithUserConfig(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")
	writeUserConfig(t, dir, logPath, "")

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-c", dir, "--log-encoding", "json", "--log-level", "info"}, &stderr)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, stderr.String())
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "application started successfully") {
		t.Fatalf("expected startup message in log, got %s", data)
	}
	if !strings.Contains(string(data), `"log_level":"INFO"`) {
		t.Fatalf("expected resolved level in log, got %s", data)
	}
}

func TestRunFailsOnUnresolvedVariable(t *testing.T) {
	dir := t.TempDir()
	writeUserConfig(t, dir, filepath.Join(dir, "app.log"), "security:\n  secret: ${RUN_TEST_API_SECRET:?API secret must be set}\n")

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-c", dir}, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "API secret must be set") {
		t.Fatalf("expected caller-supplied message on stderr, got %s", stderr.String())
	}
}

func TestRunRejectsInvalidFlag(t *testing.T) {
	var stderr bytes.Buffer
	if code := run(context.Background(), []string{"--log-level", "chatty"}, &stderr); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestRunRejectsMalformedUserConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "application.yaml"), []byte("logging: [broken\n"), 0o600); err != nil {
		t.Fatalf("write user config: %v", err)
	}

	var stderr bytes.Buffer
	if code := run(context.Background(), []string{"-c", dir}, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "failed to load configuration") {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
}

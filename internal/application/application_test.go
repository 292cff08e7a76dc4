package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eugenenazirov/cli-bootstrap/internal/config"
	"github.com/eugenenazirov/cli-bootstrap/internal/validation"
)

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig()

	app, err := New(cfg, zaptest.NewLogger(t), nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if app.validators == nil || app.logger == nil {
		t.Fatalf("expected validators and logger to be initialized")
	}
	if app.Config().Logging.Level != cfg.Logging.Level {
		t.Fatalf("Config accessor did not return the configuration")
	}
}

func TestNewRequiresLogger(t *testing.T) {
	if _, err := New(baseTestConfig(), nil, nil); err == nil {
		t.Fatalf("expected error for missing logger")
	}
}

func TestRunLogsStartup(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	app, err := New(baseTestConfig(), zap.New(core), validation.NewRegistry())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if logs.FilterMessage("application started successfully").Len() != 1 {
		t.Fatalf("expected startup log entry, got %v", logs.All())
	}
}

func TestRunPropagatesValidatorExit(t *testing.T) {
	registry := validation.NewRegistry()
	registry.Register("security.secret", func() error { return errors.New("secret missing") }, validation.WithExit(2))

	app, err := New(baseTestConfig(), zaptest.NewLogger(t), registry)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var exitErr *validation.ExitError
	if err := app.Run(context.Background()); !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	app, err := New(baseTestConfig(), zaptest.NewLogger(t), nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRegisterDefaultsWarnsOnMissingConfigPath(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	registry := validation.NewRegistry()
	RegisterDefaults(registry, filepath.Join(t.TempDir(), "missing"))

	if err := registry.Validate(zap.New(core)); err != nil {
		t.Fatalf("missing config path must not be fatal, got %v", err)
	}
	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("expected a single warning, got %v", entries)
	}
}

func TestRegisterDefaultsAcceptsExistingDirectory(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	registry := validation.NewRegistry()
	RegisterDefaults(registry, t.TempDir())

	if err := registry.Validate(zap.New(core)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no log entries, got %v", logs.All())
	}
}

func baseTestConfig() config.Config {
	return config.Config{
		Logging: config.Logging{
			Level:      "INFO",
			Encoding:   config.EncodingJSON,
			TimeFormat: "15:04:05",
			Output:     []string{"stdout"},
		},
	}
}

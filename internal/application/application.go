package application

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eugenenazirov/cli-bootstrap/internal/config"
	"github.com/eugenenazirov/cli-bootstrap/internal/validation"
)

// App encapsulates the application dependencies.
type App struct {
	cfg        config.Config
	logger     *zap.Logger
	validators *validation.Registry
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, validators *validation.Registry) (*App, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if validators == nil {
		validators = validation.NewRegistry()
	}

	return &App{
		cfg:        cfg,
		logger:     logger.Named("application"),
		validators: validators,
	}, nil
}

// RegisterDefaults adds the validators every application carries. A missing
// configuration directory is only reported, since user files are optional.
func RegisterDefaults(validators *validation.Registry, configPath string) {
	validators.Register("config.path", func() error {
		info, err := os.Stat(configPath)
		if err != nil {
			return fmt.Errorf("configuration directory %s is not available: %w", configPath, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("configuration path %s is not a directory", configPath)
		}
		return nil
	}, validation.WithLevel(zapcore.WarnLevel), validation.WithExit(0))
}

// Run validates the configuration and starts the application work.
func (a *App) Run(ctx context.Context) error {
	if err := a.validators.Validate(a.logger); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	a.logger.Info("application started successfully",
		zap.String("log_level", a.cfg.Logging.Level),
		zap.String("log_encoding", a.cfg.Logging.Encoding),
	)
	return nil
}

// Config returns the configuration the application was built with.
func (a *App) Config() config.Config {
	return a.cfg
}

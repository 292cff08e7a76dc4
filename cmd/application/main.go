package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/eugenenazirov/cli-bootstrap/internal/application"
	"github.com/eugenenazirov/cli-bootstrap/internal/cli"
	"github.com/eugenenazirov/cli-bootstrap/internal/config"
	"github.com/eugenenazirov/cli-bootstrap/internal/logging"
	"github.com/eugenenazirov/cli-bootstrap/internal/settings"
	"github.com/eugenenazirov/cli-bootstrap/internal/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the application and returns the process exit code.
func run(ctx context.Context, argv []string, stderr io.Writer) int {
	parser := newParser()
	parser.App().ErrorWriter(stderr).UsageWriter(stderr)

	args, err := parser.Parse(argv)
	if err != nil {
		fmt.Fprintf(stderr, "application: %v\n", err)
		return 2
	}

	loader := &settings.Loader{
		Defaults:  settings.Defaults(),
		UserDir:   args.ConfigPath,
		Arguments: args.Tree,
	}

	cfg, err := config.Load(loader)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	validators := validation.NewRegistry()
	application.RegisterDefaults(validators, args.ConfigPath)

	app, err := application.New(cfg, logger, validators)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return 1
	}

	if err := app.Run(ctx); err != nil {
		var exitErr *validation.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		logger.Error("application failed", zap.Error(err))
		return 1
	}
	return 0
}

func newParser() *cli.Parser {
	parser := cli.NewParser("application", "Application description")
	parser.App().Help = "Application description\n\nCommand-line options take precedence over configuration files."

	parser.Enum("application.logging.level", "log-level", "Logger verbosity level", config.Levels...).
		PlaceHolder("LEVEL")
	parser.String("application.logging.encoding", "log-encoding", "Log encoding (console or json)").
		PlaceHolder("ENCODING")
	parser.Bool("application.logging.color", "log-color", "Colour level names in console output")

	return parser
}

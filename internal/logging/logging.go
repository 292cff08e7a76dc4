package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eugenenazirov/cli-bootstrap/internal/config"
)

// levels maps configuration level names onto zap levels.
var levels = map[string]zapcore.Level{
	"CRITICAL": zapcore.FatalLevel,
	"FATAL":    zapcore.FatalLevel,
	"ERROR":    zapcore.ErrorLevel,
	"WARNING":  zapcore.WarnLevel,
	"INFO":     zapcore.InfoLevel,
	"DEBUG":    zapcore.DebugLevel,
	"NOTSET":   zapcore.DebugLevel,
}

// Level converts a configuration level name to a zap level.
func Level(name string) (zapcore.Level, error) {
	if level, ok := levels[name]; ok {
		return level, nil
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown level %q: %w", name, err)
	}
	return level, nil
}

// New creates a structured logger from the logging settings.
func New(cfg config.Logging) (*zap.Logger, error) {
	level, err := Level(cfg.Level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = cfg.Encoding
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.TimeFormat != "" {
		zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	}
	zcfg.EncoderConfig.StacktraceKey = "stacktrace"
	zcfg.DisableStacktrace = false
	if cfg.Encoding == config.EncodingConsole {
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if cfg.Color {
			zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}
	if len(cfg.Output) > 0 {
		zcfg.OutputPaths = cfg.Output
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

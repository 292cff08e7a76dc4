// Package validation runs deferred configuration checks once logging is ready.
// Checks are registered while configuration is assembled and executed together,
// so every failure is reported before the process decides whether to exit.
package validation

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Check reports a validation failure by returning a non-nil error.
type Check func() error

// Option configures a registered validator.
type Option func(*validator)

// WithLevel sets the severity failures are logged with.
func WithLevel(level zapcore.Level) Option {
	return func(v *validator) {
		v.level = level
	}
}

// WithExit sets the process exit code requested on failure. Values <= 0 only
// log the failure.
func WithExit(code int) Option {
	return func(v *validator) {
		v.exit = code
	}
}

type validator struct {
	name  string
	check Check
	level zapcore.Level
	exit  int
}

// ExitError is returned by Validate when at least one failed validator asks
// for the process to terminate.
type ExitError struct {
	Code     int
	Failures []string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("configuration validation failed (exit %d): %s", e.Code, strings.Join(e.Failures, "; "))
}

// Registry collects validators.
type Registry struct {
	mu         sync.Mutex
	validators []validator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a named check. Defaults: error level, exit code 1.
func (r *Registry) Register(name string, check Check, opts ...Option) {
	v := validator{
		name:  name,
		check: check,
		level: zapcore.ErrorLevel,
		exit:  1,
	}
	for _, opt := range opts {
		opt(&v)
	}

	r.mu.Lock()
	r.validators = append(r.validators, v)
	r.mu.Unlock()
}

// Len returns the number of registered validators.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.validators)
}

// Validate runs every validator whose name ends with one of patterns, or all of
// them when no pattern is given. Failures are logged at their level; the
// returned *ExitError carries the highest requested exit code.
func (r *Registry) Validate(logger *zap.Logger, patterns ...string) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	r.mu.Lock()
	selected := make([]validator, 0, len(r.validators))
	for _, v := range r.validators {
		if matches(v.name, patterns) {
			selected = append(selected, v)
		}
	}
	r.mu.Unlock()

	var exitErr *ExitError
	for _, v := range selected {
		err := run(v.check)
		if err == nil {
			continue
		}

		// Panic and fatal entries would abort before the remaining checks run.
		if ce := logger.Check(min(v.level, zapcore.ErrorLevel), err.Error()); ce != nil {
			ce.Write(zap.String("validator", v.name), zap.Stringer("severity", v.level))
		}

		if v.exit <= 0 {
			continue
		}
		if exitErr == nil {
			exitErr = &ExitError{}
		}
		exitErr.Code = max(exitErr.Code, v.exit)
		exitErr.Failures = append(exitErr.Failures, fmt.Sprintf("%s: %v", v.name, err))
	}

	if exitErr != nil {
		return exitErr
	}
	return nil
}

func run(check Check) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return check()
}

func matches(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if strings.HasSuffix(name, pattern) {
			return true
		}
	}
	return false
}

package settings

import (
	"errors"
	"fmt"
)

var (
	// ErrDefaultsNotFound is returned when a configuration file has no
	// counterpart in the defaults directory.
	ErrDefaultsNotFound = errors.New("default configuration file not found")
	// ErrMalformedSource is returned when a configuration source cannot be parsed
	// into a mapping.
	ErrMalformedSource = errors.New("malformed configuration source")
	// ErrUnsupportedFormat is returned for file extensions without a decoder.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
	// ErrUnresolvedVariable is returned when a required environment variable
	// (${NAME:?message} or ${NAME?message}) is not available.
	ErrUnresolvedVariable = errors.New("unresolved environment variable")
	// ErrInvalidInterpolation is returned for malformed ${...} references.
	ErrInvalidInterpolation = errors.New("invalid interpolation")
)

// ExpansionError describes a failed environment reference. Error() renders as
// "NAME: message" for required variables.
type ExpansionError struct {
	Name    string
	Message string
	Ref     string
	err     error
}

func (e *ExpansionError) Error() string {
	if errors.Is(e.err, ErrInvalidInterpolation) {
		return fmt.Sprintf("invalid interpolation: %s", e.Ref)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

func (e *ExpansionError) Unwrap() error {
	return e.err
}

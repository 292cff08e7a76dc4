package config

import "errors"

var (
	// ErrInvalidLevel indicates logging.level is not one of Levels.
	ErrInvalidLevel = errors.New("invalid logging level")
	// ErrInvalidEncoding indicates logging.encoding is neither console nor json.
	ErrInvalidEncoding = errors.New("invalid logging encoding")
)

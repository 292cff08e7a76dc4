// Package config exposes the resolved application.yaml settings as strongly
// typed values. Values come from the settings loader with precedence:
// CLI flags > user configuration directory > embedded defaults, with blank
// settings filled from built-in fallbacks.
package config

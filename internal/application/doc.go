// Package application provides application initialization and dependency wiring.
// It receives the resolved configuration, logger and validator registry from
// the entrypoint, keeping the main package focused on CLI parsing and
// orchestration.
package application

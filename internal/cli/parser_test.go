package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/cli-bootstrap/internal/settings"
)

func newTestParser() *Parser {
	p := NewParser("application", "test application")
	p.Enum("application.logging.level", "log-level", "logger verbosity level",
		"CRITICAL", "FATAL", "ERROR", "WARNING", "INFO", "DEBUG", "NOTSET")
	p.String("application.logging.encoding", "log-encoding", "log encoding")
	p.Bool("application.logging.color", "log-color", "colour level names")
	return p
}

func TestParseDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvar, "")

	args, err := newTestParser().Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfigPath, args.ConfigPath)
	assert.Equal(t, settings.Tree{}, args.Tree, "unset flags must not populate the tree")
}

func TestParseDottedDestinations(t *testing.T) {
	args, err := newTestParser().Parse([]string{"-c", "/etc/app", "--log-level", "debug", "--log-encoding=json", "--no-log-color"})
	require.NoError(t, err)

	assert.Equal(t, "/etc/app", args.ConfigPath)
	assert.Equal(t, settings.Tree{
		"application": settings.Tree{
			"logging": settings.Tree{
				"level":    "DEBUG",
				"encoding": "json",
				"color":    false,
			},
		},
	}, args.Tree)
}

func TestParseBoolSwitch(t *testing.T) {
	args, err := newTestParser().Parse([]string{"--log-color"})
	require.NoError(t, err)

	value, ok := args.Tree.Get("application.logging.color")
	require.True(t, ok)
	assert.Equal(t, true, value)
}

func TestParseConfigPathFromEnvironment(t *testing.T) {
	t.Setenv(ConfigPathEnvar, "/srv/config")

	args, err := newTestParser().Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "/srv/config", args.ConfigPath)
}

func TestParseRejectsInvalidEnum(t *testing.T) {
	_, err := newTestParser().Parse([]string{"--log-level", "verbose"})
	assert.Error(t, err)
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	_, err := newTestParser().Parse([]string{"--unknown"})
	assert.Error(t, err)
}

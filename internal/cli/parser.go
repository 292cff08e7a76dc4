// Package cli wraps kingpin so that flags can target dotted configuration
// paths. Parsed values form a settings.Tree that the loader applies on top of
// configuration files.
package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/eugenenazirov/cli-bootstrap/internal/settings"
)

const (
	// DefaultConfigPath is used when -c/--config is not given.
	DefaultConfigPath = "./configuration"
	// ConfigPathEnvar may replace -c/--config.
	ConfigPathEnvar = "APP_CONFIG_PATH"
)

// Arguments is the outcome of a successful Parse.
type Arguments struct {
	// ConfigPath is the user configuration directory.
	ConfigPath string
	// Tree holds only the values set on the command line.
	Tree settings.Tree
}

// Parser is a kingpin application with dotted-path flag destinations.
type Parser struct {
	app        *kingpin.Application
	configPath *string
	values     settings.Tree
}

// NewParser creates a parser that always accepts -c/--config.
func NewParser(name, help string) *Parser {
	app := kingpin.New(name, help)
	configPath := app.Flag("config", "Path to configuration directory").
		Short('c').
		PlaceHolder("PATH").
		Envar(ConfigPathEnvar).
		Default(DefaultConfigPath).
		String()

	return &Parser{
		app:        app,
		configPath: configPath,
		values:     settings.Tree{},
	}
}

// App exposes the underlying kingpin application for extra flags, commands
// or usage customisation.
func (p *Parser) App() *kingpin.Application {
	return p.app
}

// String binds a string flag to the configuration path dest.
func (p *Parser) String(dest, name, help string) *kingpin.FlagClause {
	clause := p.app.Flag(name, help)
	clause.SetValue(&leafValue{
		dest:   dest,
		values: p.values,
		parse: func(raw string) (any, error) {
			return raw, nil
		},
	})
	return clause
}

// Enum binds a flag restricted to options. Input is upper-cased before it is
// checked, so options should be given in upper case.
func (p *Parser) Enum(dest, name, help string, options ...string) *kingpin.FlagClause {
	clause := p.app.Flag(name, help)
	clause.SetValue(&leafValue{
		dest:   dest,
		values: p.values,
		parse: func(raw string) (any, error) {
			value := strings.ToUpper(raw)
			if !slices.Contains(options, value) {
				return nil, fmt.Errorf("enum value must be one of %s, got '%s'", strings.Join(options, ","), raw)
			}
			return value, nil
		},
	})
	return clause
}

// Bool binds a boolean switch to dest.
func (p *Parser) Bool(dest, name, help string) *kingpin.FlagClause {
	clause := p.app.Flag(name, help)
	clause.SetValue(&boolValue{leafValue{
		dest:   dest,
		values: p.values,
		parse: func(raw string) (any, error) {
			switch strings.ToLower(raw) {
			case "", "true", "1", "yes":
				return true, nil
			case "false", "0", "no":
				return false, nil
			default:
				return nil, fmt.Errorf("invalid boolean %q", raw)
			}
		},
	}})
	return clause
}

// Parse processes args (without the program name).
func (p *Parser) Parse(args []string) (Arguments, error) {
	if _, err := p.app.Parse(args); err != nil {
		return Arguments{}, err
	}
	return Arguments{
		ConfigPath: *p.configPath,
		Tree:       p.values.Clone(),
	}, nil
}

// leafValue is a kingpin.Value that stores parsed input in the tree.
type leafValue struct {
	dest   string
	values settings.Tree
	parse  func(string) (any, error)
	raw    string
}

func (v *leafValue) Set(raw string) error {
	value, err := v.parse(raw)
	if err != nil {
		return err
	}
	v.raw = raw
	v.values.Set(v.dest, value)
	return nil
}

func (v *leafValue) String() string {
	return v.raw
}

// boolValue marks the flag as a switch so "--flag" needs no argument.
type boolValue struct {
	leafValue
}

func (v *boolValue) IsBoolFlag() bool {
	return true
}

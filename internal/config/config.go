package config

import (
	"fmt"
	"slices"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/cli-bootstrap/internal/settings"
)

// Filename is the configuration file holding application settings.
const Filename = "application.yaml"

const (
	defaultLevel      = "NOTSET"
	defaultEncoding   = EncodingConsole
	defaultTimeFormat = "2006-01-02 15:04:05"
)

// Supported log encodings.
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Levels lists the accepted logging.level values, most severe first.
var Levels = []string{"CRITICAL", "FATAL", "ERROR", "WARNING", "INFO", "DEBUG", "NOTSET"}

// Config aggregates the application settings resolved from application.yaml.
type Config struct {
	Logging Logging `yaml:"logging"`
}

// Logging describes the process logger.
type Logging struct {
	Level      string   `yaml:"level"`
	Encoding   string   `yaml:"encoding"`
	Color      bool     `yaml:"color"`
	TimeFormat string   `yaml:"time_format"`
	Output     []string `yaml:"output"`
}

// Loader resolves a named configuration file into a tree.
type Loader interface {
	Load(filename string) (settings.Tree, error)
}

// Load resolves application.yaml through loader and converts it to a Config.
func Load(loader Loader) (Config, error) {
	tree, err := loader.Load(Filename)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", Filename, err)
	}
	return FromTree(tree)
}

// FromTree decodes a resolved tree, fills empty values with fallbacks and
// validates the result.
func FromTree(tree settings.Tree) (Config, error) {
	var cfg Config
	if err := decodeTree(tree, &cfg); err != nil {
		return Config{}, err
	}

	if err := mergo.Merge(&cfg, defaultConfig()); err != nil {
		return Config{}, fmt.Errorf("apply fallbacks: %w", err)
	}

	cfg.Logging.Level = strings.ToUpper(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Encoding = strings.ToLower(strings.TrimSpace(cfg.Logging.Encoding))

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// defaultConfig returns the values used for settings left blank by every source.
func defaultConfig() Config {
	return Config{
		Logging: Logging{
			Level:      defaultLevel,
			Encoding:   defaultEncoding,
			TimeFormat: defaultTimeFormat,
			Output:     []string{"stdout"},
		},
	}
}

// decodeTree maps the generic tree onto the typed struct through YAML so the
// struct tags used for files apply unchanged.
func decodeTree(tree settings.Tree, out *Config) error {
	data, err := yaml.Marshal(map[string]any(tree))
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	return nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if !slices.Contains(Levels, cfg.Logging.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, cfg.Logging.Level)
	}
	if cfg.Logging.Encoding != EncodingConsole && cfg.Logging.Encoding != EncodingJSON {
		return fmt.Errorf("%w: %q", ErrInvalidEncoding, cfg.Logging.Encoding)
	}
	return nil
}

package settings

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

//go:embed defaults/*.yaml
var embedded embed.FS

// Defaults returns the configuration files shipped with the binary.
func Defaults() fs.FS {
	sub, err := fs.Sub(embedded, "defaults")
	if err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	return sub
}

// Source identifies where a configuration layer came from.
type Source int

const (
	SourceDefaults Source = iota
	SourceUser
	SourceArguments
)

func (s Source) String() string {
	switch s {
	case SourceDefaults:
		return "defaults"
	case SourceUser:
		return "user"
	case SourceArguments:
		return "arguments"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Loader resolves named configuration files.
type Loader struct {
	// Defaults holds the mandatory default files.
	Defaults fs.FS
	// UserDir is an optional directory with same-named overrides.
	UserDir string
	// Arguments is the tree built from CLI flags; the subtree named after the
	// file stem is applied last.
	Arguments Tree
	// Lookup resolves environment references, os.LookupEnv when nil.
	Lookup LookupFunc
	Logger *zap.Logger
}

// Load builds the resolved tree for filename: defaults, then the user file,
// then the CLI subtree, followed by environment expansion.
func (l *Loader) Load(filename string) (Tree, error) {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	layers := make([]Tree, 0, 3)

	defaults, err := l.loadDefaults(filename)
	if err != nil {
		return nil, err
	}
	layers = append(layers, defaults)
	logger.Debug("configuration layer loaded", zap.String("file", filename), zap.Stringer("source", SourceDefaults))

	user, found, err := l.loadUser(filename)
	if err != nil {
		return nil, err
	}
	if found {
		layers = append(layers, user)
		logger.Debug("configuration layer loaded", zap.String("file", filename), zap.Stringer("source", SourceUser),
			zap.String("path", filepath.Join(l.UserDir, filename)))
	}

	if args := l.Arguments.Sub(Stem(filename)); len(args) > 0 {
		layers = append(layers, args)
		logger.Debug("configuration layer loaded", zap.String("file", filename), zap.Stringer("source", SourceArguments))
	}

	resolved, err := Expand(Merge(layers...), l.Lookup)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", filename, err)
	}
	return resolved, nil
}

func (l *Loader) loadDefaults(filename string) (Tree, error) {
	if l.Defaults == nil {
		return nil, fmt.Errorf("%w: %s (no defaults directory)", ErrDefaultsNotFound, filename)
	}
	data, err := fs.ReadFile(l.Defaults, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDefaultsNotFound, filename)
		}
		return nil, fmt.Errorf("read default %s: %w", filename, err)
	}
	return Decode(filename, data)
}

func (l *Loader) loadUser(filename string) (Tree, bool, error) {
	if l.UserDir == "" {
		return nil, false, nil
	}
	data, err := os.ReadFile(filepath.Join(l.UserDir, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read user %s: %w", filename, err)
	}
	tree, err := Decode(filename, data)
	if err != nil {
		return nil, false, err
	}
	return tree, true, nil
}

// Stem returns the part of filename before its first dot, without directories.
func Stem(filename string) string {
	base := filepath.Base(filename)
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		return base[:idx]
	}
	return base
}

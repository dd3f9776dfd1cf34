package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

// LocalConfigName is the per-directory configuration file
const LocalConfigName = "markdeck.toml"

// TOMLLoader implements the ConfigLoader interface using TOML files
type TOMLLoader struct {
	globalPath string
	localName  string
}

// NewTOMLLoader creates a loader reading ~/.config/markdeck/config.toml and ./markdeck.toml
func NewTOMLLoader() *TOMLLoader {
	homeDir, _ := os.UserHomeDir()

	return &TOMLLoader{
		globalPath: filepath.Join(homeDir, ".config", "markdeck", "config.toml"),
		localName:  LocalConfigName,
	}
}

// NewTOMLLoaderWithPath creates a loader using an explicit global config file
func NewTOMLLoaderWithPath(globalPath string) *TOMLLoader {
	return &TOMLLoader{
		globalPath: globalPath,
		localName:  LocalConfigName,
	}
}

// LoadGlobal loads the global configuration file, writing defaults on first run
func (l *TOMLLoader) LoadGlobal(ctx context.Context) (*entities.Config, error) {
	if _, err := os.Stat(l.globalPath); os.IsNotExist(err) {
		if err := l.CreateDefaults(ctx, l.globalPath); err != nil {
			return nil, fmt.Errorf("creating defaults: %w", err)
		}
	}

	return l.loadConfig(l.globalPath)
}

// LoadLocal loads the local configuration file of dir. A missing file yields nil.
func (l *TOMLLoader) LoadLocal(ctx context.Context, dir string) (*entities.Config, error) {
	localPath := l.GetLocalPath(dir)

	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return nil, nil
	}

	return l.loadConfig(localPath)
}

// CreateDefaults writes the default configuration to path
func (l *TOMLLoader) CreateDefaults(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := l.ensureConfigDir(path); err != nil {
		return err
	}

	file, err := os.Create(path) // #nosec G304 - path is the controlled global config path
	if err != nil {
		return fmt.Errorf("creating config file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	encoder := toml.NewEncoder(file)
	encoder.Indent = "  "

	if err := encoder.Encode(GetDefaultConfig()); err != nil {
		return fmt.Errorf("encoding config to %s: %w", path, err)
	}

	return nil
}

// GetGlobalPath returns the path to the global configuration file
func (l *TOMLLoader) GetGlobalPath() string {
	return l.globalPath
}

// GetLocalPath returns the path to the local configuration file for a directory
func (l *TOMLLoader) GetLocalPath(dir string) string {
	return filepath.Join(dir, l.localName)
}

// loadConfig decodes and validates a configuration file, recording which keys it set
func (l *TOMLLoader) loadConfig(path string) (*entities.Config, error) {
	var config entities.Config

	meta, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML from %s: %w", path, err)
	}

	config.Defined = make(map[string]bool, len(meta.Keys()))
	for _, key := range meta.Keys() {
		config.Defined[key.String()] = true
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}

	return &config, nil
}

// ensureConfigDir ensures the configuration directory exists
func (l *TOMLLoader) ensureConfigDir(path string) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	return nil
}

// Ensure TOMLLoader implements ports.ConfigLoader
var _ ports.ConfigLoader = (*TOMLLoader)(nil)

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

// ConfigService resolves the effective configuration:
// defaults, then global file, then local file, then environment, then flags.
type ConfigService struct {
	loader ports.ConfigLoader
	merger ports.ConfigMerger
	logger *slog.Logger
}

// NewConfigService creates a new configuration service
func NewConfigService(loader ports.ConfigLoader, merger ports.ConfigMerger) *ConfigService {
	return &ConfigService{
		loader: loader,
		merger: merger,
		logger: slog.Default().With("component", "config"),
	}
}

// LoadConfig loads the complete configuration with hierarchy and overrides
func (s *ConfigService) LoadConfig(ctx context.Context, workingDir string, flags map[string]interface{}) (*entities.Config, error) {
	defaultConfig := s.GetDefaultConfig()

	globalConfig, err := s.loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	localConfig, err := s.loader.LoadLocal(ctx, workingDir)
	if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	configs := []*entities.Config{defaultConfig}
	if globalConfig != nil {
		configs = append(configs, globalConfig)
	}
	if localConfig != nil {
		configs = append(configs, localConfig)
	}
	s.logger.Debug("Merging configuration", slog.Int("sources", len(configs)), slog.String("dir", workingDir))

	merged := s.merger.Merge(configs...)
	withEnv := s.merger.ApplyEnvVars(merged)
	final := s.merger.ApplyFlags(withEnv, flags)

	if err := s.ValidateConfig(final); err != nil {
		return nil, fmt.Errorf("final config validation: %w", err)
	}

	return final, nil
}

// GetDefaultConfig returns the default configuration
func (s *ConfigService) GetDefaultConfig() *entities.Config {
	// Merge with no arguments yields the defaults
	return s.merger.Merge()
}

// ValidateConfig validates a configuration
func (s *ConfigService) ValidateConfig(config *entities.Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}

	return config.Validate()
}

// CreateGlobalConfig creates the global configuration file with defaults
func (s *ConfigService) CreateGlobalConfig(ctx context.Context) error {
	return s.loader.CreateDefaults(ctx, s.loader.GetGlobalPath())
}

// Ensure ConfigService implements ports.ConfigService
var _ ports.ConfigService = (*ConfigService)(nil)

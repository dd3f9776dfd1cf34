package ports

import (
	"context"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
)

// ConfigLoader reads markdeck TOML files: the per-user file under
// ~/.config/markdeck and a markdeck.toml next to the presentation
type ConfigLoader interface {
	// LoadGlobal reads the per-user file, creating it with defaults when absent
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal reads markdeck.toml from dir. A missing file is not an error.
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)

	// CreateDefaults writes the default settings to path
	CreateDefaults(ctx context.Context, path string) error

	GetGlobalPath() string
	GetLocalPath(dir string) string
}

// ConfigMerger layers settings: defaults, global file, local file,
// MARKDECK_* environment variables, then command line flags
type ConfigMerger interface {
	// Merge folds configs left to right; later values win
	Merge(configs ...*entities.Config) *entities.Config

	// ApplyFlags applies serve flag overrides keyed by the config.Flag* names
	ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config

	// ApplyEnvVars applies MARKDECK_* overrides
	ApplyEnvVars(config *entities.Config) *entities.Config
}

// ConfigService resolves the effective settings for a presentation directory
type ConfigService interface {
	// LoadConfig merges every source for workingDir and validates the result
	LoadConfig(ctx context.Context, workingDir string, flags map[string]interface{}) (*entities.Config, error)

	GetDefaultConfig() *entities.Config
	ValidateConfig(config *entities.Config) error

	// CreateGlobalConfig backs `markdeck config init`
	CreateGlobalConfig(ctx context.Context) error
}

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
)

// Environment variables read when building the default configuration
const (
	EnvHost           = "MARKDECK_HOST"
	EnvPort           = "MARKDECK_PORT"
	EnvCORSOrigins    = "MARKDECK_CORS_ORIGINS"
	EnvNoBrowser      = "MARKDECK_NO_BROWSER"
	EnvWatch          = "MARKDECK_WATCH"
	EnvWatchInterval  = "MARKDECK_WATCH_INTERVAL"
	EnvWatchDebounce  = "MARKDECK_WATCH_DEBOUNCE"
	EnvHighlight      = "MARKDECK_HIGHLIGHT"
	EnvHighlightStyle = "MARKDECK_HIGHLIGHT_STYLE"
	EnvSanitize       = "MARKDECK_SANITIZE"
	EnvLogLevel       = "MARKDECK_LOG_LEVEL"
	EnvLogVerbose     = "MARKDECK_LOG_VERBOSE"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault(EnvHost, "127.0.0.1"),
			Port:            getEnvIntOrDefault(EnvPort, 8000),
			ReadTimeout:     30,
			WriteTimeout:    30,
			ShutdownTimeout: 5,
			CORSOrigins: getEnvSliceOrDefault(EnvCORSOrigins, []string{
				"http://localhost:8000",
				"http://127.0.0.1:8000",
			}),
		},
		Browser: entities.BrowserConfig{
			AutoOpen: !getEnvBoolOrDefault(EnvNoBrowser, false),
		},
		Watcher: entities.WatcherConfig{
			Enabled:    getEnvBoolOrDefault(EnvWatch, true),
			IntervalMs: getEnvIntOrDefault(EnvWatchInterval, 200),
			DebounceMs: getEnvIntOrDefault(EnvWatchDebounce, 500),
		},
		Render: entities.RenderConfig{
			Highlight:      getEnvBoolOrDefault(EnvHighlight, true),
			HighlightStyle: getEnvOrDefault(EnvHighlightStyle, "github"),
			Sanitize:       getEnvBoolOrDefault(EnvSanitize, false),
		},
		Logging: entities.LoggingConfig{
			Level:   getEnvOrDefault(EnvLogLevel, "info"),
			Verbose: getEnvBoolOrDefault(EnvLogVerbose, false),
		},
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns a comma separated environment variable as slice or default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

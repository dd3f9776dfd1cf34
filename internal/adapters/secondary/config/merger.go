package config

import (
	"os"
	"strconv"

	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/domain/ports"
)

// Flag names understood by ApplyFlags
const (
	FlagPort      = "port"
	FlagHost      = "host"
	FlagNoBrowser = "no-browser"
	FlagWatch     = "watch"
	FlagVerbose   = "verbose"
	FlagDocument  = "document"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	var result *entities.Config
	for _, config := range configs {
		if config == nil {
			continue
		}
		if result == nil {
			result = deepCopy(config)
			result.Defined = nil
			continue
		}
		m.mergeInto(result, config)
	}

	if result == nil {
		return GetDefaultConfig()
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if port, ok := flags[FlagPort].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags[FlagHost].(string); ok && host != "" {
		result.Server.Host = host
	}

	if noBrowser, ok := flags[FlagNoBrowser].(bool); ok && noBrowser {
		result.Browser.AutoOpen = false
	}

	if watch, ok := flags[FlagWatch].(bool); ok {
		result.Watcher.Enabled = watch
	}

	if verbose, ok := flags[FlagVerbose].(bool); ok && verbose {
		result.Logging.Verbose = true
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	if document, ok := flags[FlagDocument].(string); ok && document != "" {
		result.Server.Document = document
	}

	return result
}

// ApplyEnvVars applies environment variable overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	if host := os.Getenv(EnvHost); host != "" {
		result.Server.Host = host
	}

	if portStr := os.Getenv(EnvPort); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			result.Server.Port = port
		}
	}

	if origins := getEnvSliceOrDefault(EnvCORSOrigins, nil); origins != nil {
		result.Server.CORSOrigins = origins
	}

	if noBrowserStr := os.Getenv(EnvNoBrowser); noBrowserStr != "" {
		if noBrowser, err := strconv.ParseBool(noBrowserStr); err == nil {
			result.Browser.AutoOpen = !noBrowser
		}
	}

	if watchStr := os.Getenv(EnvWatch); watchStr != "" {
		if watch, err := strconv.ParseBool(watchStr); err == nil {
			result.Watcher.Enabled = watch
		}
	}

	if intervalStr := os.Getenv(EnvWatchInterval); intervalStr != "" {
		if interval, err := strconv.Atoi(intervalStr); err == nil && interval > 0 {
			result.Watcher.IntervalMs = interval
		}
	}

	if debounceStr := os.Getenv(EnvWatchDebounce); debounceStr != "" {
		if debounce, err := strconv.Atoi(debounceStr); err == nil && debounce >= 0 {
			result.Watcher.DebounceMs = debounce
		}
	}

	if highlightStr := os.Getenv(EnvHighlight); highlightStr != "" {
		if highlight, err := strconv.ParseBool(highlightStr); err == nil {
			result.Render.Highlight = highlight
		}
	}

	if style := os.Getenv(EnvHighlightStyle); style != "" {
		result.Render.HighlightStyle = style
	}

	if sanitizeStr := os.Getenv(EnvSanitize); sanitizeStr != "" {
		if sanitize, err := strconv.ParseBool(sanitizeStr); err == nil {
			result.Render.Sanitize = sanitize
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		result.Logging.Level = level
	}

	if verboseStr := os.Getenv(EnvLogVerbose); verboseStr != "" {
		if verbose, err := strconv.ParseBool(verboseStr); err == nil {
			result.Logging.Verbose = verbose
		}
	}

	return result
}

// mergeInto merges source configuration into target configuration.
// Zero strings and numbers never override; booleans override only when
// the source set them explicitly.
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Server config
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = append([]string(nil), source.Server.CORSOrigins...)
	}
	if source.Server.Document != "" {
		target.Server.Document = source.Server.Document
	}

	// Browser config
	if source.IsDefined("browser.auto_open") {
		target.Browser.AutoOpen = source.Browser.AutoOpen
	}

	// Watcher config
	if source.IsDefined("watcher.enabled") {
		target.Watcher.Enabled = source.Watcher.Enabled
	}
	if source.Watcher.IntervalMs != 0 {
		target.Watcher.IntervalMs = source.Watcher.IntervalMs
	}
	if source.Watcher.DebounceMs != 0 {
		target.Watcher.DebounceMs = source.Watcher.DebounceMs
	}

	// Render config
	if source.IsDefined("render.highlight") {
		target.Render.Highlight = source.Render.Highlight
	}
	if source.Render.HighlightStyle != "" {
		target.Render.HighlightStyle = source.Render.HighlightStyle
	}
	if source.IsDefined("render.sanitize") {
		target.Render.Sanitize = source.Render.Sanitize
	}

	// Logging config
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	if source.IsDefined("logging.verbose") {
		target.Logging.Verbose = source.Logging.Verbose
	}
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := *src

	if src.Server.CORSOrigins != nil {
		dst.Server.CORSOrigins = make([]string, len(src.Server.CORSOrigins))
		copy(dst.Server.CORSOrigins, src.Server.CORSOrigins)
	}

	if src.Defined != nil {
		dst.Defined = make(map[string]bool, len(src.Defined))
		for k, v := range src.Defined {
			dst.Defined[k] = v
		}
	}

	return &dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)

package runtimeconfig

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
)

var ErrRecipesDirRequired = errors.New("recipes config: recipe directory is required")
var ErrRecipesPatternInvalid = errors.New("recipes config: recipe pattern is not a valid glob")
var ErrLoggingProviderRequired = errors.New("recipes config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("recipes config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("recipes config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("recipes config: logging format is invalid")
var ErrEnvValueInvalid = errors.New("recipes config: environment value is invalid")

// EnvPrefix namespaces every environment override.
const EnvPrefix = "RECIPESTATS_"

// Config aggregates the options of a recipe statistics run.
type Config struct {
	Recipes RecipesConfig
	Logging LoggingConfig
}

// RecipesConfig controls recipe discovery.
type RecipesConfig struct {
	Dir       string
	Pattern   string
	Recursive bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig scans the working directory recursively for *.recipe files
// and logs warnings to the console.
func DefaultConfig() Config {
	return Config{
		Recipes: RecipesConfig{
			Dir:       ".",
			Pattern:   "*.recipe",
			Recursive: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "warn",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Recipes.Dir) == "" {
		return ErrRecipesDirRequired
	}
	if pattern := strings.TrimSpace(cfg.Recipes.Pattern); pattern != "" {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: %s", ErrRecipesPatternInvalid, pattern)
		}
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// ApplyEnv overlays RECIPESTATS_* variables read through lookup onto cfg.
// Unset variables leave the current value in place.
func (cfg Config) ApplyEnv(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		return cfg, nil
	}
	get := func(name string) (string, bool) {
		value, ok := lookup(EnvPrefix + name)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(value), true
	}

	if v, ok := get("DIR"); ok && v != "" {
		cfg.Recipes.Dir = v
	}
	if v, ok := get("PATTERN"); ok && v != "" {
		cfg.Recipes.Pattern = v
	}
	if v, ok := get("RECURSIVE"); ok && v != "" {
		recursive, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %sRECURSIVE=%q", ErrEnvValueInvalid, EnvPrefix, v)
		}
		cfg.Recipes.Recursive = recursive
	}
	if v, ok := get("LOG_PROVIDER"); ok && v != "" {
		cfg.Logging.Provider = v
	}
	if v, ok := get("LOG_LEVEL"); ok && v != "" {
		cfg.Logging.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok && v != "" {
		cfg.Logging.Format = v
	}
	if v, ok := get("LOG_ADD_SOURCE"); ok && v != "" {
		addSource, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %sLOG_ADD_SOURCE=%q", ErrEnvValueInvalid, EnvPrefix, v)
		}
		cfg.Logging.AddSource = addSource
	}
	if v, ok := get("LOG_FOCUS"); ok && v != "" {
		cfg.Logging.Focus = splitList(v)
	}
	return cfg, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

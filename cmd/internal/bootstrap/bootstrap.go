package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-recipestats/internal/logging"
	"github.com/goliatone/go-recipestats/internal/logging/console"
	"github.com/goliatone/go-recipestats/internal/logging/gologger"
	"github.com/goliatone/go-recipestats/internal/recipe"
	"github.com/goliatone/go-recipestats/internal/runtimeconfig"
	"github.com/goliatone/go-recipestats/internal/stats"
	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// Options captures configuration for recipe CLI bootstraps.
type Options struct {
	Config         runtimeconfig.Config
	LoggerProvider interfaces.LoggerProvider
}

// Module bundles the services a CLI needs.
type Module struct {
	Config   runtimeconfig.Config
	Provider interfaces.LoggerProvider
	Loader   *recipe.Loader
	Service  interfaces.IngredientStats
	Logger   interfaces.Logger
}

// LoadConfig reads the optional env files, overlays RECIPESTATS_* variables
// on the defaults and validates the result. Variables already present in the
// process environment win over env file entries.
func LoadConfig(envFiles ...string) (runtimeconfig.Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	if err := loadEnvFiles(envFiles); err != nil {
		return runtimeconfig.Config{}, err
	}

	cfg, err := runtimeconfig.DefaultConfig().ApplyEnv(os.LookupEnv)
	if err != nil {
		return runtimeconfig.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return runtimeconfig.Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if strings.TrimSpace(file) == "" {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat env file %s: %w", file, err)
		}
		existing = append(existing, file)
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// NewLoggerProvider builds the provider selected by cfg.Provider.
func NewLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}

// BuildModule wires the recipe loader and ingredient service rooted at
// opts.Config.Recipes.Dir.
func BuildModule(opts Options) (*Module, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	provider := opts.LoggerProvider
	if provider == nil {
		built, err := NewLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("initialise logger provider: %w", err)
		}
		provider = built
	}

	loader, err := recipe.NewDirLoader(recipe.LoaderConfig{
		BasePath:  cfg.Recipes.Dir,
		Pattern:   cfg.Recipes.Pattern,
		Recursive: cfg.Recipes.Recursive,
		Logger:    logging.ParserLogger(provider),
	})
	if err != nil {
		return nil, fmt.Errorf("initialise recipe loader: %w", err)
	}

	return &Module{
		Config:   cfg,
		Provider: provider,
		Loader:   loader,
		Service:  stats.NewServiceWithWalker(loader, provider),
		Logger:   logging.ModuleLogger(provider, ""),
	}, nil
}

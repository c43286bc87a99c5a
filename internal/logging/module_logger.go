package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

const (
	rootModule     = "recipes"
	parserModule   = "recipes.parser"
	statsModule    = "recipes.stats"
	commandsModule = "recipes.commands"
)

const (
	fieldRecipePath   = "recipe_path"
	fieldRecipeAction = "recipe_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ParserLogger returns the logger namespace reserved for recipe discovery and parsing.
func ParserLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, parserModule)
}

// StatsLogger returns the logger namespace reserved for ingredient aggregation.
func StatsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, statsModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithRecipeContext enriches the logger with the recipe path and the action
// being performed on it. Empty values are ignored.
func WithRecipeContext(logger interfaces.Logger, path, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldRecipePath] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldRecipeAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

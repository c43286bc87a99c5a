package commands

import (
	"strings"

	"github.com/goliatone/go-recipestats/internal/logging"
	"github.com/goliatone/go-recipestats/pkg/interfaces"
)

const commandModuleRoot = "recipes.commands"

// CommandLogger returns a logger scoped to recipes.commands.<module> and tagged
// with the command component fields. An empty module selects the root
// commands logger.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	var logger interfaces.Logger
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
		logger = logging.CommandsLogger(provider)
	} else {
		logger = logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	}
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}

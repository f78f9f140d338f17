package commands

import (
	"strings"

	"github.com/goliatone/go-sites/internal/logging"
	"github.com/goliatone/go-sites/pkg/interfaces"
)

const commandModuleRoot = "sites.commands"

// CommandLogger returns a module-scoped logger for command handlers with the
// structured fields every command execution carries.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}

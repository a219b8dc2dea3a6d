// Package opener dispatches items to external programs by extension.
package opener

import (
	"fmt"
	"os/exec"

	"github.com/wrenfm/wren/pkg/wren/logging"
	"github.com/wrenfm/wren/pkg/wren/types"
)

// Opener selects and spawns the external program for an item.
type Opener struct {
	// Commands maps a lower-cased extension (without dot) to a program.
	Commands map[string]string

	// Default is the fallback program for unmapped extensions.
	Default string

	logger *logging.Logger
}

// New creates an Opener from the configured extension map and default
// program.
func New(commands map[string]string, def string) *Opener {
	return &Opener{
		Commands: commands,
		Default:  def,
		logger:   logging.Get("opener"),
	}
}

// Command returns the program that opens the given item.
func (o *Opener) Command(item types.Item) string {
	if cmd, ok := o.Commands[item.Ext]; ok {
		return cmd
	}
	return o.Default
}

// Open spawns the program for item and waits for it to exit.
func (o *Opener) Open(item types.Item) error {
	command := o.Command(item)
	o.logger.Info("opening", "path", item.Path, "command", command)

	cmd := exec.Command(command, item.Path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("opening %q with %q: %w", item.Path, command, err)
	}
	return nil
}

package commands

import (
	"github.com/spf13/cobra"

	"tsplit/internal/config"
	"tsplit/internal/storage"
	"tsplit/internal/ui"
)

// ViewCommand opens a saved plan in the interactive viewer
type ViewCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(cfg *config.Config, storage storage.Storage, viewer ui.Viewer) *ViewCommand {
	return &ViewCommand{
		config:  cfg,
		storage: storage,
		viewer:  viewer,
	}
}

// Execute runs the command
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && args[0] != "" {
		vc.config.Flags.Output = args[0]
	}

	report, err := vc.storage.Load()
	if err != nil {
		return err
	}
	return vc.viewer.View(report)
}

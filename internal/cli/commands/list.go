package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tsplit/internal/config"
	"tsplit/internal/discovery"
	"tsplit/internal/identifier"
	"tsplit/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	collector *discovery.Collector
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	collector *discovery.Collector,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		collector: collector,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	testPathArg(lc.config, args)
	tests, err := discover(cmd.Context(), lc.config, lc.collector, lc.filter)
	if err != nil {
		return err
	}

	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	// Identifiers follow the configured granularity even when the rest of
	// the partition settings are unusable
	opts, _ := lc.config.PartitionOptions()
	resolver := identifier.NewResolver(opts.HashByClass)
	ids := make([]string, len(tests))
	for i, t := range tests {
		ids[i], _ = resolver.Resolve(t)
	}

	return lc.formatter.PrintTestList(tests, ids)
}

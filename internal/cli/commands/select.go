package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tsplit/internal/config"
	"tsplit/internal/discovery"
	"tsplit/internal/domain"
	"tsplit/internal/ui"
)

// SelectCommand prints the tests this node runs
type SelectCommand struct {
	config      *config.Config
	collector   *discovery.Collector
	filter      *discovery.Filter
	partitioner *Partitioner
	formatter   *ui.Formatter
}

// NewSelectCommand creates a new SelectCommand
func NewSelectCommand(
	cfg *config.Config,
	collector *discovery.Collector,
	filter *discovery.Filter,
	partitioner *Partitioner,
	formatter *ui.Formatter,
) *SelectCommand {
	return &SelectCommand{
		config:      cfg,
		collector:   collector,
		filter:      filter,
		partitioner: partitioner,
		formatter:   formatter,
	}
}

// Execute runs the command
func (sc *SelectCommand) Execute(cmd *cobra.Command, args []string) error {
	testPathArg(sc.config, args)

	// Configuration and data problems surface before any test is collected
	sel, _, err := sc.partitioner.Selector(cmd.Context())
	if err != nil {
		return err
	}

	tests, err := discover(cmd.Context(), sc.config, sc.collector, sc.filter)
	if err != nil {
		return err
	}
	if err := sel.Prepare(tests); err != nil {
		return err
	}

	selected := Select(sel, tests)
	opts := sel.Options()
	log.Info().
		Bool("enabled", opts.Enabled).
		Int("node", opts.NodeID).
		Int("nodes", opts.NodeCount).
		Str("algorithm", string(opts.Algorithm)).
		Int("selected", len(selected)).
		Int("total", len(tests)).
		Msg("selected tests for this node")

	return sc.formatter.PrintSelection(selected, sc.config.Flags.Format)
}

// Decider is the part of a selector Select needs
type Decider interface {
	Decide(item domain.TestItem) domain.Decision
	Resolve(item domain.TestItem) (string, bool)
}

// Select keeps the tests d includes or has no opinion on. Items without an
// opinion are left to the test runner, which runs them.
func Select(d Decider, tests []domain.TestItem) []ui.Selected {
	selected := make([]ui.Selected, 0, len(tests))
	for _, t := range tests {
		decision := d.Decide(t)
		switch decision.Verdict {
		case domain.Include:
			selected = append(selected, ui.Selected{Identifier: decision.Identifier, Test: t})
		case domain.Exclude:
			log.Debug().Str("test", t.DisplayName()).Msg(decision.Reason)
		default:
			id, ok := d.Resolve(t)
			if !ok {
				id = t.DisplayName()
			}
			selected = append(selected, ui.Selected{Identifier: id, Test: t})
		}
	}
	return selected
}

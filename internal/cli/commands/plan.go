package commands

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tsplit/internal/config"
	"tsplit/internal/discovery"
	"tsplit/internal/domain"
	"tsplit/internal/partition"
	"tsplit/internal/storage"
	"tsplit/internal/ui"
)

// PlanCommand computes what every node runs
type PlanCommand struct {
	config      *config.Config
	collector   *discovery.Collector
	filter      *discovery.Filter
	partitioner *Partitioner
	formatter   *ui.Formatter
	storage     storage.Storage
	viewer      ui.Viewer
}

// NewPlanCommand creates a new PlanCommand
func NewPlanCommand(
	cfg *config.Config,
	collector *discovery.Collector,
	filter *discovery.Filter,
	partitioner *Partitioner,
	formatter *ui.Formatter,
	storage storage.Storage,
	viewer ui.Viewer,
) *PlanCommand {
	return &PlanCommand{
		config:      cfg,
		collector:   collector,
		filter:      filter,
		partitioner: partitioner,
		formatter:   formatter,
		storage:     storage,
		viewer:      viewer,
	}
}

// Execute runs the command
func (pc *PlanCommand) Execute(cmd *cobra.Command, args []string) error {
	testPathArg(pc.config, args)

	sel, ds, err := pc.partitioner.Selector(cmd.Context())
	if err != nil {
		return err
	}
	if !sel.Enabled() {
		pc.formatter.PrintDisabled("")
		return nil
	}

	tests, err := discover(cmd.Context(), pc.config, pc.collector, pc.filter)
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	assignment, err := sel.Plan(tests)
	if err != nil {
		return err
	}

	opts := sel.Options()
	meta := domain.PlanMeta{
		Algorithm:   string(opts.Algorithm),
		HashByClass: opts.HashByClass,
		TotalTests:  len(tests),
	}
	if ds != nil {
		meta.DataSource = ds.Source()
		baseline, err := partition.NewRoundRobinScheduler(ds).Schedule(sel.Identifiers(tests), opts.NodeCount)
		if err != nil {
			return err
		}
		meta.RoundRobinSpan = baseline.Makespan()
	}
	report := partition.NewPlanReport(assignment, meta)

	if err := pc.formatter.PrintPlan(report); err != nil {
		return err
	}

	if pc.config.Flags.Save {
		if err := pc.storage.Save(report); err != nil {
			return err
		}
		log.Info().Str("path", pc.config.GetOutputPath()).Msg("plan saved")
	}

	if pc.config.Flags.Interactive {
		return pc.viewer.View(report)
	}
	return nil
}

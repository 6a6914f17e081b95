package commands

import (
	"github.com/spf13/cobra"

	"tsplit/internal/cli"
	"tsplit/internal/config"
	"tsplit/internal/discovery"
	"tsplit/internal/storage"
	"tsplit/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	List   *ListCommand
	Select *SelectCommand
	Plan   *PlanCommand
	View   *ViewCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	collector := discovery.NewCollector(scanner, discovery.NewParser(), cfg.Processors)
	filter := discovery.NewFilter()
	partitioner := NewPartitioner(cfg)
	formatter := ui.NewFormatter()
	jsonStorage := storage.NewJSONStorage(cfg)
	viewer := ui.NewPlanViewer()

	return &Commands{
		List:   NewListCommand(cfg, collector, filter, formatter),
		Select: NewSelectCommand(cfg, collector, filter, partitioner, formatter),
		Plan:   NewPlanCommand(cfg, collector, filter, partitioner, formatter, jsonStorage, viewer),
		View:   NewViewCommand(cfg, jsonStorage, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.ApplyFlags(flags.ToConfigFlags(func(name string) bool {
			f := cmd.Flags().Lookup(name)
			return f != nil && f.Changed
		}))
		return nil
	}

	// List command
	listCmd := &cobra.Command{
		Use:     "list [path]",
		Short:   "List discovered tests",
		Long:    "Scan and list all Go tests with the identifier each one is partitioned by",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	addDiscoveryFlags(listCmd, flags)
	addPartitionFlags(listCmd, flags)
	rootCmd.AddCommand(listCmd)

	// Select command
	selectCmd := &cobra.Command{
		Use:   "select [path]",
		Short: "Print the tests this node runs",
		Long: "Discover Go tests and print the identifiers assigned to this node, " +
			"by stable hash or by duration-balanced LPT scheduling",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Select.Execute,
		PreRunE: applyFlags,
	}
	addDiscoveryFlags(selectCmd, flags)
	addPartitionFlags(selectCmd, flags)
	selectCmd.Flags().StringVar(&flags.Format, "format", "names", "Output format: names or json")
	rootCmd.AddCommand(selectCmd)

	// Plan command
	planCmd := &cobra.Command{
		Use:     "plan [path]",
		Short:   "Show what every node runs",
		Long:    "Compute the assignment of every discovered test to every node, with per-node loads",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Plan.Execute,
		PreRunE: applyFlags,
	}
	addDiscoveryFlags(planCmd, flags)
	addPartitionFlags(planCmd, flags)
	planCmd.Flags().BoolVarP(&flags.Save, "save", "s", false, "Save the plan as JSON (default "+config.DefaultOutputJSONFile+")")
	planCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Save the plan as JSON to this file")
	planCmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Open the plan in the interactive viewer")
	rootCmd.AddCommand(planCmd)

	// View command
	viewCmd := &cobra.Command{
		Use:     "view [file]",
		Short:   "View a saved plan interactively",
		Long:    "Display a plan saved by 'plan --save' in an interactive viewer",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.View.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(viewCmd)
}

func addDiscoveryFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of test files parsed concurrently")
	cmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., 'TestUser*' or '*Payment*')")
}

func addPartitionFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVar(&flags.Nodes, "nodes", config.DefaultNodes, "Total number of nodes (env NODES)")
	cmd.Flags().StringVar(&flags.NodeNumber, "node-number", config.DefaultNodeNumber, "This node's number, 1-based (env NODE_NUMBER)")
	cmd.Flags().BoolVar(&flags.HashByClass, "hash-by-class", false, "Keep all methods of a suite on one node (env HASH_BY_CLASS)")
	cmd.Flags().StringVar(&flags.Algorithm, "algorithm", config.DefaultAlgorithm, "Partition algorithm: hash or least-processing-time (env ALGORITHM)")
	cmd.Flags().StringVar(&flags.LPTData, "lpt-data", "", "Duration data: JSON/YAML file or mysql:// URI (env LPT_DATA)")
	cmd.Flags().BoolVar(&flags.Disabled, "distributed-disabled", false, "Disable partitioning; every node runs every test (env DISTRIBUTED_DISABLED)")
}

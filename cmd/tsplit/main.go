package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"tsplit/internal/cli"
	"tsplit/internal/cli/commands"
	"tsplit/internal/config"
	"tsplit/internal/logging"
)

var version = "dev"

func main() {
	ctx := context.Background()

	// Create initial config with defaults, then layer .env and the environment
	cfg := config.New()
	cfg.LoadDotEnv()
	if err := cfg.LoadEnv(ctx, envconfig.OsLookuper()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "tsplit",
		Short: "Deterministic Go test partitioning across nodes",
		Long: `Split a Go test suite across CI nodes. Every node runs a disjoint, deterministic
subset of tests, placed by a stable hash or balanced by recorded durations.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = flags.LogLevel
			}
			logging.Setup(os.Stderr, cfg.LogLevel)
			log.Debug().Str("version", version).Str("command", cmd.Name()).Msg("starting")
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error (env LOG_LEVEL)")

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

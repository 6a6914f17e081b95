package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"tsplit/internal/durations"
	"tsplit/internal/partition"
)

// ErrConfigurationInvalid marks settings that switch partitioning off
// instead of aborting the run.
var ErrConfigurationInvalid = errors.New("invalid partition configuration")

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestPath    string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Discovery settings
	Processors    int
	PathsToIgnore []string

	// Partition settings, environment first, then flags
	Partition Partition

	LogLevel string

	// Command flags
	Flags Flags
}

// Partition holds partition settings as given, before validation
type Partition struct {
	Nodes       string
	NodeNumber  string
	HashByClass string
	Algorithm   string
	LPTData     string
	Disabled    string
}

// Env is the environment view of the configuration
type Env struct {
	Nodes       string `env:"NODES,default=1"`
	NodeNumber  string `env:"NODE_NUMBER,default=1"`
	HashByClass string `env:"HASH_BY_CLASS"`
	Algorithm   string `env:"ALGORITHM,default=hash"`
	LPTData     string `env:"LPT_DATA"`
	Disabled    string `env:"DISTRIBUTED_DISABLED"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
}

// Flags holds command-line flags. Changed records which partition flags
// were set explicitly and therefore override the environment.
type Flags struct {
	Processors  int
	TestPath    string
	NameFilter  string
	Nodes       string
	NodeNumber  string
	HashByClass bool
	Algorithm   string
	LPTData     string
	Disabled    bool
	Format      string
	Output      string
	Save        bool
	Interactive bool
	Changed     map[string]bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		TestPath:       DefaultTestPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		LogLevel:       DefaultLogLevel,
		Partition: Partition{
			Nodes:      DefaultNodes,
			NodeNumber: DefaultNodeNumber,
			Algorithm:  DefaultAlgorithm,
		},
		Flags: Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// LoadDotEnv loads the project's .env file into the process environment.
// Variables that are already set win; a missing file is fine.
func (c *Config) LoadDotEnv() {
	envPath := filepath.Join(c.ProjectPath, ".env")
	_ = godotenv.Load(envPath)
}

// LoadEnv reads partition settings from l
func (c *Config) LoadEnv(ctx context.Context, l envconfig.Lookuper) error {
	var env Env
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: l,
	}); err != nil {
		return fmt.Errorf("process environment: %w", err)
	}

	c.Partition = Partition{
		Nodes:       env.Nodes,
		NodeNumber:  env.NodeNumber,
		HashByClass: env.HashByClass,
		Algorithm:   env.Algorithm,
		LPTData:     env.LPTData,
		Disabled:    env.Disabled,
	}
	c.LogLevel = env.LogLevel
	return nil
}

// ApplyFlags stores flags and lets explicitly set ones override the
// environment.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}

	set := func(name string) bool { return flags.Changed[name] }
	if set("nodes") {
		c.Partition.Nodes = flags.Nodes
	}
	if set("node-number") {
		c.Partition.NodeNumber = flags.NodeNumber
	}
	if set("hash-by-class") {
		c.Partition.HashByClass = strconv.FormatBool(flags.HashByClass)
	}
	if set("algorithm") {
		c.Partition.Algorithm = flags.Algorithm
	}
	if set("lpt-data") {
		c.Partition.LPTData = flags.LPTData
	}
	if set("distributed-disabled") {
		c.Partition.Disabled = strconv.FormatBool(flags.Disabled)
	}
}

// PartitionOptions validates the partition settings. Errors wrapping
// ErrConfigurationInvalid come with disabled options and should only be
// reported; any other error must abort the run.
func (c *Config) PartitionOptions() (partition.Options, error) {
	p := c.Partition
	disabled := partition.Options{Enabled: false, NodeCount: 1, NodeID: 1, Algorithm: partition.AlgorithmHash}

	off, err := parseBool(p.Disabled)
	if err != nil {
		return disabled, fmt.Errorf("%w: --distributed-disabled: %w", ErrConfigurationInvalid, err)
	}
	if off {
		return disabled, nil
	}

	nodes, err := strconv.Atoi(strings.TrimSpace(p.Nodes))
	if err != nil {
		return disabled, fmt.Errorf("%w: --nodes must be an integer, got %q", ErrConfigurationInvalid, p.Nodes)
	}
	nodeID, err := strconv.Atoi(strings.TrimSpace(p.NodeNumber))
	if err != nil {
		return disabled, fmt.Errorf("%w: --node-number must be an integer, got %q", ErrConfigurationInvalid, p.NodeNumber)
	}
	if nodes < 1 {
		return disabled, fmt.Errorf("%w: --nodes must be at least 1, got %d", ErrConfigurationInvalid, nodes)
	}
	if nodeID < 1 || nodeID > nodes {
		return disabled, fmt.Errorf("%w: --node-number must be within [1, %d], got %d", ErrConfigurationInvalid, nodes, nodeID)
	}

	byClass, err := parseBool(p.HashByClass)
	if err != nil {
		return disabled, fmt.Errorf("%w: --hash-by-class: %w", ErrConfigurationInvalid, err)
	}

	opts := partition.Options{
		Enabled:     true,
		NodeCount:   nodes,
		NodeID:      nodeID,
		HashByClass: byClass,
	}

	switch partition.Algorithm(strings.TrimSpace(p.Algorithm)) {
	case partition.AlgorithmHash, "":
		opts.Algorithm = partition.AlgorithmHash
	case partition.AlgorithmLPT:
		opts.Algorithm = partition.AlgorithmLPT
		if strings.TrimSpace(p.LPTData) == "" {
			return opts, durations.ErrMissingDataSource
		}
	default:
		return disabled, fmt.Errorf("%w: unknown --algorithm %q", ErrConfigurationInvalid, p.Algorithm)
	}
	return opts, nil
}

// LPTDataSource returns the configured duration data reference
func (c *Config) LPTDataSource() string {
	return strings.TrimSpace(c.Partition.LPTData)
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		// If TestPath is provided, make it relative to ProjectPath if it's not absolute
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}

	// Default: combine project path and test path
	return filepath.Join(c.ProjectPath, c.TestPath)
}

// GetOutputPath returns the full path to the plan JSON file, honoring --output.
func (c *Config) GetOutputPath() string {
	p := c.Flags.Output
	if p == "" {
		p = filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "f", "false", "n", "no", "off":
		return false, nil
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

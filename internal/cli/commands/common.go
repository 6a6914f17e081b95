package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"tsplit/internal/config"
	"tsplit/internal/discovery"
	"tsplit/internal/domain"
	"tsplit/internal/durations"
	"tsplit/internal/partition"
	"tsplit/internal/ui"
)

// Partitioner builds the selector for the current configuration
type Partitioner struct {
	config *config.Config
	load   func(ctx context.Context, source string) (*durations.Dataset, error)
}

// NewPartitioner creates a Partitioner reading duration data with durations.Load
func NewPartitioner(cfg *config.Config) *Partitioner {
	return &Partitioner{config: cfg, load: durations.Load}
}

// Selector validates the partition options, loads the duration dataset when
// the algorithm needs one and returns a selector that is not yet prepared.
// Invalid options disable partitioning with a warning; ds is nil unless the
// LPT algorithm is active.
func (p *Partitioner) Selector(ctx context.Context) (*partition.Selector, *durations.Dataset, error) {
	opts, err := p.config.PartitionOptions()
	if err != nil {
		if !errors.Is(err, config.ErrConfigurationInvalid) {
			return nil, nil, err
		}
		log.Warn().Err(err).Msg("test partitioning disabled")
	}

	if !opts.Enabled || opts.Algorithm != partition.AlgorithmLPT {
		sel, err := partition.NewSelector(opts, nil)
		return sel, nil, err
	}

	ds, err := p.load(ctx, p.config.LPTDataSource())
	if err != nil {
		return nil, nil, fmt.Errorf("load duration data: %w", err)
	}
	sel, err := partition.NewSelector(opts, ds)
	if err != nil {
		return nil, nil, err
	}
	return sel, ds, nil
}

// discover collects the tests under the configured path and applies the
// name filter
func discover(ctx context.Context, cfg *config.Config, collector *discovery.Collector, filter *discovery.Filter) ([]domain.TestItem, error) {
	root := cfg.GetTestPath()
	files, err := collector.Files(root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	collector.SetProcessors(cfg.Processors)
	collector.SetProgress(ui.NewProgressBar(len(files)))
	items, err := collector.Collect(ctx, root, files)
	if err != nil {
		return nil, err
	}
	return filter.FilterByName(items, cfg.Flags.NameFilter), nil
}

// testPathArg lets a positional path stand in for --test-path
func testPathArg(cfg *config.Config, args []string) {
	if len(args) > 0 && args[0] != "" {
		cfg.Flags.TestPath = args[0]
	}
}

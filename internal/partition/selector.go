package partition

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"tsplit/internal/domain"
	"tsplit/internal/durations"
	"tsplit/internal/identifier"
)

// Algorithm selects how identifiers are placed on nodes
type Algorithm string

const (
	// AlgorithmHash places every identifier by hash
	AlgorithmHash Algorithm = "hash"
	// AlgorithmLPT bin-packs identifiers by recorded duration
	AlgorithmLPT Algorithm = "least-processing-time"
)

// Options configure a Selector. They are validated by the config package.
type Options struct {
	Enabled     bool
	NodeCount   int
	NodeID      int
	HashByClass bool
	Algorithm   Algorithm
}

// Selector answers whether a test item runs on this node
type Selector struct {
	opts      Options
	resolver  *identifier.Resolver
	durations Durations

	once       sync.Once
	assignment *Assignment
	err        error
}

// NewSelector creates a Selector. ds is only required for AlgorithmLPT.
func NewSelector(opts Options, ds Durations) (*Selector, error) {
	s := &Selector{
		opts:     opts,
		resolver: identifier.NewResolver(opts.HashByClass),
	}
	if !opts.Enabled {
		return s, nil
	}
	if opts.NodeCount < 1 || opts.NodeID < 1 || opts.NodeID > opts.NodeCount {
		return nil, fmt.Errorf("node %d is outside [1, %d]", opts.NodeID, opts.NodeCount)
	}

	switch opts.Algorithm {
	case AlgorithmHash, "":
		s.opts.Algorithm = AlgorithmHash
	case AlgorithmLPT:
		if ds == nil {
			return nil, durations.ErrMissingDataSource
		}
		if opts.HashByClass {
			if missing := ds.Incomplete(); len(missing) > 0 {
				return nil, fmt.Errorf("%w: no duration for %q", durations.ErrMissingRequiredKey, missing[0])
			}
		}
		s.durations = ds
	default:
		return nil, fmt.Errorf("unknown algorithm %q", opts.Algorithm)
	}
	return s, nil
}

// Options returns the options the selector was built with
func (s *Selector) Options() Options {
	return s.opts
}

// Enabled reports whether the selector filters anything
func (s *Selector) Enabled() bool {
	return s.opts.Enabled
}

// Prepare builds the duration-based assignment over every test the run
// knows about. It must be called once collection is complete and before the
// first Decide for the assignment to take effect; later calls return the
// result of the first.
func (s *Selector) Prepare(universe []domain.TestItem) error {
	if !s.opts.Enabled || s.opts.Algorithm != AlgorithmLPT {
		return nil
	}
	s.once.Do(func() {
		s.assignment, s.err = s.build(universe)
		s.durations = nil
	})
	return s.err
}

func (s *Selector) build(universe []domain.TestItem) (*Assignment, error) {
	if err := s.checkGranularity(universe); err != nil {
		return nil, err
	}
	ids := s.identifiers(universe)
	a, err := AssignLPT(ids, s.durations, s.opts.NodeCount)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("identifiers", len(ids)).
		Floats64("loads", a.Loads()).
		Msg("built least-processing-time assignment")
	return a, nil
}

// checkGranularity rejects datasets keyed at the other granularity: method
// keys while hashing by class, or suite keys while hashing by method.
func (s *Selector) checkGranularity(universe []domain.TestItem) error {
	for _, item := range universe {
		if item.Kind != domain.KindMethod || !identifier.IsTest(item) {
			continue
		}
		other := identifier.ClassPath(item)
		if s.opts.HashByClass {
			other = identifier.MethodPath(item)
		}
		own, _ := s.resolver.Resolve(item)
		if s.durations.Has(other) && !s.durations.Has(own) {
			return fmt.Errorf("%w: duration data has %q but expected %q", durations.ErrMissingRequiredKey, other, own)
		}
	}
	return nil
}

func (s *Selector) identifiers(universe []domain.TestItem) []string {
	seen := make(map[string]bool, len(universe))
	var ids []string
	for _, item := range universe {
		id, ok := s.resolver.Resolve(item)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Decide returns Include when item runs on this node, Exclude with a reason
// when it runs elsewhere, and NoOpinion when partitioning is off or item is
// not a test.
func (s *Selector) Decide(item domain.TestItem) domain.Decision {
	if !s.opts.Enabled {
		return domain.Decision{Verdict: domain.NoOpinion}
	}
	id, ok := s.resolver.Resolve(item)
	if !ok {
		return domain.Decision{Verdict: domain.NoOpinion}
	}

	slot, src := s.slotFor(id)
	if slot == s.opts.NodeID {
		return domain.Decision{Verdict: domain.Include, Identifier: id, Slot: slot}
	}
	return domain.Decision{
		Verdict:    domain.Exclude,
		Identifier: id,
		Slot:       slot,
		Reason:     fmt.Sprintf("%s runs on node %d of %d (%s)", id, slot, s.opts.NodeCount, src),
	}
}

func (s *Selector) slotFor(id string) (int, Source) {
	if s.assignment != nil {
		if slot, ok := s.assignment.Slot(id); ok {
			return slot, s.assignment.Source(id)
		}
	}
	return Slot(id, s.opts.NodeCount), SourceHash
}

// Plan returns the placement of every identifier in universe on every node.
func (s *Selector) Plan(universe []domain.TestItem) (*Assignment, error) {
	if !s.opts.Enabled {
		return nil, fmt.Errorf("partitioning is disabled")
	}
	if err := s.Prepare(universe); err != nil {
		return nil, err
	}
	ids := s.identifiers(universe)
	if s.assignment != nil {
		return s.assignment.withFallback(ids), nil
	}
	return NewHashScheduler().Schedule(ids, s.opts.NodeCount)
}

// Resolve returns the identifier item is placed by
func (s *Selector) Resolve(item domain.TestItem) (string, bool) {
	return s.resolver.Resolve(item)
}

// Identifiers resolves universe to its sorted, de-duplicated identifiers
func (s *Selector) Identifiers(universe []domain.TestItem) []string {
	return s.identifiers(universe)
}

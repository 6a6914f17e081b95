package partition

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsplit/internal/domain"
	"tsplit/internal/durations"
)

const dummyPkg = "tests.dummy_tests"

// dummySuite mirrors a package with six suites and two plain test functions
func dummySuite() []domain.TestItem {
	methods := map[string]int{"TC1": 3, "TC2": 2, "TC3": 5, "TC4": 2, "TC5": 4, "TC6": 1}
	var items []domain.TestItem
	for _, suite := range []string{"TC1", "TC2", "TC3", "TC4", "TC5", "TC6"} {
		for i := 0; i < methods[suite]; i++ {
			items = append(items, domain.TestItem{
				Package: dummyPkg,
				Suite:   suite,
				Name:    "Test" + string(rune('A'+i)),
				Kind:    domain.KindMethod,
			})
		}
	}
	items = append(items,
		domain.TestItem{Package: dummyPkg, Name: "TestFunc1", Kind: domain.KindFunction},
		domain.TestItem{Package: dummyPkg, Name: "TestFunc2", Kind: domain.KindFunction},
	)
	return items
}

func mustSelector(t *testing.T, opts Options, ds Durations) *Selector {
	t.Helper()
	s, err := NewSelector(opts, ds)
	require.NoError(t, err)
	return s
}

func TestSelector_Disabled(t *testing.T) {
	s := mustSelector(t, Options{Enabled: false, NodeCount: 2, NodeID: 3}, nil)
	for _, item := range dummySuite() {
		assert.Equal(t, domain.NoOpinion, s.Decide(item).Verdict)
	}
}

func TestSelector_NotATest(t *testing.T) {
	ds := durations.New(map[string]float64{"x": 1})
	for _, opts := range []Options{
		{Enabled: true, NodeCount: 2, NodeID: 1, Algorithm: AlgorithmHash},
		{Enabled: true, NodeCount: 2, NodeID: 1, Algorithm: AlgorithmLPT},
	} {
		s := mustSelector(t, opts, ds)
		require.NoError(t, s.Prepare(dummySuite()))
		d := s.Decide(domain.TestItem{Package: "p", Name: "helper value"})
		assert.Equal(t, domain.NoOpinion, d.Verdict, string(opts.Algorithm))
	}
}

func TestSelector_HashScenario(t *testing.T) {
	ids := []domain.TestItem{
		{Package: "pkg", Suite: "TC1", Name: "test_a", Kind: domain.KindMethod},
		{Package: "pkg", Suite: "TC1", Name: "test_b", Kind: domain.KindMethod},
		{Package: "pkg", Suite: "TC2", Name: "test_c", Kind: domain.KindMethod},
	}

	includes := make(map[string][]int)
	for round := 0; round < 3; round++ {
		for node := 1; node <= 4; node++ {
			s := mustSelector(t, Options{Enabled: true, NodeCount: 4, NodeID: node}, nil)
			for _, item := range ids {
				d := s.Decide(item)
				if d.Verdict == domain.Include {
					includes[d.Identifier] = append(includes[d.Identifier], node)
				} else {
					assert.Equal(t, domain.Exclude, d.Verdict)
					assert.NotEmpty(t, d.Reason)
				}
			}
		}
	}

	require.Len(t, includes, 3)
	for id, nodes := range includes {
		require.Len(t, nodes, 3, "%s included exactly once per round", id)
		assert.Equal(t, nodes[0], nodes[1], "%s is stable across rounds", id)
		assert.Equal(t, nodes[0], nodes[2], "%s is stable across rounds", id)
		assert.Equal(t, Slot(id, 4), nodes[0])
	}
}

func TestSelector_PartitionIsTotal(t *testing.T) {
	ds, err := durations.LoadFile(filepath.Join("..", "durations", "testdata", "lpt_partial.json"))
	require.NoError(t, err)

	cases := []struct {
		name string
		opts Options
	}{
		{"hash by method", Options{Algorithm: AlgorithmHash}},
		{"hash by class", Options{Algorithm: AlgorithmHash, HashByClass: true}},
		{"lpt by class", Options{Algorithm: AlgorithmLPT, HashByClass: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for nodeCount := 1; nodeCount <= 5; nodeCount++ {
				counts := make(map[string]int)
				for node := 1; node <= nodeCount; node++ {
					opts := tc.opts
					opts.Enabled, opts.NodeCount, opts.NodeID = true, nodeCount, node
					s := mustSelector(t, opts, ds)
					require.NoError(t, s.Prepare(dummySuite()))
					for _, item := range dummySuite() {
						if s.Decide(item).Verdict == domain.Include {
							counts[item.DisplayName()]++
						}
					}
				}
				for _, item := range dummySuite() {
					assert.Equal(t, 1, counts[item.DisplayName()], "%s with %d nodes", item.DisplayName(), nodeCount)
				}
			}
		})
	}
}

func TestSelector_HashByClassKeepsSuitesTogether(t *testing.T) {
	for node := 1; node <= 3; node++ {
		s := mustSelector(t, Options{Enabled: true, NodeCount: 3, NodeID: node, HashByClass: true}, nil)
		verdicts := make(map[string]map[domain.Verdict]bool)
		for _, item := range dummySuite() {
			if item.Kind != domain.KindMethod {
				continue
			}
			if verdicts[item.Suite] == nil {
				verdicts[item.Suite] = make(map[domain.Verdict]bool)
			}
			verdicts[item.Suite][s.Decide(item).Verdict] = true
		}
		for suite, v := range verdicts {
			assert.Len(t, v, 1, "suite %s split on node %d", suite, node)
		}
	}
}

func lptOptions(node int) Options {
	return Options{Enabled: true, NodeCount: 3, NodeID: node, HashByClass: true, Algorithm: AlgorithmLPT}
}

func includedSuites(s *Selector) map[string]bool {
	suites := make(map[string]bool)
	for _, item := range dummySuite() {
		if item.Kind == domain.KindMethod && s.Decide(item).Verdict == domain.Include {
			suites[item.Suite] = true
		}
	}
	return suites
}

func TestSelector_LPT(t *testing.T) {
	ds, err := durations.LoadFile(filepath.Join("..", "durations", "testdata", "lpt_all.json"))
	require.NoError(t, err)

	t.Run("node one gets only the longest suite", func(t *testing.T) {
		s := mustSelector(t, lptOptions(1), ds)
		require.NoError(t, s.Prepare(dummySuite()))
		assert.Equal(t, map[string]bool{"TC5": true}, includedSuites(s))
	})

	t.Run("node three gets every short suite", func(t *testing.T) {
		s := mustSelector(t, lptOptions(3), ds)
		require.NoError(t, s.Prepare(dummySuite()))
		assert.Equal(t, map[string]bool{"TC1": true, "TC2": true, "TC4": true, "TC6": true}, includedSuites(s))
	})

	t.Run("functions keep their hash placement", func(t *testing.T) {
		for node := 1; node <= 3; node++ {
			hash := mustSelector(t, Options{Enabled: true, NodeCount: 3, NodeID: node, HashByClass: true}, nil)
			lpt := mustSelector(t, lptOptions(node), ds)
			require.NoError(t, lpt.Prepare(dummySuite()))
			for _, item := range dummySuite() {
				if item.Kind == domain.KindFunction {
					assert.Equal(t, hash.Decide(item).Verdict, lpt.Decide(item).Verdict, item.Name)
				}
			}
		}
	})
}

func TestSelector_LPTPartial(t *testing.T) {
	ds, err := durations.LoadFile(filepath.Join("..", "durations", "testdata", "lpt_partial.json"))
	require.NoError(t, err)

	id := dummyPkg + ".TC3"
	expected := Slot(id, 3)

	s := mustSelector(t, lptOptions(expected), ds)
	require.NoError(t, s.Prepare(dummySuite()))
	assert.True(t, includedSuites(s)["TC3"], "suite missing from the data hashes like in hash mode")

	plan, err := s.Plan(dummySuite())
	require.NoError(t, err)
	assert.Equal(t, SourceHash, plan.Source(id))
}

func TestSelector_PrepareOnce(t *testing.T) {
	ds := durations.New(map[string]float64{dummyPkg + ".TC5": 50})
	s := mustSelector(t, lptOptions(1), ds)

	require.NoError(t, s.Prepare(dummySuite()))
	first := s.assignment
	require.NoError(t, s.Prepare(nil))
	assert.Same(t, first, s.assignment, "assignment is built once")
	assert.Nil(t, s.durations, "dataset is released after the build")
}

func TestSelector_DecideBeforePrepare(t *testing.T) {
	ds := durations.New(map[string]float64{dummyPkg + ".TC5": 50})
	s := mustSelector(t, lptOptions(2), ds)
	item := domain.TestItem{Package: dummyPkg, Suite: "TC5", Name: "TestA", Kind: domain.KindMethod}

	d := s.Decide(item)
	assert.Equal(t, Slot(dummyPkg+".TC5", 3), d.Slot, "without an assignment every identifier hashes")
}

func TestNewSelector_Errors(t *testing.T) {
	t.Run("lpt without data", func(t *testing.T) {
		_, err := NewSelector(lptOptions(1), nil)
		assert.ErrorIs(t, err, durations.ErrMissingDataSource)
	})

	t.Run("incomplete record with hash by class", func(t *testing.T) {
		ds, err := durations.LoadFile(filepath.Join("..", "durations", "testdata", "lpt_invalid_data.json"))
		require.NoError(t, err)
		_, err = NewSelector(lptOptions(1), ds)
		assert.ErrorIs(t, err, durations.ErrMissingRequiredKey)
	})

	t.Run("node out of range", func(t *testing.T) {
		_, err := NewSelector(Options{Enabled: true, NodeCount: 2, NodeID: 3}, nil)
		assert.Error(t, err)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := NewSelector(Options{Enabled: true, NodeCount: 2, NodeID: 1, Algorithm: "random"}, nil)
		assert.Error(t, err)
	})
}

func TestSelector_GranularityMismatch(t *testing.T) {
	t.Run("method keys while hashing by class", func(t *testing.T) {
		ds := durations.New(map[string]float64{dummyPkg + ".TC1.TestA": 3})
		s := mustSelector(t, lptOptions(1), ds)
		assert.ErrorIs(t, s.Prepare(dummySuite()), durations.ErrMissingRequiredKey)
	})

	t.Run("suite keys while hashing by method", func(t *testing.T) {
		ds := durations.New(map[string]float64{dummyPkg + ".TC1": 3})
		opts := lptOptions(1)
		opts.HashByClass = false
		s := mustSelector(t, opts, ds)
		assert.ErrorIs(t, s.Prepare(dummySuite()), durations.ErrMissingRequiredKey)
	})

	t.Run("suite absent from data", func(t *testing.T) {
		ds := durations.New(map[string]float64{dummyPkg + ".TC1": 3})
		s := mustSelector(t, lptOptions(1), ds)
		assert.NoError(t, s.Prepare(dummySuite()))
	})
}

func TestSelector_Plan(t *testing.T) {
	t.Run("hash", func(t *testing.T) {
		s := mustSelector(t, Options{Enabled: true, NodeCount: 3, NodeID: 1}, nil)
		plan, err := s.Plan(dummySuite())
		require.NoError(t, err)
		assert.Equal(t, len(dummySuite()), plan.Len())
	})

	t.Run("disabled", func(t *testing.T) {
		s := mustSelector(t, Options{}, nil)
		_, err := s.Plan(dummySuite())
		assert.Error(t, err)
	})
}

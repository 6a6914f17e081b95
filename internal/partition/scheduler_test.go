package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsplit/internal/durations"
)

func TestRoundRobinScheduler_Schedule(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		nodeCount int
		expected  map[int][]string
	}{
		{
			name:      "even split",
			ids:       []string{"a", "b", "c", "d"},
			nodeCount: 2,
			expected:  map[int][]string{1: {"a", "c"}, 2: {"b", "d"}},
		},
		{
			name:      "more nodes than ids",
			ids:       []string{"a"},
			nodeCount: 3,
			expected:  map[int][]string{1: {"a"}, 2: nil, 3: nil},
		},
		{
			name:      "zero nodes treated as one",
			ids:       []string{"a", "b"},
			nodeCount: 0,
			expected:  map[int][]string{1: {"a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewRoundRobinScheduler(nil).Schedule(tt.ids, tt.nodeCount)
			require.NoError(t, err)
			for slot, ids := range tt.expected {
				assert.Equal(t, ids, a.Members(slot), "slot %d", slot)
			}
		})
	}
}

func TestRoundRobinScheduler_RecordsLoads(t *testing.T) {
	ds := durations.New(map[string]float64{"a": 10, "b": 1, "c": 10})
	a, err := NewRoundRobinScheduler(ds).Schedule([]string{"a", "b", "c"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 1}, a.Loads())
	assert.Equal(t, 20.0, a.Makespan())
}

func TestHashScheduler_Schedule(t *testing.T) {
	ids := []string{"pkg.TC1.test_a", "pkg.TC1.test_b", "pkg.TC2.test_c"}
	a, err := NewHashScheduler().Schedule(ids, 4)
	require.NoError(t, err)
	for _, id := range ids {
		slot, ok := a.Slot(id)
		assert.True(t, ok)
		assert.Equal(t, Slot(id, 4), slot)
		assert.Equal(t, SourceHash, a.Source(id))
	}
	assert.Equal(t, 0.0, a.Makespan())
}

func TestAssignment_WithFallback(t *testing.T) {
	ds := durations.New(map[string]float64{"a": 2})
	a, err := AssignLPT([]string{"a"}, ds, 2)
	require.NoError(t, err)

	b := a.withFallback([]string{"a", "z"})
	assert.Equal(t, 1, a.Len(), "original is not modified")
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, SourceLPT, b.Source("a"))
	assert.Equal(t, SourceHash, b.Source("z"))
	assert.Equal(t, a.Loads(), b.Loads())
}

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsplit/internal/config"
	"tsplit/internal/domain"
)

func TestJSONStorage_SaveLoad(t *testing.T) {
	cfg := config.New()
	cfg.Flags.Output = filepath.Join(t.TempDir(), "nested", "plan.json")
	st := NewJSONStorage(cfg)

	report := &domain.PlanReport{
		Meta: domain.PlanMeta{Nodes: 2, Algorithm: "least-processing-time", HashByClass: true, Makespan: 50},
		Nodes: []domain.NodePlan{
			{Node: 1, Load: 50, Tests: []domain.PlannedTest{{Identifier: "pkg.TC5", Source: "lpt", Duration: 50}}},
			{Node: 2, Load: 5, Tests: []domain.PlannedTest{{Identifier: "pkg.TC1", Source: "lpt", Duration: 5}, {Identifier: "pkg.TC3", Source: "hash"}}},
		},
	}

	require.NoError(t, st.Save(report))
	_, err := os.Stat(cfg.Flags.Output)
	require.NoError(t, err, "output directory is created")

	loaded, err := st.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(report, loaded); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONStorage_LoadErrors(t *testing.T) {
	cfg := config.New()
	cfg.Flags.Output = filepath.Join(t.TempDir(), "missing.json")
	st := NewJSONStorage(cfg)

	_, err := st.Load()
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(cfg.Flags.Output, []byte("{"), 0644))
	_, err = st.Load()
	assert.Error(t, err)
}

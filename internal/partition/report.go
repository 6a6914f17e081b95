package partition

import (
	"time"

	"tsplit/internal/domain"
)

// NewPlanReport renders a per-node view of a. meta is copied and completed
// with node count, identifier count, makespan and uncovered count.
func NewPlanReport(a *Assignment, meta domain.PlanMeta) *domain.PlanReport {
	meta.Nodes = a.NodeCount()
	meta.Identifiers = a.Len()
	meta.Makespan = a.Makespan()
	if meta.Timestamp == "" {
		meta.Timestamp = time.Now().Format(time.RFC3339)
	}

	report := &domain.PlanReport{Meta: meta}
	for slot := 1; slot <= a.NodeCount(); slot++ {
		node := domain.NodePlan{Node: slot, Load: a.Load(slot), Tests: []domain.PlannedTest{}}
		for _, id := range a.Members(slot) {
			pt := domain.PlannedTest{Identifier: id, Source: string(a.Source(id))}
			if d, ok := a.Duration(id); ok {
				pt.Duration = d
			} else if a.Source(id) == SourceHash {
				report.Meta.UncoveredByData++
			}
			node.Tests = append(node.Tests, pt)
		}
		report.Nodes = append(report.Nodes, node)
	}
	return report
}

package domain

// PlannedTest is one identifier placed on a node
type PlannedTest struct {
	Identifier string  `json:"identifier"`
	Source     string  `json:"source"` // "lpt" or "hash"
	Duration   float64 `json:"duration_seconds,omitempty"`
}

// NodePlan lists what a single node runs
type NodePlan struct {
	Node  int           `json:"node"`
	Load  float64       `json:"load_seconds"`
	Tests []PlannedTest `json:"tests"`
}

// PlanMeta contains metadata about a computed plan
type PlanMeta struct {
	Nodes           int     `json:"nodes"`
	Algorithm       string  `json:"algorithm"`
	HashByClass     bool    `json:"hash_by_class"`
	DataSource      string  `json:"data_source,omitempty"`
	TotalTests      int     `json:"total_tests"`
	Identifiers     int     `json:"identifiers"`
	Makespan        float64 `json:"makespan_seconds"`
	RoundRobinSpan  float64 `json:"round_robin_makespan_seconds,omitempty"`
	UncoveredByData int     `json:"uncovered_by_data"`
	Timestamp       string  `json:"timestamp"`
}

// PlanReport is the complete output structure for a plan
type PlanReport struct {
	Meta  PlanMeta   `json:"meta"`
	Nodes []NodePlan `json:"nodes"`
}

package partition

// Scheduler distributes identifiers across nodes
type Scheduler interface {
	Schedule(ids []string, nodeCount int) (*Assignment, error)
}

// HashScheduler places every identifier by hash
type HashScheduler struct{}

// NewHashScheduler creates a new HashScheduler
func NewHashScheduler() *HashScheduler {
	return &HashScheduler{}
}

// Schedule places ids by hash
func (s *HashScheduler) Schedule(ids []string, nodeCount int) (*Assignment, error) {
	a := newAssignment(nodeCount)
	for _, id := range ids {
		a.place(id, Slot(id, a.nodeCount), SourceHash)
	}
	return a, nil
}

// LPTScheduler bin-packs identifiers by historical duration
type LPTScheduler struct {
	durations Durations
}

// NewLPTScheduler creates a new LPTScheduler over ds
func NewLPTScheduler(ds Durations) *LPTScheduler {
	return &LPTScheduler{durations: ds}
}

// Schedule runs AssignLPT
func (s *LPTScheduler) Schedule(ids []string, nodeCount int) (*Assignment, error) {
	return AssignLPT(ids, s.durations, nodeCount)
}

// RoundRobinScheduler deals identifiers out in order. It ignores durations
// when placing but records them so its makespan can be compared against LPT.
type RoundRobinScheduler struct {
	durations Durations
}

// NewRoundRobinScheduler creates a new RoundRobinScheduler. ds may be nil.
func NewRoundRobinScheduler(ds Durations) *RoundRobinScheduler {
	return &RoundRobinScheduler{durations: ds}
}

// Schedule distributes ids evenly across nodes using round-robin
func (s *RoundRobinScheduler) Schedule(ids []string, nodeCount int) (*Assignment, error) {
	a := newAssignment(nodeCount)
	i := 0
	for _, id := range ids {
		if _, dup := a.slots[id]; dup {
			continue
		}
		slot := i%a.nodeCount + 1
		i++
		if s.durations != nil {
			if seconds, ok := s.durations.Lookup(id); ok {
				a.placeWithDuration(id, slot, SourceRoundRobin, seconds)
				continue
			}
		}
		a.place(id, slot, SourceRoundRobin)
	}
	return a, nil
}

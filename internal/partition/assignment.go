package partition

import "sort"

// Source records how an identifier was placed
type Source string

const (
	// SourceLPT means the identifier was bin-packed by duration
	SourceLPT Source = "lpt"
	// SourceHash means the identifier was placed by hash
	SourceHash Source = "hash"
	// SourceRoundRobin means the identifier was dealt out in order
	SourceRoundRobin Source = "round-robin"
)

// Assignment maps identifiers to node slots. It is not modified after the
// scheduler that built it returns.
type Assignment struct {
	nodeCount int
	slots     map[string]int
	sources   map[string]Source
	durations map[string]float64
	loads     []float64 // loads[i] is the load of slot i+1
}

func newAssignment(nodeCount int) *Assignment {
	if nodeCount < 1 {
		nodeCount = 1
	}
	return &Assignment{
		nodeCount: nodeCount,
		slots:     make(map[string]int),
		sources:   make(map[string]Source),
		durations: make(map[string]float64),
		loads:     make([]float64, nodeCount),
	}
}

func (a *Assignment) place(id string, slot int, src Source) {
	a.slots[id] = slot
	a.sources[id] = src
}

func (a *Assignment) placeWithDuration(id string, slot int, src Source, seconds float64) {
	a.place(id, slot, src)
	a.durations[id] = seconds
	a.loads[slot-1] += seconds
}

// NodeCount returns the number of slots
func (a *Assignment) NodeCount() int {
	return a.nodeCount
}

// Len returns the number of placed identifiers
func (a *Assignment) Len() int {
	return len(a.slots)
}

// Slot returns the slot assigned to id
func (a *Assignment) Slot(id string) (int, bool) {
	slot, ok := a.slots[id]
	return slot, ok
}

// Source returns how id was placed, or "" when it was not
func (a *Assignment) Source(id string) Source {
	return a.sources[id]
}

// Duration returns the duration that counted towards id's slot load
func (a *Assignment) Duration(id string) (float64, bool) {
	d, ok := a.durations[id]
	return d, ok
}

// Load returns the summed duration of slot
func (a *Assignment) Load(slot int) float64 {
	if slot < 1 || slot > a.nodeCount {
		return 0
	}
	return a.loads[slot-1]
}

// Loads returns a copy of the per-slot loads, index 0 being slot 1
func (a *Assignment) Loads() []float64 {
	out := make([]float64, len(a.loads))
	copy(out, a.loads)
	return out
}

// Makespan returns the largest slot load
func (a *Assignment) Makespan() float64 {
	var span float64
	for _, l := range a.loads {
		if l > span {
			span = l
		}
	}
	return span
}

// Members returns the identifiers placed on slot, sorted
func (a *Assignment) Members(slot int) []string {
	var ids []string
	for id, s := range a.slots {
		if s == slot {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// withFallback returns a copy of a that also places every id in ids that a
// does not cover, by hash.
func (a *Assignment) withFallback(ids []string) *Assignment {
	out := newAssignment(a.nodeCount)
	for id, slot := range a.slots {
		out.place(id, slot, a.sources[id])
	}
	for id, d := range a.durations {
		out.durations[id] = d
	}
	copy(out.loads, a.loads)
	for _, id := range ids {
		if _, ok := out.slots[id]; !ok {
			out.place(id, Slot(id, out.nodeCount), SourceHash)
		}
	}
	return out
}

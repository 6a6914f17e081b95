package partition

import (
	"fmt"
	"sort"

	"tsplit/internal/durations"
)

// Durations is the read side of a duration dataset
type Durations interface {
	// Lookup returns the duration of id; false means no data
	Lookup(id string) (float64, bool)
	// Has reports whether the dataset mentions id, with or without a duration
	Has(id string) bool
	// Incomplete lists identifiers mentioned without a duration
	Incomplete() []string
}

type timedID struct {
	id      string
	seconds float64
}

// AssignLPT places known identifiers on nodeCount slots. Identifiers with a
// duration are bin-packed longest first onto the least loaded slot; the rest
// are placed by hash.
func AssignLPT(known []string, ds Durations, nodeCount int) (*Assignment, error) {
	a := newAssignment(nodeCount)

	var (
		withData    []timedID
		withoutData []string
		seen        = make(map[string]bool, len(known))
	)
	for _, id := range known {
		if seen[id] {
			continue
		}
		seen[id] = true

		if seconds, ok := ds.Lookup(id); ok {
			withData = append(withData, timedID{id: id, seconds: seconds})
			continue
		}
		if ds.Has(id) {
			return nil, fmt.Errorf("%w: record for %q has no duration", durations.ErrMissingRequiredKey, id)
		}
		withoutData = append(withoutData, id)
	}

	sort.Slice(withData, func(i, j int) bool {
		if withData[i].seconds != withData[j].seconds {
			return withData[i].seconds > withData[j].seconds
		}
		return withData[i].id < withData[j].id
	})

	for _, t := range withData {
		a.placeWithDuration(t.id, leastLoaded(a.loads), SourceLPT, t.seconds)
	}
	for _, id := range withoutData {
		a.place(id, Slot(id, a.nodeCount), SourceHash)
	}
	return a, nil
}

// leastLoaded returns the 1-based slot with the smallest load, lowest slot
// first on ties.
func leastLoaded(loads []float64) int {
	best := 0
	for i := 1; i < len(loads); i++ {
		if loads[i] < loads[best] {
			best = i
		}
	}
	return best + 1
}

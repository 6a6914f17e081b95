// Package durations loads historical per-test durations used to balance nodes.
package durations

import (
	"fmt"
	"sort"
)

// Dataset maps test identifiers to durations in seconds. It is read-only
// once loaded.
type Dataset struct {
	source     string
	values     map[string]float64
	incomplete map[string]struct{}
}

// New builds a Dataset from an in-memory table
func New(values map[string]float64) *Dataset {
	d := &Dataset{
		values:     make(map[string]float64, len(values)),
		incomplete: make(map[string]struct{}),
	}
	for k, v := range values {
		d.values[k] = v
	}
	return d
}

// Source returns where the dataset was loaded from
func (d *Dataset) Source() string {
	return d.source
}

// Len returns the number of identifiers with a usable duration
func (d *Dataset) Len() int {
	return len(d.values)
}

// Lookup returns the duration for id. A missing key is not an error.
func (d *Dataset) Lookup(id string) (float64, bool) {
	v, ok := d.values[id]
	return v, ok
}

// Has reports whether the dataset mentions id at all, even without a duration.
func (d *Dataset) Has(id string) bool {
	if _, ok := d.values[id]; ok {
		return true
	}
	_, ok := d.incomplete[id]
	return ok
}

// Require returns the duration for an identifier the caller expects the
// dataset to cover.
func (d *Dataset) Require(id string) (float64, error) {
	if v, ok := d.values[id]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: no duration for %q", ErrMissingRequiredKey, id)
}

// Incomplete lists identifiers whose records carry no duration, sorted
func (d *Dataset) Incomplete() []string {
	keys := make([]string, 0, len(d.incomplete))
	for k := range d.incomplete {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (d *Dataset) markIncomplete(id string) {
	d.incomplete[id] = struct{}{}
}

package domain

// Verdict is the tri-state answer to "does this test run on this node?"
type Verdict int

const (
	// NoOpinion defers to the runner's own selection
	NoOpinion Verdict = iota
	// Include runs the test on this node
	Include
	// Exclude skips the test on this node
	Exclude
)

// String returns the verdict name
func (v Verdict) String() string {
	switch v {
	case Include:
		return "include"
	case Exclude:
		return "exclude"
	default:
		return "no-opinion"
	}
}

// MarshalText renders the verdict as its name
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Decision is the outcome of offering one test item to the selector
type Decision struct {
	Verdict    Verdict `json:"verdict"`
	Identifier string  `json:"identifier,omitempty"`
	Slot       int     `json:"slot,omitempty"`   // Node the identifier is assigned to
	Reason     string  `json:"reason,omitempty"` // Set on Exclude
}

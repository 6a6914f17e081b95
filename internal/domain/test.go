package domain

// ItemKind tells a top-level test function apart from a suite method
type ItemKind int

const (
	// KindUnknown marks something that was offered as a test but is not one
	KindUnknown ItemKind = iota
	// KindFunction is a top-level func TestXxx(t *testing.T)
	KindFunction
	// KindMethod is a TestXxx method declared on a suite type
	KindMethod
)

// String returns the kind name used in JSON output
func (k ItemKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind as its name
func (k ItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// TestItem represents a single test discovered in a _test.go file
type TestItem struct {
	Package  string   `json:"package"`         // Import path of the package holding the test
	Suite    string   `json:"suite,omitempty"` // Receiver type name for suite methods
	Name     string   `json:"name"`            // Function or method name
	Kind     ItemKind `json:"kind"`
	FilePath string   `json:"file"` // File the test was found in
}

// DisplayName returns Suite.Name for methods and Name for functions
func (t TestItem) DisplayName() string {
	if t.Kind == KindMethod && t.Suite != "" {
		return t.Suite + "." + t.Name
	}
	return t.Name
}

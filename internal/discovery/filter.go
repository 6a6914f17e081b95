package discovery

import (
	"path/filepath"
	"strings"

	"tsplit/internal/domain"
)

// Filter filters tests by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps tests whose name, Suite.Name or file name matches
// pattern. Supports patterns like "*Cart*", "CartSuite.*" or "payment_test.go".
func (f *Filter) FilterByName(tests []domain.TestItem, pattern string) []domain.TestItem {
	if pattern == "" {
		return tests
	}

	var filtered []domain.TestItem
	for _, test := range tests {
		candidates := []string{test.Name, test.DisplayName(), filepath.Base(test.FilePath)}
		for _, name := range candidates {
			if matchName(pattern, name) {
				filtered = append(filtered, test)
				break
			}
		}
	}
	return filtered
}

func matchName(pattern, name string) bool {
	if name == "" {
		return false
	}

	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// Every non-empty piece between wildcards must appear in the name
		hasPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}

package discovery

import (
	"testing"

	"tsplit/internal/domain"
)

func items(names ...string) []domain.TestItem {
	var out []domain.TestItem
	for _, n := range names {
		out = append(out, domain.TestItem{Name: n, Kind: domain.KindFunction, FilePath: "/src/pkg/pkg_test.go"})
	}
	return out
}

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		tests    []domain.TestItem
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			tests:    items("TestUser", "TestPayment", "TestOrder"),
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			tests:    items("TestUser", "TestPayment", "TestOrder"),
			pattern:  "*User",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			tests:    items("TestUser", "TestPayment", "TestOrder", "TestPaymentService"),
			pattern:  "*Payment*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			tests:    items("TestUser", "TestPayment", "TestOrder"),
			pattern:  "Payment",
			expected: 1,
		},
		{
			name:     "no matches",
			tests:    items("TestUser", "TestPayment"),
			pattern:  "*NonExistent*",
			expected: 0,
		},
		{
			name:     "file name",
			tests:    items("TestUser", "TestPayment"),
			pattern:  "pkg_test.go",
			expected: 2,
		},
		{
			name: "suite qualified",
			tests: []domain.TestItem{
				{Suite: "CartSuite", Name: "TestAdd", Kind: domain.KindMethod},
				{Suite: "OrderSuite", Name: "TestAdd", Kind: domain.KindMethod},
			},
			pattern:  "CartSuite.*",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.tests, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty test list", func(t *testing.T) {
		result := filter.FilterByName(nil, "*Test")
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})

	t.Run("pattern with multiple wildcards", func(t *testing.T) {
		result := filter.FilterByName(items("TestUserService", "TestUserController", "TestPayment"), "*User*Service*")
		if len(result) != 1 {
			t.Errorf("expected 1 match, got %d", len(result))
		}
	})

	t.Run("only wildcards", func(t *testing.T) {
		result := filter.FilterByName(items("TestA", "TestB"), "**")
		if len(result) != 2 {
			t.Errorf("expected 2 matches, got %d", len(result))
		}
	})
}

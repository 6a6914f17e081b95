package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tsplit/internal/domain"
)

// Save writes the plan report to the configured JSON output file.
func (s *JSONStorage) Save(report *domain.PlanReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

// Load reads the last plan report from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.PlanReport, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	var report domain.PlanReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return &report, nil
}

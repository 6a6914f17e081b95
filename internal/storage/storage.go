package storage

import (
	"tsplit/internal/config"
	"tsplit/internal/domain"
)

// Storage persists and loads plan reports (e.g. for the plan viewer).
type Storage interface {
	Save(report *domain.PlanReport) error
	Load() (*domain.PlanReport, error)
}

// JSONStorage stores plans in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// Path returns the file the storage reads and writes
func (s *JSONStorage) Path() string {
	return s.cfg.GetOutputPath()
}

package ui

import "tsplit/internal/domain"

// Viewer displays a plan report in an interactive TUI
type Viewer interface {
	View(report *domain.PlanReport) error
}

package query

import (
	"context"
	"fmt"

	"github.com/alem-hub/gradebook/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// CLASS STATISTICS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ClassStatisticsHandler computes class-wide statistics.
type ClassStatisticsHandler struct {
	repo roster.Repository
}

// NewClassStatisticsHandler creates a new ClassStatisticsHandler.
func NewClassStatisticsHandler(repo roster.Repository) *ClassStatisticsHandler {
	return &ClassStatisticsHandler{repo: repo}
}

// Handle returns the statistics, or roster.ErrEmptyRoster when there is
// nobody to average.
func (h *ClassStatisticsHandler) Handle(ctx context.Context) (*roster.Statistics, error) {
	students, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("class_statistics: %w", err)
	}
	return roster.ComputeStatistics(students)
}

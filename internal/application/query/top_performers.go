package query

import (
	"context"
	"fmt"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// TOP PERFORMERS QUERY
// Students by average descending, ties kept in insertion order. Stores that
// implement roster.Ranker answer the ranking themselves.
// ══════════════════════════════════════════════════════════════════════════════

// TopPerformersQuery contains the requested size of the list.
type TopPerformersQuery struct {
	// N is the number of students to return. Values below 1 fall back to
	// the handler's default.
	N int
}

// TopPerformersResult contains the ranked students.
type TopPerformersResult struct {
	// Requested is the N that was applied after defaulting.
	Requested int

	// Students holds at most Requested students, best first.
	Students []*student.Student
}

// TopPerformersHandler ranks the roster.
type TopPerformersHandler struct {
	repo       roster.Repository
	defaultTop int
}

// NewTopPerformersHandler creates a new TopPerformersHandler.
// defaultTop below 1 means roster.DefaultTopN.
func NewTopPerformersHandler(repo roster.Repository, defaultTop int) *TopPerformersHandler {
	if defaultTop < 1 {
		defaultTop = roster.DefaultTopN
	}
	return &TopPerformersHandler{repo: repo, defaultTop: defaultTop}
}

// DefaultTop returns the N used when a query does not specify one.
func (h *TopPerformersHandler) DefaultTop() int {
	return h.defaultTop
}

// Handle returns the top performers or roster.ErrEmptyRoster.
func (h *TopPerformersHandler) Handle(ctx context.Context, q TopPerformersQuery) (*TopPerformersResult, error) {
	n := q.N
	if n < 1 {
		n = h.defaultTop
	}

	count, err := h.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("top_performers: %w", err)
	}
	if count == 0 {
		return nil, roster.ErrEmptyRoster
	}

	var top []*student.Student
	if ranker, ok := h.repo.(roster.Ranker); ok {
		top, err = ranker.Top(ctx, n)
	} else {
		var students []*student.Student
		students, err = h.repo.List(ctx)
		top = roster.TopPerformers(students, n)
	}
	if err != nil {
		return nil, fmt.Errorf("top_performers: %w", err)
	}

	return &TopPerformersResult{Requested: n, Students: top}, nil
}

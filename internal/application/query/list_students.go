// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
package query

import (
	"context"
	"fmt"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListStudentsResult contains every student in insertion order.
type ListStudentsResult struct {
	Students []*student.Student
}

// IsEmpty reports whether the roster has no students.
func (r *ListStudentsResult) IsEmpty() bool {
	return len(r.Students) == 0
}

// ListStudentsHandler returns the whole roster.
type ListStudentsHandler struct {
	repo roster.Repository
}

// NewListStudentsHandler creates a new ListStudentsHandler.
func NewListStudentsHandler(repo roster.Repository) *ListStudentsHandler {
	return &ListStudentsHandler{repo: repo}
}

// Handle lists all students. An empty roster is not an error here; callers
// decide how to present it.
func (h *ListStudentsHandler) Handle(ctx context.Context) (*ListStudentsResult, error) {
	students, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_students: %w", err)
	}
	return &ListStudentsResult{Students: students}, nil
}

package query

import (
	"context"
	"fmt"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// FIND STUDENT QUERY
// Case-insensitive exact match on name; the first match in insertion order
// wins when several students share a name.
// ══════════════════════════════════════════════════════════════════════════════

// FindStudentQuery contains the name to look up.
type FindStudentQuery struct {
	Name string
}

// FindStudentHandler looks a student up by name.
type FindStudentHandler struct {
	repo roster.Repository
}

// NewFindStudentHandler creates a new FindStudentHandler.
func NewFindStudentHandler(repo roster.Repository) *FindStudentHandler {
	return &FindStudentHandler{repo: repo}
}

// Handle returns the student or roster.ErrStudentNotFound.
func (h *FindStudentHandler) Handle(ctx context.Context, q FindStudentQuery) (*student.Student, error) {
	students, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("find_student: %w", err)
	}
	return roster.FindByName(students, q.Name)
}

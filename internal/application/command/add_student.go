// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD STUDENT COMMAND
// Registers a student with five subject marks. Validation happens entirely
// before the roster is touched, so a rejected command never leaves a partial
// record behind.
// ══════════════════════════════════════════════════════════════════════════════

// AddStudentCommand contains the data for a new student.
type AddStudentCommand struct {
	// Name is the student's name. Names are not unique.
	Name string

	// Marks are the scores in subject order: Math, Science, English,
	// Social, Arts.
	Marks []float64
}

// AddStudentResult contains the stored student.
type AddStudentResult struct {
	Student *student.Student

	// RosterSize is the number of students after the insert.
	RosterSize int
}

// AddStudentHandler handles the AddStudentCommand.
type AddStudentHandler struct {
	repo  roster.Repository
	log   *logger.Logger
	newID func() string
}

// NewAddStudentHandler creates a new AddStudentHandler.
func NewAddStudentHandler(repo roster.Repository, log *logger.Logger) *AddStudentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AddStudentHandler{
		repo:  repo,
		log:   log.With(logger.Component("add_student")),
		newID: uuid.NewString,
	}
}

// Handle validates the marks, derives total, average and grade, and appends
// the student to the roster.
func (h *AddStudentHandler) Handle(ctx context.Context, cmd AddStudentCommand) (*AddStudentResult, error) {
	s, err := student.NewStudent(student.NewStudentParams{
		ID:    h.newID(),
		Name:  cmd.Name,
		Marks: cmd.Marks,
	})
	if err != nil {
		h.log.Info("student rejected",
			logger.StudentName(cmd.Name),
			logger.Int("marks_count", len(cmd.Marks)),
			logger.Err(err),
		)
		return nil, err
	}

	if err := h.repo.Append(ctx, s); err != nil {
		h.log.Error("failed to append student", logger.StudentID(s.ID), logger.Err(err))
		return nil, fmt.Errorf("add_student: append: %w", err)
	}

	size, err := h.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("add_student: count: %w", err)
	}

	h.log.Info("student added",
		logger.StudentID(s.ID),
		logger.StudentName(s.Name),
		logger.Average(s.Average),
		logger.GradeLabel(s.Grade.String()),
		logger.RosterSize(size),
	)

	return &AddStudentResult{Student: s, RosterSize: size}, nil
}

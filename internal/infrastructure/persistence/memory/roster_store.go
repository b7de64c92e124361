// Package memory implements the default roster store: a slice owned by the
// running session. Nothing outlives the process.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ErrNilStudent is returned when Append receives nil.
var ErrNilStudent = errors.New("memory: student cannot be nil")

// RosterStore keeps students in insertion order.
type RosterStore struct {
	mu       sync.RWMutex
	students []*student.Student
}

var _ roster.Repository = (*RosterStore)(nil)

// NewRosterStore creates an empty store.
func NewRosterStore() *RosterStore {
	return &RosterStore{students: make([]*student.Student, 0)}
}

// Append stores a copy of s and assigns the next sequence number to both
// the copy and s.
func (r *RosterStore) Append(ctx context.Context, s *student.Student) error {
	if s == nil {
		return ErrNilStudent
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s.Seq = int64(len(r.students)) + 1
	r.students = append(r.students, s.Clone())
	return nil
}

// List returns copies of all students in insertion order.
func (r *RosterStore) List(ctx context.Context) ([]*student.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*student.Student, len(r.students))
	for i, s := range r.students {
		out[i] = s.Clone()
	}
	return out, nil
}

// Count returns the number of stored students.
func (r *RosterStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students), nil
}

// Close drops the session roster.
func (r *RosterStore) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students = nil
	return nil
}

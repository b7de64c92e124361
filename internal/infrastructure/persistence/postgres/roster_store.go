package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ErrNilStudent is returned when Append receives nil.
var ErrNilStudent = errors.New("postgres: student cannot be nil")

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER STORE
// ══════════════════════════════════════════════════════════════════════════════

// RosterStore keeps one session's roster in the roster_students table.
type RosterStore struct {
	conn      *Connection
	sessionID string

	// mu serialises appends so seq numbers stay dense within the session.
	mu sync.Mutex
}

var (
	_ roster.Repository = (*RosterStore)(nil)
	_ roster.Ranker     = (*RosterStore)(nil)
)

// NewRosterStore creates a store bound to sessionID. Run the migrator before
// the first Append.
func NewRosterStore(conn *Connection, sessionID string) *RosterStore {
	return &RosterStore{conn: conn, sessionID: sessionID}
}

const rosterColumns = `id::text, seq, name, math, science, english, social, arts, total, average, grade, created_at`

// Append inserts s with the next sequence number of the session.
func (r *RosterStore) Append(ctx context.Context, s *student.Student) error {
	if s == nil {
		return ErrNilStudent
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var seq int64
	err := r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(seq), 0) + 1 FROM roster_students WHERE session_id = $1`,
			r.sessionID,
		).Scan(&seq)
		if err != nil {
			return fmt.Errorf("next seq: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO roster_students (
				session_id, id, seq, name, math, science, english, social, arts,
				total, average, grade, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			insertArgs(r.sessionID, seq, s)...,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("postgres: append student %s: %w", s.ID, err)
	}

	s.Seq = seq
	return nil
}

// List returns the session's students in insertion order.
func (r *RosterStore) List(ctx context.Context) ([]*student.Student, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT `+rosterColumns+` FROM roster_students WHERE session_id = $1 ORDER BY seq`,
		r.sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: list students: %w", err)
	}
	return collectStudents(rows)
}

// Count returns the number of students in the session.
func (r *RosterStore) Count(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM roster_students WHERE session_id = $1`,
		r.sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("postgres: count students: %w", err)
	}
	return count, nil
}

// Top returns the n best averages, ties in insertion order.
func (r *RosterStore) Top(ctx context.Context, n int) ([]*student.Student, error) {
	if n <= 0 {
		return []*student.Student{}, nil
	}

	rows, err := r.conn.Query(ctx,
		`SELECT `+rosterColumns+` FROM roster_students
		 WHERE session_id = $1
		 ORDER BY average DESC, seq ASC
		 LIMIT $2`,
		r.sessionID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: top students: %w", err)
	}
	return collectStudents(rows)
}

// Close deletes the session's rows. The connection itself is owned by the
// caller.
func (r *RosterStore) Close(ctx context.Context) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM roster_students WHERE session_id = $1`, r.sessionID)
	if err != nil {
		return fmt.Errorf("postgres: purge session %s: %w", r.sessionID, err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// ROW MAPPING
// ─────────────────────────────────────────────────────────────────────────────

// studentRow mirrors one roster_students row.
type studentRow struct {
	ID        string
	Seq       int64
	Name      string
	Scores    [student.SubjectCount]float64
	Total     float64
	Average   float64
	Grade     string
	CreatedAt time.Time
}

func insertArgs(sessionID string, seq int64, s *student.Student) []any {
	return []any{
		sessionID, s.ID, seq, s.Name,
		s.Scores.Get(student.Math),
		s.Scores.Get(student.Science),
		s.Scores.Get(student.English),
		s.Scores.Get(student.Social),
		s.Scores.Get(student.Arts),
		s.Total, s.Average, s.Grade.String(), s.CreatedAt,
	}
}

func (row studentRow) toStudent() (*student.Student, error) {
	g := grade.Grade(row.Grade)
	if !g.IsValid() {
		return nil, fmt.Errorf("postgres: student %s has unknown grade %q", row.ID, row.Grade)
	}
	return &student.Student{
		ID:        row.ID,
		Seq:       row.Seq,
		Name:      row.Name,
		Scores:    student.Scores(row.Scores),
		Total:     row.Total,
		Average:   row.Average,
		Grade:     g,
		CreatedAt: row.CreatedAt,
	}, nil
}

func collectStudents(rows pgx.Rows) ([]*student.Student, error) {
	defer rows.Close()

	students := make([]*student.Student, 0)
	for rows.Next() {
		var row studentRow
		err := rows.Scan(
			&row.ID, &row.Seq, &row.Name,
			&row.Scores[student.Math],
			&row.Scores[student.Science],
			&row.Scores[student.English],
			&row.Scores[student.Social],
			&row.Scores[student.Arts],
			&row.Total, &row.Average, &row.Grade, &row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan student: %w", err)
		}

		s, err := row.toStudent()
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate students: %w", err)
	}
	return students, nil
}

package postgres

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
)

// Migration is one forward-only schema change.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE ROSTER STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

const migration001 = `
-- Session-scoped roster rows. seq is the 1-based insertion order
-- within a session.
CREATE TABLE IF NOT EXISTS roster_students (
    session_id UUID NOT NULL,
    seq BIGINT NOT NULL,
    id UUID NOT NULL,
    name TEXT NOT NULL,
    math DOUBLE PRECISION NOT NULL CHECK (math BETWEEN 0 AND 100),
    science DOUBLE PRECISION NOT NULL CHECK (science BETWEEN 0 AND 100),
    english DOUBLE PRECISION NOT NULL CHECK (english BETWEEN 0 AND 100),
    social DOUBLE PRECISION NOT NULL CHECK (social BETWEEN 0 AND 100),
    arts DOUBLE PRECISION NOT NULL CHECK (arts BETWEEN 0 AND 100),
    total DOUBLE PRECISION NOT NULL,
    average DOUBLE PRECISION NOT NULL,
    grade VARCHAR(2) NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    PRIMARY KEY (session_id, seq),
    UNIQUE (session_id, id)
);

CREATE INDEX IF NOT EXISTS idx_roster_students_ranking
    ON roster_students (session_id, average DESC, seq ASC);
`

// GetMigrations returns the schema history, oldest first.
func GetMigrations() []Migration {
	return []Migration{
		{Version: 1, Name: "create_roster_students", SQL: migration001},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATOR
// ══════════════════════════════════════════════════════════════════════════════

const (
	migrationsTable = "gradebook_schema_migrations"

	// migrationLockID serialises concurrent gradebook processes migrating the
	// same database.
	migrationLockID = 0x67726164
)

// Migrator brings the schema up to date.
type Migrator struct {
	conn       *Connection
	migrations []Migration
}

func NewMigrator(conn *Connection) *Migrator {
	return &Migrator{conn: conn, migrations: GetMigrations()}
}

// Migrate applies pending migrations in version order, each in its own
// transaction under an advisory lock.
func (m *Migrator) Migrate(ctx context.Context) error {
	_, err := m.conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+migrationsTable+` (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrMigrationFailed, migrationsTable, err)
	}

	for _, mig := range sortedByVersion(m.migrations) {
		err := m.conn.WithTx(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, migrationLockID); err != nil {
				return err
			}

			var applied bool
			err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM `+migrationsTable+` WHERE version = $1)`, mig.Version,
			).Scan(&applied)
			if err != nil || applied {
				return err
			}

			if _, err := tx.Exec(ctx, mig.SQL); err != nil {
				return err
			}
			_, err = tx.Exec(ctx,
				`INSERT INTO `+migrationsTable+` (version, name) VALUES ($1, $2)`, mig.Version, mig.Name)
			return err
		})
		if err != nil && !IsUniqueViolation(err) {
			return fmt.Errorf("%w: %03d_%s: %v", ErrMigrationFailed, mig.Version, mig.Name, err)
		}
	}
	return nil
}

func sortedByVersion(migrations []Migration) []Migration {
	sorted := slices.Clone(migrations)
	slices.SortFunc(sorted, func(a, b Migration) int { return a.Version - b.Version })
	return sorted
}

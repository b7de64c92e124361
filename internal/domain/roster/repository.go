// Package roster содержит доменную логику журнала: контракт хранилища
// сессии, статистику класса, ранжирование и поиск студентов.
package roster

import (
	"context"

	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository - упорядоченное хранилище студентов одной сессии.
// Студенты только добавляются: нет ни обновления, ни удаления.
type Repository interface {
	// Append добавляет студента в конец журнала и присваивает ему Seq.
	Append(ctx context.Context, s *student.Student) error

	// List возвращает всех студентов в порядке добавления.
	List(ctx context.Context) ([]*student.Student, error)

	// Count возвращает количество студентов.
	Count(ctx context.Context) (int, error)
}

// Ranker - необязательная возможность хранилища отдавать топ по среднему
// баллу. Порядок обязан совпадать с TopPerformers: по убыванию среднего,
// при равенстве - в порядке добавления.
type Ranker interface {
	Top(ctx context.Context, n int) ([]*student.Student, error)
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrStudentNotFound - студент с таким именем не найден.
	ErrStudentNotFound = shared.NewDomainError("roster", "Find", shared.ErrNotFound, "student not found")

	// ErrEmptyRoster - в журнале нет ни одного студента.
	ErrEmptyRoster = shared.NewDomainError("roster", "Read", shared.ErrNotFound, "no students found")
)

package roster

import (
	"sort"

	"github.com/alem-hub/gradebook/internal/domain/student"
)

// DefaultTopN - размер топа по умолчанию.
const DefaultTopN = 3

// TopPerformers возвращает первых n студентов по убыванию среднего балла.
// Сортировка стабильная: при равном среднем сохраняется порядок добавления.
// Входной срез не изменяется. При n больше размера журнала возвращаются все.
func TopPerformers(students []*student.Student, n int) []*student.Student {
	if n <= 0 || len(students) == 0 {
		return []*student.Student{}
	}

	sorted := make([]*student.Student, len(students))
	copy(sorted, students)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Average > sorted[j].Average
	})

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// FindByName ищет первого студента с совпадающим именем (без учёта регистра).
func FindByName(students []*student.Student, name string) (*student.Student, error) {
	for _, s := range students {
		if s.MatchesName(name) {
			return s, nil
		}
	}
	return nil, ErrStudentNotFound
}

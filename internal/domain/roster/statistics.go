package roster

import (
	"sort"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// GradeShare - доля одной буквенной оценки в классе.
type GradeShare struct {
	Grade      grade.Grade
	Count      int
	Percentage float64
}

// Statistics - сводка по классу.
type Statistics struct {
	// TotalStudents - количество студентов.
	TotalStudents int

	// ClassAverage - сумма всех Total / (студентов × 5), без округления.
	ClassAverage float64

	// ClassGrade - буквенная оценка для ClassAverage.
	ClassGrade grade.Grade

	// Distribution - только встречающиеся оценки, отсортированы по метке.
	Distribution []GradeShare
}

// ComputeStatistics считает статистику класса.
// Возвращает ErrEmptyRoster для пустого журнала.
func ComputeStatistics(students []*student.Student) (*Statistics, error) {
	if len(students) == 0 {
		return nil, ErrEmptyRoster
	}

	var classTotal float64
	counts := make(map[grade.Grade]int)
	for _, s := range students {
		classTotal += s.Total
		counts[s.Grade]++
	}

	n := len(students)
	classAverage := classTotal / float64(n*student.SubjectCount)

	distribution := make([]GradeShare, 0, len(counts))
	for g, c := range counts {
		distribution = append(distribution, GradeShare{
			Grade:      g,
			Count:      c,
			Percentage: float64(c) / float64(n) * 100,
		})
	}

	// Сортировка по строковой метке: "A" < "A+" < "B" < ... < "F".
	sort.Slice(distribution, func(i, j int) bool {
		return distribution[i].Grade < distribution[j].Grade
	})

	return &Statistics{
		TotalStudents: n,
		ClassAverage:  classAverage,
		ClassGrade:    grade.Classify(classAverage),
		Distribution:  distribution,
	}, nil
}

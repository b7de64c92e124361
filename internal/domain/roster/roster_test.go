package roster

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

func mustStudent(t *testing.T, name string, marks ...float64) *student.Student {
	t.Helper()
	s, err := student.NewStudent(student.NewStudentParams{
		ID:    fmt.Sprintf("id-%s", name),
		Name:  name,
		Marks: marks,
	})
	require.NoError(t, err)
	return s
}

func sampleClass(t *testing.T) []*student.Student {
	return []*student.Student{
		mustStudent(t, "Alice Johnson", 95.5, 89.0, 92.2, 88.0, 87.5),
		mustStudent(t, "Bob Smith", 76.2, 82.5, 74.8, 79.0, 81.3),
		mustStudent(t, "Carol Davis", 95.0, 93.7, 97.5, 94.2, 96.0),
		mustStudent(t, "David Wilson", 61.3, 64.6, 58.5, 65.0, 63.2),
	}
}

func names(students []*student.Student) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.Name)
	}
	return out
}

func TestComputeStatistics_SingleStudent(t *testing.T) {
	stats, err := ComputeStatistics([]*student.Student{
		mustStudent(t, "Alice", 95.5, 89.0, 92.2, 88.0, 87.5),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalStudents)
	assert.InDelta(t, 90.44, stats.ClassAverage, 1e-9)
	assert.Equal(t, grade.APlus, stats.ClassGrade)
	assert.Equal(t, []GradeShare{{Grade: grade.APlus, Count: 1, Percentage: 100}}, stats.Distribution)
}

func TestComputeStatistics_SampleClass(t *testing.T) {
	stats, err := ComputeStatistics(sampleClass(t))
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalStudents)
	// (452.2 + 393.8 + 476.4 + 312.6) / 20
	assert.InDelta(t, 81.75, stats.ClassAverage, 1e-9)
	assert.Equal(t, grade.A, stats.ClassGrade)

	require.Len(t, stats.Distribution, 3)
	assert.Equal(t, GradeShare{Grade: grade.APlus, Count: 2, Percentage: 50}, stats.Distribution[0])
	assert.Equal(t, GradeShare{Grade: grade.B, Count: 1, Percentage: 25}, stats.Distribution[1])
	assert.Equal(t, GradeShare{Grade: grade.C, Count: 1, Percentage: 25}, stats.Distribution[2])
}

func TestComputeStatistics_SortedByLabel(t *testing.T) {
	stats, err := ComputeStatistics([]*student.Student{
		mustStudent(t, "f", 10, 10, 10, 10, 10),
		mustStudent(t, "a", 85, 85, 85, 85, 85),
		mustStudent(t, "aplus", 95, 95, 95, 95, 95),
		mustStudent(t, "a2", 81, 81, 81, 81, 81),
	})
	require.NoError(t, err)

	require.Len(t, stats.Distribution, 3)
	assert.Equal(t, grade.A, stats.Distribution[0].Grade)
	assert.Equal(t, 2, stats.Distribution[0].Count)
	assert.InDelta(t, 50.0, stats.Distribution[0].Percentage, 1e-9)
	assert.Equal(t, grade.APlus, stats.Distribution[1].Grade)
	assert.Equal(t, grade.F, stats.Distribution[2].Grade)
}

func TestComputeStatistics_Empty(t *testing.T) {
	_, err := ComputeStatistics(nil)
	assert.True(t, errors.Is(err, ErrEmptyRoster))
	assert.True(t, shared.IsNotFound(err))
}

func TestTopPerformers(t *testing.T) {
	class := sampleClass(t)

	top := TopPerformers(class, 3)
	assert.Equal(t, []string{"Carol Davis", "Alice Johnson", "Bob Smith"}, names(top))

	all := TopPerformers(class, 10)
	assert.Equal(t, []string{"Carol Davis", "Alice Johnson", "Bob Smith", "David Wilson"}, names(all))

	assert.Empty(t, TopPerformers(class, 0))
	assert.Empty(t, TopPerformers(nil, 3))

	// input order is untouched
	assert.Equal(t, "Alice Johnson", class[0].Name)
}

func TestTopPerformers_StableOnTies(t *testing.T) {
	class := []*student.Student{
		mustStudent(t, "first", 70, 70, 70, 70, 70),
		mustStudent(t, "best", 99, 99, 99, 99, 99),
		mustStudent(t, "second", 70, 70, 70, 70, 70),
		mustStudent(t, "third", 70, 70, 70, 70, 70),
	}

	top := TopPerformers(class, 4)
	assert.Equal(t, []string{"best", "first", "second", "third"}, names(top))
}

func TestFindByName(t *testing.T) {
	class := sampleClass(t)
	class = append(class, mustStudent(t, "alice johnson", 10, 10, 10, 10, 10))

	s, err := FindByName(class, "ALICE johnson")
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", s.Name)
	assert.Equal(t, 90.44, s.Average)

	_, err = FindByName(class, "Alice")
	assert.True(t, errors.Is(err, ErrStudentNotFound))
}

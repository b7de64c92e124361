package student

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/shared"
)

func TestNewStudent_ComputesDerivedFields(t *testing.T) {
	s, err := NewStudent(NewStudentParams{
		ID:    "id-1",
		Name:  "  Alice  ",
		Marks: []float64{95.5, 89.0, 92.2, 88.0, 87.5},
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", s.Name)
	assert.InDelta(t, 452.2, s.Total, 1e-9)
	assert.Equal(t, 90.44, s.Average)
	assert.Equal(t, grade.APlus, s.Grade)
	assert.Equal(t, 95.5, s.Scores.Get(Math))
	assert.Equal(t, 87.5, s.Scores.Get(Arts))
	assert.False(t, s.CreatedAt.IsZero())
}

func TestNewStudent_AverageRounding(t *testing.T) {
	s, err := NewStudent(NewStudentParams{
		ID:    "id-2",
		Name:  "Bob",
		Marks: []float64{76.2, 82.5, 74.8, 79.0, 81.3},
	})
	require.NoError(t, err)

	assert.Equal(t, RoundAverage(s.Total/5), s.Average)
	assert.Equal(t, 78.76, s.Average)
	assert.Equal(t, grade.B, s.Grade)
}

func TestNewStudent_ScoreCount(t *testing.T) {
	for _, marks := range [][]float64{
		nil,
		{90, 90, 90, 90},
		{90, 90, 90, 90, 90, 90},
	} {
		_, err := NewStudent(NewStudentParams{ID: "x", Name: "Carol", Marks: marks})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidScoreCount))
		assert.True(t, shared.IsValidation(err))
	}
}

func TestNewStudent_ScoreRange(t *testing.T) {
	tests := []struct {
		name  string
		marks []float64
		ok    bool
	}{
		{"lower bound", []float64{0, 0, 0, 0, 0}, true},
		{"upper bound", []float64{100, 100, 100, 100, 100}, true},
		{"negative", []float64{-0.1, 50, 50, 50, 50}, false},
		{"above max", []float64{50, 50, 50, 50, 100.01}, false},
		{"nan", []float64{50, math.NaN(), 50, 50, 50}, false},
		{"inf", []float64{50, 50, math.Inf(1), 50, 50}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStudent(NewStudentParams{ID: "x", Name: "Dave", Marks: tt.marks})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrScoreOutOfRange))
			assert.True(t, shared.IsValidation(err))
		})
	}
}

func TestNewStudent_RequiresNameAndID(t *testing.T) {
	marks := []float64{50, 50, 50, 50, 50}

	_, err := NewStudent(NewStudentParams{ID: "x", Name: "   ", Marks: marks})
	assert.True(t, errors.Is(err, ErrEmptyName))

	_, err = NewStudent(NewStudentParams{Name: "Eve", Marks: marks})
	assert.True(t, errors.Is(err, ErrMissingID))
}

func TestSubjects(t *testing.T) {
	names := make([]string, 0, SubjectCount)
	for _, s := range Subjects() {
		names = append(names, s.DisplayName())
	}
	assert.Equal(t, []string{"Mathematics", "Science", "English", "Social Studies", "Arts"}, names)
	assert.Equal(t, "Social", Social.String())
}

func TestStudent_MatchesName(t *testing.T) {
	s := &Student{Name: "Alice Johnson"}
	assert.True(t, s.MatchesName("alice johnson"))
	assert.True(t, s.MatchesName("ALICE JOHNSON "))
	assert.False(t, s.MatchesName("alice"))
}

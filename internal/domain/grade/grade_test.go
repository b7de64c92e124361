package grade

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		average float64
		want    Grade
	}{
		{100, APlus},
		{90, APlus},
		{89.99, A},
		{80, A},
		{79.99, B},
		{70, B},
		{69.99, C},
		{60, C},
		{59.99, D},
		{50, D},
		{49.99, F},
		{0, F},
		{-5, F},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.average), "average %v", tt.average)
	}
}

func TestClassify_AlwaysKnownGrade(t *testing.T) {
	for avg := -10.0; avg <= 110; avg += 0.25 {
		assert.True(t, Classify(avg).IsValid(), "average %v", avg)
	}
	assert.Equal(t, F, Classify(math.NaN()))
}

func TestAll(t *testing.T) {
	all := All()
	assert.Equal(t, []Grade{APlus, A, B, C, D, F}, all)
	for _, g := range all {
		assert.True(t, g.IsValid())
	}
	assert.False(t, Grade("E").IsValid())
}

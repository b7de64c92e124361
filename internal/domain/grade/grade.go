// Package grade classifies numeric averages into letter grades.
// Pure domain code with no external dependencies.
package grade

// Grade is a letter classification of an average score.
type Grade string

const (
	APlus Grade = "A+"
	A     Grade = "A"
	B     Grade = "B"
	C     Grade = "C"
	D     Grade = "D"
	F     Grade = "F"
)

// threshold pairs a minimum average (inclusive) with the grade it earns.
type threshold struct {
	min   float64
	grade Grade
}

// thresholds are ordered from the highest minimum down.
var thresholds = []threshold{
	{min: 90, grade: APlus},
	{min: 80, grade: A},
	{min: 70, grade: B},
	{min: 60, grade: C},
	{min: 50, grade: D},
}

// Classify returns the letter grade for the given average.
// Boundaries are inclusive: 90 is A+, 89.99 is A. Anything below 50,
// including NaN, is F.
func Classify(average float64) Grade {
	for _, t := range thresholds {
		if average >= t.min {
			return t.grade
		}
	}
	return F
}

// All returns every grade from best to worst.
func All() []Grade {
	return []Grade{APlus, A, B, C, D, F}
}

// IsValid reports whether g is one of the known grades.
func (g Grade) IsValid() bool {
	switch g {
	case APlus, A, B, C, D, F:
		return true
	default:
		return false
	}
}

// String returns the grade label.
func (g Grade) String() string {
	return string(g)
}

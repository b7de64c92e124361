package student

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alem-hub/gradebook/internal/domain/grade"
	"github.com/alem-hub/gradebook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Subject - один из пяти фиксированных предметов.
type Subject int

const (
	Math Subject = iota
	Science
	English
	Social
	Arts
)

// SubjectCount - количество оценок у каждого студента.
const SubjectCount = 5

const (
	// MinScore - минимальная допустимая оценка (включительно).
	MinScore = 0.0
	// MaxScore - максимальная допустимая оценка (включительно).
	MaxScore = 100.0
)

// Subjects возвращает предметы в порядке ввода оценок.
func Subjects() []Subject {
	return []Subject{Math, Science, English, Social, Arts}
}

// String возвращает короткое название для колонок таблицы.
func (s Subject) String() string {
	switch s {
	case Math:
		return "Math"
	case Science:
		return "Science"
	case English:
		return "English"
	case Social:
		return "Social"
	case Arts:
		return "Arts"
	default:
		return fmt.Sprintf("Subject(%d)", int(s))
	}
}

// DisplayName возвращает полное название предмета.
func (s Subject) DisplayName() string {
	switch s {
	case Math:
		return "Mathematics"
	case Social:
		return "Social Studies"
	default:
		return s.String()
	}
}

// Scores - оценки по предметам, индексируются Subject.
type Scores [SubjectCount]float64

// Get возвращает оценку по предмету.
func (s Scores) Get(subject Subject) float64 {
	return s[subject]
}

// Total возвращает сумму всех оценок.
func (s Scores) Total() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// Slice возвращает оценки в порядке Subjects().
func (s Scores) Slice() []float64 {
	out := make([]float64, SubjectCount)
	copy(out, s[:])
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student - запись журнала: имя, пять оценок и производные показатели.
type Student struct {
	// ID - уникальный идентификатор (UUID). Имена не уникальны.
	ID string

	// Seq - порядковый номер добавления (с 1), присваивается хранилищем.
	Seq int64

	// Name - имя студента.
	Name string

	// Scores - оценки по пяти предметам.
	Scores Scores

	// Total - сумма оценок.
	Total float64

	// Average - средний балл, округлённый до 2 знаков.
	Average float64

	// Grade - буквенная оценка по среднему баллу.
	Grade grade.Grade

	// CreatedAt - время добавления.
	CreatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrEmptyName - пустое имя.
	ErrEmptyName = errors.New("student name cannot be empty")

	// ErrInvalidScoreCount - количество оценок не равно пяти.
	ErrInvalidScoreCount = errors.New("marks are required for all 5 subjects")

	// ErrScoreOutOfRange - оценка вне диапазона [0, 100].
	ErrScoreOutOfRange = errors.New("marks must be between 0 and 100")

	// ErrMissingID - не передан идентификатор.
	ErrMissingID = errors.New("student id is required")
)

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// NewStudentParams содержит параметры для создания студента.
type NewStudentParams struct {
	ID    string
	Name  string
	Marks []float64
}

// NewStudent создаёт студента, проверяя имя, количество и диапазон оценок.
// Ошибки имеют вид *shared.DomainError с Kind = shared.ErrValidation.
func NewStudent(params NewStudentParams) (*Student, error) {
	if params.ID == "" {
		return nil, shared.WrapError("student", "Create", shared.ErrInvalidID, "invalid student", ErrMissingID)
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, shared.WrapError("student", "Create", shared.ErrValidation, "invalid name", ErrEmptyName)
	}

	scores, err := ValidateMarks(params.Marks)
	if err != nil {
		return nil, err
	}

	total := scores.Total()
	average := RoundAverage(total / SubjectCount)

	return &Student{
		ID:        params.ID,
		Name:      name,
		Scores:    scores,
		Total:     total,
		Average:   average,
		Grade:     grade.Classify(average),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ValidateMarks проверяет, что оценок ровно пять и каждая в [0, 100].
func ValidateMarks(marks []float64) (Scores, error) {
	var scores Scores

	if len(marks) != SubjectCount {
		return scores, shared.WrapError("student", "Create", shared.ErrValidation,
			fmt.Sprintf("got %d marks", len(marks)), ErrInvalidScoreCount)
	}

	for i, m := range marks {
		// NaN не проходит ни одно сравнение.
		if !(m >= MinScore && m <= MaxScore) {
			return scores, shared.WrapError("student", "Create", shared.ErrValueOutOfRange,
				fmt.Sprintf("%s mark %v", Subject(i).DisplayName(), m), ErrScoreOutOfRange)
		}
		scores[i] = m
	}

	return scores, nil
}

// RoundAverage округляет до 2 знаков после запятой.
func RoundAverage(v float64) float64 {
	return math.Round(v*100) / 100
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// MatchesName проверяет совпадение имени без учёта регистра.
func (s *Student) MatchesName(name string) bool {
	return strings.EqualFold(s.Name, strings.TrimSpace(name))
}

// String возвращает строковое представление студента для логирования.
func (s *Student) String() string {
	return fmt.Sprintf(
		"Student{ID: %s, Name: %s, Average: %.2f, Grade: %s}",
		s.ID, s.Name, s.Average, s.Grade,
	)
}

// Clone создаёт копию студента.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}

	clone := *s
	return &clone
}

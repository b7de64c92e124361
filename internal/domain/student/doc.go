// Package student содержит доменную модель студента журнала оценок.
//
// Пакет определяет:
//
//   - Сущность Student с пятью оценками по предметам
//   - Value Objects: Subject, Scores
//   - Фабрику NewStudent с валидацией количества и диапазона оценок
//
// # Инварианты
//
// Сумма, средний балл и буквенная оценка вычисляются один раз при создании
// и больше никогда не меняются. Студент не обновляется и не удаляется.
//
//	s, err := NewStudent(NewStudentParams{
//	    ID:    uuid.New().String(),
//	    Name:  "Alice Johnson",
//	    Marks: []float64{95.5, 89.0, 92.2, 88.0, 87.5},
//	})
//	// s.Total == 452.2, s.Average == 90.44, s.Grade == grade.APlus
package student

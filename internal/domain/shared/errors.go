// Package shared содержит общие для доменных пакетов виды ошибок и тип
// DomainError. Пакет не зависит ни от чего, кроме стандартной библиотеки.
package shared

import (
	"errors"
	"fmt"
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// ВИДЫ ОШИБОК
// Уточняющие виды оборачивают базовый, поэтому errors.Is(ErrInvalidID,
// ErrValidation) истинно.
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrNotFound - студента или данных для отчёта нет.
	ErrNotFound = errors.New("not found")

	// ErrValidation - ввод пользователя отклонён.
	ErrValidation = errors.New("validation error")

	ErrInvalidID       = fmt.Errorf("%w: invalid id", ErrValidation)
	ErrValueOutOfRange = fmt.Errorf("%w: value out of range", ErrValidation)
)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERROR
// ══════════════════════════════════════════════════════════════════════════════

// DomainError - ошибка доменной операции с контекстом.
// Текст имеет вид "student.Create: invalid name: <причина>".
type DomainError struct {
	Domain  string // "student", "roster"
	Op      string // "Create", "Find"
	Kind    error  // вид для errors.Is
	Message string
	Err     error // причина, может быть nil
}

func (e *DomainError) Error() string {
	var b strings.Builder
	b.WriteString(e.Domain)
	b.WriteByte('.')
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap отдаёт причину, а без неё - вид ошибки.
func (e *DomainError) Unwrap() error {
	if e.Err == nil {
		return e.Kind
	}
	return e.Err
}

// Is сопоставляет target и с видом, и с причиной.
func (e *DomainError) Is(target error) bool {
	return (e.Kind != nil && errors.Is(e.Kind, target)) ||
		(e.Err != nil && errors.Is(e.Err, target))
}

// NewDomainError создаёт ошибку без причины.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return WrapError(domain, op, kind, message, nil)
}

// WrapError создаёт ошибку с причиной err.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{Domain: domain, Op: op, Kind: kind, Message: message, Err: err}
}

// IsNotFound - искомого нет.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation - ввод отклонён, включая уточняющие виды.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

package models

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Классы ошибок схемы. Проверяются через errors.Is.
var (
	ErrConstraintViolation  = errors.New("constraint violation")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrInvalidEnumValue     = errors.New("invalid enum value")
	ErrNotFound             = errors.New("record not found")
)

// ValidationError - отказ записи до обращения к базе
type ValidationError struct {
	Entity string
	Field  string
	Reason string
	Kind   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func required(entity, field string) error {
	return &ValidationError{Entity: entity, Field: field, Reason: "is required", Kind: ErrConstraintViolation}
}

func invalid(entity, field, reason string) error {
	return &ValidationError{Entity: entity, Field: field, Reason: reason, Kind: ErrConstraintViolation}
}

// tooLong проверяет длину строки в символах, как ее считает varchar(n)
func tooLong(entity, field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return invalid(entity, field, fmt.Sprintf("longer than %d characters", limit))
	}
	return nil
}

package db

import (
	"errors"
	"fmt"
	"strings"

	"shop_backend/models"

	"gorm.io/gorm"
)

// translate приводит ошибки драйвера к классам ошибок схемы.
// Ошибки, уже отнесенные к классу (например, из хуков валидации), проходят как есть.
func translate(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		models.ErrConstraintViolation,
		models.ErrReferentialIntegrity,
		models.ErrInvalidEnumValue,
		models.ErrNotFound,
	} {
		if errors.Is(err, known) {
			return err
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", models.ErrConstraintViolation, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", models.ErrReferentialIntegrity, err)
	}

	// драйверы без трансляции, а также CHECK-ограничения
	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "violates foreign key constraint"),
		strings.Contains(msg, "a foreign key constraint fails"):
		return fmt.Errorf("%w: %v", models.ErrReferentialIntegrity, err)
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "violates check constraint"),
		strings.Contains(msg, "Check constraint"),
		strings.Contains(msg, "NOT NULL constraint failed"),
		strings.Contains(msg, "value too long for type"),
		strings.Contains(msg, "Data too long for column"):
		return fmt.Errorf("%w: %v", models.ErrConstraintViolation, err)
	}
	return err
}

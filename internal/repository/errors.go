package repository

import (
	"errors"
	"fmt"
	"strings"

	"whiskerwatch/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// translateError maps store errors onto domain error kinds. Unknown errors
// pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return domain.ErrTimeSlotTaken
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, domain.ErrConflict)
		}
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("referenced row missing or still in use: %w", domain.ErrConflict)
	}
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrConflict)
	}
	return err
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

// updateRow writes every column of value onto the existing row id. It never
// inserts; a missing row is ErrNotFound.
func updateRow(db *gorm.DB, model, value any, id int64) error {
	res := db.Model(model).
		Where("id = ?", id).
		Omit(clause.Associations).
		Select("*").
		Updates(value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

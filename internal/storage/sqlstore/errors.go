package sqlstore

import (
	"errors"
	"fmt"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"hotel_api/internal/domain"
)

// classify maps storage errors onto domain errors. Anything it does not
// recognise is returned untouched.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case isConstraintViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case isOutOfRange(err):
		return fmt.Errorf("%w: value does not fit its column", domain.ErrValidation)
	default:
		return err
	}
}

func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var merr *mysqldrv.MySQLError
	if errors.As(err, &merr) {
		switch merr.Number {
		case 1062, 1451, 1452:
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{
		"unique constraint failed",
		"foreign key constraint failed",
		"duplicate entry",
		"sqlstate 23505",
		"sqlstate 23503",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// isOutOfRange reports values the column type rejects (MySQL strict mode
// 1264/1406, Postgres 22003/22001).
func isOutOfRange(err error) bool {
	var merr *mysqldrv.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1264 || merr.Number == 1406
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sqlstate 22003") || strings.Contains(msg, "sqlstate 22001")
}

func wrap(op string, err error) error {
	c := classify(err)
	if errors.Is(c, domain.ErrNotFound) {
		return c
	}
	return fmt.Errorf("%s: %w", op, c)
}

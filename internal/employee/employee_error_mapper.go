package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/GeraldFishta/Bluespice-2.0/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueConstraintSentinels maps the roster's unique indexes to their
// conflict sentinels: one employee number and one email per company.
var uniqueConstraintSentinels = map[string]error{
	"uq_employee_number": employeeerrors.ErrEmployeeNumberAlreadyExists,
	"uq_employee_email":  employeeerrors.ErrEmployeeAlreadyExists,
}

// mapRepositoryError translates persistence failures into roster sentinels.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if sentinel, ok := uniqueConstraintSentinels[pgErr.ConstraintName]; ok {
			return sentinel
		}
	}

	// Gorm kadang hanya meneruskan pesan driver sebagai string.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") {
		for constraint, sentinel := range uniqueConstraintSentinels {
			if strings.Contains(msg, constraint) {
				return sentinel
			}
		}
	}

	return err
}

package payroll

import (
	"errors"
	"strings"

	payrollerrors "github.com/GeraldFishta/Bluespice-2.0/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapPeriodRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPeriodNotFound
	}
	return err
}

func mapRecordRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrRecordNotFound
	}
	if isDuplicateRecordViolation(err) {
		return payrollerrors.ErrRecordExists
	}
	return err
}

// isDuplicateRecordViolation detects the (employee_id, payroll_period_id)
// unique index rejecting an insert. The index is the race backstop: two
// concurrent writers both pass the pre-insert existence check, the second
// insert lands here.
func isDuplicateRecordViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_record_employee_period"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_record_employee_period")
}

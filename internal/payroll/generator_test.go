package payroll_test

import (
	"context"
	"errors"
	"testing"

	"github.com/GeraldFishta/Bluespice-2.0/internal/payroll"
	payrollerrors "github.com/GeraldFishta/Bluespice-2.0/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestRecordService_Generate(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	periodID := uuid.New().String()

	hourlyRate := int64(25000)
	emplWithRecord := uuid.New()
	emplMissingA := uuid.New()
	emplMissingB := uuid.New()

	deps := setupRecordServiceTest(t)
	defer deps.db.Close()

	deps.repo.findEligibleEmployeesFn = func(ctx context.Context, companyID string) ([]payroll.EligibleEmployee, error) {
		return []payroll.EligibleEmployee{
			{ID: emplWithRecord, Salary: 8000000},
			{ID: emplMissingA, Salary: 10000000, HourlyRate: &hourlyRate},
			{ID: emplMissingB, Salary: 12000000},
		}, nil
	}
	deps.repo.listEmployeeIDsForPeriodFn = func(ctx context.Context, companyID, periodID string) ([]string, error) {
		return []string{emplWithRecord.String()}, nil
	}

	// Two missing employees, one tx each.
	expectTx(t, deps.sqlMock, true)
	expectTx(t, deps.sqlMock, true)

	var created []payroll.PayrollRecord
	deps.repo.createFn = func(ctx context.Context, record *payroll.PayrollRecord) error {
		created = append(created, *record)
		return nil
	}

	result, err := deps.service.Generate(ctx, companyID, actorID, periodID)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Failed)

	if assert.Len(t, created, 2) {
		assert.Equal(t, payroll.RecordStatusPending, created[0].Status)
		assert.Equal(t, int64(10000000), created[0].BaseSalary)
		assert.Equal(t, hourlyRate, created[0].OvertimeRate)
		// No overtime, bonuses or deductions at seed time.
		assert.Equal(t, created[0].BaseSalary, created[0].NetPay)
		assert.Equal(t, int64(0), created[1].OvertimeRate)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRecordService_Generate_FullyCoveredIsNoop(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	periodID := uuid.New().String()

	emplA := uuid.New()
	emplB := uuid.New()

	deps := setupRecordServiceTest(t)
	defer deps.db.Close()

	deps.repo.findEligibleEmployeesFn = func(ctx context.Context, companyID string) ([]payroll.EligibleEmployee, error) {
		return []payroll.EligibleEmployee{
			{ID: emplA, Salary: 8000000},
			{ID: emplB, Salary: 9000000},
		}, nil
	}
	deps.repo.listEmployeeIDsForPeriodFn = func(ctx context.Context, companyID, periodID string) ([]string, error) {
		return []string{emplA.String(), emplB.String()}, nil
	}
	deps.repo.createFn = func(ctx context.Context, record *payroll.PayrollRecord) error {
		t.Fatal("no record should be inserted")
		return nil
	}

	result, err := deps.service.Generate(ctx, companyID, actorID, periodID)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Requested)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 2, result.Skipped)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRecordService_Generate_PaidPeriodLocked(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	periodID := uuid.New().String()

	deps := setupRecordServiceTest(t)
	defer deps.db.Close()

	deps.periods.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
		return &payroll.PayrollPeriod{ID: uuid.MustParse(id), CompanyID: uuid.MustParse(companyID), Status: payroll.PeriodStatusPaid}, nil
	}

	_, err := deps.service.Generate(ctx, companyID, actorID, periodID)

	assert.ErrorIs(t, err, payrollerrors.ErrPeriodLocked)
}

func TestRecordService_Generate_PartialFailure(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	periodID := uuid.New().String()

	emplOK := uuid.New()
	emplRaced := uuid.New()
	emplBroken := uuid.New()

	deps := setupRecordServiceTest(t)
	defer deps.db.Close()

	deps.repo.findEligibleEmployeesFn = func(ctx context.Context, companyID string) ([]payroll.EligibleEmployee, error) {
		return []payroll.EligibleEmployee{
			{ID: emplOK, Salary: 8000000},
			{ID: emplRaced, Salary: 9000000},
			{ID: emplBroken, Salary: 10000000},
		}, nil
	}

	// ok commits, raced duplicate rolls back, broken insert rolls back.
	expectTx(t, deps.sqlMock, true)
	expectTx(t, deps.sqlMock, false)
	expectTx(t, deps.sqlMock, false)

	deps.repo.createFn = func(ctx context.Context, record *payroll.PayrollRecord) error {
		switch record.EmployeeID {
		case emplRaced:
			// Concurrent writer won the unique index.
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_record_employee_period"}
		case emplBroken:
			return errors.New("db error")
		default:
			return nil
		}
	}

	result, err := deps.service.Generate(ctx, companyID, actorID, periodID)

	assert.ErrorIs(t, err, payrollerrors.ErrGenerationPartialFailure)
	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
	if assert.Len(t, result.Failed, 1) {
		assert.Equal(t, emplBroken.String(), result.Failed[0].EmployeeID)
		assert.Equal(t, "internal error", result.Failed[0].Reason)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

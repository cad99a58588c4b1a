package payroll

import (
	"context"
	"database/sql"

	"github.com/GeraldFishta/Bluespice-2.0/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EligibleEmployee is the slice of the roster the generator needs: contract
// salary and optional hourly rate, both in cents.
type EligibleEmployee struct {
	ID         uuid.UUID
	Salary     int64
	HourlyRate *int64
}

// PeriodAggregate carries the sums the summary endpoint serves.
type PeriodAggregate struct {
	RecordCount   int64
	PendingCount  int64
	ApprovedCount int64
	PaidCount     int64
	TotalGross    int64
	TotalNet      int64
	TotalOvertime int64
}

//go:generate mockgen -source=record_repo.go -destination=mock/record_repo_mock.go -package=mock
type RecordRepository interface {
	WithTx(tx *sql.Tx) RecordRepository
	Create(ctx context.Context, record *PayrollRecord) error
	FindAllByCompany(ctx context.Context, companyID string, filter RecordQueryFilter) ([]PayrollRecord, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollRecord, error)
	Update(ctx context.Context, record *PayrollRecord) error
	Delete(ctx context.Context, companyID string, id string) error
	ExistsForEmployeeAndPeriod(ctx context.Context, companyID, employeeID, periodID string) (bool, error)
	ListEmployeeIDsForPeriod(ctx context.Context, companyID, periodID string) ([]string, error)
	FindEligibleEmployees(ctx context.Context, companyID string) ([]EligibleEmployee, error)
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
	SummarizeByPeriod(ctx context.Context, companyID, periodID string) (PeriodAggregate, error)
}

type recordRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) WithTx(tx *sql.Tx) RecordRepository {
	return &recordRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *recordRepository) Create(ctx context.Context, record *PayrollRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *recordRepository) FindAllByCompany(ctx context.Context, companyID string, filter RecordQueryFilter) ([]PayrollRecord, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID))

	if filter.PeriodID != nil {
		db = db.Where("payroll_period_id = ?", *filter.PeriodID)
	}
	if filter.EmployeeID != nil {
		db = db.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}

	var records []PayrollRecord
	err := db.Order("created_at ASC").Find(&records).Error
	return records, err
}

func (r *recordRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollRecord, error) {
	var record PayrollRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&record, "id = ?", id).Error
	return &record, err
}

func (r *recordRepository) Update(ctx context.Context, record *PayrollRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *recordRepository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&PayrollRecord{}, "id = ?", id).Error
}

func (r *recordRepository) ExistsForEmployeeAndPeriod(ctx context.Context, companyID, employeeID, periodID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("payroll_period_id = ?", periodID).
		Count(&count).Error
	return count > 0, err
}

func (r *recordRepository) ListEmployeeIDsForPeriod(ctx context.Context, companyID, periodID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_period_id = ?", periodID).
		Pluck("employee_id", &ids).Error
	return ids, err
}

func (r *recordRepository) FindEligibleEmployees(ctx context.Context, companyID string) ([]EligibleEmployee, error) {
	var employees []EligibleEmployee
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id, salary, hourly_rate").
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", "active").
		Where("role = ?", "employee").
		Where("deleted_at IS NULL").
		Scan(&employees).Error
	return employees, err
}

func (r *recordRepository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *recordRepository) SummarizeByPeriod(ctx context.Context, companyID, periodID string) (PeriodAggregate, error) {
	var agg PeriodAggregate
	err := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Select(`
			COUNT(*) AS record_count,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending_count,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved_count,
			COUNT(*) FILTER (WHERE status = 'paid') AS paid_count,
			COALESCE(SUM(base_salary + overtime_amount + bonuses), 0) AS total_gross,
			COALESCE(SUM(net_pay), 0) AS total_net,
			COALESCE(SUM(overtime_amount), 0) AS total_overtime
		`).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_period_id = ?", periodID).
		Scan(&agg).Error
	return agg, err
}

package payroll

import (
	"context"
	"database/sql"

	"github.com/GeraldFishta/Bluespice-2.0/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=period_repo.go -destination=mock/period_repo_mock.go -package=mock
type PeriodRepository interface {
	WithTx(tx *sql.Tx) PeriodRepository
	Create(ctx context.Context, period *PayrollPeriod) error
	FindAllByCompany(ctx context.Context, companyID string) ([]PayrollPeriod, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollPeriod, error)
	Update(ctx context.Context, period *PayrollPeriod) error
	Delete(ctx context.Context, companyID string, id string) error
	CountRecords(ctx context.Context, companyID string, periodID string) (int64, error)
	DeleteRecords(ctx context.Context, companyID string, periodID string) error
}

type periodRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewPeriodRepository(db *gorm.DB) PeriodRepository {
	return &periodRepository{db: db}
}

func (r *periodRepository) WithTx(tx *sql.Tx) PeriodRepository {
	return &periodRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *periodRepository) Create(ctx context.Context, period *PayrollPeriod) error {
	return r.db.WithContext(ctx).Create(period).Error
}

func (r *periodRepository) FindAllByCompany(ctx context.Context, companyID string) ([]PayrollPeriod, error) {
	var periods []PayrollPeriod
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("start_date DESC").
		Find(&periods).Error
	return periods, err
}

func (r *periodRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollPeriod, error) {
	var period PayrollPeriod
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&period, "id = ?", id).Error
	return &period, err
}

func (r *periodRepository) Update(ctx context.Context, period *PayrollPeriod) error {
	return r.db.WithContext(ctx).Save(period).Error
}

func (r *periodRepository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&PayrollPeriod{}, "id = ?", id).Error
}

func (r *periodRepository) CountRecords(ctx context.Context, companyID string, periodID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_period_id = ?", periodID).
		Count(&count).Error
	return count, err
}

func (r *periodRepository) DeleteRecords(ctx context.Context, companyID string, periodID string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&PayrollRecord{}, "payroll_period_id = ?", periodID).Error
}

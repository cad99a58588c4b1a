package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PeriodStatusDraft      = "draft"
	PeriodStatusProcessing = "processing"
	PeriodStatusApproved   = "approved"
	PeriodStatusPaid       = "paid"
)

const (
	RecordStatusPending  = "pending"
	RecordStatusApproved = "approved"
	RecordStatusPaid     = "paid"
)

const (
	FrequencyWeekly    = "weekly"
	FrequencyBiWeekly  = "bi-weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
)

func isValidFrequency(f string) bool {
	switch f {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly, FrequencyQuarterly:
		return true
	}
	return false
}

// MaxOvertimeHours caps overtime per record per period.
const MaxOvertimeHours = 100

type PayrollPeriod struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_period_company_status"`
	Name      string    `gorm:"type:varchar(100);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Frequency string    `gorm:"type:varchar(20);not null;default:'monthly'"`
	Status    string    `gorm:"type:varchar(20);not null;default:'draft';index:idx_period_company_status"`

	// Agregat dalam sen; diisi dari summary, selalu >= 0.
	TotalGross int64 `gorm:"type:bigint;not null;default:0"`
	TotalNet   int64 `gorm:"type:bigint;not null;default:0"`

	Description string `gorm:"type:text"`

	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt *time.Time `gorm:"index"`
	ApprovedAt  *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type PayrollRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index:idx_record_company_status"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;not null;index:uq_record_employee_period,unique"`
	PayrollPeriodID uuid.UUID `gorm:"type:uuid;not null;index:uq_record_employee_period,unique"`

	// Financials disimpan dalam satuan terkecil (sen) untuk hindari floating error.
	BaseSalary     int64 `gorm:"type:bigint;not null;default:0"`
	OvertimeHours  int64 `gorm:"type:bigint;not null;default:0"`
	OvertimeRate   int64 `gorm:"type:bigint;not null;default:0"`
	OvertimeAmount int64 `gorm:"type:bigint;not null;default:0"`
	Bonuses        int64 `gorm:"type:bigint;not null;default:0"`
	Deductions     int64 `gorm:"type:bigint;not null;default:0"`
	NetPay         int64 `gorm:"type:bigint;not null;default:0"`

	Status string `gorm:"type:varchar(20);not null;default:'pending';index:idx_record_company_status"`

	PaidAt *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Recompute refreshes the derived fields from the primitive ones. Every
// mutation path must call it before persisting so the stored
// overtime_amount and net_pay never drift from their inputs.
func (r *PayrollRecord) Recompute() {
	r.OvertimeAmount = OvertimeAmount(r.OvertimeHours, r.OvertimeRate)
	gross := GrossPay(r.BaseSalary, r.OvertimeAmount, r.Bonuses)
	r.NetPay = NetPay(gross, r.Deductions)
}

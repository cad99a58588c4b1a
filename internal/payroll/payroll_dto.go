package payroll

type CreatePeriodRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Frequency   string `json:"frequency" binding:"required,oneof=weekly bi-weekly monthly quarterly"`
	Description string `json:"description" binding:"max=500"`
}

// UpdatePeriodRequest is a partial update; nil fields keep the current
// value. Status may only move between draft/processing/paid here; the
// approved status requires the dedicated Approve operation.
type UpdatePeriodRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Frequency   *string `json:"frequency" binding:"omitempty,oneof=weekly bi-weekly monthly quarterly"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Status      *string `json:"status" binding:"omitempty,oneof=draft processing paid"`
}

type PeriodResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	Name        string  `json:"name"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Frequency   string  `json:"frequency"`
	Status      string  `json:"status"`
	TotalGross  int64   `json:"total_gross"`
	TotalNet    int64   `json:"total_net"`
	Description string  `json:"description,omitempty"`
	CreatedBy   string  `json:"created_by"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	ProcessedAt *string `json:"processed_at,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
}

type PeriodSummaryResponse struct {
	PeriodID       string `json:"period_id"`
	RecordCount    int64  `json:"record_count"`
	PendingCount   int64  `json:"pending_count"`
	ApprovedCount  int64  `json:"approved_count"`
	PaidCount      int64  `json:"paid_count"`
	TotalGross     int64  `json:"total_gross"`
	TotalNet       int64  `json:"total_net"`
	TotalOvertime  int64  `json:"total_overtime"`
	TotalledAtUnix int64  `json:"totalled_at"`
}

type CreateRecordRequest struct {
	EmployeeID      string `json:"employee_id" binding:"required,uuid"`
	PayrollPeriodID string `json:"payroll_period_id" binding:"required,uuid"`
	BaseSalary      *int64 `json:"base_salary" binding:"required,gte=0"`
	OvertimeHours   int64  `json:"overtime_hours" binding:"gte=0,lte=100"`
	OvertimeRate    int64  `json:"overtime_rate" binding:"gte=0"`
	Bonuses         int64  `json:"bonuses" binding:"gte=0"`
	Deductions      int64  `json:"deductions" binding:"gte=0"`
}

// UpdateRecordRequest is a partial update; nil fields keep the persisted
// value. Employee, period and status are immutable through this path.
type UpdateRecordRequest struct {
	BaseSalary    *int64 `json:"base_salary" binding:"omitempty,gte=0"`
	OvertimeHours *int64 `json:"overtime_hours" binding:"omitempty,gte=0,lte=100"`
	OvertimeRate  *int64 `json:"overtime_rate" binding:"omitempty,gte=0"`
	Bonuses       *int64 `json:"bonuses" binding:"omitempty,gte=0"`
	Deductions    *int64 `json:"deductions" binding:"omitempty,gte=0"`
}

type RecordResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	EmployeeID      string  `json:"employee_id"`
	PayrollPeriodID string  `json:"payroll_period_id"`
	BaseSalary      int64   `json:"base_salary"`
	OvertimeHours   int64   `json:"overtime_hours"`
	OvertimeRate    int64   `json:"overtime_rate"`
	OvertimeAmount  int64   `json:"overtime_amount"`
	Bonuses         int64   `json:"bonuses"`
	Deductions      int64   `json:"deductions"`
	NetPay          int64   `json:"net_pay"`
	Status          string  `json:"status"`
	PaidAt          *string `json:"paid_at,omitempty"`
}

type RecordQueryFilter struct {
	PeriodID   *string
	EmployeeID *string
	Status     *string
}

type GenerateResult struct {
	Requested int               `json:"requested"`
	Created   int               `json:"created"`
	Skipped   int               `json:"skipped"`
	Failed    []GenerateFailure `json:"failed,omitempty"`
}

type GenerateFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type BulkApproveRequest struct {
	RecordIDs []string `json:"record_ids" binding:"required,min=1,dive,uuid"`
}

type BulkApproveResult struct {
	Succeeded int                  `json:"succeeded"`
	Failed    []BulkApproveFailure `json:"failed,omitempty"`
}

type BulkApproveFailure struct {
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
}

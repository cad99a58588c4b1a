package events

import "time"

const PayrollChangedTopic = "hr.payroll.changed.v1"

const (
	EntityPayrollPeriod = "payroll_period"
	EntityPayrollRecord = "payroll_record"
)

// PayrollChangedEvent is emitted on every mutating payroll operation so
// caching layers can invalidate without knowing the write path.
type PayrollChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	PeriodID   string    `json:"period_id,omitempty"`
	CompanyID  string    `json:"company_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

const (
	EmploymentFullTime = "full-time"
	EmploymentPartTime = "part-time"
	EmploymentContract = "contract"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index:idx_employee_company"`
	EmployeeNumber string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_employee_number"`
	FirstName      string    `gorm:"type:varchar(50);not null"`
	LastName       string    `gorm:"type:varchar(50);not null"`
	Email          string    `gorm:"type:varchar(120);not null;uniqueIndex:uq_employee_email"`
	Department     string    `gorm:"type:varchar(80)"`
	Position       string    `gorm:"type:varchar(80)"`

	// Kompensasi disimpan dalam satuan terkecil (sen) untuk hindari floating error.
	Salary     int64  `gorm:"type:bigint;not null;default:0"`
	HourlyRate *int64 `gorm:"type:bigint"`

	Status         string    `gorm:"type:varchar(20);not null;default:'active';index:idx_employee_company"`
	Role           string    `gorm:"type:varchar(20);not null;default:'employee'"`
	EmploymentType string    `gorm:"type:varchar(20);not null"`
	HireDate       time.Time `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

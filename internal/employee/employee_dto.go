package employee

type CreateEmployeeRequest struct {
	FirstName      string `json:"first_name" binding:"required,min=2,max=50"`
	LastName       string `json:"last_name" binding:"required,min=2,max=50"`
	Email          string `json:"email" binding:"required,email"`
	EmployeeNumber string `json:"employee_number"`
	Department     string `json:"department" binding:"required"`
	Position       string `json:"position" binding:"required"`
	Salary         int64  `json:"salary" binding:"required,gte=0"`
	HourlyRate     *int64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	Status         string `json:"status" binding:"required,oneof=active inactive terminated"`
	Role           string `json:"role" binding:"required,oneof=admin hr employee"`
	EmploymentType string `json:"employment_type" binding:"required,oneof=full-time part-time contract"`
	HireDate       string `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FirstName      string `json:"first_name" binding:"required,min=2,max=50"`
	LastName       string `json:"last_name" binding:"required,min=2,max=50"`
	Email          string `json:"email" binding:"required,email"`
	Department     string `json:"department" binding:"required"`
	Position       string `json:"position" binding:"required"`
	Salary         int64  `json:"salary" binding:"required,gte=0"`
	HourlyRate     *int64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	Status         string `json:"status" binding:"required,oneof=active inactive terminated"`
	Role           string `json:"role" binding:"required,oneof=admin hr employee"`
	EmploymentType string `json:"employment_type" binding:"required,oneof=full-time part-time contract"`
	HireDate       string `json:"hire_date" binding:"required"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	EmployeeNumber string `json:"employee_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	Position       string `json:"position"`
	Salary         int64  `json:"salary"`
	HourlyRate     *int64 `json:"hourly_rate,omitempty"`
	Status         string `json:"status"`
	Role           string `json:"role"`
	EmploymentType string `json:"employment_type"`
	HireDate       string `json:"hire_date"`
}

// EmployeeOption is the slim shape served to dropdowns.
type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

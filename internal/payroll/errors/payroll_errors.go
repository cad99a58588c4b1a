package payrollerrors

import (
	"net/http"

	"github.com/GeraldFishta/Bluespice-2.0/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll period id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodName = apperror.New(
		apperror.CodeInvalidInput,
		"period name is required",
		http.StatusBadRequest,
	)
	ErrInvalidFrequency = apperror.New(
		apperror.CodeInvalidInput,
		"frequency must be weekly, bi-weekly, monthly or quarterly",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be after start_date",
		http.StatusBadRequest,
	)
	ErrInvalidMoneyValue = apperror.New(
		apperror.CodeInvalidInput,
		"money fields cannot be negative",
		http.StatusBadRequest,
	)
	ErrOvertimeHoursOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"overtime_hours must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrApproveViaUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"period approval requires the approve operation, not a status update",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)

	ErrPeriodNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll period not found",
		http.StatusNotFound,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll record not found",
		http.StatusNotFound,
	)

	ErrRecordExists = apperror.New(
		apperror.CodeConflict,
		"a payroll record already exists for this employee and period",
		http.StatusConflict,
	)
	ErrPeriodHasRecords = apperror.New(
		apperror.CodeConflict,
		"period has payroll records; pass cascade=true to delete them as well",
		http.StatusConflict,
	)

	ErrRecordNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending payroll records can be approved",
		http.StatusBadRequest,
	)
	ErrRecordNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"only approved payroll records can be marked paid",
		http.StatusBadRequest,
	)
	ErrPeriodNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"only draft periods can be moved to processing",
		http.StatusBadRequest,
	)
	ErrPeriodNotProcessing = apperror.New(
		apperror.CodeInvalidState,
		"only processing periods can be approved",
		http.StatusBadRequest,
	)

	ErrPeriodLocked = apperror.New(
		apperror.CodeLocked,
		"payroll period is paid and can no longer be modified",
		http.StatusConflict,
	)
	ErrRecordPaidLocked = apperror.New(
		apperror.CodeLocked,
		"paid payroll records can no longer be modified",
		http.StatusConflict,
	)

	ErrGenerationPartialFailure = apperror.New(
		apperror.CodePartialFailure,
		"some payroll records could not be generated",
		http.StatusMultiStatus,
	)
)

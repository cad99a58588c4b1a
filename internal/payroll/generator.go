package payroll

import (
	"context"

	payrollerrors "github.com/GeraldFishta/Bluespice-2.0/internal/payroll/errors"
	"github.com/GeraldFishta/Bluespice-2.0/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Generate seeds one pending record for every active employee in the
// company that does not have one yet for the given period. Records are
// inserted row by row so one bad employee never rolls back the rest;
// the unique index on (employee_id, payroll_period_id) turns concurrent
// duplicates into skips. Running it again on the same period is a no-op.
func (s *recordService) Generate(ctx context.Context, companyID, actorID, periodID string) (GenerateResult, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(companyID); err != nil {
		return GenerateResult{}, payrollerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(periodID); err != nil {
		return GenerateResult{}, payrollerrors.ErrInvalidPeriodID
	}

	period, err := s.periods.FindByIDAndCompany(ctx, companyID, periodID)
	if err != nil {
		return GenerateResult{}, mapPeriodRepositoryError(err)
	}
	if period.Status == PeriodStatusPaid {
		return GenerateResult{}, payrollerrors.ErrPeriodLocked
	}

	eligible, err := s.repo.FindEligibleEmployees(ctx, companyID)
	if err != nil {
		return GenerateResult{}, err
	}

	existing, err := s.repo.ListEmployeeIDsForPeriod(ctx, companyID, periodID)
	if err != nil {
		return GenerateResult{}, err
	}
	covered := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		covered[id] = struct{}{}
	}

	result := GenerateResult{Requested: len(eligible)}

	for _, empl := range eligible {
		if _, ok := covered[empl.ID.String()]; ok {
			result.Skipped++
			continue
		}

		if err := s.generateOne(ctx, rid, companyID, periodID, empl); err != nil {
			if isDuplicateRecordViolation(err) {
				// Race with a concurrent writer; the record exists, that is fine.
				result.Skipped++
				continue
			}
			s.logger.Error("generate payroll record failed",
				zap.String("request_id", rid),
				zap.String("employee_id", empl.ID.String()),
				zap.String("period_id", periodID),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, GenerateFailure{
				EmployeeID: empl.ID.String(),
				Reason:     failureReason(err),
			})
			continue
		}
		result.Created++
	}

	s.invalidateSummaryCache(ctx, periodID)

	s.logger.Info("payroll generation finished",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("period_id", periodID),
		zap.Int("requested", result.Requested),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", len(result.Failed)),
	)

	if len(result.Failed) > 0 {
		return result, payrollerrors.ErrGenerationPartialFailure.WithDetails(map[string]any{
			"requested": result.Requested,
			"created":   result.Created,
			"skipped":   result.Skipped,
			"failed":    result.Failed,
		})
	}

	return result, nil
}

func (s *recordService) generateOne(ctx context.Context, rid, companyID, periodID string, empl EligibleEmployee) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var overtimeRate int64
	if empl.HourlyRate != nil {
		overtimeRate = *empl.HourlyRate
	}

	record := &PayrollRecord{
		ID:              uuid.New(),
		CompanyID:       uuid.MustParse(companyID),
		EmployeeID:      empl.ID,
		PayrollPeriodID: uuid.MustParse(periodID),
		BaseSalary:      empl.Salary,
		OvertimeRate:    overtimeRate,
		Status:          RecordStatusPending,
	}
	record.Recompute()

	if err := qtx.Create(ctx, record); err != nil {
		return err
	}

	if err := s.emitChanged(ctx, tx, "record_created", companyID, rid, record.ID.String(), periodID); err != nil {
		return err
	}

	return tx.Commit()
}

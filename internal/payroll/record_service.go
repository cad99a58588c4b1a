package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/GeraldFishta/Bluespice-2.0/internal/events"
	"github.com/GeraldFishta/Bluespice-2.0/internal/messaging/kafka"
	payrollerrors "github.com/GeraldFishta/Bluespice-2.0/internal/payroll/errors"
	"github.com/GeraldFishta/Bluespice-2.0/internal/shared/apperror"
	"github.com/GeraldFishta/Bluespice-2.0/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:generate mockgen -source=record_service.go -destination=mock/record_service_mock.go -package=mock
type RecordService interface {
	Create(ctx context.Context, companyID, actorID string, req CreateRecordRequest) (RecordResponse, error)
	GetAll(ctx context.Context, companyID string, filter RecordQueryFilter) ([]RecordResponse, error)
	GetByID(ctx context.Context, companyID, id string) (RecordResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdateRecordRequest) (RecordResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (RecordResponse, error)
	MarkPaid(ctx context.Context, companyID, actorID, id string) (RecordResponse, error)
	BulkApprove(ctx context.Context, companyID, actorID string, req BulkApproveRequest) (BulkApproveResult, error)
	Delete(ctx context.Context, companyID, id string) error
	Generate(ctx context.Context, companyID, actorID, periodID string) (GenerateResult, error)
}

type recordService struct {
	db      *sql.DB
	repo    RecordRepository
	periods PeriodRepository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewRecordService(db *sql.DB, repo RecordRepository, periods PeriodRepository, rdb *redis.Client, logger ...*zap.Logger) RecordService {
	return NewRecordServiceWithOutbox(db, repo, periods, nil, rdb, logger...)
}

func NewRecordServiceWithOutbox(
	db *sql.DB,
	repo RecordRepository,
	periods PeriodRepository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) RecordService {
	l := zap.L().Named("payroll.record.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.record.service")
	}
	return &recordService{
		db:      db,
		repo:    repo,
		periods: periods,
		outbox:  outboxRepo,
		rdb:     rdb,
		logger:  l,
	}
}

func (s *recordService) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateRecordRequest,
) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return RecordResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RecordResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	periodUUID, err := uuid.Parse(req.PayrollPeriodID)
	if err != nil {
		return RecordResponse{}, payrollerrors.ErrInvalidPeriodID
	}
	if err := validateRecordAmounts(*req.BaseSalary, req.OvertimeHours, req.OvertimeRate, req.Bonuses, req.Deductions); err != nil {
		return RecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qperiods := s.periods.WithTx(tx)

	period, err := qperiods.FindByIDAndCompany(ctx, companyID, req.PayrollPeriodID)
	if err != nil {
		return RecordResponse{}, mapPeriodRepositoryError(err)
	}
	if period.Status == PeriodStatusPaid {
		return RecordResponse{}, payrollerrors.ErrPeriodLocked
	}

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return RecordResponse{}, err
	}
	if !belongs {
		return RecordResponse{}, payrollerrors.ErrEmployeeNotInCompany
	}

	exists, err := qtx.ExistsForEmployeeAndPeriod(ctx, companyID, req.EmployeeID, req.PayrollPeriodID)
	if err != nil {
		return RecordResponse{}, err
	}
	if exists {
		return RecordResponse{}, payrollerrors.ErrRecordExists
	}

	record := &PayrollRecord{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		EmployeeID:      employeeUUID,
		PayrollPeriodID: periodUUID,
		BaseSalary:      *req.BaseSalary,
		OvertimeHours:   req.OvertimeHours,
		OvertimeRate:    req.OvertimeRate,
		Bonuses:         req.Bonuses,
		Deductions:      req.Deductions,
		Status:          RecordStatusPending,
	}
	record.Recompute()

	if err := qtx.Create(ctx, record); err != nil {
		s.logger.Error("create payroll record persist failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, mapRecordRepositoryError(err)
	}

	if err := s.emitChanged(ctx, tx, "record_created", companyID, rid, record.ID.String(), record.PayrollPeriodID.String()); err != nil {
		return RecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	s.invalidateSummaryCache(ctx, record.PayrollPeriodID.String())

	return mapRecordToResponse(*record), nil
}

func (s *recordService) GetAll(ctx context.Context, companyID string, filter RecordQueryFilter) ([]RecordResponse, error) {
	records, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]RecordResponse, len(records))
	for i, record := range records {
		resp[i] = mapRecordToResponse(record)
	}
	return resp, nil
}

func (s *recordService) GetByID(ctx context.Context, companyID, id string) (RecordResponse, error) {
	record, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return RecordResponse{}, mapRecordRepositoryError(err)
	}

	return mapRecordToResponse(*record), nil
}

func (s *recordService) Update(
	ctx context.Context,
	companyID, actorID, id string,
	req UpdateRecordRequest,
) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qperiods := s.periods.WithTx(tx)

	record, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return RecordResponse{}, mapRecordRepositoryError(err)
	}
	if record.Status == RecordStatusPaid {
		return RecordResponse{}, payrollerrors.ErrRecordPaidLocked
	}

	period, err := qperiods.FindByIDAndCompany(ctx, companyID, record.PayrollPeriodID.String())
	if err != nil {
		return RecordResponse{}, mapPeriodRepositoryError(err)
	}
	if period.Status == PeriodStatusPaid {
		return RecordResponse{}, payrollerrors.ErrPeriodLocked
	}

	if req.BaseSalary != nil {
		record.BaseSalary = *req.BaseSalary
	}
	if req.OvertimeHours != nil {
		record.OvertimeHours = *req.OvertimeHours
	}
	if req.OvertimeRate != nil {
		record.OvertimeRate = *req.OvertimeRate
	}
	if req.Bonuses != nil {
		record.Bonuses = *req.Bonuses
	}
	if req.Deductions != nil {
		record.Deductions = *req.Deductions
	}
	if err := validateRecordAmounts(record.BaseSalary, record.OvertimeHours, record.OvertimeRate, record.Bonuses, record.Deductions); err != nil {
		return RecordResponse{}, err
	}
	record.Recompute()

	if err := qtx.Update(ctx, record); err != nil {
		s.logger.Error("update payroll record persist failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, err
	}

	if err := s.emitChanged(ctx, tx, "record_updated", companyID, rid, record.ID.String(), record.PayrollPeriodID.String()); err != nil {
		return RecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	s.invalidateSummaryCache(ctx, record.PayrollPeriodID.String())

	return mapRecordToResponse(*record), nil
}

func (s *recordService) Approve(ctx context.Context, companyID, actorID, id string) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := s.approveOne(ctx, qtx, companyID, id)
	if err != nil {
		return RecordResponse{}, err
	}

	if err := s.emitChanged(ctx, tx, "record_approved", companyID, rid, record.ID.String(), record.PayrollPeriodID.String()); err != nil {
		return RecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	s.invalidateSummaryCache(ctx, record.PayrollPeriodID.String())

	return mapRecordToResponse(*record), nil
}

func (s *recordService) approveOne(ctx context.Context, qtx RecordRepository, companyID, id string) (*PayrollRecord, error) {
	record, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, mapRecordRepositoryError(err)
	}

	if record.Status != RecordStatusPending {
		return nil, payrollerrors.ErrRecordNotPending
	}

	record.Status = RecordStatusApproved
	if err := qtx.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *recordService) MarkPaid(ctx context.Context, companyID, actorID, id string) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return RecordResponse{}, mapRecordRepositoryError(err)
	}

	if record.Status != RecordStatusApproved {
		return RecordResponse{}, payrollerrors.ErrRecordNotApproved
	}

	now := time.Now().UTC()
	record.Status = RecordStatusPaid
	record.PaidAt = &now

	if err := qtx.Update(ctx, record); err != nil {
		s.logger.Error("mark payroll record paid persist failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, err
	}

	if err := s.emitChanged(ctx, tx, "record_paid", companyID, rid, record.ID.String(), record.PayrollPeriodID.String()); err != nil {
		return RecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	s.logger.Info("payroll record marked paid",
		zap.String("request_id", rid),
		zap.String("record_id", record.ID.String()),
	)

	s.invalidateSummaryCache(ctx, record.PayrollPeriodID.String())

	return mapRecordToResponse(*record), nil
}

// BulkApprove approves each record independently. Records that are
// already approved or paid count as successes so retrying a partially
// applied batch converges instead of erroring. Failures are collected
// per record, never aborting the rest of the batch.
func (s *recordService) BulkApprove(
	ctx context.Context,
	companyID, actorID string,
	req BulkApproveRequest,
) (BulkApproveResult, error) {
	rid := contextutil.GetRequestID(ctx)

	result := BulkApproveResult{}
	touchedPeriods := make(map[string]struct{})

	for _, recordID := range req.RecordIDs {
		periodID, err := s.bulkApproveOne(ctx, companyID, rid, recordID)
		if err != nil {
			result.Failed = append(result.Failed, BulkApproveFailure{
				RecordID: recordID,
				Reason:   failureReason(err),
			})
			continue
		}
		result.Succeeded++
		touchedPeriods[periodID] = struct{}{}
	}

	for periodID := range touchedPeriods {
		s.invalidateSummaryCache(ctx, periodID)
	}

	s.logger.Info("bulk approve finished",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.Int("requested", len(req.RecordIDs)),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", len(result.Failed)),
	)

	return result, nil
}

func (s *recordService) bulkApproveOne(ctx context.Context, companyID, rid, recordID string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByIDAndCompany(ctx, companyID, recordID)
	if err != nil {
		return "", mapRecordRepositoryError(err)
	}

	// Idempotent no-op; the record already sits at or past the target state.
	if record.Status == RecordStatusApproved || record.Status == RecordStatusPaid {
		return record.PayrollPeriodID.String(), tx.Commit()
	}

	record.Status = RecordStatusApproved
	if err := qtx.Update(ctx, record); err != nil {
		return "", err
	}

	if err := s.emitChanged(ctx, tx, "record_approved", companyID, rid, record.ID.String(), record.PayrollPeriodID.String()); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	return record.PayrollPeriodID.String(), nil
}

func (s *recordService) Delete(ctx context.Context, companyID, id string) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRecordRepositoryError(err)
	}

	// Paid records are the financial audit trail.
	if record.Status == RecordStatusPaid {
		return payrollerrors.ErrRecordPaidLocked
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	if err := s.emitChanged(ctx, tx, "record_deleted", companyID, rid, record.ID.String(), record.PayrollPeriodID.String()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateSummaryCache(ctx, record.PayrollPeriodID.String())

	return nil
}

func validateRecordAmounts(baseSalary, overtimeHours, overtimeRate, bonuses, deductions int64) error {
	if baseSalary < 0 || overtimeRate < 0 || bonuses < 0 || deductions < 0 {
		return payrollerrors.ErrInvalidMoneyValue
	}
	if overtimeHours < 0 || overtimeHours > MaxOvertimeHours {
		return payrollerrors.ErrOvertimeHoursOutOfRange
	}
	return nil
}

func (s *recordService) emitChanged(ctx context.Context, tx *sql.Tx, eventType, companyID, rid, recordID, periodID string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.PayrollChangedEvent{
		EventType:  eventType,
		RequestID:  rid,
		EntityType: events.EntityPayrollRecord,
		EntityID:   recordID,
		PeriodID:   periodID,
		CompanyID:  companyID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: events.EntityPayrollRecord,
		AggregateID:   recordID,
		EventType:     eventType,
		Topic:         events.PayrollChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *recordService) invalidateSummaryCache(ctx context.Context, periodID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, GetPeriodSummaryKey(periodID)).Err(); err != nil {
		s.logger.Warn("invalidate period summary cache failed",
			zap.String("period_id", periodID),
			zap.Error(err),
		)
	}
}

// failureReason flattens an error into the short reason strings carried
// by bulk results. Application errors keep their message; anything else
// is masked the same way the HTTP layer masks it.
func failureReason(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}

func mapRecordToResponse(record PayrollRecord) RecordResponse {
	resp := RecordResponse{
		ID:              record.ID.String(),
		CompanyID:       record.CompanyID.String(),
		EmployeeID:      record.EmployeeID.String(),
		PayrollPeriodID: record.PayrollPeriodID.String(),
		BaseSalary:      record.BaseSalary,
		OvertimeHours:   record.OvertimeHours,
		OvertimeRate:    record.OvertimeRate,
		OvertimeAmount:  record.OvertimeAmount,
		Bonuses:         record.Bonuses,
		Deductions:      record.Deductions,
		NetPay:          record.NetPay,
		Status:          record.Status,
	}

	if record.PaidAt != nil {
		v := record.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}

	return resp
}

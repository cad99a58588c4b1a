package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/GeraldFishta/Bluespice-2.0/internal/events"
	"github.com/GeraldFishta/Bluespice-2.0/internal/messaging/kafka"
	payrollerrors "github.com/GeraldFishta/Bluespice-2.0/internal/payroll/errors"
	"github.com/GeraldFishta/Bluespice-2.0/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const PeriodSummaryKeyPrefix = "payroll:period:summary:"

func GetPeriodSummaryKey(periodID string) string {
	return PeriodSummaryKeyPrefix + periodID
}

//go:generate mockgen -source=period_service.go -destination=mock/period_service_mock.go -package=mock
type PeriodService interface {
	Create(ctx context.Context, companyID, actorID string, req CreatePeriodRequest) (PeriodResponse, error)
	GetAll(ctx context.Context, companyID string) ([]PeriodResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PeriodResponse, error)
	GetSummary(ctx context.Context, companyID, id string) (PeriodSummaryResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdatePeriodRequest) (PeriodResponse, error)
	Process(ctx context.Context, companyID, actorID, id string) (PeriodResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (PeriodResponse, error)
	Delete(ctx context.Context, companyID, id string, cascade bool) error
}

type periodService struct {
	db      *sql.DB
	repo    PeriodRepository
	records RecordRepository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewPeriodService(db *sql.DB, repo PeriodRepository, records RecordRepository, rdb *redis.Client, logger ...*zap.Logger) PeriodService {
	return NewPeriodServiceWithOutbox(db, repo, records, nil, rdb, logger...)
}

func NewPeriodServiceWithOutbox(
	db *sql.DB,
	repo PeriodRepository,
	records RecordRepository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) PeriodService {
	l := zap.L().Named("payroll.period.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.period.service")
	}
	return &periodService{
		db:      db,
		repo:    repo,
		records: records,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *periodService) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreatePeriodRequest,
) (PeriodResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create payroll period requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("name", req.Name),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PeriodResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return PeriodResponse{}, payrollerrors.ErrInvalidActorID
	}

	// Binding tags cover the HTTP path; callers going straight to the
	// service still get the same rejections.
	if strings.TrimSpace(req.Name) == "" {
		return PeriodResponse{}, payrollerrors.ErrInvalidPeriodName
	}
	if !isValidFrequency(req.Frequency) {
		return PeriodResponse{}, payrollerrors.ErrInvalidFrequency
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return PeriodResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return PeriodResponse{}, err
	}
	if !endDate.After(startDate) {
		return PeriodResponse{}, payrollerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PeriodResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	period := &PayrollPeriod{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Name:        req.Name,
		StartDate:   startDate,
		EndDate:     endDate,
		Frequency:   req.Frequency,
		Status:      PeriodStatusDraft,
		TotalGross:  0,
		TotalNet:    0,
		Description: req.Description,
		CreatedBy:   createdBy,
	}

	if err := qtx.Create(ctx, period); err != nil {
		s.logger.Error("create payroll period persist failed", zap.String("request_id", rid), zap.Error(err))
		return PeriodResponse{}, err
	}

	if err := s.emitChanged(ctx, tx, "period_created", companyID, rid, period.ID.String(), period.ID.String()); err != nil {
		return PeriodResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PeriodResponse{}, err
	}

	return mapPeriodToResponse(*period), nil
}

func (s *periodService) GetAll(ctx context.Context, companyID string) ([]PeriodResponse, error) {
	periods, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]PeriodResponse, len(periods))
	for i, period := range periods {
		resp[i] = mapPeriodToResponse(period)
	}
	return resp, nil
}

func (s *periodService) GetByID(ctx context.Context, companyID, id string) (PeriodResponse, error) {
	period, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PeriodResponse{}, mapPeriodRepositoryError(err)
	}

	return mapPeriodToResponse(*period), nil
}

// GetSummary aggregates the period's member records. The result is cached
// in redis and invalidated by record mutations through the change events.
func (s *periodService) GetSummary(ctx context.Context, companyID, id string) (PeriodSummaryResponse, error) {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return PeriodSummaryResponse{}, mapPeriodRepositoryError(err)
	}

	cacheKey := GetPeriodSummaryKey(id)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var summary PeriodSummaryResponse
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return summary, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		agg, err := s.records.SummarizeByPeriod(ctx, companyID, id)
		if err != nil {
			return PeriodSummaryResponse{}, err
		}

		summary := PeriodSummaryResponse{
			PeriodID:       id,
			RecordCount:    agg.RecordCount,
			PendingCount:   agg.PendingCount,
			ApprovedCount:  agg.ApprovedCount,
			PaidCount:      agg.PaidCount,
			TotalGross:     agg.TotalGross,
			TotalNet:       agg.TotalNet,
			TotalOvertime:  agg.TotalOvertime,
			TotalledAtUnix: time.Now().Unix(),
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(summary); err == nil {
				_ = s.rdb.Set(ctx, cacheKey, payload, 5*time.Minute).Err()
			}
		}

		return summary, nil
	})
	if err != nil {
		return PeriodSummaryResponse{}, err
	}

	return v.(PeriodSummaryResponse), nil
}

func (s *periodService) Update(
	ctx context.Context,
	companyID, actorID, id string,
	req UpdatePeriodRequest,
) (PeriodResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PeriodResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	period, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PeriodResponse{}, mapPeriodRepositoryError(err)
	}

	// Paid is the one hard lockout: no edits of any kind.
	if period.Status == PeriodStatusPaid {
		return PeriodResponse{}, payrollerrors.ErrPeriodLocked
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return PeriodResponse{}, payrollerrors.ErrInvalidPeriodName
		}
		period.Name = *req.Name
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return PeriodResponse{}, err
		}
		period.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return PeriodResponse{}, err
		}
		period.EndDate = endDate
	}
	if !period.EndDate.After(period.StartDate) {
		return PeriodResponse{}, payrollerrors.ErrInvalidDateRange
	}
	if req.Frequency != nil {
		if !isValidFrequency(*req.Frequency) {
			return PeriodResponse{}, payrollerrors.ErrInvalidFrequency
		}
		period.Frequency = *req.Frequency
	}
	if req.Description != nil {
		period.Description = *req.Description
	}
	if req.Status != nil {
		// Approval carries attribution (approved_by, approved_at) and
		// must go through the dedicated Approve operation.
		if *req.Status == PeriodStatusApproved {
			return PeriodResponse{}, payrollerrors.ErrApproveViaUpdate
		}
		period.Status = *req.Status
	}

	if err := qtx.Update(ctx, period); err != nil {
		s.logger.Error("update payroll period persist failed", zap.String("request_id", rid), zap.Error(err))
		return PeriodResponse{}, err
	}

	if err := s.emitChanged(ctx, tx, "period_updated", companyID, rid, period.ID.String(), period.ID.String()); err != nil {
		return PeriodResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PeriodResponse{}, err
	}

	s.invalidateSummaryCache(ctx, id)

	return mapPeriodToResponse(*period), nil
}

func (s *periodService) Process(ctx context.Context, companyID, actorID, id string) (PeriodResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PeriodResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	period, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PeriodResponse{}, mapPeriodRepositoryError(err)
	}

	if period.Status != PeriodStatusDraft {
		return PeriodResponse{}, payrollerrors.ErrPeriodNotDraft
	}

	now := time.Now().UTC()
	period.Status = PeriodStatusProcessing
	period.ProcessedAt = &now

	if err := qtx.Update(ctx, period); err != nil {
		s.logger.Error("process payroll period persist failed", zap.String("request_id", rid), zap.Error(err))
		return PeriodResponse{}, err
	}

	if err := s.emitChanged(ctx, tx, "period_processing", companyID, rid, period.ID.String(), period.ID.String()); err != nil {
		return PeriodResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PeriodResponse{}, err
	}

	s.logger.Info("payroll period moved to processing",
		zap.String("request_id", rid),
		zap.String("period_id", period.ID.String()),
	)

	return mapPeriodToResponse(*period), nil
}

func (s *periodService) Approve(ctx context.Context, companyID, actorID, id string) (PeriodResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	approverID, err := uuid.Parse(actorID)
	if err != nil {
		return PeriodResponse{}, payrollerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PeriodResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	period, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PeriodResponse{}, mapPeriodRepositoryError(err)
	}

	if period.Status != PeriodStatusProcessing {
		return PeriodResponse{}, payrollerrors.ErrPeriodNotProcessing
	}

	now := time.Now().UTC()
	period.Status = PeriodStatusApproved
	period.ApprovedAt = &now
	period.ApprovedBy = &approverID

	if err := qtx.Update(ctx, period); err != nil {
		s.logger.Error("approve payroll period persist failed", zap.String("request_id", rid), zap.Error(err))
		return PeriodResponse{}, err
	}

	if err := s.emitChanged(ctx, tx, "period_approved", companyID, rid, period.ID.String(), period.ID.String()); err != nil {
		return PeriodResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PeriodResponse{}, err
	}

	s.logger.Info("payroll period approved",
		zap.String("request_id", rid),
		zap.String("period_id", period.ID.String()),
		zap.String("approved_by", approverID.String()),
	)

	return mapPeriodToResponse(*period), nil
}

// Delete refuses to drop a period that still has records unless the caller
// explicitly asked for a cascade. Deleting payroll history by accident is
// not a recoverable mistake.
func (s *periodService) Delete(ctx context.Context, companyID, id string, cascade bool) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	period, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapPeriodRepositoryError(err)
	}

	if period.Status == PeriodStatusPaid {
		return payrollerrors.ErrPeriodLocked
	}

	count, err := qtx.CountRecords(ctx, companyID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		if !cascade {
			return payrollerrors.ErrPeriodHasRecords
		}
		if err := qtx.DeleteRecords(ctx, companyID, id); err != nil {
			return err
		}
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	if err := s.emitChanged(ctx, tx, "period_deleted", companyID, rid, period.ID.String(), period.ID.String()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateSummaryCache(ctx, id)

	return nil
}

func (s *periodService) emitChanged(ctx context.Context, tx *sql.Tx, eventType, companyID, rid, entityID, periodID string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.PayrollChangedEvent{
		EventType:  eventType,
		RequestID:  rid,
		EntityType: events.EntityPayrollPeriod,
		EntityID:   entityID,
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
		AggregateType: events.EntityPayrollPeriod,
		AggregateID:   entityID,
		EventType:     eventType,
		Topic:         events.PayrollChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *periodService) invalidateSummaryCache(ctx context.Context, periodID string) {
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

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapPeriodToResponse(period PayrollPeriod) PeriodResponse {
	resp := PeriodResponse{
		ID:          period.ID.String(),
		CompanyID:   period.CompanyID.String(),
		Name:        period.Name,
		StartDate:   period.StartDate.Format("2006-01-02"),
		EndDate:     period.EndDate.Format("2006-01-02"),
		Frequency:   period.Frequency,
		Status:      period.Status,
		TotalGross:  period.TotalGross,
		TotalNet:    period.TotalNet,
		Description: period.Description,
		CreatedBy:   period.CreatedBy.String(),
	}

	if period.ApprovedBy != nil {
		v := period.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if period.ProcessedAt != nil {
		v := period.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	if period.ApprovedAt != nil {
		v := period.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}

	return resp
}

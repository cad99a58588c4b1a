package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/GeraldFishta/Bluespice-2.0/internal/events"
	"github.com/GeraldFishta/Bluespice-2.0/internal/messaging/kafka"
	"github.com/GeraldFishta/Bluespice-2.0/internal/payroll"
	payrollerrors "github.com/GeraldFishta/Bluespice-2.0/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePeriodRepository struct {
	withTxFn             func(tx *sql.Tx) payroll.PeriodRepository
	createFn             func(ctx context.Context, period *payroll.PayrollPeriod) error
	findAllByCompanyFn   func(ctx context.Context, companyID string) ([]payroll.PayrollPeriod, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error)
	updateFn             func(ctx context.Context, period *payroll.PayrollPeriod) error
	deleteFn             func(ctx context.Context, companyID string, id string) error
	countRecordsFn       func(ctx context.Context, companyID string, periodID string) (int64, error)
	deleteRecordsFn      func(ctx context.Context, companyID string, periodID string) error
}

func (f *fakePeriodRepository) WithTx(tx *sql.Tx) payroll.PeriodRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePeriodRepository) Create(ctx context.Context, period *payroll.PayrollPeriod) error {
	if f.createFn != nil {
		return f.createFn(ctx, period)
	}
	return nil
}

func (f *fakePeriodRepository) FindAllByCompany(ctx context.Context, companyID string) ([]payroll.PayrollPeriod, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakePeriodRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakePeriodRepository) Update(ctx context.Context, period *payroll.PayrollPeriod) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, period)
	}
	return nil
}

func (f *fakePeriodRepository) Delete(ctx context.Context, companyID string, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakePeriodRepository) CountRecords(ctx context.Context, companyID string, periodID string) (int64, error) {
	if f.countRecordsFn != nil {
		return f.countRecordsFn(ctx, companyID, periodID)
	}
	return 0, nil
}

func (f *fakePeriodRepository) DeleteRecords(ctx context.Context, companyID string, periodID string) error {
	if f.deleteRecordsFn != nil {
		return f.deleteRecordsFn(ctx, companyID, periodID)
	}
	return nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type periodServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service payroll.PeriodService
	repo    *fakePeriodRepository
	records *fakeRecordRepository
}

func setupPeriodServiceTest(t *testing.T) *periodServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePeriodRepository{}
	records := &fakeRecordRepository{}
	svc := payroll.NewPeriodService(db, repo, records, nil)

	return &periodServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, records: records}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestPeriodService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.createFn = func(ctx context.Context, period *payroll.PayrollPeriod) error {
		assert.Equal(t, payroll.PeriodStatusDraft, period.Status)
		assert.Equal(t, actorID, period.CreatedBy.String())
		assert.Equal(t, int64(0), period.TotalGross)
		return nil
	}

	resp, err := deps.service.Create(ctx, companyID, actorID, payroll.CreatePeriodRequest{
		Name:      "February 2026",
		StartDate: "2026-02-01",
		EndDate:   "2026-02-28",
		Frequency: payroll.FrequencyMonthly,
	})

	assert.NoError(t, err)
	assert.Equal(t, payroll.PeriodStatusDraft, resp.Status)
	assert.Equal(t, "2026-02-01", resp.StartDate)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPeriodService_Create_DateValidation(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	t.Run("bad format", func(t *testing.T) {
		_, err := deps.service.Create(ctx, companyID, actorID, payroll.CreatePeriodRequest{
			Name:      "Bad",
			StartDate: "01/02/2026",
			EndDate:   "2026-02-28",
			Frequency: payroll.FrequencyMonthly,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidDateFormat)
	})

	t.Run("end not after start", func(t *testing.T) {
		_, err := deps.service.Create(ctx, companyID, actorID, payroll.CreatePeriodRequest{
			Name:      "Inverted",
			StartDate: "2026-02-28",
			EndDate:   "2026-02-01",
			Frequency: payroll.FrequencyMonthly,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidDateRange)
	})

	t.Run("equal dates rejected", func(t *testing.T) {
		_, err := deps.service.Create(ctx, companyID, actorID, payroll.CreatePeriodRequest{
			Name:      "Zero length",
			StartDate: "2026-02-01",
			EndDate:   "2026-02-01",
			Frequency: payroll.FrequencyMonthly,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidDateRange)
	})
}

func TestPeriodService_Create_FieldValidation(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := deps.service.Create(ctx, companyID, actorID, payroll.CreatePeriodRequest{
			Name:      "   ",
			StartDate: "2026-02-01",
			EndDate:   "2026-02-28",
			Frequency: payroll.FrequencyMonthly,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriodName)
	})

	t.Run("unknown frequency rejected", func(t *testing.T) {
		_, err := deps.service.Create(ctx, companyID, actorID, payroll.CreatePeriodRequest{
			Name:      "March 2026",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-31",
			Frequency: "fortnightly",
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidFrequency)
	})

	t.Run("update rejects unknown frequency", func(t *testing.T) {
		periodID := uuid.New().String()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
			return &payroll.PayrollPeriod{
				ID:        uuid.MustParse(id),
				CompanyID: uuid.MustParse(companyID),
				Status:    payroll.PeriodStatusDraft,
				StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			}, nil
		}

		freq := "fortnightly"
		_, err := deps.service.Update(ctx, companyID, actorID, periodID, payroll.UpdatePeriodRequest{
			Frequency: &freq,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidFrequency)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPeriodService_Update_PaidIsLocked(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	periodID := uuid.New().String()

	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
		return &payroll.PayrollPeriod{ID: uuid.MustParse(id), CompanyID: uuid.MustParse(companyID), Status: payroll.PeriodStatusPaid}, nil
	}

	name := "renamed"
	_, err := deps.service.Update(ctx, companyID, actorID, periodID, payroll.UpdatePeriodRequest{Name: &name})

	assert.ErrorIs(t, err, payrollerrors.ErrPeriodLocked)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPeriodService_Update_ApproveViaUpdateRejected(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	periodID := uuid.New().String()

	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
		return &payroll.PayrollPeriod{
			ID:        uuid.MustParse(id),
			CompanyID: uuid.MustParse(companyID),
			StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			Status:    payroll.PeriodStatusProcessing,
		}, nil
	}

	status := payroll.PeriodStatusApproved
	_, err := deps.service.Update(ctx, companyID, actorID, periodID, payroll.UpdatePeriodRequest{Status: &status})

	assert.ErrorIs(t, err, payrollerrors.ErrApproveViaUpdate)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPeriodService_Update_MergesPartialFields(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	periodID := uuid.New().String()

	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
		return &payroll.PayrollPeriod{
			ID:        uuid.MustParse(id),
			CompanyID: uuid.MustParse(companyID),
			Name:      "February 2026",
			StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
			Frequency: payroll.FrequencyMonthly,
			Status:    payroll.PeriodStatusDraft,
		}, nil
	}
	deps.repo.updateFn = func(ctx context.Context, period *payroll.PayrollPeriod) error {
		assert.Equal(t, "February 2026 (final)", period.Name)
		assert.Equal(t, payroll.FrequencyMonthly, period.Frequency)
		return nil
	}

	name := "February 2026 (final)"
	resp, err := deps.service.Update(ctx, companyID, actorID, periodID, payroll.UpdatePeriodRequest{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "February 2026 (final)", resp.Name)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPeriodService_ProcessAndApprove(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	periodID := uuid.New().String()

	t.Run("process draft", func(t *testing.T) {
		deps := setupPeriodServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
			return &payroll.PayrollPeriod{ID: uuid.MustParse(id), CompanyID: uuid.MustParse(companyID), Status: payroll.PeriodStatusDraft}, nil
		}

		resp, err := deps.service.Process(ctx, companyID, actorID, periodID)

		assert.NoError(t, err)
		assert.Equal(t, payroll.PeriodStatusProcessing, resp.Status)
		assert.NotNil(t, resp.ProcessedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("process rejects non-draft", func(t *testing.T) {
		deps := setupPeriodServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
			return &payroll.PayrollPeriod{ID: uuid.MustParse(id), CompanyID: uuid.MustParse(companyID), Status: payroll.PeriodStatusApproved}, nil
		}

		_, err := deps.service.Process(ctx, companyID, actorID, periodID)

		assert.ErrorIs(t, err, payrollerrors.ErrPeriodNotDraft)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("approve processing", func(t *testing.T) {
		deps := setupPeriodServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
			return &payroll.PayrollPeriod{ID: uuid.MustParse(id), CompanyID: uuid.MustParse(companyID), Status: payroll.PeriodStatusProcessing}, nil
		}

		resp, err := deps.service.Approve(ctx, companyID, actorID, periodID)

		assert.NoError(t, err)
		assert.Equal(t, payroll.PeriodStatusApproved, resp.Status)
		if assert.NotNil(t, resp.ApprovedBy) {
			assert.Equal(t, actorID, *resp.ApprovedBy)
		}
		assert.NotNil(t, resp.ApprovedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("approve rejects draft", func(t *testing.T) {
		deps := setupPeriodServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
			return &payroll.PayrollPeriod{ID: uuid.MustParse(id), CompanyID: uuid.MustParse(companyID), Status: payroll.PeriodStatusDraft}, nil
		}

		_, err := deps.service.Approve(ctx, companyID, actorID, periodID)

		assert.ErrorIs(t, err, payrollerrors.ErrPeriodNotProcessing)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPeriodService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	periodID := uuid.New().String()

	t.Run("records without cascade", func(t *testing.T) {
		deps := setupPeriodServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
			return &payroll.PayrollPeriod{ID: uuid.MustParse(id), CompanyID: uuid.MustParse(companyID), Status: payroll.PeriodStatusDraft}, nil
		}
		deps.repo.countRecordsFn = func(ctx context.Context, companyID string, periodID string) (int64, error) {
			return 4, nil
		}

		err := deps.service.Delete(ctx, companyID, periodID, false)

		assert.ErrorIs(t, err, payrollerrors.ErrPeriodHasRecords)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("cascade deletes records first", func(t *testing.T) {
		deps := setupPeriodServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
			return &payroll.PayrollPeriod{ID: uuid.MustParse(id), CompanyID: uuid.MustParse(companyID), Status: payroll.PeriodStatusDraft}, nil
		}
		deps.repo.countRecordsFn = func(ctx context.Context, companyID string, periodID string) (int64, error) {
			return 4, nil
		}
		recordsDeleted := false
		deps.repo.deleteRecordsFn = func(ctx context.Context, companyID string, periodID string) error {
			recordsDeleted = true
			return nil
		}
		deps.repo.deleteFn = func(ctx context.Context, companyID string, id string) error {
			assert.True(t, recordsDeleted)
			return nil
		}

		err := deps.service.Delete(ctx, companyID, periodID, true)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("paid period locked", func(t *testing.T) {
		deps := setupPeriodServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
			return &payroll.PayrollPeriod{ID: uuid.MustParse(id), CompanyID: uuid.MustParse(companyID), Status: payroll.PeriodStatusPaid}, nil
		}

		err := deps.service.Delete(ctx, companyID, periodID, true)

		assert.ErrorIs(t, err, payrollerrors.ErrPeriodLocked)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPeriodService_GetSummary(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	periodID := uuid.New().String()

	deps := setupPeriodServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
		return &payroll.PayrollPeriod{ID: uuid.MustParse(id), CompanyID: uuid.MustParse(companyID), Status: payroll.PeriodStatusProcessing}, nil
	}
	deps.records.summarizeByPeriodFn = func(ctx context.Context, companyID string, periodID string) (payroll.PeriodAggregate, error) {
		return payroll.PeriodAggregate{
			RecordCount:   3,
			PendingCount:  1,
			ApprovedCount: 2,
			TotalGross:    30450000,
			TotalNet:      30150000,
			TotalOvertime: 125000,
		}, nil
	}

	resp, err := deps.service.GetSummary(ctx, companyID, periodID)

	assert.NoError(t, err)
	assert.Equal(t, periodID, resp.PeriodID)
	assert.Equal(t, int64(3), resp.RecordCount)
	assert.Equal(t, int64(30150000), resp.TotalNet)
	assert.Equal(t, int64(125000), resp.TotalOvertime)
}

func TestPeriodService_GetSummary_Cache(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	periodID := uuid.New().String()

	existingPeriod := func(ctx context.Context, companyID string, id string) (*payroll.PayrollPeriod, error) {
		return &payroll.PayrollPeriod{ID: uuid.MustParse(id), CompanyID: uuid.MustParse(companyID), Status: payroll.PeriodStatusProcessing}, nil
	}

	t.Run("hit skips the aggregate query", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		repo := &fakePeriodRepository{findByIDAndCompanyFn: existingPeriod}
		records := &fakeRecordRepository{
			summarizeByPeriodFn: func(ctx context.Context, companyID string, periodID string) (payroll.PeriodAggregate, error) {
				t.Fatal("aggregate query must not run on a cache hit")
				return payroll.PeriodAggregate{}, nil
			},
		}
		svc := payroll.NewPeriodService(db, repo, records, rdb)

		cached, err := json.Marshal(payroll.PeriodSummaryResponse{PeriodID: periodID, RecordCount: 7, TotalNet: 9000})
		assert.NoError(t, err)
		redisMock.ExpectGet(payroll.GetPeriodSummaryKey(periodID)).SetVal(string(cached))

		resp, err := svc.GetSummary(ctx, companyID, periodID)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), resp.RecordCount)
		assert.Equal(t, int64(9000), resp.TotalNet)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("miss stores the rebuilt summary", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		repo := &fakePeriodRepository{findByIDAndCompanyFn: existingPeriod}
		records := &fakeRecordRepository{
			summarizeByPeriodFn: func(ctx context.Context, companyID string, periodID string) (payroll.PeriodAggregate, error) {
				return payroll.PeriodAggregate{RecordCount: 2, PendingCount: 2, TotalGross: 5000, TotalNet: 4500}, nil
			},
		}
		svc := payroll.NewPeriodService(db, repo, records, rdb)

		key := payroll.GetPeriodSummaryKey(periodID)
		redisMock.ExpectGet(key).RedisNil()
		redisMock.Regexp().ExpectSet(key, `.*`, 5*time.Minute).SetVal("OK")

		resp, err := svc.GetSummary(ctx, companyID, periodID)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), resp.RecordCount)
		assert.Equal(t, int64(4500), resp.TotalNet)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestPeriodService_Create_QueuesChangeEvent(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakePeriodRepository{}
	outbox := &fakeOutboxRepository{
		createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
			assert.Equal(t, events.PayrollChangedTopic, event.Topic)
			var payload events.PayrollChangedEvent
			err := json.Unmarshal(event.Payload, &payload)
			assert.NoError(t, err)
			assert.Equal(t, "period_created", payload.EventType)
			assert.Equal(t, events.EntityPayrollPeriod, payload.EntityType)
			assert.Equal(t, companyID, payload.CompanyID)
			return nil
		},
	}
	svc := payroll.NewPeriodServiceWithOutbox(db, repo, &fakeRecordRepository{}, outbox, nil)

	expectTx(t, sqlMock, true)
	_, err = svc.Create(ctx, companyID, actorID, payroll.CreatePeriodRequest{
		Name:      "March 2026",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		Frequency: payroll.FrequencyMonthly,
	})

	assert.NoError(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

package payroll

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	payrollerrors "github.com/GeraldFishta/Bluespice-2.0/internal/payroll/errors"
	"github.com/GeraldFishta/Bluespice-2.0/internal/shared/apperror"
	"github.com/GeraldFishta/Bluespice-2.0/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	periods PeriodService
	records RecordService
	rdb     *redis.Client
}

func NewHandler(periods PeriodService, records RecordService) *Handler {
	return &Handler{periods: periods, records: records}
}

func NewHandlerWithRedis(periods PeriodService, records RecordService, rdb *redis.Client) *Handler {
	return &Handler{periods: periods, records: records, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// releaseIdempotencyLock frees the in-flight lock the idempotency
// middleware took, so a retry after a failed attempt is not stuck
// behind PROCESSING until the lock expires.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk, ok := c.Get("idempotency_lock_key"); ok {
		if key, ok := lk.(string); ok && key != "" {
			h.rdb.Del(c.Request.Context(), key)
		}
	}
}

// cacheIdempotentResponse stores the successful body under the
// Idempotency-Key derived cache key; the middleware replays it instead
// of re-running the operation.
func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	if ck, ok := c.Get("idempotency_cache_key"); ok {
		if key, ok := ck.(string); ok && key != "" {
			if payload, err := json.Marshal(resp); err == nil {
				_ = h.rdb.Set(c.Request.Context(), key, payload, 24*time.Hour).Err()
			}
		}
	}
}

func (h *Handler) CreatePeriod(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.periods.Create(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAllPeriods(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.periods.GetAll(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPeriodById(c *gin.Context) {
	companyID := c.GetString("company_id")
	periodID := c.Param("id")

	resp, err := h.periods.GetByID(c.Request.Context(), companyID, periodID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPeriodSummary(c *gin.Context) {
	companyID := c.GetString("company_id")
	periodID := c.Param("id")

	resp, err := h.periods.GetSummary(c.Request.Context(), companyID, periodID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdatePeriod(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	periodID := c.Param("id")

	var req UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.periods.Update(c.Request.Context(), companyID, actorID, periodID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ProcessPeriod(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	periodID := c.Param("id")

	resp, err := h.periods.Process(c.Request.Context(), companyID, actorID, periodID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ApprovePeriod(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	periodID := c.Param("id")

	resp, err := h.periods.Approve(c.Request.Context(), companyID, actorID, periodID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeletePeriod(c *gin.Context) {
	companyID := c.GetString("company_id")
	periodID := c.Param("id")

	cascade, _ := strconv.ParseBool(c.DefaultQuery("cascade", "false"))

	if err := h.periods.Delete(c.Request.Context(), companyID, periodID, cascade); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// GeneratePeriod seeds records for every employee still missing one.
// A partial failure answers 207 and carries both the per-employee
// failures and the counts for what did land.
func (h *Handler) GeneratePeriod(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	periodID := c.Param("id")

	resp, err := h.records.Generate(c.Request.Context(), companyID, actorID, periodID)
	if err != nil {
		if errors.Is(err, payrollerrors.ErrGenerationPartialFailure) {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			return
		}
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateRecord(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.records.Create(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAllRecords(c *gin.Context) {
	companyID := c.GetString("company_id")

	var filter RecordQueryFilter
	if periodID := c.Query("period_id"); periodID != "" {
		filter.PeriodID = &periodID
	}
	if employeeID := c.Query("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}

	resp, err := h.records.GetAll(c.Request.Context(), companyID, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetRecordById(c *gin.Context) {
	companyID := c.GetString("company_id")
	recordID := c.Param("id")

	resp, err := h.records.GetByID(c.Request.Context(), companyID, recordID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateRecord(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	recordID := c.Param("id")

	var req UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.records.Update(c.Request.Context(), companyID, actorID, recordID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ApproveRecord(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	recordID := c.Param("id")

	resp, err := h.records.Approve(c.Request.Context(), companyID, actorID, recordID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkRecordPaid(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	recordID := c.Param("id")

	resp, err := h.records.MarkPaid(c.Request.Context(), companyID, actorID, recordID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) BulkApproveRecords(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	var req BulkApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.records.BulkApprove(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if len(resp.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) DeleteRecord(c *gin.Context) {
	companyID := c.GetString("company_id")
	recordID := c.Param("id")

	if err := h.records.Delete(c.Request.Context(), companyID, recordID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

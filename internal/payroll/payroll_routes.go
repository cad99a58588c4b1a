package payroll

import (
	"github.com/GeraldFishta/Bluespice-2.0/internal/middleware"
	"github.com/GeraldFishta/Bluespice-2.0/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, rdb *redis.Client) {
	periods := r.Group("/payroll-periods")
	periods.Use(middleware.AuthMiddleware())
	{
		periods.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetAllPeriods,
		)

		periods.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetPeriodById,
		)

		periods.GET("/:id/summary",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetPeriodSummary,
		)

		periods.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			handler.CreatePeriod,
		)

		periods.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			handler.UpdatePeriod,
		)

		periods.POST("/:id/process",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			handler.ProcessPeriod,
		)

		periods.POST("/:id/approve",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "approve"),
			handler.ApprovePeriod,
		)

		// Generate menyentuh seluruh roster, jadi limit paling ketat.
		periods.POST("/:id/generate",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			handler.GeneratePeriod,
		)

		periods.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "delete"),
			handler.DeletePeriod,
		)
	}

	records := r.Group("/payroll-records")
	records.Use(middleware.AuthMiddleware())
	{
		records.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetAllRecords,
		)

		records.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetRecordById,
		)

		records.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			handler.CreateRecord,
		)

		records.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			handler.UpdateRecord,
		)

		records.POST("/:id/approve",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "approve"),
			handler.ApproveRecord,
		)

		records.POST("/:id/mark-paid",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "pay"),
			handler.MarkRecordPaid,
		)

		records.POST("/bulk-approve",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "approve"),
			handler.BulkApproveRecords,
		)

		records.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "delete"),
			handler.DeleteRecord,
		)
	}
}

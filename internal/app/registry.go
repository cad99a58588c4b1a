package app

import (
	"database/sql"

	"github.com/GeraldFishta/Bluespice-2.0/internal/employee"
	"github.com/GeraldFishta/Bluespice-2.0/internal/messaging/kafka"
	"github.com/GeraldFishta/Bluespice-2.0/internal/middleware"
	"github.com/GeraldFishta/Bluespice-2.0/internal/payroll"
	"github.com/GeraldFishta/Bluespice-2.0/internal/rbac"
	"github.com/GeraldFishta/Bluespice-2.0/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	periodRepo := payroll.NewPeriodRepository(gormDB)
	recordRepo := payroll.NewRecordRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	periodService := payroll.NewPeriodServiceWithOutbox(db, periodRepo, recordRepo, outboxRepo, rdb)
	recordService := payroll.NewRecordServiceWithOutbox(db, recordRepo, periodRepo, outboxRepo, rdb)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandlerWithRedis(periodService, recordService, rdb)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
	}

	return nil
}

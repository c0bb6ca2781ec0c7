package app

import (
	"database/sql"

	"go-leave/internal/balance"
	"go-leave/internal/leave"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/middleware"
	"go-leave/internal/notifier"
	"go-leave/internal/rbac"
	"go-leave/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	n notifier.Notifier,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Authorization ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	userService := user.NewService(db, userRepo, n)
	balanceService := balance.NewService(balanceRepo)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, n, rdb)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	balanceHandler := balance.NewHandler(balanceService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		user.RegisterRoutes(api, userHandler, enforcer)
		balance.RegisterRoutes(api, balanceHandler, enforcer)
		leave.RegisterRoutes(api, leaveHandler, enforcer, rdb)
	}

	return nil
}

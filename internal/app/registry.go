package app

import (
	"database/sql"

	"go-gemtrack/internal/activity"
	"go-gemtrack/internal/address"
	"go-gemtrack/internal/assignment"
	"go-gemtrack/internal/auth"
	"go-gemtrack/internal/auth/token"
	"go-gemtrack/internal/client"
	"go-gemtrack/internal/employee"
	"go-gemtrack/internal/messaging/kafka"
	"go-gemtrack/internal/middleware"
	"go-gemtrack/internal/packet"
	"go-gemtrack/internal/process"
	"go-gemtrack/internal/rbac"
	"go-gemtrack/internal/rbac/infra"
	"go-gemtrack/internal/report"
	"go-gemtrack/internal/shared/config"
	"go-gemtrack/internal/shared/counter"
	"go-gemtrack/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	addressRepo := address.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	processRepo := process.NewRepository(gormDB)
	packetRepo := packet.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	activityRepo := activity.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	tokens := token.NewManager(cfg.Auth.SessionSecret(), cfg.Auth.SessionTTL)
	authMiddleware := middleware.AuthMiddleware(tokens, cfg.Auth.CookieName)

	// --- Services ---
	authService := auth.NewService(db, userRepo, addressRepo, tokens, rbacService, logger)
	userService := user.NewService(userRepo, logger)
	addressService := address.NewService(addressRepo, logger)
	clientService := client.NewService(db, clientRepo, addressRepo, outboxRepo, rdb, logger)
	employeeService := employee.NewService(db, employeeRepo, addressRepo, outboxRepo, rdb, logger)
	processService := process.NewService(db, processRepo, outboxRepo, rdb, logger)
	packetService := packet.NewService(db, packetRepo, clientRepo, outboxRepo, rdb, logger)
	assignmentService := assignment.NewService(db, assignmentRepo, packetRepo, processRepo, employeeRepo, outboxRepo, logger)
	reportService := report.NewService(db, reportRepo, packetRepo, clientRepo, counterRepo, outboxRepo, logger)
	activityService := activity.NewService(activityRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.App.IsProduction(),
		MaxAge: cfg.Auth.SessionTTL,
	}, logger)
	userHandler := user.NewHandler(userService, logger)
	addressHandler := address.NewHandler(addressService, logger)
	clientHandler := client.NewHandler(clientService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	processHandler := process.NewHandler(processService, logger)
	packetHandler := packet.NewHandler(packetService, logger)
	assignmentHandler := assignment.NewHandler(assignmentService, logger)
	reportHandler := report.NewHandler(reportService, logger)
	activityHandler := activity.NewHandler(activityService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMiddleware, logger)
		user.RegisterRoutes(api, userHandler, rbacService, authMiddleware, logger)
		address.RegisterRoutes(api, addressHandler, rbacService, authMiddleware, logger)
		client.RegisterRoutes(api, clientHandler, rbacService, authMiddleware, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, authMiddleware, logger)
		process.RegisterRoutes(api, processHandler, rbacService, authMiddleware, logger)
		packet.RegisterRoutes(api, packetHandler, rbacService, authMiddleware, logger)
		assignment.RegisterRoutes(api, assignmentHandler, rbacService, authMiddleware, logger)
		report.RegisterRoutes(api, reportHandler, rbacService, authMiddleware, rdb, logger)
		activity.RegisterRoutes(api, activityHandler, rbacService, authMiddleware, logger)
	}

	return nil
}

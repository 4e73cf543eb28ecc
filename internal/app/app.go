package app

import (
	"go-gemtrack/internal/bootstrap"
	"go-gemtrack/internal/middleware"
	"go-gemtrack/internal/shared/config"
	"go-gemtrack/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RunAPI connects infrastructure, migrates, registers every module and
// serves until a shutdown signal arrives.
func RunAPI(cfg *config.Config) error {
	logger := zap.L().Named("app.api")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	logger.Info("database connection established")

	if err := Migrate(gormDB); err != nil {
		logger.Error("migrate failed", zap.Error(err))
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()
	logger.Info("redis connection established")

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb, zap.L()); err != nil {
		return err
	}

	return bootstrap.StartHTTPServer(
		router,
		bootstrap.ServerConfig{
			Port:         cfg.App.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		bootstrap.NewStdoutAuditLogger(),
		zap.L(),
	)
}

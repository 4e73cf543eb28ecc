package main

import (
	"log"

	"go-gemtrack/internal/app"
	"go-gemtrack/internal/shared/apperror"
	"go-gemtrack/internal/shared/config"
	"go-gemtrack/internal/shared/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	l := logger.New(cfg.Log, cfg.App.Env)
	defer l.Sync()
	zap.ReplaceGlobals(l)

	apperror.Init()

	if err := app.RunConsumer(cfg); err != nil {
		l.Fatal("run consumer failed", zap.Error(err))
	}
}

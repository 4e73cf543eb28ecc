package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go-gemtrack/internal/activity"
	"go-gemtrack/internal/events"
	"go-gemtrack/internal/messaging/kafka/consumer"
	"go-gemtrack/internal/shared/config"
	"go-gemtrack/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer records lifecycle events as activities until a shutdown
// signal arrives.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := gormDB.AutoMigrate(&activity.Activity{}); err != nil {
		return err
	}

	if cfg.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	activityService := activity.NewService(activity.NewRepository(gormDB), zap.L())

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.ActivityTopic,
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeActivity(ctx, reader, activityService, zap.L())

	logger.Info("consumer shutting down")
	return nil
}

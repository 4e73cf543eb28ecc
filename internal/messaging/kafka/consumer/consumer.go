package consumer

import (
	"context"
	"errors"

	"go-gemtrack/internal/activity"
	activityerrors "go-gemtrack/internal/activity/errors"
	"go-gemtrack/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeActivity records every lifecycle event from reader until ctx is
// cancelled. Offsets are committed only after the event is stored, so a
// failed write is redelivered. Undecodable messages are committed and dropped.
func ConsumeActivity(
	ctx context.Context,
	reader MessageReader,
	activityService activity.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.activity")
	log.Info("activity consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("activity consumer stopped")
				return
			}
			log.Error("fetch activity message failed", zap.Error(err))
			continue
		}

		event, err := events.Decode(msg.Value)
		if err != nil {
			log.Error("decode lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		recorded, err := activityService.Record(ctx, event)
		if err != nil {
			if errors.Is(err, activityerrors.ErrInvalidEvent) {
				log.Warn("lifecycle event rejected, skipping",
					zap.String("event_id", event.EventID),
					zap.String("event_type", event.EventType),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("record activity failed",
				zap.String("event_id", event.EventID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit activity message failed", zap.Error(err))
			continue
		}

		if recorded {
			log.Info("activity recorded",
				zap.String("event_id", event.EventID),
				zap.String("event_type", event.EventType),
				zap.String("user_id", event.UserID),
			)
		}
	}
}

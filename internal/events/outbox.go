package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-gemtrack/internal/messaging/kafka"
	"go-gemtrack/internal/shared/contextutil"

	"github.com/google/uuid"
)

// NewOutboxEvent builds a pending outbox row for a lifecycle event. data may
// be nil.
func NewOutboxEvent(ctx context.Context, userID, aggregateType, aggregateID, eventType string, data any) (kafka.OutboxEvent, error) {
	rid := contextutil.GetRequestID(ctx)
	e := LifecycleEvent{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		RequestID:     rid,
		UserID:        userID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		OccurredAt:    time.Now().UTC(),
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return kafka.OutboxEvent{}, err
		}
		e.Data = raw
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return kafka.OutboxEvent{}, err
	}

	return kafka.OutboxEvent{
		ID:            e.EventID,
		RequestID:     rid,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         ActivityTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}, nil
}

// Enqueue writes a lifecycle event inside tx. A nil repo is a no-op so
// services can run without messaging.
func Enqueue(
	ctx context.Context,
	repo kafka.OutboxRepository,
	tx *sql.Tx,
	userID, aggregateType, aggregateID, eventType string,
	data any,
) error {
	if repo == nil {
		return nil
	}
	event, err := NewOutboxEvent(ctx, userID, aggregateType, aggregateID, eventType, data)
	if err != nil {
		return err
	}
	return repo.WithTx(tx).Create(ctx, event)
}

package activity

import (
	"context"
	"strings"

	activityerrors "go-gemtrack/internal/activity/errors"
	"go-gemtrack/internal/events"
	"go-gemtrack/internal/shared/query"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=activity_service.go -destination=mock/activity_service_mock.go -package=mock
type Service interface {
	// Record stores a published lifecycle event. Redelivered events are
	// skipped and reported as not recorded.
	Record(ctx context.Context, e events.LifecycleEvent) (bool, error)
	List(ctx context.Context, userID string, req query.Request) (query.Page[ActivityResponse], error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("activity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activity.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, e events.LifecycleEvent) (bool, error) {
	userID, err := uuid.Parse(e.UserID)
	if err != nil || strings.TrimSpace(e.EventID) == "" {
		return false, activityerrors.ErrInvalidEvent
	}

	a := &Activity{
		ID:            uuid.New(),
		EventID:       e.EventID,
		EventType:     e.EventType,
		AggregateType: e.AggregateType,
		AggregateID:   e.AggregateID,
		RequestID:     e.RequestID,
		Payload:       string(e.Data),
		UserID:        userID,
		OccurredAt:    e.OccurredAt,
	}
	recorded, err := s.repo.Record(ctx, a)
	if err != nil {
		s.logger.Error("record activity failed", zap.String("event_id", e.EventID), zap.Error(err))
		return false, err
	}
	if !recorded {
		s.logger.Debug("activity already recorded", zap.String("event_id", e.EventID))
	}
	return recorded, nil
}

func (s *service) List(ctx context.Context, userID string, req query.Request) (query.Page[ActivityResponse], error) {
	s.logger.Debug("list activities requested", zap.String("user_id", userID))

	page, err := s.repo.List(ctx, userID, req)
	if err != nil {
		s.logger.Error("list activities failed", zap.Error(err))
		return query.Page[ActivityResponse]{}, err
	}
	return query.MapPage(page, ToResponse), nil
}

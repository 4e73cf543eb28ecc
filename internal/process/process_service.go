package process

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-gemtrack/internal/events"
	"go-gemtrack/internal/messaging/kafka"
	processerrors "go-gemtrack/internal/process/errors"
	"go-gemtrack/internal/shared/contextutil"
	"go-gemtrack/internal/shared/query"
	"go-gemtrack/internal/tenant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const ProcessOptionsKeyPrefix = "processes:options:"

func GetProcessOptionsKey(userID string) string {
	return ProcessOptionsKeyPrefix + userID
}

//go:generate mockgen -source=process_service.go -destination=mock/process_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req ProcessRequest) (ProcessResponse, error)
	GetByID(ctx context.Context, userID, id string) (ProcessResponse, error)
	List(ctx context.Context, userID string, req query.Request) (query.Page[ProcessResponse], error)
	GetOptions(ctx context.Context, userID string) ([]ProcessOptionResponse, error)
	Update(ctx context.Context, userID, id string, req ProcessRequest) (ProcessResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("process.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("process.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, userID string, req ProcessRequest) (ProcessResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create process requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("process_id", req.ProcessID),
	)

	taken, err := s.repo.ProcessIDTaken(ctx, userID, req.ProcessID, "")
	if err != nil {
		s.logger.Error("create process check process id failed", zap.Error(err))
		return ProcessResponse{}, err
	}
	if taken {
		return ProcessResponse{}, processerrors.ErrProcessIDAlreadyExists
	}

	p := &Process{ID: uuid.New(), UserID: uuid.MustParse(userID)}
	req.applyTo(p)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create process begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ProcessResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		s.logger.Error("create process persist failed", zap.Error(err))
		return ProcessResponse{}, mapRepositoryError(err)
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateProcess, p.ID.String(), events.ProcessCreated,
		map[string]string{"processId": p.ProcessCode, "name": p.Name}); err != nil {
		s.logger.Error("create process outbox persist failed", zap.Error(err))
		return ProcessResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create process commit failed", zap.String("request_id", rid), zap.Error(err))
		return ProcessResponse{}, err
	}

	s.invalidateOptions(ctx, userID)
	s.logger.Info("create process success", zap.String("request_id", rid), zap.String("process_id", p.ID.String()))
	return ToResponse(*p), nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (ProcessResponse, error) {
	s.logger.Debug("get process by id requested", zap.String("user_id", userID), zap.String("process_id", id))
	if !tenant.ValidID(id) {
		return ProcessResponse{}, processerrors.ErrProcessNotFound
	}

	p, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("get process by id failed", zap.String("process_id", id), zap.Error(err))
		return ProcessResponse{}, mapRepositoryError(err)
	}
	return ToResponse(*p), nil
}

func (s *service) List(ctx context.Context, userID string, req query.Request) (query.Page[ProcessResponse], error) {
	page, err := s.repo.List(ctx, userID, req)
	if err != nil {
		s.logger.Error("list processes failed", zap.String("user_id", userID), zap.Error(err))
		return query.Page[ProcessResponse]{}, err
	}
	return query.MapPage(page, ToResponse), nil
}

func (s *service) GetOptions(ctx context.Context, userID string) ([]ProcessOptionResponse, error) {
	cacheKey := GetProcessOptionsKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []ProcessOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		processes, err := s.repo.FindOptions(ctx, userID)
		if err != nil {
			return nil, err
		}

		resp := toOptions(processes)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, string(data), time.Hour)
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get process options failed", zap.Error(err))
		return nil, err
	}

	return v.([]ProcessOptionResponse), nil
}

func (s *service) Update(ctx context.Context, userID, id string, req ProcessRequest) (ProcessResponse, error) {
	s.logger.Debug("update process requested", zap.String("user_id", userID), zap.String("process_id", id))
	if !tenant.ValidID(id) {
		return ProcessResponse{}, processerrors.ErrProcessNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update process begin tx failed", zap.Error(err))
		return ProcessResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("update process fetch existing failed", zap.String("process_id", id), zap.Error(err))
		return ProcessResponse{}, mapRepositoryError(err)
	}

	if req.ProcessID != p.ProcessCode {
		taken, err := qtx.ProcessIDTaken(ctx, userID, req.ProcessID, id)
		if err != nil {
			s.logger.Error("update process check process id failed", zap.Error(err))
			return ProcessResponse{}, err
		}
		if taken {
			return ProcessResponse{}, processerrors.ErrProcessIDAlreadyExists
		}
	}

	req.applyTo(p)
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update process persist failed", zap.String("process_id", id), zap.Error(err))
		return ProcessResponse{}, mapRepositoryError(err)
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateProcess, id, events.ProcessUpdated, nil); err != nil {
		s.logger.Error("update process outbox persist failed", zap.Error(err))
		return ProcessResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update process commit failed", zap.Error(err))
		return ProcessResponse{}, err
	}

	s.invalidateOptions(ctx, userID)
	s.logger.Info("update process success", zap.String("process_id", id))
	return ToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	s.logger.Debug("delete process requested", zap.String("user_id", userID), zap.String("process_id", id))
	if !tenant.ValidID(id) {
		return processerrors.ErrProcessNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete process begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, userID, id); err != nil {
		s.logger.Error("delete process failed", zap.String("process_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateProcess, id, events.ProcessDeleted, nil); err != nil {
		s.logger.Error("delete process outbox persist failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete process commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, userID)
	s.logger.Info("delete process success", zap.String("process_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetProcessOptionsKey(userID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate process options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-gemtrack/internal/address"
	clienterrors "go-gemtrack/internal/client/errors"
	"go-gemtrack/internal/events"
	"go-gemtrack/internal/messaging/kafka"
	"go-gemtrack/internal/shared/contextutil"
	"go-gemtrack/internal/shared/query"
	"go-gemtrack/internal/tenant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const ClientOptionsKeyPrefix = "clients:options:"

func GetClientOptionsKey(userID string) string {
	return ClientOptionsKeyPrefix + userID
}

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateClientRequest) (ClientResponse, error)
	GetByID(ctx context.Context, userID, id string) (ClientResponse, error)
	GetByClientID(ctx context.Context, userID, clientID string) (ClientResponse, error)
	List(ctx context.Context, userID string, req query.Request) (query.Page[ClientResponse], error)
	GetOptions(ctx context.Context, userID string) ([]ClientOptionResponse, error)
	Update(ctx context.Context, userID, id string, req UpdateClientRequest) (ClientResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	addressRepo address.Repository
	outbox      kafka.OutboxRepository
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	addressRepo address.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("client.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("client.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		addressRepo: addressRepo,
		outbox:      outboxRepo,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, userID string, req CreateClientRequest) (ClientResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create client requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("client_id", req.ClientID),
	)

	taken, err := s.repo.ClientIDTaken(ctx, userID, req.ClientID, "")
	if err != nil {
		s.logger.Error("create client check client id failed", zap.Error(err))
		return ClientResponse{}, err
	}
	if taken {
		return ClientResponse{}, clienterrors.ErrClientIDAlreadyExists
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create client begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	addr := address.NewAddress(req.Address)
	if err := s.addressRepo.WithTx(tx).Create(ctx, addr); err != nil {
		s.logger.Error("create client address persist failed", zap.Error(err))
		return ClientResponse{}, err
	}

	c := &Client{
		ID:         uuid.New(),
		ClientCode: req.ClientID,
		Name:       req.Name,
		Email:      req.Email,
		PhoneNo:    req.PhoneNo,
		GstInNo:    req.GstInNo,
		AddressID:  addr.ID,
		UserID:     uuid.MustParse(userID),
	}
	if err := s.repo.WithTx(tx).Create(ctx, c); err != nil {
		s.logger.Error("create client persist failed", zap.Error(err))
		return ClientResponse{}, mapRepositoryError(err)
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateClient, c.ID.String(), events.ClientCreated,
		map[string]string{"clientId": c.ClientCode, "name": c.Name}); err != nil {
		s.logger.Error("create client outbox persist failed", zap.String("client_id", c.ID.String()), zap.Error(err))
		return ClientResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create client commit failed", zap.String("request_id", rid), zap.Error(err))
		return ClientResponse{}, err
	}

	s.invalidateOptions(ctx, userID)
	s.logger.Info("create client success", zap.String("request_id", rid), zap.String("client_id", c.ID.String()))

	c.Address = addr
	return ToResponse(*c), nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (ClientResponse, error) {
	s.logger.Debug("get client by id requested", zap.String("user_id", userID), zap.String("client_id", id))
	if !tenant.ValidID(id) {
		return ClientResponse{}, clienterrors.ErrClientNotFound
	}

	c, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("get client by id failed", zap.String("client_id", id), zap.Error(err))
		return ClientResponse{}, mapRepositoryError(err)
	}
	return ToResponse(*c), nil
}

func (s *service) GetByClientID(ctx context.Context, userID, clientID string) (ClientResponse, error) {
	s.logger.Debug("get client by client id requested", zap.String("user_id", userID), zap.String("client_id", clientID))

	c, err := s.repo.FindByClientID(ctx, userID, clientID)
	if err != nil {
		s.logger.Error("get client by client id failed", zap.String("client_id", clientID), zap.Error(err))
		return ClientResponse{}, mapRepositoryError(err)
	}
	return ToResponse(*c), nil
}

func (s *service) List(ctx context.Context, userID string, req query.Request) (query.Page[ClientResponse], error) {
	s.logger.Debug("list clients requested", zap.String("user_id", userID))

	page, err := s.repo.List(ctx, userID, req)
	if err != nil {
		s.logger.Error("list clients failed", zap.Error(err))
		return query.Page[ClientResponse]{}, err
	}
	return query.MapPage(page, ToResponse), nil
}

func (s *service) GetOptions(ctx context.Context, userID string) ([]ClientOptionResponse, error) {
	cacheKey := GetClientOptionsKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []ClientOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		clients, err := s.repo.FindOptions(ctx, userID)
		if err != nil {
			return nil, err
		}

		resp := toOptions(clients)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, string(data), time.Hour).Err(); err != nil {
					s.logger.Warn("cache client options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get client options failed", zap.Error(err))
		return nil, err
	}

	return v.([]ClientOptionResponse), nil
}

func (s *service) Update(ctx context.Context, userID, id string, req UpdateClientRequest) (ClientResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update client requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("client_id", id),
	)
	if !tenant.ValidID(id) {
		return ClientResponse{}, clienterrors.ErrClientNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update client begin tx failed", zap.Error(err))
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c, err := qtx.FindByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("update client fetch existing failed", zap.String("client_id", id), zap.Error(err))
		return ClientResponse{}, mapRepositoryError(err)
	}

	if req.ClientID != c.ClientCode {
		taken, err := qtx.ClientIDTaken(ctx, userID, req.ClientID, id)
		if err != nil {
			s.logger.Error("update client check client id failed", zap.Error(err))
			return ClientResponse{}, err
		}
		if taken {
			return ClientResponse{}, clienterrors.ErrClientIDAlreadyExists
		}
	}

	req.applyTo(c)
	if err := qtx.Update(ctx, c); err != nil {
		s.logger.Error("update client persist failed", zap.String("client_id", id), zap.Error(err))
		return ClientResponse{}, mapRepositoryError(err)
	}

	if req.Address != nil && c.Address != nil {
		req.Address.ApplyTo(c.Address)
		if err := s.addressRepo.WithTx(tx).Update(ctx, c.Address); err != nil {
			s.logger.Error("update client address failed", zap.String("client_id", id), zap.Error(err))
			return ClientResponse{}, err
		}
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateClient, id, events.ClientUpdated, nil); err != nil {
		s.logger.Error("update client outbox persist failed", zap.String("client_id", id), zap.Error(err))
		return ClientResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update client commit failed", zap.Error(err))
		return ClientResponse{}, err
	}

	s.invalidateOptions(ctx, userID)
	s.logger.Info("update client success", zap.String("client_id", id))

	return ToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	s.logger.Debug("delete client requested", zap.String("user_id", userID), zap.String("client_id", id))
	if !tenant.ValidID(id) {
		return clienterrors.ErrClientNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete client begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c, err := qtx.FindByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("delete client fetch failed", zap.String("client_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, userID, id); err != nil {
		s.logger.Error("delete client failed", zap.String("client_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.addressRepo.WithTx(tx).Delete(ctx, c.AddressID.String()); err != nil {
		s.logger.Error("delete client address failed", zap.String("client_id", id), zap.Error(err))
		return err
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateClient, id, events.ClientDeleted,
		map[string]string{"clientId": c.ClientCode}); err != nil {
		s.logger.Error("delete client outbox persist failed", zap.String("client_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete client commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, userID)
	s.logger.Info("delete client success", zap.String("client_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetClientOptionsKey(userID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate client options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

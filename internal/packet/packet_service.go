package packet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-gemtrack/internal/client"
	clienterrors "go-gemtrack/internal/client/errors"
	"go-gemtrack/internal/events"
	"go-gemtrack/internal/messaging/kafka"
	packeterrors "go-gemtrack/internal/packet/errors"
	"go-gemtrack/internal/shared/contextutil"
	"go-gemtrack/internal/shared/query"
	"go-gemtrack/internal/tenant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const PacketOptionsKeyPrefix = "diamond-packets:options:"

func GetPacketOptionsKey(userID string) string {
	return PacketOptionsKeyPrefix + userID
}

type Service interface {
	Create(ctx context.Context, userID string, req PacketRequest) (PacketResponse, error)
	GetByID(ctx context.Context, userID, id string) (PacketResponse, error)
	List(ctx context.Context, userID string, req query.Request) (query.Page[PacketResponse], error)
	GetOptions(ctx context.Context, userID string) ([]PacketOptionResponse, error)
	Update(ctx context.Context, userID, id string, req PacketRequest) (PacketResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	clientRepo client.Repository
	outbox     kafka.OutboxRepository
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	clientRepo client.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("packet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("packet.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		clientRepo: clientRepo,
		outbox:     outboxRepo,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

// ensureClient rejects client ids that are not owned by userID.
func (s *service) ensureClient(ctx context.Context, userID, clientID string) (*client.Client, error) {
	if !tenant.ValidID(clientID) {
		return nil, clienterrors.ErrClientNotFound
	}
	c, err := s.clientRepo.FindByID(ctx, userID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, clienterrors.ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *service) Create(ctx context.Context, userID string, req PacketRequest) (PacketResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create diamond packet requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("diamond_packet_id", req.DiamondPacketID),
	)

	owner, err := s.ensureClient(ctx, userID, req.ClientID)
	if err != nil {
		s.logger.Warn("create diamond packet client check failed", zap.String("client_id", req.ClientID), zap.Error(err))
		return PacketResponse{}, err
	}

	taken, err := s.repo.PacketIDTaken(ctx, userID, req.DiamondPacketID, "")
	if err != nil {
		s.logger.Error("create diamond packet check id failed", zap.Error(err))
		return PacketResponse{}, err
	}
	if taken {
		return PacketResponse{}, packeterrors.ErrPacketIDAlreadyExists
	}

	p := &DiamondPacket{ID: uuid.New(), UserID: uuid.MustParse(userID)}
	req.applyTo(p)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create diamond packet begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PacketResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		s.logger.Error("create diamond packet persist failed", zap.Error(err))
		return PacketResponse{}, mapRepositoryError(err)
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregatePacket, p.ID.String(), events.PacketCreated,
		map[string]string{"diamondPacketId": p.PacketCode, "clientId": p.ClientID.String()}); err != nil {
		s.logger.Error("create diamond packet outbox persist failed", zap.String("packet_id", p.ID.String()), zap.Error(err))
		return PacketResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create diamond packet commit failed", zap.String("request_id", rid), zap.Error(err))
		return PacketResponse{}, err
	}

	s.invalidateOptions(ctx, userID)
	s.logger.Info("create diamond packet success", zap.String("request_id", rid), zap.String("packet_id", p.ID.String()))

	p.Client = owner
	return ToResponse(*p), nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (PacketResponse, error) {
	s.logger.Debug("get diamond packet by id requested", zap.String("user_id", userID), zap.String("packet_id", id))
	if !tenant.ValidID(id) {
		return PacketResponse{}, packeterrors.ErrPacketNotFound
	}

	p, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("get diamond packet by id failed", zap.String("packet_id", id), zap.Error(err))
		return PacketResponse{}, mapRepositoryError(err)
	}

	// history is keyed by the canonical lowercase id, not the path value
	key := p.ID.String()
	history, err := s.repo.CompletedHistory(ctx, []string{key})
	if err != nil {
		s.logger.Error("get diamond packet history failed", zap.String("packet_id", id), zap.Error(err))
		return PacketResponse{}, err
	}

	return withFinalWeight(*p, history[key]), nil
}

func (s *service) List(ctx context.Context, userID string, req query.Request) (query.Page[PacketResponse], error) {
	s.logger.Debug("list diamond packets requested", zap.String("user_id", userID))

	page, err := s.repo.List(ctx, userID, req)
	if err != nil {
		s.logger.Error("list diamond packets failed", zap.Error(err))
		return query.Page[PacketResponse]{}, err
	}

	ids := make([]string, len(page.Rows))
	for i, p := range page.Rows {
		ids[i] = p.ID.String()
	}
	history, err := s.repo.CompletedHistory(ctx, ids)
	if err != nil {
		s.logger.Error("list diamond packets history failed", zap.Error(err))
		return query.Page[PacketResponse]{}, err
	}

	return query.MapPage(page, func(p DiamondPacket) PacketResponse {
		return withFinalWeight(p, history[p.ID.String()])
	}), nil
}

func (s *service) GetOptions(ctx context.Context, userID string) ([]PacketOptionResponse, error) {
	cacheKey := GetPacketOptionsKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []PacketOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		packets, err := s.repo.FindOptions(ctx, userID)
		if err != nil {
			return nil, err
		}

		resp := toOptions(packets)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, string(data), time.Hour).Err(); err != nil {
					s.logger.Warn("cache diamond packet options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get diamond packet options failed", zap.Error(err))
		return nil, err
	}

	return v.([]PacketOptionResponse), nil
}

func (s *service) Update(ctx context.Context, userID, id string, req PacketRequest) (PacketResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update diamond packet requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("packet_id", id),
	)
	if !tenant.ValidID(id) {
		return PacketResponse{}, packeterrors.ErrPacketNotFound
	}

	owner, err := s.ensureClient(ctx, userID, req.ClientID)
	if err != nil {
		s.logger.Warn("update diamond packet client check failed", zap.String("client_id", req.ClientID), zap.Error(err))
		return PacketResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update diamond packet begin tx failed", zap.Error(err))
		return PacketResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("update diamond packet fetch existing failed", zap.String("packet_id", id), zap.Error(err))
		return PacketResponse{}, mapRepositoryError(err)
	}

	if req.DiamondPacketID != p.PacketCode {
		taken, err := qtx.PacketIDTaken(ctx, userID, req.DiamondPacketID, id)
		if err != nil {
			s.logger.Error("update diamond packet check id failed", zap.Error(err))
			return PacketResponse{}, err
		}
		if taken {
			return PacketResponse{}, packeterrors.ErrPacketIDAlreadyExists
		}
	}

	req.applyTo(p)
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update diamond packet persist failed", zap.String("packet_id", id), zap.Error(err))
		return PacketResponse{}, mapRepositoryError(err)
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregatePacket, id, events.PacketUpdated, nil); err != nil {
		s.logger.Error("update diamond packet outbox persist failed", zap.String("packet_id", id), zap.Error(err))
		return PacketResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update diamond packet commit failed", zap.Error(err))
		return PacketResponse{}, err
	}

	s.invalidateOptions(ctx, userID)
	s.logger.Info("update diamond packet success", zap.String("packet_id", id))

	p.Client = owner
	return ToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	s.logger.Debug("delete diamond packet requested", zap.String("user_id", userID), zap.String("packet_id", id))
	if !tenant.ValidID(id) {
		return packeterrors.ErrPacketNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete diamond packet begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("delete diamond packet fetch failed", zap.String("packet_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, userID, id); err != nil {
		s.logger.Error("delete diamond packet failed", zap.String("packet_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregatePacket, id, events.PacketDeleted,
		map[string]string{"diamondPacketId": p.PacketCode}); err != nil {
		s.logger.Error("delete diamond packet outbox persist failed", zap.String("packet_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete diamond packet commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, userID)
	s.logger.Info("delete diamond packet success", zap.String("packet_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetPacketOptionsKey(userID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate diamond packet options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

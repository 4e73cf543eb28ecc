package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-gemtrack/internal/address"
	employeeerrors "go-gemtrack/internal/employee/errors"
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

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(userID string) string {
	return EmployeeOptionsKeyPrefix + userID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, userID, id string) (EmployeeResponse, error)
	GetByEmployeeID(ctx context.Context, userID, employeeID string) (EmployeeResponse, error)
	List(ctx context.Context, userID string, req query.Request) (query.Page[EmployeeResponse], error)
	GetOptions(ctx context.Context, userID string) ([]EmployeeOptionResponse, error)
	Update(ctx context.Context, userID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
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
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
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

func (s *service) Create(ctx context.Context, userID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("employee_id", req.EmployeeID),
	)

	taken, err := s.repo.EmployeeIDTaken(ctx, userID, req.EmployeeID, "")
	if err != nil {
		s.logger.Error("create employee check employee id failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if taken {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeIDAlreadyExists
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	addr := address.NewAddress(req.Address)
	if err := s.addressRepo.WithTx(tx).Create(ctx, addr); err != nil {
		s.logger.Error("create employee address persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	c := &Employee{
		ID:           uuid.New(),
		EmployeeCode: req.EmployeeID,
		Name:         req.Name,
		Email:        req.Email,
		PhoneNo:      req.PhoneNo,
		PanNo:        req.PanNo,
		AddressID:    addr.ID,
		UserID:       uuid.MustParse(userID),
	}
	if err := s.repo.WithTx(tx).Create(ctx, c); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateEmployee, c.ID.String(), events.EmployeeCreated,
		map[string]string{"employeeId": c.EmployeeCode, "name": c.Name}); err != nil {
		s.logger.Error("create employee outbox persist failed", zap.String("employee_id", c.ID.String()), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, userID)
	s.logger.Info("create employee success", zap.String("request_id", rid), zap.String("employee_id", c.ID.String()))

	c.Address = addr
	return ToResponse(*c), nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("user_id", userID), zap.String("employee_id", id))
	if !tenant.ValidID(id) {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	c, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return ToResponse(*c), nil
}

func (s *service) GetByEmployeeID(ctx context.Context, userID, employeeID string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by employee id requested", zap.String("user_id", userID), zap.String("employee_id", employeeID))

	c, err := s.repo.FindByEmployeeID(ctx, userID, employeeID)
	if err != nil {
		s.logger.Error("get employee by employee id failed", zap.String("employee_id", employeeID), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return ToResponse(*c), nil
}

func (s *service) List(ctx context.Context, userID string, req query.Request) (query.Page[EmployeeResponse], error) {
	s.logger.Debug("list employees requested", zap.String("user_id", userID))

	page, err := s.repo.List(ctx, userID, req)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return query.Page[EmployeeResponse]{}, err
	}
	return query.MapPage(page, ToResponse), nil
}

func (s *service) GetOptions(ctx context.Context, userID string) ([]EmployeeOptionResponse, error) {
	cacheKey := GetEmployeeOptionsKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		employees, err := s.repo.FindOptions(ctx, userID)
		if err != nil {
			return nil, err
		}

		resp := toOptions(employees)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, string(data), time.Hour).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) Update(ctx context.Context, userID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("employee_id", id),
	)
	if !tenant.ValidID(id) {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c, err := qtx.FindByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.EmployeeID != c.EmployeeCode {
		taken, err := qtx.EmployeeIDTaken(ctx, userID, req.EmployeeID, id)
		if err != nil {
			s.logger.Error("update employee check employee id failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if taken {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeIDAlreadyExists
		}
	}

	req.applyTo(c)
	if err := qtx.Update(ctx, c); err != nil {
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.Address != nil && c.Address != nil {
		req.Address.ApplyTo(c.Address)
		if err := s.addressRepo.WithTx(tx).Update(ctx, c.Address); err != nil {
			s.logger.Error("update employee address failed", zap.String("employee_id", id), zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateEmployee, id, events.EmployeeUpdated, nil); err != nil {
		s.logger.Error("update employee outbox persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, userID)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return ToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	s.logger.Debug("delete employee requested", zap.String("user_id", userID), zap.String("employee_id", id))
	if !tenant.ValidID(id) {
		return employeeerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c, err := qtx.FindByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("delete employee fetch failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, userID, id); err != nil {
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.addressRepo.WithTx(tx).Delete(ctx, c.AddressID.String()); err != nil {
		s.logger.Error("delete employee address failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateEmployee, id, events.EmployeeDeleted,
		map[string]string{"employeeId": c.EmployeeCode}); err != nil {
		s.logger.Error("delete employee outbox persist failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, userID)
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(userID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

package address

import (
	"context"

	addresserrors "go-gemtrack/internal/address/errors"
	"go-gemtrack/internal/tenant"

	"go.uber.org/zap"
)

//go:generate mockgen -source=address_service.go -destination=mock/address_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, userID, id string) (AddressResponse, error)
	Update(ctx context.Context, userID, id string, req AddressRequest) (AddressResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("address.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("address.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetByID(ctx context.Context, userID, id string) (AddressResponse, error) {
	s.logger.Debug("get address requested", zap.String("user_id", userID), zap.String("address_id", id))
	if !tenant.ValidID(id) {
		return AddressResponse{}, addresserrors.ErrAddressNotFound
	}

	a, err := s.repo.FindVisible(ctx, userID, id)
	if err != nil {
		s.logger.Error("get address failed", zap.String("address_id", id), zap.Error(err))
		return AddressResponse{}, mapRepositoryError(err)
	}
	return ToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, userID, id string, req AddressRequest) (AddressResponse, error) {
	s.logger.Debug("update address requested", zap.String("user_id", userID), zap.String("address_id", id))
	if !tenant.ValidID(id) {
		return AddressResponse{}, addresserrors.ErrAddressNotFound
	}

	a, err := s.repo.FindVisible(ctx, userID, id)
	if err != nil {
		s.logger.Error("update address fetch failed", zap.String("address_id", id), zap.Error(err))
		return AddressResponse{}, mapRepositoryError(err)
	}

	req.ApplyTo(a)
	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("update address failed", zap.String("address_id", id), zap.Error(err))
		return AddressResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update address success", zap.String("address_id", id))
	return ToResponse(*a), nil
}

package user

import (
	"context"
	"strings"

	"go-gemtrack/internal/shared/contextutil"
	usererrors "go-gemtrack/internal/user/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetProfile(ctx context.Context, userID string) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetProfile(ctx context.Context, userID string) (ProfileResponse, error) {
	s.logger.Debug("get profile requested", contextutil.Fields(ctx)...)

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Error("get profile failed", zap.String("user_id", userID), zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return ToProfileResponse(*u), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error) {
	s.logger.Debug("update profile requested", zap.String("user_id", userID))

	email := strings.TrimSpace(req.Email)
	taken, err := s.repo.EmailTaken(ctx, email, userID)
	if err != nil {
		s.logger.Error("update profile email check failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	if taken {
		return ProfileResponse{}, usererrors.ErrEmailInUse
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Error("update profile fetch failed", zap.String("user_id", userID), zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	u.Name = req.Name
	u.Email = email
	u.PhoneNo = req.PhoneNo
	u.GstInNo = req.GstInNo

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update profile failed", zap.String("user_id", userID), zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update profile success", zap.String("user_id", userID))
	return ToProfileResponse(*u), nil
}

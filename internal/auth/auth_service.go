package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-gemtrack/internal/address"
	autherrors "go-gemtrack/internal/auth/errors"
	"go-gemtrack/internal/rbac"
	"go-gemtrack/internal/shared/contextutil"
	"go-gemtrack/internal/shared/dbtx"
	"go-gemtrack/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenIssuer signs a session token for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (user.ProfileResponse, error)
	Login(ctx context.Context, email, password string) (Session, error)
	GetMe(ctx context.Context, userID string) (user.ProfileResponse, error)
}

type service struct {
	db          *sql.DB
	userRepo    user.Repository
	addressRepo address.Repository
	tokens      TokenIssuer
	rbac        rbac.Service
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	userRepo user.Repository,
	addressRepo address.Repository,
	tokens TokenIssuer,
	rbacService rbac.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:          db,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		tokens:      tokens,
		rbac:        rbacService,
		logger:      l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (user.ProfileResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	email := strings.TrimSpace(req.Email)
	s.logger.Debug("register requested", zap.String("request_id", rid), zap.String("email", email))

	taken, err := s.userRepo.EmailTaken(ctx, email, "")
	if err != nil {
		s.logger.Error("register email check failed", zap.Error(err))
		return user.ProfileResponse{}, err
	}
	if taken {
		return user.ProfileResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("register hash password failed", zap.Error(err))
		return user.ProfileResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return user.ProfileResponse{}, err
	}
	defer tx.Rollback()

	addr := address.NewAddress(req.Address)
	if err := s.addressRepo.WithTx(tx).Create(ctx, addr); err != nil {
		s.logger.Error("register address persist failed", zap.Error(err))
		return user.ProfileResponse{}, err
	}

	u := &user.User{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     email,
		Password:  string(hashed),
		PhoneNo:   req.PhoneNo,
		GstInNo:   req.GstInNo,
		AddressID: addr.ID,
	}
	if err := s.userRepo.WithTx(tx).Create(ctx, u); err != nil {
		s.logger.Error("register user persist failed", zap.Error(err))
		if dbtx.IsUniqueViolation(err, "") {
			return user.ProfileResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		return user.ProfileResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register commit failed", zap.String("request_id", rid), zap.Error(err))
		return user.ProfileResponse{}, err
	}

	if err := s.rbac.LoadUserPolicy(u.ID.String()); err != nil {
		s.logger.Error("register load policy failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return user.ProfileResponse{}, err
	}

	s.logger.Info("register success", zap.String("request_id", rid), zap.String("user_id", u.ID.String()))
	u.Address = addr
	return user.ToProfileResponse(*u), nil
}

func (s *service) Login(ctx context.Context, email, password string) (Session, error) {
	s.logger.Debug("login requested", zap.String("email", email))

	u, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Session{}, autherrors.ErrUserNotFound
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Info("login wrong password", zap.String("user_id", u.ID.String()))
		return Session{}, autherrors.ErrWrongPassword
	}

	if err := s.rbac.LoadUserPolicy(u.ID.String()); err != nil {
		s.logger.Error("login load policy failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return Session{}, err
	}

	token, expiresAt, err := s.tokens.Issue(u.ID.String())
	if err != nil {
		s.logger.Error("login issue token failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return Session{}, err
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()))
	return Session{Token: token, ExpiresAt: expiresAt, User: user.ToProfileResponse(*u)}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (user.ProfileResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.ProfileResponse{}, autherrors.ErrSessionUserNotFound
		}
		s.logger.Error("get me failed", zap.String("user_id", userID), zap.Error(err))
		return user.ProfileResponse{}, err
	}
	return user.ToProfileResponse(*u), nil
}

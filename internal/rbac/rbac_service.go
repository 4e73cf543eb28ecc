package rbac

import (
	"sync"

	"go-gemtrack/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

const OwnerRole = "owner"

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadUserPolicy(userID string) error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	loaded   map[string]bool
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		enforcer: enforcer,
		loaded:   make(map[string]bool),
		logger:   l,
	}
}

func (s *service) LoadUserPolicy(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadUserPolicyUnlocked(userID)
}

// Every user is the owner of their own domain, which is keyed by the user id.
func (s *service) loadUserPolicyUnlocked(userID string) error {
	if s.loaded[userID] {
		return nil
	}

	if _, err := s.enforcer.AddGroupingPolicy(userID, OwnerRole, userID); err != nil {
		return err
	}

	rules := make([][]string, 0, len(domain.Resources)*len(domain.Actions))
	for _, res := range domain.Resources {
		for _, act := range domain.Actions {
			rules = append(rules, []string{OwnerRole, userID, res, act})
		}
	}
	if _, err := s.enforcer.AddPolicies(rules); err != nil {
		return err
	}

	s.loaded[userID] = true
	s.logger.Debug("rbac load policy", zap.String("user_id", userID), zap.Int("rules", len(rules)))
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.UserID == "" {
		return false, nil
	}
	if err := s.loadUserPolicyUnlocked(req.UserID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.UserID, req.UserID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("user_id", req.UserID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("user_id", req.UserID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

package assignment

import (
	"context"
	"database/sql"

	assignmenterrors "go-gemtrack/internal/assignment/errors"
	"go-gemtrack/internal/domain"
	"go-gemtrack/internal/employee"
	employeeerrors "go-gemtrack/internal/employee/errors"
	"go-gemtrack/internal/events"
	"go-gemtrack/internal/messaging/kafka"
	"go-gemtrack/internal/packet"
	packeterrors "go-gemtrack/internal/packet/errors"
	"go-gemtrack/internal/process"
	processerrors "go-gemtrack/internal/process/errors"
	"go-gemtrack/internal/shared/contextutil"
	"go-gemtrack/internal/shared/query"
	"go-gemtrack/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Assign(ctx context.Context, userID, packetID string, req AssignmentRequest) (AssignmentResponse, error)
	GetByID(ctx context.Context, userID, packetID, id string) (AssignmentResponse, error)
	List(ctx context.Context, userID, packetID string, req query.Request) (query.Page[AssignmentResponse], error)
	Update(ctx context.Context, userID, packetID, id string, req AssignmentRequest) (AssignmentResponse, error)
	Delete(ctx context.Context, userID, packetID, id string) error
}

type service struct {
	db           *sql.DB
	repo         Repository
	packetRepo   packet.Repository
	processRepo  process.Repository
	employeeRepo employee.Repository
	outbox       kafka.OutboxRepository
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	packetRepo packet.Repository,
	processRepo process.Repository,
	employeeRepo employee.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		packetRepo:   packetRepo,
		processRepo:  processRepo,
		employeeRepo: employeeRepo,
		outbox:       outboxRepo,
		logger:       l,
	}
}

// references loads the process and employee named by req inside userID's scope.
func (s *service) references(ctx context.Context, userID string, req AssignmentRequest) (*process.Process, *employee.Employee, error) {
	if !tenant.ValidID(req.ProcessID) {
		return nil, nil, processerrors.ErrProcessNotFound
	}
	if !tenant.ValidID(req.EmployeeID) {
		return nil, nil, employeeerrors.ErrEmployeeNotFound
	}

	proc, err := s.processRepo.FindByID(ctx, userID, req.ProcessID)
	if err != nil {
		return nil, nil, mapLookupError(err, processerrors.ErrProcessNotFound)
	}
	emp, err := s.employeeRepo.FindByID(ctx, userID, req.EmployeeID)
	if err != nil {
		return nil, nil, mapLookupError(err, employeeerrors.ErrEmployeeNotFound)
	}
	return proc, emp, nil
}

func (s *service) ensurePacket(ctx context.Context, userID, packetID string) error {
	if !tenant.ValidID(packetID) {
		return packeterrors.ErrPacketNotFound
	}
	if _, err := s.packetRepo.FindByID(ctx, userID, packetID); err != nil {
		return mapLookupError(err, packeterrors.ErrPacketNotFound)
	}
	return nil
}

func eventPayload(a *DiamondPacketProcess) map[string]any {
	payload := map[string]any{
		"diamondPacketId": a.DiamondPacketID.String(),
		"processId":       a.ProcessID.String(),
		"employeeId":      a.EmployeeID.String(),
		"status":          a.Status,
	}
	if a.AfterWeight != nil {
		payload["afterWeight"] = a.AfterWeight.String()
	}
	return payload
}

func (s *service) Assign(ctx context.Context, userID, packetID string, req AssignmentRequest) (AssignmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("assign process requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("packet_id", packetID),
		zap.String("process_id", req.ProcessID),
	)

	if err := s.ensurePacket(ctx, userID, packetID); err != nil {
		s.logger.Warn("assign process packet check failed", zap.String("packet_id", packetID), zap.Error(err))
		return AssignmentResponse{}, err
	}
	proc, emp, err := s.references(ctx, userID, req)
	if err != nil {
		s.logger.Warn("assign process reference check failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	a := &DiamondPacketProcess{
		ID:              uuid.New(),
		DiamondPacketID: uuid.MustParse(packetID),
		UserID:          uuid.MustParse(userID),
	}
	req.applyTo(a)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assign process begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, a); err != nil {
		s.logger.Error("assign process persist failed", zap.Error(err))
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	eventType := events.AssignmentCreated
	if a.Status == domain.StatusCompleted {
		eventType = events.AssignmentCompleted
	}
	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateAssignment, a.ID.String(), eventType, eventPayload(a)); err != nil {
		s.logger.Error("assign process outbox persist failed", zap.String("assignment_id", a.ID.String()), zap.Error(err))
		return AssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("assign process commit failed", zap.String("request_id", rid), zap.Error(err))
		return AssignmentResponse{}, err
	}

	s.logger.Info("assign process success",
		zap.String("request_id", rid),
		zap.String("assignment_id", a.ID.String()),
		zap.String("status", a.Status),
	)

	a.Process, a.Employee = proc, emp
	return ToResponse(*a), nil
}

func (s *service) GetByID(ctx context.Context, userID, packetID, id string) (AssignmentResponse, error) {
	s.logger.Debug("get assignment by id requested",
		zap.String("user_id", userID),
		zap.String("packet_id", packetID),
		zap.String("assignment_id", id),
	)
	if !tenant.ValidID(packetID) || !tenant.ValidID(id) {
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotFound
	}

	a, err := s.repo.FindByID(ctx, userID, packetID, id)
	if err != nil {
		s.logger.Error("get assignment by id failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, mapRepositoryError(err)
	}
	return ToResponse(*a), nil
}

func (s *service) List(ctx context.Context, userID, packetID string, req query.Request) (query.Page[AssignmentResponse], error) {
	s.logger.Debug("list assignments requested", zap.String("user_id", userID), zap.String("packet_id", packetID))

	if err := s.ensurePacket(ctx, userID, packetID); err != nil {
		return query.Page[AssignmentResponse]{}, err
	}

	page, err := s.repo.List(ctx, userID, packetID, req)
	if err != nil {
		s.logger.Error("list assignments failed", zap.Error(err))
		return query.Page[AssignmentResponse]{}, err
	}
	return query.MapPage(page, ToResponse), nil
}

func (s *service) Update(ctx context.Context, userID, packetID, id string, req AssignmentRequest) (AssignmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update assignment requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("assignment_id", id),
	)
	if !tenant.ValidID(packetID) || !tenant.ValidID(id) {
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotFound
	}

	proc, emp, err := s.references(ctx, userID, req)
	if err != nil {
		s.logger.Warn("update assignment reference check failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update assignment begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	a, err := qtx.FindByID(ctx, userID, packetID, id)
	if err != nil {
		s.logger.Error("update assignment fetch existing failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	wasCompleted := a.Status == domain.StatusCompleted
	req.applyTo(a)
	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("update assignment persist failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	eventType := events.AssignmentUpdated
	if !wasCompleted && a.Status == domain.StatusCompleted {
		eventType = events.AssignmentCompleted
	}
	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateAssignment, id, eventType, eventPayload(a)); err != nil {
		s.logger.Error("update assignment outbox persist failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update assignment commit failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	s.logger.Info("update assignment success", zap.String("assignment_id", id), zap.String("status", a.Status))

	a.Process, a.Employee = proc, emp
	return ToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, userID, packetID, id string) error {
	s.logger.Debug("delete assignment requested", zap.String("user_id", userID), zap.String("assignment_id", id))
	if !tenant.ValidID(packetID) || !tenant.ValidID(id) {
		return assignmenterrors.ErrAssignmentNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete assignment begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, userID, packetID, id); err != nil {
		s.logger.Error("delete assignment failed", zap.String("assignment_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateAssignment, id, events.AssignmentDeleted,
		map[string]string{"diamondPacketId": packetID}); err != nil {
		s.logger.Error("delete assignment outbox persist failed", zap.String("assignment_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete assignment commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete assignment success", zap.String("assignment_id", id))
	return nil
}

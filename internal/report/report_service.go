package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-gemtrack/internal/client"
	clienterrors "go-gemtrack/internal/client/errors"
	"go-gemtrack/internal/events"
	"go-gemtrack/internal/messaging/kafka"
	"go-gemtrack/internal/packet"
	reporterrors "go-gemtrack/internal/report/errors"
	"go-gemtrack/internal/shared/contextutil"
	"go-gemtrack/internal/shared/counter"
	"go-gemtrack/internal/shared/query"
	"go-gemtrack/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ReportCounterType = "report_id"
	reportIDFormat    = "RPT-%06d"
)

// FormatReportID renders the n-th generated report id for a user.
func FormatReportID(n int64) string {
	return fmt.Sprintf(reportIDFormat, n)
}

type Service interface {
	Create(ctx context.Context, userID string, req CreateReportRequest) (ReportResponse, error)
	GetByID(ctx context.Context, userID, id string) (ReportDetailResponse, error)
	List(ctx context.Context, userID string, req query.Request) (query.Page[ReportResponse], error)
	Delete(ctx context.Context, userID, id string) error
	Export(ctx context.Context, userID, id string) (filename string, content []byte, err error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	packetRepo  packet.Repository
	clientRepo  client.Repository
	counterRepo counter.Repository
	outbox      kafka.OutboxRepository
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	packetRepo packet.Repository,
	clientRepo client.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		packetRepo:  packetRepo,
		clientRepo:  clientRepo,
		counterRepo: counterRepo,
		outbox:      outboxRepo,
		now:         time.Now,
		logger:      l,
	}
}

// uniqueIDs drops repeats and keeps first-seen order. ok is false when any id
// is malformed.
func uniqueIDs(ids []string) (out []string, ok bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !tenant.ValidID(id) {
			return nil, false
		}
		parsed := uuid.MustParse(id).String()
		if _, dup := seen[parsed]; dup {
			continue
		}
		seen[parsed] = struct{}{}
		out = append(out, parsed)
	}
	return out, true
}

func (s *service) Create(ctx context.Context, userID string, req CreateReportRequest) (ReportResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create report requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("report_id", req.ReportID),
		zap.Int("packets", len(req.DiamondPacketIDs)),
	)

	if !tenant.ValidID(req.ClientID) {
		return ReportResponse{}, clienterrors.ErrClientNotFound
	}
	owner, err := s.clientRepo.FindByID(ctx, userID, req.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResponse{}, clienterrors.ErrClientNotFound
		}
		s.logger.Error("create report client lookup failed", zap.Error(err))
		return ReportResponse{}, err
	}

	ids, ok := uniqueIDs(req.DiamondPacketIDs)
	if !ok {
		return ReportResponse{}, reporterrors.ErrPacketsNotFound
	}
	packets, err := s.packetRepo.FindByIDs(ctx, userID, ids)
	if err != nil {
		s.logger.Error("create report packet lookup failed", zap.Error(err))
		return ReportResponse{}, err
	}
	if len(packets) != len(ids) {
		s.logger.Warn("create report packets missing",
			zap.Int("requested", len(ids)),
			zap.Int("found", len(packets)),
		)
		return ReportResponse{}, reporterrors.ErrPacketsNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create report begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ReportResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	reportID := req.ReportID
	if reportID == "" {
		n, err := s.counterRepo.WithTx(tx).GetNextValue(ctx, userID, ReportCounterType)
		if err != nil {
			s.logger.Error("create report generate id failed", zap.Error(err))
			return ReportResponse{}, err
		}
		reportID = FormatReportID(n)
	}

	taken, err := qtx.ReportIDTaken(ctx, userID, reportID)
	if err != nil {
		s.logger.Error("create report check id failed", zap.Error(err))
		return ReportResponse{}, err
	}
	if taken {
		return ReportResponse{}, reporterrors.ErrReportIDAlreadyExists
	}

	rep := &Report{
		ID:       uuid.New(),
		ReportID: reportID,
		ClientID: owner.ID,
		UserID:   uuid.MustParse(userID),
	}
	if err := qtx.Create(ctx, rep); err != nil {
		s.logger.Error("create report persist failed", zap.Error(err))
		return ReportResponse{}, mapRepositoryError(err)
	}

	rep.Items = make([]ReportItem, len(ids))
	for i, id := range ids {
		rep.Items[i] = ReportItem{
			ID:              uuid.New(),
			ReportID:        rep.ID,
			DiamondPacketID: uuid.MustParse(id),
			Position:        i,
		}
	}
	if err := qtx.CreateItems(ctx, rep.Items); err != nil {
		s.logger.Error("create report items persist failed", zap.String("report_id", reportID), zap.Error(err))
		return ReportResponse{}, mapRepositoryError(err)
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateReport, rep.ID.String(), events.ReportCreated,
		map[string]any{"reportId": reportID, "clientId": owner.ID.String(), "packets": len(ids)}); err != nil {
		s.logger.Error("create report outbox persist failed", zap.String("report_id", reportID), zap.Error(err))
		return ReportResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create report commit failed", zap.String("request_id", rid), zap.Error(err))
		return ReportResponse{}, err
	}

	s.logger.Info("create report success", zap.String("request_id", rid), zap.String("report_id", reportID))

	rep.Client = owner
	return ToResponse(*rep), nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (ReportDetailResponse, error) {
	s.logger.Debug("get report by id requested", zap.String("user_id", userID), zap.String("report_id", id))
	if !tenant.ValidID(id) {
		return ReportDetailResponse{}, reporterrors.ErrReportNotFound
	}

	rep, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		s.logger.Error("get report by id failed", zap.String("report_id", id), zap.Error(err))
		return ReportDetailResponse{}, mapRepositoryError(err)
	}

	packets := make([]packet.DiamondPacket, 0, len(rep.Items))
	ids := make([]string, 0, len(rep.Items))
	for _, item := range rep.Items {
		if item.Packet == nil {
			continue
		}
		packets = append(packets, *item.Packet)
		ids = append(ids, item.Packet.ID.String())
	}

	history, err := s.packetRepo.CompletedHistory(ctx, ids)
	if err != nil {
		s.logger.Error("get report history failed", zap.String("report_id", id), zap.Error(err))
		return ReportDetailResponse{}, err
	}

	snapshots := BuildSnapshots(packets, history)
	return ReportDetailResponse{
		ReportResponse: ToResponse(*rep),
		Packets:        snapshots,
		Statistics:     ComputeReportStatistics(snapshots),
	}, nil
}

func (s *service) List(ctx context.Context, userID string, req query.Request) (query.Page[ReportResponse], error) {
	s.logger.Debug("list reports requested", zap.String("user_id", userID))

	page, err := s.repo.List(ctx, userID, req)
	if err != nil {
		s.logger.Error("list reports failed", zap.Error(err))
		return query.Page[ReportResponse]{}, err
	}
	return query.MapPage(page, ToResponse), nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	s.logger.Debug("delete report requested", zap.String("user_id", userID), zap.String("report_id", id))
	if !tenant.ValidID(id) {
		return reporterrors.ErrReportNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete report begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, userID, id); err != nil {
		s.logger.Error("delete report failed", zap.String("report_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := events.Enqueue(ctx, s.outbox, tx, userID, events.AggregateReport, id, events.ReportDeleted, nil); err != nil {
		s.logger.Error("delete report outbox persist failed", zap.String("report_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete report commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete report success", zap.String("report_id", id))
	return nil
}

func (s *service) Export(ctx context.Context, userID, id string) (string, []byte, error) {
	detail, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("export report success", zap.String("report_id", detail.ReportID), zap.Int("packets", len(detail.Packets)))
	return ExportFilename(detail.ReportID), []byte(RenderCSV(detail, s.now())), nil
}

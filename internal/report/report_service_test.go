package report_test

import (
	"context"
	"strings"
	"testing"

	"go-gemtrack/internal/client"
	clienterrors "go-gemtrack/internal/client/errors"
	clientMock "go-gemtrack/internal/client/mock"
	"go-gemtrack/internal/events"
	"go-gemtrack/internal/messaging/kafka"
	kafkaMock "go-gemtrack/internal/messaging/kafka/mock"
	"go-gemtrack/internal/packet"
	packetMock "go-gemtrack/internal/packet/mock"
	"go-gemtrack/internal/report"
	reporterrors "go-gemtrack/internal/report/errors"
	reportMock "go-gemtrack/internal/report/mock"
	counterMock "go-gemtrack/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db          sqlmock.Sqlmock
	repo        *reportMock.MockRepository
	packetRepo  *packetMock.MockRepository
	clientRepo  *clientMock.MockRepository
	counterRepo *counterMock.MockRepository
	outbox      *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) (report.Service, serviceDeps) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	deps := serviceDeps{
		db:          mock,
		repo:        reportMock.NewMockRepository(ctrl),
		packetRepo:  packetMock.NewMockRepository(ctrl),
		clientRepo:  clientMock.NewMockRepository(ctrl),
		counterRepo: counterMock.NewMockRepository(ctrl),
		outbox:      kafkaMock.NewMockOutboxRepository(ctrl),
	}
	svc := report.NewService(db, deps.repo, deps.packetRepo, deps.clientRepo, deps.counterRepo, deps.outbox, zap.NewNop())
	return svc, deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestReportService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	owner := &client.Client{ID: uuid.New(), ClientCode: "2024C01", Name: "Acme"}
	p1, p2 := samplePacket("DP-1", "10", "8"), samplePacket("DP-2", "20", "18")

	t.Run("generates id and keeps attach order", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		deps.clientRepo.EXPECT().FindByID(ctx, userID, owner.ID.String()).Return(owner, nil)
		deps.packetRepo.EXPECT().FindByIDs(ctx, userID, []string{p2.ID.String(), p1.ID.String()}).
			Return([]packet.DiamondPacket{p1, p2}, nil)
		expectTx(t, deps.db, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.counterRepo.EXPECT().WithTx(gomock.Any()).Return(deps.counterRepo)
		deps.counterRepo.EXPECT().GetNextValue(ctx, userID, report.ReportCounterType).Return(int64(1), nil)
		deps.repo.EXPECT().ReportIDTaken(ctx, userID, "RPT-000001").Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r *report.Report) error {
			assert.Equal(t, "RPT-000001", r.ReportID)
			assert.Equal(t, owner.ID, r.ClientID)
			return nil
		})
		deps.repo.EXPECT().CreateItems(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, items []report.ReportItem) error {
			require.Len(t, items, 2)
			assert.Equal(t, p2.ID, items[0].DiamondPacketID)
			assert.Equal(t, 0, items[0].Position)
			assert.Equal(t, p1.ID, items[1].DiamondPacketID)
			assert.Equal(t, 1, items[1].Position)
			return nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.ReportCreated, e.EventType)
			return nil
		})

		resp, err := svc.Create(ctx, userID, report.CreateReportRequest{
			ClientID:         owner.ID.String(),
			DiamondPacketIDs: []string{p2.ID.String(), p1.ID.String(), strings.ToUpper(p2.ID.String())},
		})
		require.NoError(t, err)
		assert.Equal(t, "RPT-000001", resp.ReportID)
		assert.Equal(t, 2, resp.PacketCount)
		assert.Equal(t, "Acme", resp.Client.Name)
		assert.NoError(t, deps.db.ExpectationsWereMet())
	})

	t.Run("some packets not found", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		deps.clientRepo.EXPECT().FindByID(ctx, userID, owner.ID.String()).Return(owner, nil)
		deps.packetRepo.EXPECT().FindByIDs(ctx, userID, gomock.Any()).Return([]packet.DiamondPacket{p1}, nil)

		_, err := svc.Create(ctx, userID, report.CreateReportRequest{
			ClientID:         owner.ID.String(),
			DiamondPacketIDs: []string{p1.ID.String(), uuid.NewString()},
		})
		assert.ErrorIs(t, err, reporterrors.ErrPacketsNotFound)
	})

	t.Run("malformed packet id", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		deps.clientRepo.EXPECT().FindByID(ctx, userID, owner.ID.String()).Return(owner, nil)

		_, err := svc.Create(ctx, userID, report.CreateReportRequest{
			ClientID:         owner.ID.String(),
			DiamondPacketIDs: []string{"DP-1"},
		})
		assert.ErrorIs(t, err, reporterrors.ErrPacketsNotFound)
	})

	t.Run("report id conflict", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		deps.clientRepo.EXPECT().FindByID(ctx, userID, owner.ID.String()).Return(owner, nil)
		deps.packetRepo.EXPECT().FindByIDs(ctx, userID, gomock.Any()).Return([]packet.DiamondPacket{p1}, nil)
		expectTx(t, deps.db, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ReportIDTaken(ctx, userID, "R-1").Return(true, nil)

		_, err := svc.Create(ctx, userID, report.CreateReportRequest{
			ReportID:         "R-1",
			ClientID:         owner.ID.String(),
			DiamondPacketIDs: []string{p1.ID.String()},
		})
		assert.ErrorIs(t, err, reporterrors.ErrReportIDAlreadyExists)
		assert.NoError(t, deps.db.ExpectationsWereMet())
	})

	t.Run("client of another user", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		deps.clientRepo.EXPECT().FindByID(ctx, userID, owner.ID.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create(ctx, userID, report.CreateReportRequest{
			ClientID:         owner.ID.String(),
			DiamondPacketIDs: []string{p1.ID.String()},
		})
		assert.ErrorIs(t, err, clienterrors.ErrClientNotFound)
	})
}

func TestReportService_GetByIDAndExport(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	p1, p2 := samplePacket("DP-1", "10", "8"), samplePacket("DP-2", "20", "18")
	rep := &report.Report{
		ID:       uuid.New(),
		ReportID: "RPT-000004",
		Client:   &client.Client{ClientCode: "2024C01", Name: "Acme", Email: "ops@acme.test"},
		Items: []report.ReportItem{
			{DiamondPacketID: p1.ID, Position: 0, Packet: &p1},
			{DiamondPacketID: p2.ID, Position: 1, Packet: &p2},
		},
	}
	history := map[string][]packet.HistoryEntry{
		p1.ID.String(): {{ID: uuid.New(), Status: "COMPLETED", AfterWeight: dp("7.5")}},
	}

	svc, deps := setupServiceTest(t)
	deps.repo.EXPECT().FindByID(ctx, userID, rep.ID.String()).Return(rep, nil).Times(2)
	deps.packetRepo.EXPECT().CompletedHistory(ctx, []string{p1.ID.String(), p2.ID.String()}).Return(history, nil).Times(2)

	detail, err := svc.GetByID(ctx, userID, rep.ID.String())
	require.NoError(t, err)
	require.Len(t, detail.Packets, 2)
	assert.Equal(t, "DP-1", detail.Packets[0].DiamondPacketID)
	assert.Equal(t, "2024C01", detail.Client.ClientID)
	assert.True(t, detail.Statistics.TotalFinalWeight.Equal(d("27.5")))
	assert.Equal(t, "30.0000", detail.Statistics.TotalMakeableWeight.StringFixed(4))

	filename, content, err := svc.Export(ctx, userID, rep.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "report-RPT-000004.csv", filename)
	assert.Contains(t, string(content), `"TOTALS","","","","","","",2,2,30.0000,26.0000`)
}

func TestReportService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("malformed id", func(t *testing.T) {
		svc, _ := setupServiceTest(t)
		assert.ErrorIs(t, svc.Delete(ctx, userID, "x"), reporterrors.ErrReportNotFound)
	})

	t.Run("zero rows is not found", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		id := uuid.NewString()
		expectTx(t, deps.db, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, userID, id).Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, userID, id), reporterrors.ErrReportNotFound)
	})
}

package packet_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-gemtrack/internal/client"
	clienterrors "go-gemtrack/internal/client/errors"
	clientMock "go-gemtrack/internal/client/mock"
	"go-gemtrack/internal/domain"
	"go-gemtrack/internal/events"
	"go-gemtrack/internal/messaging/kafka"
	kafkaMock "go-gemtrack/internal/messaging/kafka/mock"
	"go-gemtrack/internal/packet"
	packeterrors "go-gemtrack/internal/packet/errors"
	packetMock "go-gemtrack/internal/packet/mock"
	"go-gemtrack/internal/shared/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db         sqlmock.Sqlmock
	repo       *packetMock.MockRepository
	clientRepo *clientMock.MockRepository
	outbox     *kafkaMock.MockOutboxRepository
	redis      redismock.ClientMock
}

func setupServiceTest(t *testing.T) (packet.Service, serviceDeps) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	deps := serviceDeps{
		db:         mock,
		repo:       packetMock.NewMockRepository(ctrl),
		clientRepo: clientMock.NewMockRepository(ctrl),
		outbox:     kafkaMock.NewMockOutboxRepository(ctrl),
	}
	rdb, rmock := redismock.NewClientMock()
	deps.redis = rmock

	return packet.NewService(db, deps.repo, deps.clientRepo, deps.outbox, rdb, zap.NewNop()), deps
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

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validRequest(clientID string) packet.PacketRequest {
	return packet.PacketRequest{
		DiamondPacketID: "DP-1",
		BatchNo:         "B1",
		PacketNo:        "P1",
		Lot:             1,
		Piece:           4,
		MakeableWeight:  dec("10"),
		ExpectedWeight:  dec("8"),
		BooterWeight:    dec("0.5"),
		ReceiveDateTime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		ClientID:        clientID,
	}
}

func TestPacketService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	owner := &client.Client{ID: uuid.New(), ClientCode: "C-1", Name: "Acme"}

	t.Run("success computes derived fields and defaults", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		deps.clientRepo.EXPECT().FindByID(ctx, userID, owner.ID.String()).Return(owner, nil)
		deps.repo.EXPECT().PacketIDTaken(ctx, userID, "DP-1", "").Return(false, nil)
		expectTx(t, deps.db, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *packet.DiamondPacket) error {
			assert.Equal(t, "80.0000", p.ExpectedPercentage.StringFixed(4))
			assert.True(t, p.Size.Equal(decimal.RequireFromString("2.5")))
			assert.Equal(t, domain.ShapeAsscher, p.DiamondShape)
			assert.Equal(t, "D", p.DiamondColor)
			assert.Equal(t, "IF", p.DiamondPurity)
			assert.Equal(t, owner.ID, p.ClientID)
			return nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.PacketCreated, e.EventType)
			assert.Equal(t, events.AggregatePacket, e.AggregateType)
			return nil
		})
		deps.redis.ExpectDel(packet.GetPacketOptionsKey(userID)).SetVal(1)

		resp, err := svc.Create(ctx, userID, validRequest(owner.ID.String()))
		require.NoError(t, err)
		require.NotNil(t, resp.Client)
		assert.Equal(t, "C-1", resp.Client.ClientID)
		assert.NoError(t, deps.db.ExpectationsWereMet())
		assert.NoError(t, deps.redis.ExpectationsWereMet())
	})

	t.Run("client of another user", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		deps.clientRepo.EXPECT().FindByID(ctx, userID, owner.ID.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create(ctx, userID, validRequest(owner.ID.String()))
		assert.ErrorIs(t, err, clienterrors.ErrClientNotFound)
	})

	t.Run("duplicate diamond packet id", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		deps.clientRepo.EXPECT().FindByID(ctx, userID, owner.ID.String()).Return(owner, nil)
		deps.repo.EXPECT().PacketIDTaken(ctx, userID, "DP-1", "").Return(true, nil)

		_, err := svc.Create(ctx, userID, validRequest(owner.ID.String()))
		assert.ErrorIs(t, err, packeterrors.ErrPacketIDAlreadyExists)
	})
}

func TestPacketService_GetByID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("final weight from latest completed", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		p := &packet.DiamondPacket{ID: uuid.New(), MakeableWeight: decimal.NewFromInt(10), ExpectedWeight: decimal.NewFromInt(8)}
		id := p.ID.String()
		at := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

		deps.repo.EXPECT().FindByID(ctx, userID, id).Return(p, nil)
		deps.repo.EXPECT().CompletedHistory(ctx, []string{id}).Return(map[string][]packet.HistoryEntry{
			id: {
				{ID: uuid.New(), Status: domain.StatusCompleted, AfterWeight: dec("7"), CreatedAt: at},
				{ID: uuid.New(), Status: domain.StatusCompleted, AfterWeight: dec("6"), CreatedAt: at.Add(time.Hour)},
			},
		}, nil)

		resp, err := svc.GetByID(ctx, userID, id)
		require.NoError(t, err)
		require.NotNil(t, resp.FinalWeight)
		assert.True(t, resp.FinalWeight.Equal(decimal.NewFromInt(6)))
		assert.True(t, resp.FinalPercentage.Equal(decimal.RequireFromString("75")))
	})

	t.Run("uppercase path id still finds history", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		p := &packet.DiamondPacket{ID: uuid.New(), MakeableWeight: decimal.NewFromInt(10), ExpectedWeight: decimal.NewFromInt(8)}
		id := p.ID.String()
		upper := strings.ToUpper(id)

		deps.repo.EXPECT().FindByID(ctx, userID, upper).Return(p, nil)
		deps.repo.EXPECT().CompletedHistory(ctx, []string{id}).Return(map[string][]packet.HistoryEntry{
			id: {{ID: uuid.New(), Status: domain.StatusCompleted, AfterWeight: dec("7"), CreatedAt: time.Now()}},
		}, nil)

		resp, err := svc.GetByID(ctx, userID, upper)
		require.NoError(t, err)
		require.NotNil(t, resp.FinalWeight)
		assert.True(t, resp.FinalWeight.Equal(decimal.NewFromInt(7)))
	})

	t.Run("no history is zero", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		p := &packet.DiamondPacket{ID: uuid.New(), MakeableWeight: decimal.NewFromInt(10), ExpectedWeight: decimal.NewFromInt(8)}
		id := p.ID.String()
		deps.repo.EXPECT().FindByID(ctx, userID, id).Return(p, nil)
		deps.repo.EXPECT().CompletedHistory(ctx, []string{id}).Return(map[string][]packet.HistoryEntry{}, nil)

		resp, err := svc.GetByID(ctx, userID, id)
		require.NoError(t, err)
		assert.True(t, resp.FinalWeight.IsZero())
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, _ := setupServiceTest(t)
		_, err := svc.GetByID(ctx, userID, "nope")
		assert.ErrorIs(t, err, packeterrors.ErrPacketNotFound)
	})
}

func TestPacketService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	svc, deps := setupServiceTest(t)

	p := packet.DiamondPacket{ID: uuid.New(), MakeableWeight: decimal.NewFromInt(4), ExpectedWeight: decimal.NewFromInt(2)}
	deps.repo.EXPECT().List(ctx, userID, query.Request{}).Return(query.Page[packet.DiamondPacket]{
		Rows: []packet.DiamondPacket{p}, Total: 1, CurrentPage: 1, Limit: 10, PageCount: 1,
	}, nil)
	deps.repo.EXPECT().CompletedHistory(ctx, []string{p.ID.String()}).Return(nil, nil)

	page, err := svc.List(ctx, userID, query.Request{})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.True(t, page.Rows[0].FinalWeight.IsZero())
	assert.Equal(t, int64(1), page.Total)
}

func TestPacketService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	owner := &client.Client{ID: uuid.New(), ClientCode: "C-1", Name: "Acme"}

	t.Run("recomputes derived fields", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		existing := &packet.DiamondPacket{ID: uuid.New(), PacketCode: "DP-1", UserID: userID, Size: decimal.NewFromInt(99)}
		deps.clientRepo.EXPECT().FindByID(ctx, userID.String(), owner.ID.String()).Return(owner, nil)
		expectTx(t, deps.db, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, userID.String(), existing.ID.String()).Return(existing, nil)
		deps.repo.EXPECT().Update(ctx, existing).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.redis.ExpectDel(packet.GetPacketOptionsKey(userID.String())).SetVal(1)

		req := validRequest(owner.ID.String())
		req.MakeableWeight = dec("3")
		req.ExpectedWeight = dec("2")
		req.Piece = 1
		resp, err := svc.Update(ctx, userID.String(), existing.ID.String(), req)
		require.NoError(t, err)
		assert.True(t, resp.Size.Equal(decimal.NewFromInt(3)))
		assert.Equal(t, "66.6667", resp.ExpectedPercentage.StringFixed(4))
	})

	t.Run("id conflict", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		existing := &packet.DiamondPacket{ID: uuid.New(), PacketCode: "DP-0", UserID: userID}
		deps.clientRepo.EXPECT().FindByID(ctx, userID.String(), owner.ID.String()).Return(owner, nil)
		expectTx(t, deps.db, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, userID.String(), existing.ID.String()).Return(existing, nil)
		deps.repo.EXPECT().PacketIDTaken(ctx, userID.String(), "DP-1", existing.ID.String()).Return(true, nil)

		_, err := svc.Update(ctx, userID.String(), existing.ID.String(), validRequest(owner.ID.String()))
		assert.ErrorIs(t, err, packeterrors.ErrPacketIDAlreadyExists)
	})
}

func TestPacketService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("referenced by report", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		p := &packet.DiamondPacket{ID: uuid.New(), PacketCode: "DP-1"}
		id := p.ID.String()
		expectTx(t, deps.db, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, userID, id).Return(p, nil)
		deps.repo.EXPECT().Delete(ctx, userID, id).Return(gorm.ErrForeignKeyViolated)

		assert.ErrorIs(t, svc.Delete(ctx, userID, id), packeterrors.ErrPacketInUse)
	})

	t.Run("success", func(t *testing.T) {
		svc, deps := setupServiceTest(t)
		p := &packet.DiamondPacket{ID: uuid.New(), PacketCode: "DP-1"}
		id := p.ID.String()
		expectTx(t, deps.db, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, userID, id).Return(p, nil)
		deps.repo.EXPECT().Delete(ctx, userID, id).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.PacketDeleted, e.EventType)
			return nil
		})
		deps.redis.ExpectDel(packet.GetPacketOptionsKey(userID)).SetVal(1)

		require.NoError(t, svc.Delete(ctx, userID, id))
	})
}

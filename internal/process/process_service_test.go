package process_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-gemtrack/internal/events"
	"go-gemtrack/internal/messaging/kafka"
	kafkaMock "go-gemtrack/internal/messaging/kafka/mock"
	"go-gemtrack/internal/process"
	processerrors "go-gemtrack/internal/process/errors"
	processMock "go-gemtrack/internal/process/mock"

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

func setupServiceTest(t *testing.T) (process.Service, sqlmock.Sqlmock, *processMock.MockRepository, *kafkaMock.MockOutboxRepository, redismock.ClientMock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	repo := processMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	rdb, rmock := redismock.NewClientMock()

	return process.NewService(db, repo, outbox, rdb, zap.NewNop()), mock, repo, outbox, rmock
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

func TestProcessService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	req := process.ProcessRequest{ProcessID: "CUT", Name: "Cutting", Price: dec("150.00"), Cost: dec("90.50")}

	t.Run("success", func(t *testing.T) {
		svc, db, repo, outbox, rmock := setupServiceTest(t)
		repo.EXPECT().ProcessIDTaken(ctx, userID, "CUT", "").Return(false, nil)
		expectTx(t, db, true)
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *process.Process) error {
			assert.True(t, p.Price.Equal(decimal.RequireFromString("150")))
			assert.Equal(t, userID, p.UserID.String())
			return nil
		})
		outbox.EXPECT().WithTx(gomock.Any()).Return(outbox)
		outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.ProcessCreated, e.EventType)
			return nil
		})
		rmock.ExpectDel(process.GetProcessOptionsKey(userID)).SetVal(1)

		resp, err := svc.Create(ctx, userID, req)
		require.NoError(t, err)
		assert.Equal(t, "Cutting", resp.Name)
		assert.NoError(t, db.ExpectationsWereMet())
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("conflict", func(t *testing.T) {
		svc, _, repo, _, _ := setupServiceTest(t)
		repo.EXPECT().ProcessIDTaken(ctx, userID, "CUT", "").Return(true, nil)

		_, err := svc.Create(ctx, userID, req)
		assert.ErrorIs(t, err, processerrors.ErrProcessIDAlreadyExists)
	})
}

func TestProcessService_GetOptions(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	key := process.GetProcessOptionsKey(userID)

	svc, _, repo, _, rmock := setupServiceTest(t)
	p := process.Process{ID: uuid.New(), ProcessCode: "POL", Name: "Polishing", Price: decimal.RequireFromString("75")}
	data, err := json.Marshal([]process.ProcessOptionResponse{{ID: p.ID.String(), ProcessID: "POL", Name: "Polishing", Price: p.Price}})
	require.NoError(t, err)

	rmock.ExpectGet(key).RedisNil()
	repo.EXPECT().FindOptions(ctx, userID).Return([]process.Process{p}, nil)
	rmock.ExpectSet(key, string(data), time.Hour).SetVal("OK")

	got, err := svc.GetOptions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "POL", got[0].ProcessID)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestProcessService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("still assigned", func(t *testing.T) {
		svc, db, repo, _, _ := setupServiceTest(t)
		id := uuid.NewString()
		expectTx(t, db, false)
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().Delete(ctx, userID, id).Return(gorm.ErrForeignKeyViolated)

		assert.ErrorIs(t, svc.Delete(ctx, userID, id), processerrors.ErrProcessInUse)
	})

	t.Run("zero rows is not found", func(t *testing.T) {
		svc, db, repo, _, _ := setupServiceTest(t)
		id := uuid.NewString()
		expectTx(t, db, false)
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().Delete(ctx, userID, id).Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, userID, id), processerrors.ErrProcessNotFound)
	})
}

func TestProcessService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, db, repo, outbox, rmock := setupServiceTest(t)

	existing := &process.Process{ID: uuid.New(), ProcessCode: "CUT", Name: "Cutting", UserID: userID}
	expectTx(t, db, true)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().FindByID(ctx, userID.String(), existing.ID.String()).Return(existing, nil)
	repo.EXPECT().ProcessIDTaken(ctx, userID.String(), "CUT2", existing.ID.String()).Return(false, nil)
	repo.EXPECT().Update(ctx, existing).Return(nil)
	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox)
	outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	rmock.ExpectDel(process.GetProcessOptionsKey(userID.String())).SetVal(1)

	resp, err := svc.Update(ctx, userID.String(), existing.ID.String(), process.ProcessRequest{
		ProcessID: "CUT2", Name: "Cutting v2", Price: dec("10"), Cost: dec("5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "CUT2", resp.ProcessID)
	assert.True(t, resp.Cost.Equal(decimal.NewFromInt(5)))
}

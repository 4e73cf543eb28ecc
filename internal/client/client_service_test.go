package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-gemtrack/internal/address"
	addressMock "go-gemtrack/internal/address/mock"
	"go-gemtrack/internal/client"
	clienterrors "go-gemtrack/internal/client/errors"
	clientMock "go-gemtrack/internal/client/mock"
	"go-gemtrack/internal/events"
	"go-gemtrack/internal/messaging/kafka"
	kafkaMock "go-gemtrack/internal/messaging/kafka/mock"
	"go-gemtrack/internal/shared/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serviceDeps struct {
	svc      client.Service
	db       sqlmock.Sqlmock
	repo     *clientMock.MockRepository
	addrRepo *addressMock.MockRepository
	outbox   *kafkaMock.MockOutboxRepository
	redis    redismock.ClientMock
}

func setupServiceTest(t *testing.T) serviceDeps {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	rdb, rmock := redismock.NewClientMock()
	d := serviceDeps{
		db:       mock,
		repo:     clientMock.NewMockRepository(ctrl),
		addrRepo: addressMock.NewMockRepository(ctrl),
		outbox:   kafkaMock.NewMockOutboxRepository(ctrl),
		redis:    rmock,
	}
	d.svc = client.NewService(db, d.repo, d.addrRepo, d.outbox, rdb, zap.NewNop())
	return d
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

func createRequest() client.CreateClientRequest {
	return client.CreateClientRequest{
		ClientID: "2024C01",
		Name:     "Shree Diamonds",
		Email:    "buy@shree.example",
		PhoneNo:  "9825000000",
		GstInNo:  "24ABCDE1234F1Z5",
		Address: address.AddressRequest{
			Line1: "Mini Bazar", City: "Surat", State: "Gujarat", Country: "India", PostalCode: "395006",
		},
	}
}

func TestClientService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().ClientIDTaken(ctx, userID, "2024C01", "").Return(false, nil)
		expectTx(t, d.db, true)
		d.addrRepo.EXPECT().WithTx(gomock.Any()).Return(d.addrRepo)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)

		var addrID uuid.UUID
		d.addrRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *address.Address) error {
			addrID = a.ID
			return nil
		})
		d.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *client.Client) error {
			assert.Equal(t, addrID, c.AddressID)
			assert.Equal(t, userID, c.UserID.String())
			return nil
		})
		d.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.ClientCreated, e.EventType)
			assert.Equal(t, events.ActivityTopic, e.Topic)
			return nil
		})
		d.redis.ExpectDel(client.GetClientOptionsKey(userID)).SetVal(1)

		resp, err := d.svc.Create(ctx, userID, createRequest())
		require.NoError(t, err)
		assert.Equal(t, "2024C01", resp.ClientID)
		require.NotNil(t, resp.Address)
		assert.Equal(t, "Surat", resp.Address.City)
		assert.NoError(t, d.db.ExpectationsWereMet())
		assert.NoError(t, d.redis.ExpectationsWereMet())
	})

	t.Run("duplicate client id for same user", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().ClientIDTaken(ctx, userID, "2024C01", "").Return(true, nil)

		_, err := d.svc.Create(ctx, userID, createRequest())
		assert.ErrorIs(t, err, clienterrors.ErrClientIDAlreadyExists)
	})

	t.Run("client insert fails after address insert rolls back", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().ClientIDTaken(ctx, userID, "2024C01", "").Return(false, nil)
		expectTx(t, d.db, false)
		d.addrRepo.EXPECT().WithTx(gomock.Any()).Return(d.addrRepo)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.addrRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("insert failed"))

		_, err := d.svc.Create(ctx, userID, createRequest())
		assert.EqualError(t, err, "insert failed")
		assert.NoError(t, d.db.ExpectationsWereMet())
		assert.NoError(t, d.redis.ExpectationsWereMet())
	})

	t.Run("unique race maps to conflict", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().ClientIDTaken(ctx, userID, "2024C01", "").Return(false, nil)
		expectTx(t, d.db, false)
		d.addrRepo.EXPECT().WithTx(gomock.Any()).Return(d.addrRepo)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.addrRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.repo.EXPECT().Create(ctx, gomock.Any()).Return(gorm.ErrDuplicatedKey)

		_, err := d.svc.Create(ctx, userID, createRequest())
		assert.ErrorIs(t, err, clienterrors.ErrClientIDAlreadyExists)
	})

	t.Run("postgres unique violation maps to conflict", func(t *testing.T) {
		d := setupServiceTest(t)
		d.repo.EXPECT().ClientIDTaken(ctx, userID, "2024C01", "").Return(false, nil)
		expectTx(t, d.db, false)
		d.addrRepo.EXPECT().WithTx(gomock.Any()).Return(d.addrRepo)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.addrRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_clients_user_client_code"})

		_, err := d.svc.Create(ctx, userID, createRequest())
		assert.ErrorIs(t, err, clienterrors.ErrClientIDAlreadyExists)
	})
}

func TestClientService_GetByID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("other user's client is not found", func(t *testing.T) {
		d := setupServiceTest(t)
		id := uuid.NewString()
		d.repo.EXPECT().FindByID(ctx, userID, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.svc.GetByID(ctx, userID, id)
		assert.ErrorIs(t, err, clienterrors.ErrClientNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		d := setupServiceTest(t)
		_, err := d.svc.GetByID(ctx, userID, "not-a-uuid")
		assert.ErrorIs(t, err, clienterrors.ErrClientNotFound)
	})
}

func TestClientService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	d := setupServiceTest(t)

	req := query.Request{Pagination: query.Pagination{Page: 1, Limit: 10}}
	d.repo.EXPECT().List(ctx, userID, req).Return(query.Page[client.Client]{
		Rows:        []client.Client{{ID: uuid.New(), ClientCode: "A"}, {ID: uuid.New(), ClientCode: "B"}},
		PageCount:   1,
		CurrentPage: 1,
		Total:       2,
		Limit:       10,
	}, nil)

	page, err := d.svc.List(ctx, userID, req)
	require.NoError(t, err)
	assert.Len(t, page.Rows, 2)
	assert.Equal(t, "B", page.Rows[1].ClientID)
	assert.Equal(t, int64(2), page.Total)
}

func TestClientService_GetOptions(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	key := client.GetClientOptionsKey(userID)

	t.Run("cache hit", func(t *testing.T) {
		d := setupServiceTest(t)
		d.redis.ExpectGet(key).SetVal(`[{"id":"1","clientId":"2024C01","name":"Shree"}]`)

		got, err := d.svc.GetOptions(ctx, userID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Shree", got[0].Name)
	})

	t.Run("cache miss fills cache", func(t *testing.T) {
		d := setupServiceTest(t)
		c := client.Client{ID: uuid.New(), ClientCode: "2024C01", Name: "Shree"}
		want := []client.ClientOptionResponse{{ID: c.ID.String(), ClientID: c.ClientCode, Name: c.Name}}
		data, err := json.Marshal(want)
		require.NoError(t, err)

		d.redis.ExpectGet(key).RedisNil()
		d.repo.EXPECT().FindOptions(ctx, userID).Return([]client.Client{c}, nil)
		d.redis.ExpectSet(key, string(data), time.Hour).SetVal("OK")

		got, err := d.svc.GetOptions(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, d.redis.ExpectationsWereMet())
	})
}

func TestClientService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	existing := func() *client.Client {
		return &client.Client{
			ID:      uuid.New(), ClientCode: "2024C01", UserID: userID, Name: "Old",
			Address: &address.Address{ID: uuid.New(), City: "Surat"},
		}
	}

	t.Run("keeping own client id skips conflict check", func(t *testing.T) {
		d := setupServiceTest(t)
		c := existing()
		expectTx(t, d.db, true)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByID(ctx, userID.String(), c.ID.String()).Return(c, nil)
		d.repo.EXPECT().Update(ctx, c).Return(nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.redis.ExpectDel(client.GetClientOptionsKey(userID.String())).SetVal(1)

		resp, err := d.svc.Update(ctx, userID.String(), c.ID.String(), client.UpdateClientRequest{
			ClientID: "2024C01", Name: "New", Email: "a@b.example", PhoneNo: "1", GstInNo: "24ABCDE1234F1Z5",
		})
		require.NoError(t, err)
		assert.Equal(t, "New", resp.Name)
	})

	t.Run("new client id taken by another client", func(t *testing.T) {
		d := setupServiceTest(t)
		c := existing()
		expectTx(t, d.db, false)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByID(ctx, userID.String(), c.ID.String()).Return(c, nil)
		d.repo.EXPECT().ClientIDTaken(ctx, userID.String(), "2024C02", c.ID.String()).Return(true, nil)

		_, err := d.svc.Update(ctx, userID.String(), c.ID.String(), client.UpdateClientRequest{ClientID: "2024C02"})
		assert.ErrorIs(t, err, clienterrors.ErrClientIDAlreadyExists)
	})

	t.Run("nested address is updated in the same tx", func(t *testing.T) {
		d := setupServiceTest(t)
		c := existing()
		expectTx(t, d.db, true)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.addrRepo.EXPECT().WithTx(gomock.Any()).Return(d.addrRepo)
		d.repo.EXPECT().FindByID(ctx, userID.String(), c.ID.String()).Return(c, nil)
		d.repo.EXPECT().Update(ctx, c).Return(nil)
		d.addrRepo.EXPECT().Update(ctx, c.Address).DoAndReturn(func(_ context.Context, a *address.Address) error {
			assert.Equal(t, "Mumbai", a.City)
			return nil
		})
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.redis.ExpectDel(client.GetClientOptionsKey(userID.String())).SetVal(1)

		_, err := d.svc.Update(ctx, userID.String(), c.ID.String(), client.UpdateClientRequest{
			ClientID: "2024C01",
			Address:  &address.AddressRequest{Line1: "Opera House", City: "Mumbai", State: "MH", Country: "India", PostalCode: "400004"},
		})
		require.NoError(t, err)
	})
}

func TestClientService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("deletes client and its address", func(t *testing.T) {
		d := setupServiceTest(t)
		c := &client.Client{ID: uuid.New(), AddressID: uuid.New(), UserID: userID}
		expectTx(t, d.db, true)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.addrRepo.EXPECT().WithTx(gomock.Any()).Return(d.addrRepo)
		d.repo.EXPECT().FindByID(ctx, userID.String(), c.ID.String()).Return(c, nil)
		d.repo.EXPECT().Delete(ctx, userID.String(), c.ID.String()).Return(nil)
		d.addrRepo.EXPECT().Delete(ctx, c.AddressID.String()).Return(nil)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		d.redis.ExpectDel(client.GetClientOptionsKey(userID.String())).SetVal(1)

		require.NoError(t, d.svc.Delete(ctx, userID.String(), c.ID.String()))
		assert.NoError(t, d.db.ExpectationsWereMet())
	})

	t.Run("referenced by packets", func(t *testing.T) {
		d := setupServiceTest(t)
		c := &client.Client{ID: uuid.New(), AddressID: uuid.New(), UserID: userID}
		expectTx(t, d.db, false)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByID(ctx, userID.String(), c.ID.String()).Return(c, nil)
		d.repo.EXPECT().Delete(ctx, userID.String(), c.ID.String()).Return(gorm.ErrForeignKeyViolated)

		err := d.svc.Delete(ctx, userID.String(), c.ID.String())
		assert.ErrorIs(t, err, clienterrors.ErrClientInUse)
	})

	t.Run("missing", func(t *testing.T) {
		d := setupServiceTest(t)
		id := uuid.NewString()
		expectTx(t, d.db, false)
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByID(ctx, userID.String(), id).Return(nil, gorm.ErrRecordNotFound)

		err := d.svc.Delete(ctx, userID.String(), id)
		assert.ErrorIs(t, err, clienterrors.ErrClientNotFound)
	})
}

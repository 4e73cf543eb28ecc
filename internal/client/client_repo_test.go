package client_test

import (
	"context"
	"testing"

	"go-gemtrack/internal/address"
	"go-gemtrack/internal/client"
	"go-gemtrack/internal/shared/dbtx"
	"go-gemtrack/internal/shared/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&address.Address{}, &client.Client{}))
	return db
}

func seedClient(t *testing.T, db *gorm.DB, userID uuid.UUID, clientID, name string) *client.Client {
	t.Helper()
	a := address.NewAddress(address.AddressRequest{
		Line1: "Mini Bazar", City: "Surat", State: "GJ", Country: "India", PostalCode: "395006",
	})
	require.NoError(t, db.Create(a).Error)
	c := &client.Client{
		ID:      uuid.New(), ClientCode: clientID, Name: name, Email: name + "@x.example",
		PhoneNo: "1", GstInNo: "24ABCDE1234F1Z5", AddressID: a.ID, UserID: userID,
	}
	require.NoError(t, client.NewRepository(db).Create(context.Background(), c))
	return c
}

func TestRepository_ClientIDUniquePerUser(t *testing.T) {
	db := setupRepoDB(t)
	repo := client.NewRepository(db)
	ctx := context.Background()
	userA, userB := uuid.New(), uuid.New()

	seedClient(t, db, userA, "2024C01", "alpha")
	seedClient(t, db, userB, "2024C01", "beta")

	taken, err := repo.ClientIDTaken(ctx, userA.String(), "2024C01", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ClientIDTaken(ctx, uuid.NewString(), "2024C01", "")
	require.NoError(t, err)
	assert.False(t, taken)

	dup := &client.Client{
		ID:      uuid.New(), ClientCode: "2024C01", Name: "gamma", Email: "g@x.example",
		PhoneNo: "1", GstInNo: "24ABCDE1234F1Z5", AddressID: uuid.New(), UserID: userA,
	}
	err = repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, dbtx.IsUniqueViolation(err, "clients.client_code"))
}

func TestRepository_ClientIDTakenExcludesSelf(t *testing.T) {
	db := setupRepoDB(t)
	repo := client.NewRepository(db)
	userA := uuid.New()
	c := seedClient(t, db, userA, "2024C01", "alpha")

	taken, err := repo.ClientIDTaken(context.Background(), userA.String(), "2024C01", c.ID.String())
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRepository_Scoping(t *testing.T) {
	db := setupRepoDB(t)
	repo := client.NewRepository(db)
	ctx := context.Background()
	userA, userB := uuid.New(), uuid.New()

	own := seedClient(t, db, userA, "A1", "alpha")
	foreign := seedClient(t, db, userB, "B1", "beta")

	got, err := repo.FindByID(ctx, userA.String(), own.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got.Address)
	assert.Equal(t, "Surat", got.Address.City)

	_, err = repo.FindByID(ctx, userA.String(), foreign.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByClientID(ctx, userA.String(), "B1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	foreign.UserID = userA
	foreign.Name = "hijacked"
	assert.ErrorIs(t, repo.Update(ctx, foreign), gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, userA.String(), foreign.ID.String()), gorm.ErrRecordNotFound)

	var name string
	require.NoError(t, db.Model(&client.Client{}).Select("name").Where("id = ?", foreign.ID).Scan(&name).Error)
	assert.Equal(t, "beta", name)

	require.NoError(t, repo.Delete(ctx, userA.String(), own.ID.String()))
	assert.ErrorIs(t, repo.Delete(ctx, userA.String(), own.ID.String()), gorm.ErrRecordNotFound)
}

func TestRepository_ListAndOptions(t *testing.T) {
	db := setupRepoDB(t)
	repo := client.NewRepository(db)
	ctx := context.Background()
	userA, userB := uuid.New(), uuid.New()

	seedClient(t, db, userA, "A1", "zeta")
	seedClient(t, db, userA, "A2", "alpha")
	seedClient(t, db, userA, "A3", "mid")
	seedClient(t, db, userB, "B1", "beta")

	page, err := repo.List(ctx, userA.String(), query.Request{
		Sort:   []query.Sort{query.Asc("name")},
		Filter: []query.Filter{{Field: "clientId", Value: "a"}},
	})
	require.NoError(t, err)
	require.Len(t, page.Rows, 3)
	assert.Equal(t, "alpha", page.Rows[0].Name)
	assert.NotNil(t, page.Rows[0].Address)
	assert.Equal(t, 1, page.PageCount)

	opts, err := repo.FindOptions(ctx, userA.String())
	require.NoError(t, err)
	require.Len(t, opts, 3)
	assert.Equal(t, "alpha", opts[0].Name)
}

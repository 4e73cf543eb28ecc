package dbtx_test

import (
	"context"
	"testing"

	"go-gemtrack/internal/shared/dbtx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func TestBind_RollbackDiscardsWrites(t *testing.T) {
	db := openDB(t)
	sqlDB, _ := db.DB()
	ctx := context.Background()

	tx, err := sqlDB.BeginTx(ctx, nil)
	require.NoError(t, err)

	bound := dbtx.Bind(db, tx)
	require.NoError(t, bound.WithContext(ctx).Create(&widget{Name: "draft"}).Error)

	var inTx int64
	require.NoError(t, bound.WithContext(ctx).Model(&widget{}).Count(&inTx).Error)
	assert.Equal(t, int64(1), inTx)

	require.NoError(t, tx.Rollback())

	var after int64
	require.NoError(t, db.WithContext(ctx).Model(&widget{}).Count(&after).Error)
	assert.Equal(t, int64(0), after)
}

func TestBind_CommitPersists(t *testing.T) {
	db := openDB(t)
	sqlDB, _ := db.DB()
	ctx := context.Background()

	tx, err := sqlDB.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, dbtx.Bind(db, tx).WithContext(ctx).Create(&widget{Name: "kept"}).Error)
	require.NoError(t, tx.Commit())

	var got widget
	require.NoError(t, db.WithContext(ctx).First(&got).Error)
	assert.Equal(t, "kept", got.Name)
}

func TestBind_NilTx(t *testing.T) {
	db := openDB(t)
	assert.Same(t, db, dbtx.Bind(db, nil))
}

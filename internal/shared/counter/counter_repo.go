package counter

import (
	"context"
	"database/sql"
	"time"

	"go-gemtrack/internal/shared/dbtx"

	"gorm.io/gorm"
)

// UserCounter holds the last issued sequence value per user and counter type.
type UserCounter struct {
	UserID      string    `gorm:"type:uuid;primaryKey"`
	CounterType string    `gorm:"primaryKey;size:50"`
	LastValue   int64     `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (UserCounter) TableName() string { return "user_counters" }

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, userID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbtx.Bind(r.db, tx)}
}

// GetNextValue increments atomically in a single upsert, so concurrent callers
// never receive the same value.
func (r *repository) GetNextValue(ctx context.Context, userID string, counterType string) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO user_counters (user_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, counter_type) DO UPDATE
		SET last_value = user_counters.last_value + 1, updated_at = CURRENT_TIMESTAMP
		RETURNING last_value
	`, userID, counterType).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

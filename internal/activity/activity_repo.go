package activity

import (
	"context"

	"go-gemtrack/internal/shared/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var listSchema = query.NewSchema("activity",
	[]query.Sort{query.Desc("createdAt")},
	query.Text("eventType", "event_type", 64),
	query.Text("aggregateType", "aggregate_type", 64),
	query.ID("aggregateId", "aggregate_id"),
	query.Timestamp("occurredAt", "occurred_at"),
)

//go:generate mockgen -source=activity_repo.go -destination=mock/activity_repo_mock.go -package=mock
type Repository interface {
	// Record inserts a and reports false when its event was already stored.
	Record(ctx context.Context, a *Activity) (bool, error)
	List(ctx context.Context, userID string, req query.Request) (query.Page[Activity], error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Record(ctx context.Context, a *Activity) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) List(ctx context.Context, userID string, req query.Request) (query.Page[Activity], error) {
	return query.List[Activity](ctx, r.db, listSchema, userID, req)
}

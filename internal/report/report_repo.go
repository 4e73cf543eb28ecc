package report

import (
	"context"
	"database/sql"

	"go-gemtrack/internal/shared/dbtx"
	"go-gemtrack/internal/shared/query"
	"go-gemtrack/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var listSchema = query.NewSchema("report",
	[]query.Sort{query.Desc("updatedAt")},
	query.Text("reportId", "report_id", 50),
	query.ID("clientId", "client_id"),
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Report) error
	CreateItems(ctx context.Context, items []ReportItem) error
	FindByID(ctx context.Context, userID, id string) (*Report, error)
	List(ctx context.Context, userID string, req query.Request) (query.Page[Report], error)
	ReportIDTaken(ctx context.Context, userID, reportID string) (bool, error)
	Delete(ctx context.Context, userID, id string) error
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

func (r *repository) Create(ctx context.Context, rep *Report) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rep).Error
}

func (r *repository) CreateItems(ctx context.Context, items []ReportItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(items, 100).Error
}

// FindByID loads the report with its client and packets in attach order.
func (r *repository) FindByID(ctx context.Context, userID, id string) (*Report, error) {
	var rep Report
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.Packet").
		First(&rep, "id = ?", id).Error
	return &rep, err
}

func (r *repository) List(ctx context.Context, userID string, req query.Request) (query.Page[Report], error) {
	return query.List[Report](ctx, r.db, listSchema, userID, req,
		query.Preload("Client"),
		query.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Select("id", "report_id") }),
	)
}

func (r *repository) ReportIDTaken(ctx context.Context, userID, reportID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Report{}).
		Scopes(tenant.Scope(userID)).
		Where("report_id = ?", reportID).
		Count(&n).Error
	return n > 0, err
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Delete(&Report{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package process

import (
	"context"
	"database/sql"

	"go-gemtrack/internal/shared/dbtx"
	"go-gemtrack/internal/shared/query"
	"go-gemtrack/internal/tenant"

	"gorm.io/gorm"
)

var listSchema = query.NewSchema("process",
	[]query.Sort{query.Desc("updatedAt")},
	query.Text("processId", "process_code", 50),
	query.Text("name", "name", 255),
	query.Text("description", "description", 1000),
	query.Decimal("price", "price").Step("0.01"),
	query.Decimal("cost", "cost").Step("0.01"),
)

//go:generate mockgen -source=process_repo.go -destination=mock/process_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Process) error
	FindByID(ctx context.Context, userID, id string) (*Process, error)
	List(ctx context.Context, userID string, req query.Request) (query.Page[Process], error)
	FindOptions(ctx context.Context, userID string) ([]Process, error)
	ProcessIDTaken(ctx context.Context, userID, processID, excludeID string) (bool, error)
	Update(ctx context.Context, p *Process) error
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

func (r *repository) Create(ctx context.Context, p *Process) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, userID, id string) (*Process, error) {
	var p Process
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) List(ctx context.Context, userID string, req query.Request) (query.Page[Process], error) {
	return query.List[Process](ctx, r.db, listSchema, userID, req)
}

func (r *repository) FindOptions(ctx context.Context, userID string) ([]Process, error) {
	var processes []Process
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Select("id", "process_code", "name", "price").
		Order("name ASC").
		Find(&processes).Error
	return processes, err
}

func (r *repository) ProcessIDTaken(ctx context.Context, userID, processID, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Process{}).
		Scopes(tenant.Scope(userID)).
		Where("process_code = ?", processID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *repository) Update(ctx context.Context, p *Process) error {
	res := r.db.WithContext(ctx).
		Model(p).
		Scopes(tenant.Scope(p.UserID.String())).
		Select("process_code", "name", "description", "price", "cost", "updated_at").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Delete(&Process{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

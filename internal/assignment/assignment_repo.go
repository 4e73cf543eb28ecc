package assignment

import (
	"context"
	"database/sql"

	"go-gemtrack/internal/domain"
	"go-gemtrack/internal/shared/dbtx"
	"go-gemtrack/internal/shared/query"
	"go-gemtrack/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var listSchema = query.NewSchema("assignment",
	[]query.Sort{query.Desc("updatedAt")},
	query.OneOf("status", "status", domain.ProcessStatuses...),
	query.Timestamp("startDateTime", "start_date_time"),
	query.Timestamp("endDateTime", "end_date_time"),
	query.Decimal("beforeWeight", "before_weight").Step("0.0001"),
	query.Decimal("afterWeight", "after_weight").Step("0.0001"),
	query.Text("remarks", "remarks", 1000),
	query.ID("processId", "process_id"),
	query.ID("employeeId", "employee_id"),
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *DiamondPacketProcess) error
	FindByID(ctx context.Context, userID, packetID, id string) (*DiamondPacketProcess, error)
	List(ctx context.Context, userID, packetID string, req query.Request) (query.Page[DiamondPacketProcess], error)
	Update(ctx context.Context, a *DiamondPacketProcess) error
	Delete(ctx context.Context, userID, packetID, id string) error
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

func forPacket(packetID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: "diamond_packet_id"},
			Value:  packetID,
		})
	}
}

func (r *repository) Create(ctx context.Context, a *DiamondPacketProcess) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, userID, packetID, id string) (*DiamondPacketProcess, error) {
	var a DiamondPacketProcess
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID), forPacket(packetID)).
		Preload("Process").
		Preload("Employee").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) List(ctx context.Context, userID, packetID string, req query.Request) (query.Page[DiamondPacketProcess], error) {
	return query.List[DiamondPacketProcess](ctx, r.db, listSchema, userID, req,
		query.Where(forPacket(packetID)),
		query.Preload("Process"),
		query.Preload("Employee"),
	)
}

func (r *repository) Update(ctx context.Context, a *DiamondPacketProcess) error {
	res := r.db.WithContext(ctx).
		Model(a).
		Scopes(tenant.Scope(a.UserID.String()), forPacket(a.DiamondPacketID.String())).
		Select(
			"process_id", "employee_id", "status", "start_date_time", "end_date_time",
			"before_weight", "after_weight", "remarks", "updated_at",
		).
		Updates(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, userID, packetID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID), forPacket(packetID)).
		Delete(&DiamondPacketProcess{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

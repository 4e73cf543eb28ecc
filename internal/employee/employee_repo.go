package employee

import (
	"context"
	"database/sql"

	"go-gemtrack/internal/shared/dbtx"
	"go-gemtrack/internal/shared/query"
	"go-gemtrack/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var listSchema = query.NewSchema("employee",
	[]query.Sort{query.Desc("createdAt")},
	query.Text("employeeId", "employee_code", 50),
	query.Text("name", "name", 255),
	query.Text("email", "email", 255),
	query.Text("phoneNo", "phone_no", 20),
	query.Text("panNo", "pan_no", 15),
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Employee) error
	FindByID(ctx context.Context, userID, id string) (*Employee, error)
	FindByEmployeeID(ctx context.Context, userID, employeeID string) (*Employee, error)
	List(ctx context.Context, userID string, req query.Request) (query.Page[Employee], error)
	FindOptions(ctx context.Context, userID string) ([]Employee, error)
	EmployeeIDTaken(ctx context.Context, userID, employeeID, excludeID string) (bool, error)
	Update(ctx context.Context, c *Employee) error
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

func (r *repository) Create(ctx context.Context, c *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, userID, id string) (*Employee, error) {
	var c Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Preload("Address").
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindByEmployeeID(ctx context.Context, userID, employeeID string) (*Employee, error) {
	var c Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Preload("Address").
		First(&c, "employee_code = ?", employeeID).Error
	return &c, err
}

func (r *repository) List(ctx context.Context, userID string, req query.Request) (query.Page[Employee], error) {
	return query.List[Employee](ctx, r.db, listSchema, userID, req, query.Preload("Address"))
}

func (r *repository) FindOptions(ctx context.Context, userID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Select("id", "employee_code", "name").
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) EmployeeIDTaken(ctx context.Context, userID, employeeID, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(userID)).
		Where("employee_code = ?", employeeID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *repository) Update(ctx context.Context, c *Employee) error {
	res := r.db.WithContext(ctx).
		Model(c).
		Scopes(tenant.Scope(c.UserID.String())).
		Select("employee_code", "name", "email", "phone_no", "pan_no", "updated_at").
		Updates(c)
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
		Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

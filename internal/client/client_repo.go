package client

import (
	"context"
	"database/sql"

	"go-gemtrack/internal/shared/dbtx"
	"go-gemtrack/internal/shared/query"
	"go-gemtrack/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var listSchema = query.NewSchema("client",
	[]query.Sort{query.Desc("createdAt")},
	query.Text("clientId", "client_code", 50),
	query.Text("name", "name", 255),
	query.Text("email", "email", 255),
	query.Text("phoneNo", "phone_no", 20),
	query.Text("gstInNo", "gst_in_no", 15),
)

//go:generate mockgen -source=client_repo.go -destination=mock/client_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Client) error
	FindByID(ctx context.Context, userID, id string) (*Client, error)
	FindByClientID(ctx context.Context, userID, clientID string) (*Client, error)
	List(ctx context.Context, userID string, req query.Request) (query.Page[Client], error)
	FindOptions(ctx context.Context, userID string) ([]Client, error)
	ClientIDTaken(ctx context.Context, userID, clientID, excludeID string) (bool, error)
	Update(ctx context.Context, c *Client) error
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

func (r *repository) Create(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, userID, id string) (*Client, error) {
	var c Client
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Preload("Address").
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindByClientID(ctx context.Context, userID, clientID string) (*Client, error) {
	var c Client
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Preload("Address").
		First(&c, "client_code = ?", clientID).Error
	return &c, err
}

func (r *repository) List(ctx context.Context, userID string, req query.Request) (query.Page[Client], error) {
	return query.List[Client](ctx, r.db, listSchema, userID, req, query.Preload("Address"))
}

func (r *repository) FindOptions(ctx context.Context, userID string) ([]Client, error) {
	var clients []Client
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Select("id", "client_code", "name").
		Order("name ASC").
		Find(&clients).Error
	return clients, err
}

func (r *repository) ClientIDTaken(ctx context.Context, userID, clientID, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Client{}).
		Scopes(tenant.Scope(userID)).
		Where("client_code = ?", clientID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *repository) Update(ctx context.Context, c *Client) error {
	res := r.db.WithContext(ctx).
		Model(c).
		Scopes(tenant.Scope(c.UserID.String())).
		Select("client_code", "name", "email", "phone_no", "gst_in_no", "updated_at").
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
		Delete(&Client{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

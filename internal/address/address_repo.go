package address

import (
	"context"
	"database/sql"

	"go-gemtrack/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=address_repo.go -destination=mock/address_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Address) error
	FindVisible(ctx context.Context, userID, id string) (*Address, error)
	Update(ctx context.Context, a *Address) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, a *Address) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// Address has no owner column of its own. It is visible when it hangs off the
// user's own row or one of the user's clients or employees.
const visibleSQL = `(EXISTS (SELECT 1 FROM users u WHERE u.address_id = addresses.id AND u.id = ?)
	OR EXISTS (SELECT 1 FROM clients c WHERE c.address_id = addresses.id AND c.user_id = ?)
	OR EXISTS (SELECT 1 FROM employees e WHERE e.address_id = addresses.id AND e.user_id = ?))`

func (r *repository) FindVisible(ctx context.Context, userID, id string) (*Address, error) {
	var a Address
	err := r.db.WithContext(ctx).
		Where("addresses.id = ?", id).
		Where(visibleSQL, userID, userID, userID).
		First(&a).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *Address) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Address{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

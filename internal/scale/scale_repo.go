package scale

import (
	"context"
	"database/sql"

	"go-mission/internal/shared/connection"
	"go-mission/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=scale_repo.go -destination=mock/scale_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, scale *CompensationScale) error
	FindAllByCompany(ctx context.Context, companyID string) ([]CompensationScale, error)
	FindByCategory(ctx context.Context, companyID, categoryID string) ([]CompensationScale, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, scale *CompensationScale) error {
	return r.db.WithContext(ctx).Create(scale).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]CompensationScale, error) {
	var scales []CompensationScale
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("employee_category_id ASC, created_at DESC").
		Find(&scales).Error
	return scales, err
}

func (r *repository) FindByCategory(ctx context.Context, companyID, categoryID string) ([]CompensationScale, error) {
	var scales []CompensationScale
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_category_id = ?", categoryID).
		Find(&scales).Error
	return scales, err
}

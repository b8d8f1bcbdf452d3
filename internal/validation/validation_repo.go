package validation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-mission/internal/shared/connection"
	"go-mission/internal/tenant"
	validationerrors "go-mission/internal/validation/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Decision struct {
	Status       string
	ValidatedBy  *uuid.UUID
	ValidatedAt  time.Time
	Comment      *string
	SignatureRef *string
}

//go:generate mockgen -source=validation_repo.go -destination=mock/validation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateChain(ctx context.Context, steps []MissionValidation) error
	FindByID(ctx context.Context, companyID, id string) (*MissionValidation, error)
	ListByMission(ctx context.Context, companyID, missionID string) ([]MissionValidation, error)
	Resolve(ctx context.Context, companyID, id string, expectedVersion int, d Decision) (int64, error)
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

func (r *repository) CreateChain(ctx context.Context, steps []MissionValidation) error {
	if len(steps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&steps).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*MissionValidation, error) {
	var step MissionValidation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&step, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, validationerrors.ErrValidationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *repository) ListByMission(ctx context.Context, companyID, missionID string) ([]MissionValidation, error) {
	var steps []MissionValidation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("mission_id = ?", missionID).
		Order("step_index ASC").
		Find(&steps).Error
	return steps, err
}

// Resolve applies a decision only if the row is still PENDING at the version
// the caller read. Zero rows affected means another writer got there first.
func (r *repository) Resolve(ctx context.Context, companyID, id string, expectedVersion int, d Decision) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&MissionValidation{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Where("version = ?", expectedVersion).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":        d.Status,
			"validated_at":  d.ValidatedAt,
			"validated_by":  d.ValidatedBy,
			"comment":       d.Comment,
			"signature_ref": d.SignatureRef,
			"version":       gorm.Expr("version + 1"),
			"updated_at":    d.ValidatedAt,
		})
	return res.RowsAffected, res.Error
}

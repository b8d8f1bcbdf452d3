package compensation

import (
	"context"
	"database/sql"
	"time"

	"go-mission/internal/shared/connection"
	"go-mission/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const partsSumSQL = "COALESCE(SUM(transport + breakfast + lunch + dinner + accommodation), 0)"

//go:generate mockgen -source=compensation_repo.go -destination=mock/compensation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockForAssignation(ctx context.Context, companyID, assignationID string) ([]Compensation, error)
	ReplaceForAssignation(ctx context.Context, companyID, assignationID string, lines []Compensation) error
	ListByAssignation(ctx context.Context, companyID, assignationID string) ([]Compensation, error)
	TotalForStatus(ctx context.Context, companyID, status string) (decimal.Decimal, error)
	SumByAssignation(ctx context.Context, companyID, assignationID string) (decimal.Decimal, error)
	MarkPaid(ctx context.Context, companyID, assignationID string, paidBy *uuid.UUID, paidAt time.Time, rng DateRange) (int64, error)
	PurgeAssignation(ctx context.Context, companyID, assignationID string) (int64, error)
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

// LockForAssignation reads the current lines with FOR UPDATE so a concurrent
// mark-paid waits for the surrounding transaction.
func (r *repository) LockForAssignation(ctx context.Context, companyID, assignationID string) ([]Compensation, error) {
	var lines []Compensation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		Where("assignation_id = ?", assignationID).
		Find(&lines).Error
	return lines, err
}

func (r *repository) ReplaceForAssignation(ctx context.Context, companyID, assignationID string, lines []Compensation) error {
	db := r.db.WithContext(ctx)
	if err := db.
		Scopes(tenant.Scope(companyID)).
		Where("assignation_id = ?", assignationID).
		Delete(&Compensation{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return db.CreateInBatches(lines, 100).Error
}

func (r *repository) ListByAssignation(ctx context.Context, companyID, assignationID string) ([]Compensation, error) {
	var lines []Compensation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("assignation_id = ?", assignationID).
		Order("date ASC").
		Find(&lines).Error
	return lines, err
}

func (r *repository) TotalForStatus(ctx context.Context, companyID, status string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&Compensation{}).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", status).
		Select(partsSumSQL).
		Scan(&total).Error
	return total, err
}

func (r *repository) SumByAssignation(ctx context.Context, companyID, assignationID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&Compensation{}).
		Scopes(tenant.Scope(companyID)).
		Where("assignation_id = ?", assignationID).
		Select(partsSumSQL).
		Scan(&total).Error
	return total, err
}

// MarkPaid only touches NOT_PAID lines, so a PAID line never changes again.
func (r *repository) MarkPaid(ctx context.Context, companyID, assignationID string, paidBy *uuid.UUID, paidAt time.Time, rng DateRange) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&Compensation{}).
		Scopes(tenant.Scope(companyID)).
		Where("assignation_id = ?", assignationID).
		Where("status = ?", StatusNotPaid)
	if rng.From != nil {
		q = q.Where("date >= ?", *rng.From)
	}
	if rng.To != nil {
		q = q.Where("date <= ?", *rng.To)
	}

	res := q.Updates(map[string]any{
		"status":     StatusPaid,
		"paid_at":    paidAt,
		"paid_by":    paidBy,
		"updated_at": paidAt,
	})
	return res.RowsAffected, res.Error
}

// PurgeAssignation drops unpaid lines. Paid lines are payment history and stay.
func (r *repository) PurgeAssignation(ctx context.Context, companyID, assignationID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("assignation_id = ?", assignationID).
		Where("status = ?", StatusNotPaid).
		Delete(&Compensation{})
	return res.RowsAffected, res.Error
}

package scale

import (
	"time"

	scaleerrors "go-mission/internal/scale/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Resolve picks the amount for (category, target) in effect on asOf.
// Rows with a nil bound are open on that side. When several rows match, the
// most recently created wins and ties fall to the greater id, so the answer
// never depends on row order. No match returns ErrScaleNotFound.
func Resolve(rows []CompensationScale, categoryID uuid.UUID, target Target, asOf time.Time) (decimal.Decimal, error) {
	if !target.Valid() {
		return decimal.Zero, scaleerrors.ErrInvalidScaleTarget
	}

	day := dateOnly(asOf)
	var winner *CompensationScale
	for i := range rows {
		row := &rows[i]
		if row.EmployeeCategoryID != categoryID {
			continue
		}
		rowTarget, err := TargetOf(*row)
		if err != nil || rowTarget != target {
			continue
		}
		if !effectiveOn(*row, day) {
			continue
		}
		if winner == nil || newer(*row, *winner) {
			winner = row
		}
	}

	if winner == nil {
		return decimal.Zero, scaleerrors.ErrScaleNotFound
	}
	return winner.Amount, nil
}

func effectiveOn(row CompensationScale, day time.Time) bool {
	if row.EffectiveFrom != nil && day.Before(dateOnly(*row.EffectiveFrom)) {
		return false
	}
	if row.EffectiveTo != nil && day.After(dateOnly(*row.EffectiveTo)) {
		return false
	}
	return true
}

func newer(a, b CompensationScale) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Resolver is the scale table of one employee category, loaded once per
// computation.
type Resolver struct {
	categoryID uuid.UUID
	rows       []CompensationScale
}

func NewResolver(categoryID uuid.UUID, rows []CompensationScale) *Resolver {
	return &Resolver{categoryID: categoryID, rows: rows}
}

func (r *Resolver) Amount(target Target, asOf time.Time) (decimal.Decimal, error) {
	return Resolve(r.rows, r.categoryID, target, asOf)
}

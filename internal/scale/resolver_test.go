package scale_test

import (
	"testing"
	"time"

	"go-mission/internal/scale"
	scaleerrors "go-mission/internal/scale/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func TestResolve(t *testing.T) {
	category := uuid.New()
	otherCategory := uuid.New()
	breakfast := uuid.New()
	plane := uuid.New()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []scale.CompensationScale{
		{ID: uuid.New(), EmployeeCategoryID: category, ExpenseTypeID: &breakfast, Amount: decimal.NewFromInt(5000), CreatedAt: created},
		{ID: uuid.New(), EmployeeCategoryID: otherCategory, ExpenseTypeID: &breakfast, Amount: decimal.NewFromInt(9000), CreatedAt: created},
		{ID: uuid.New(), EmployeeCategoryID: category, TransportID: &plane, Amount: decimal.NewFromInt(80000), CreatedAt: created},
	}

	t.Run("expense type match", func(t *testing.T) {
		amount, err := scale.Resolve(rows, category, scale.ExpenseTarget(breakfast), day("2024-03-01"))
		assert.NoError(t, err)
		assert.True(t, amount.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("transport match", func(t *testing.T) {
		amount, err := scale.Resolve(rows, category, scale.TransportTarget(plane), day("2024-03-01"))
		assert.NoError(t, err)
		assert.True(t, amount.Equal(decimal.NewFromInt(80000)))
	})

	t.Run("same id under the other kind does not match", func(t *testing.T) {
		_, err := scale.Resolve(rows, category, scale.TransportTarget(breakfast), day("2024-03-01"))
		assert.ErrorIs(t, err, scaleerrors.ErrScaleNotFound)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := scale.Resolve(rows, uuid.New(), scale.ExpenseTarget(breakfast), day("2024-03-01"))
		assert.ErrorIs(t, err, scaleerrors.ErrScaleNotFound)
	})

	t.Run("invalid target", func(t *testing.T) {
		_, err := scale.Resolve(rows, category, scale.Target{}, day("2024-03-01"))
		assert.ErrorIs(t, err, scaleerrors.ErrInvalidScaleTarget)
	})
}

func TestResolve_EffectiveWindow(t *testing.T) {
	category := uuid.New()
	lunch := uuid.New()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []scale.CompensationScale{
		{
			ID: uuid.New(), EmployeeCategoryID: category, ExpenseTypeID: &lunch,
			Amount: decimal.NewFromInt(10000), EffectiveTo: dayPtr("2024-06-30"), CreatedAt: created,
		},
		{
			ID: uuid.New(), EmployeeCategoryID: category, ExpenseTypeID: &lunch,
			Amount: decimal.NewFromInt(12000), EffectiveFrom: dayPtr("2024-07-01"), CreatedAt: created,
		},
	}

	amount, err := scale.Resolve(rows, category, scale.ExpenseTarget(lunch), day("2024-06-30"))
	assert.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(10000)))

	amount, err = scale.Resolve(rows, category, scale.ExpenseTarget(lunch), time.Date(2024, 7, 1, 23, 30, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(12000)))
}

func TestResolve_DuplicateRowsAreDeterministic(t *testing.T) {
	category := uuid.New()
	dinner := uuid.New()
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	lowID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	highID := uuid.MustParse("ffffffff-0000-0000-0000-000000000001")

	rows := []scale.CompensationScale{
		{ID: uuid.New(), EmployeeCategoryID: category, ExpenseTypeID: &dinner, Amount: decimal.NewFromInt(1), CreatedAt: older},
		{ID: lowID, EmployeeCategoryID: category, ExpenseTypeID: &dinner, Amount: decimal.NewFromInt(2), CreatedAt: newer},
		{ID: highID, EmployeeCategoryID: category, ExpenseTypeID: &dinner, Amount: decimal.NewFromInt(3), CreatedAt: newer},
	}
	reversed := []scale.CompensationScale{rows[2], rows[1], rows[0]}

	a, err := scale.Resolve(rows, category, scale.ExpenseTarget(dinner), day("2024-02-01"))
	assert.NoError(t, err)
	b, err := scale.Resolve(reversed, category, scale.ExpenseTarget(dinner), day("2024-02-01"))
	assert.NoError(t, err)

	assert.True(t, a.Equal(decimal.NewFromInt(3)))
	assert.True(t, a.Equal(b))
}

func TestNewTarget(t *testing.T) {
	id := uuid.New()

	target, err := scale.NewTarget(&id, nil)
	assert.NoError(t, err)
	assert.Equal(t, scale.TargetExpenseType, target.Kind())

	target, err = scale.NewTarget(nil, &id)
	assert.NoError(t, err)
	assert.Equal(t, scale.TargetTransport, target.Kind())
	assert.Equal(t, id, target.ID())

	_, err = scale.NewTarget(&id, &id)
	assert.ErrorIs(t, err, scaleerrors.ErrInvalidScaleTarget)

	_, err = scale.NewTarget(nil, nil)
	assert.ErrorIs(t, err, scaleerrors.ErrInvalidScaleTarget)
}

func TestResolver_Amount(t *testing.T) {
	category := uuid.New()
	breakfast := uuid.New()
	r := scale.NewResolver(category, []scale.CompensationScale{
		{ID: uuid.New(), EmployeeCategoryID: category, ExpenseTypeID: &breakfast, Amount: decimal.NewFromInt(5000)},
	})

	amount, err := r.Amount(scale.ExpenseTarget(breakfast), day("2024-01-10"))
	assert.NoError(t, err)
	assert.Equal(t, "5000", amount.String())
}

package compensation

import (
	"errors"
	"math"
	"time"

	compensationerrors "go-mission/internal/compensation/errors"
	"go-mission/internal/mission"
	"go-mission/internal/scale"
	scaleerrors "go-mission/internal/scale/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type AmountResolver interface {
	Amount(target scale.Target, asOf time.Time) (decimal.Decimal, error)
}

// MealPolicy holds the day-level exclusions. The zero value excludes nothing.
type MealPolicy struct {
	// ReturnDinnerCutoff is an offset from midnight. When positive and the
	// return happens before it, the return day carries no dinner.
	ReturnDinnerCutoff time.Duration
}

func (p MealPolicy) skipsReturnDinner(returnAt time.Time) bool {
	if p.ReturnDinnerCutoff <= 0 {
		return false
	}
	return sinceMidnight(returnAt) < p.ReturnDinnerCutoff
}

type CalculationInput struct {
	CompanyID        uuid.UUID
	AssignationID    uuid.UUID
	MissionID        uuid.UUID
	EmployeeID       uuid.UUID
	MissionStartDate time.Time
	DepartureAt      time.Time
	ReturnAt         time.Time
	TransportID      *uuid.UUID
	// ExpenseTypeIDs maps BREAKFAST, LUNCH, DINNER and ACCOMMODATION to ids.
	ExpenseTypeIDs map[string]uuid.UUID
}

func InputFromAssignation(d mission.AssignationDetail, expenseTypeIDs map[string]uuid.UUID) CalculationInput {
	return CalculationInput{
		CompanyID:        d.CompanyID,
		AssignationID:    d.AssignationID,
		MissionID:        d.MissionID,
		EmployeeID:       d.EmployeeID,
		MissionStartDate: d.MissionStartDate,
		DepartureAt:      d.DepartureAt,
		ReturnAt:         d.ReturnAt,
		TransportID:      d.TransportID,
		ExpenseTypeIDs:   expenseTypeIDs,
	}
}

// DurationDays is ceil(return - departure) in days.
func DurationDays(departureAt, returnAt time.Time) int {
	return int(math.Ceil(returnAt.Sub(departureAt).Hours() / 24))
}

type Calculator struct {
	policy MealPolicy
	logger *zap.Logger
}

func NewCalculator(policy MealPolicy, logger ...*zap.Logger) *Calculator {
	l := zap.L().Named("compensation.calculator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compensation.calculator")
	}
	return &Calculator{policy: policy, logger: l}
}

// Compute runs the default calculator.
func Compute(in CalculationInput, resolver AmountResolver, policy MealPolicy) ([]Compensation, error) {
	return NewCalculator(policy).Compute(in, resolver)
}

// Compute produces one line per calendar day from the departure date to the
// return date inclusive. Transport is resolved once and lands on the first
// line. A missing scale contributes zero; any other resolver error aborts.
func (c *Calculator) Compute(in CalculationInput, resolver AmountResolver) ([]Compensation, error) {
	if DurationDays(in.DepartureAt, in.ReturnAt) <= 0 {
		return nil, compensationerrors.ErrInvalidDateRange
	}
	if dateOf(in.DepartureAt).Before(dateOf(in.MissionStartDate)) {
		return nil, compensationerrors.ErrInvalidDateRange
	}

	first := dateOf(in.DepartureAt)
	last := dateOf(in.ReturnAt)

	lines := make([]Compensation, 0, int(last.Sub(first).Hours()/24)+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		line := Compensation{
			ID:            uuid.New(),
			CompanyID:     in.CompanyID,
			AssignationID: in.AssignationID,
			EmployeeID:    in.EmployeeID,
			MissionID:     in.MissionID,
			Date:          d,
			Status:        StatusNotPaid,
		}

		var err error
		if line.Breakfast, err = c.expense(in, resolver, mission.ExpenseBreakfast, d); err != nil {
			return nil, err
		}
		if line.Lunch, err = c.expense(in, resolver, mission.ExpenseLunch, d); err != nil {
			return nil, err
		}
		if d.Equal(last) && c.policy.skipsReturnDinner(in.ReturnAt) {
			line.Dinner = decimal.Zero
		} else if line.Dinner, err = c.expense(in, resolver, mission.ExpenseDinner, d); err != nil {
			return nil, err
		}
		if line.Accommodation, err = c.expense(in, resolver, mission.ExpenseAccommodation, d); err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	if in.TransportID != nil {
		amount, err := c.amount(in, resolver, scale.TransportTarget(*in.TransportID), first)
		if err != nil {
			return nil, err
		}
		lines[0].Transport = amount
	}

	for i := range lines {
		lines[i].Total = lines[i].PartsSum()
	}
	return lines, nil
}

func (c *Calculator) expense(in CalculationInput, resolver AmountResolver, code string, day time.Time) (decimal.Decimal, error) {
	id, ok := in.ExpenseTypeIDs[code]
	if !ok {
		c.logger.Warn("expense type not configured, using zero",
			zap.String("assignation_id", in.AssignationID.String()),
			zap.String("expense_code", code),
		)
		return decimal.Zero, nil
	}
	return c.amount(in, resolver, scale.ExpenseTarget(id), day)
}

func (c *Calculator) amount(in CalculationInput, resolver AmountResolver, target scale.Target, day time.Time) (decimal.Decimal, error) {
	amount, err := resolver.Amount(target, day)
	if errors.Is(err, scaleerrors.ErrScaleNotFound) {
		c.logger.Warn("compensation scale not found, using zero",
			zap.String("assignation_id", in.AssignationID.String()),
			zap.String("target", target.String()),
			zap.String("date", day.Format(dateLayout)),
		)
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

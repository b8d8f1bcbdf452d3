package scale

import (
	"fmt"

	scaleerrors "go-mission/internal/scale/errors"

	"github.com/google/uuid"
)

type TargetKind int

const (
	TargetExpenseType TargetKind = iota + 1
	TargetTransport
)

func (k TargetKind) String() string {
	switch k {
	case TargetExpenseType:
		return "expense_type"
	case TargetTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Target is what a scale row prices: either an expense type or a transport
// mode, never both. The zero value is invalid.
type Target struct {
	kind TargetKind
	id   uuid.UUID
}

func ExpenseTarget(expenseTypeID uuid.UUID) Target {
	return Target{kind: TargetExpenseType, id: expenseTypeID}
}

func TransportTarget(transportID uuid.UUID) Target {
	return Target{kind: TargetTransport, id: transportID}
}

// NewTarget converts the nullable column pair into a Target.
func NewTarget(expenseTypeID, transportID *uuid.UUID) (Target, error) {
	switch {
	case expenseTypeID != nil && transportID == nil:
		return ExpenseTarget(*expenseTypeID), nil
	case expenseTypeID == nil && transportID != nil:
		return TransportTarget(*transportID), nil
	default:
		return Target{}, scaleerrors.ErrInvalidScaleTarget
	}
}

func TargetOf(s CompensationScale) (Target, error) {
	return NewTarget(s.ExpenseTypeID, s.TransportID)
}

func (t Target) Kind() TargetKind { return t.kind }
func (t Target) ID() uuid.UUID    { return t.id }
func (t Target) Valid() bool      { return t.kind != 0 && t.id != uuid.Nil }

func (t Target) String() string {
	return fmt.Sprintf("%s:%s", t.kind, t.id)
}

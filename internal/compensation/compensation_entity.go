package compensation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusNotPaid = "NOT_PAID"
	StatusPaid    = "PAID"
)

// Compensation is one day of entitlement for an assignation. Lines are only
// ever replaced wholesale by a recompute; the one field that moves on its own
// is Status, and only from NOT_PAID to PAID.
type Compensation struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	AssignationID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_compensations_assignation_date" json:"assignation_id"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"employee_id"`
	MissionID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"mission_id"`
	Date          time.Time       `gorm:"type:date;not null;uniqueIndex:uq_compensations_assignation_date" json:"date"`
	Transport     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"transport"`
	Breakfast     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"breakfast"`
	Lunch         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"lunch"`
	Dinner        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"dinner"`
	Accommodation decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"accommodation"`
	Total         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total"`
	Status        string          `gorm:"type:varchar(20);not null;default:'NOT_PAID'" json:"status"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	PaidBy        *uuid.UUID      `gorm:"type:uuid" json:"paid_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PartsSum is transport+breakfast+lunch+dinner+accommodation.
func (c Compensation) PartsSum() decimal.Decimal {
	return c.Transport.Add(c.Breakfast).Add(c.Lunch).Add(c.Dinner).Add(c.Accommodation)
}

func (c Compensation) IsConsistent() bool {
	return c.Total.Equal(c.PartsSum())
}

type DateRange struct {
	From *time.Time
	To   *time.Time
}

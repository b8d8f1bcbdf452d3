package scale

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompensationScale maps (employee category, expense type XOR transport) to an
// amount. The XOR is enforced by chk_compensation_scales_target in the schema
// and by NewTarget on the way in.
type CompensationScale struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_scales_company_category" json:"company_id"`
	EmployeeCategoryID uuid.UUID       `gorm:"type:uuid;not null;index:idx_scales_company_category" json:"employee_category_id"`
	ExpenseTypeID      *uuid.UUID      `gorm:"type:uuid" json:"expense_type_id,omitempty"`
	TransportID        *uuid.UUID      `gorm:"type:uuid" json:"transport_id,omitempty"`
	Amount             decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	EffectiveFrom      *time.Time      `gorm:"type:date" json:"effective_from,omitempty"`
	EffectiveTo        *time.Time      `gorm:"type:date" json:"effective_to,omitempty"`
	CreatedBy          *uuid.UUID      `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

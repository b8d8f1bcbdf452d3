package validation

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	RoleHierarchicalSuperior = "HIERARCHICAL_SUPERIOR"
	RoleHR                   = "HR"
	RoleGeneralDirection     = "GENERAL_DIRECTION"
)

// DefaultChain is the approval order used when a submission names no roles.
var DefaultChain = []string{RoleHierarchicalSuperior, RoleHR, RoleGeneralDirection}

const (
	EligibilityEligible   = "ELIGIBLE"
	EligibilityIneligible = "INELIGIBLE"
	EligibilityPending    = "PENDING"
)

// MissionValidation is one ordered approval step. Once a step leaves PENDING
// its decision fields are never written again.
type MissionValidation struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	MissionID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_mission_validations_step"`
	AssignationID    *uuid.UUID `gorm:"type:uuid"`
	StepIndex        int        `gorm:"not null;uniqueIndex:uq_mission_validations_step"`
	ToWhom           string     `gorm:"type:varchar(50);not null"`
	MissionCreatorID *uuid.UUID `gorm:"type:uuid"`
	Status           string     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ValidatedAt      *time.Time
	ValidatedBy      *uuid.UUID `gorm:"type:uuid"`
	Comment          *string    `gorm:"type:text"`
	SignatureRef     *string    `gorm:"type:varchar(255)"`
	Version          int        `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

package mission

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPlanned    = "PLANNED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Expense type codes the calculator resolves every mission day.
const (
	ExpenseBreakfast     = "BREAKFAST"
	ExpenseLunch         = "LUNCH"
	ExpenseDinner        = "DINNER"
	ExpenseAccommodation = "ACCOMMODATION"
)

var DailyExpenseCodes = []string{ExpenseBreakfast, ExpenseLunch, ExpenseDinner, ExpenseAccommodation}

// Mission and MissionAssignation are written by the CRUD side of the platform.
// This package only reads them.
type Mission struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	LocationID  *uuid.UUID `gorm:"type:uuid"`
	StartDate   time.Time  `gorm:"type:date;not null"`
	EndDate     time.Time  `gorm:"type:date;not null"`
	Status      string     `gorm:"type:varchar(20);not null;default:'PLANNED'"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}

type Assignation struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	MissionID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	TransportID  *uuid.UUID `gorm:"type:uuid"`
	DepartureAt  time.Time  `gorm:"type:timestamptz;not null"`
	ReturnAt     time.Time  `gorm:"type:timestamptz;not null"`
	DurationDays int        `gorm:"type:int;not null;default:0"`
}

func (Assignation) TableName() string {
	return "mission_assignations"
}

type ExpenseType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Code      string    `gorm:"type:varchar(30);not null"`
	Label     string    `gorm:"type:varchar(100);not null"`
}

type Transport struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Label     string    `gorm:"type:varchar(100);not null"`
}

// AssignationDetail is the flattened read model the compensation engine works
// on. It is loaded with one explicit join instead of navigating
// Mission <-> Assignation <-> Employee object graphs.
type AssignationDetail struct {
	AssignationID      uuid.UUID
	CompanyID          uuid.UUID
	MissionID          uuid.UUID
	MissionName        string
	MissionLocationID  *uuid.UUID
	MissionStartDate   time.Time
	MissionEndDate     time.Time
	MissionStatus      string
	MissionCreatedBy   *uuid.UUID
	EmployeeID         uuid.UUID
	EmployeeName       string
	EmployeeCategoryID uuid.UUID
	TransportID        *uuid.UUID
	TransportLabel     *string
	DepartureAt        time.Time
	ReturnAt           time.Time
	DurationDays       int
}

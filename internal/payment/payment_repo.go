package payment

import (
	"context"
	"time"

	"go-mission/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PairRow is one (mission, employee) pair with its assignation data.
type PairRow struct {
	AssignationID  uuid.UUID
	MissionID      uuid.UUID
	MissionName    string
	EmployeeID     uuid.UUID
	EmployeeName   string
	TransportLabel *string
	DepartureAt    time.Time
	ReturnAt       time.Time
	DurationDays   int
}

type PairFilter struct {
	// Status keeps pairs owning at least one ledger line in that status.
	// Empty means every assignation.
	Status string
	Limit  int
	Offset int
}

//go:generate mockgen -source=payment_repo.go -destination=mock/payment_repo_mock.go -package=mock
type Repository interface {
	ListPairs(ctx context.Context, companyID string, filter PairFilter) ([]PairRow, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// pairSelect keeps the most recent assignation of each (mission, employee) pair.
const pairSelect = `
DISTINCT ON (missions.start_date, missions.id, employees.full_name, employees.id)
mission_assignations.id AS assignation_id,
missions.id AS mission_id,
missions.name AS mission_name,
employees.id AS employee_id,
employees.full_name AS employee_name,
transports.label AS transport_label,
mission_assignations.departure_at AS departure_at,
mission_assignations.return_at AS return_at,
mission_assignations.duration_days AS duration_days`

func (r *repository) ListPairs(ctx context.Context, companyID string, filter PairFilter) ([]PairRow, int64, error) {
	base := r.db.WithContext(ctx).
		Table("mission_assignations").
		Joins("JOIN missions ON missions.id = mission_assignations.mission_id").
		Joins("JOIN employees ON employees.id = mission_assignations.employee_id").
		Scopes(tenant.Scope(companyID, "mission_assignations"))

	if filter.Status != "" {
		base = base.Where(
			"EXISTS (SELECT 1 FROM compensations WHERE compensations.assignation_id = mission_assignations.id AND compensations.status = ?)",
			filter.Status,
		)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.
		Select("COUNT(DISTINCT (mission_assignations.mission_id, mission_assignations.employee_id))").
		Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []PairRow
	err := base.
		Select(pairSelect).
		Joins("LEFT JOIN transports ON transports.id = mission_assignations.transport_id").
		Order("missions.start_date DESC, missions.id, employees.full_name ASC, employees.id, mission_assignations.departure_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Scan(&rows).Error
	return rows, total, err
}

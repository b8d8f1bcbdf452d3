package mission

import (
	"context"
	"database/sql"
	"errors"

	missionerrors "go-mission/internal/mission/errors"
	"go-mission/internal/shared/connection"
	"go-mission/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=mission_repo.go -destination=mock/mission_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindMission(ctx context.Context, companyID, missionID string) (*Mission, error)
	FindAssignationDetail(ctx context.Context, companyID, assignationID string) (*AssignationDetail, error)
	FindAssignationDetailByMissionEmployee(ctx context.Context, companyID, missionID, employeeID string) (*AssignationDetail, error)
	ExpenseTypeIDsByCode(ctx context.Context, companyID string) (map[string]uuid.UUID, error)
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

func (r *repository) FindMission(ctx context.Context, companyID, missionID string) (*Mission, error) {
	var m Mission
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&m, "id = ?", missionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, missionerrors.ErrMissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const assignationDetailSelect = `
mission_assignations.id AS assignation_id,
mission_assignations.company_id AS company_id,
missions.id AS mission_id,
missions.name AS mission_name,
missions.location_id AS mission_location_id,
missions.start_date AS mission_start_date,
missions.end_date AS mission_end_date,
missions.status AS mission_status,
missions.created_by AS mission_created_by,
employees.id AS employee_id,
employees.full_name AS employee_name,
employees.category_id AS employee_category_id,
transports.id AS transport_id,
transports.label AS transport_label,
mission_assignations.departure_at AS departure_at,
mission_assignations.return_at AS return_at,
mission_assignations.duration_days AS duration_days`

func (r *repository) assignationDetails(ctx context.Context, companyID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("mission_assignations").
		Select(assignationDetailSelect).
		Joins("JOIN missions ON missions.id = mission_assignations.mission_id").
		Joins("JOIN employees ON employees.id = mission_assignations.employee_id").
		Joins("LEFT JOIN transports ON transports.id = mission_assignations.transport_id").
		Scopes(tenant.Scope(companyID, "mission_assignations"))
}

func (r *repository) FindAssignationDetail(ctx context.Context, companyID, assignationID string) (*AssignationDetail, error) {
	var detail AssignationDetail
	err := r.assignationDetails(ctx, companyID).
		Where("mission_assignations.id = ?", assignationID).
		Take(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, missionerrors.ErrAssignationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindAssignationDetailByMissionEmployee picks the latest departure, the same
// assignation the payment listing shows for the pair.
func (r *repository) FindAssignationDetailByMissionEmployee(ctx context.Context, companyID, missionID, employeeID string) (*AssignationDetail, error) {
	var detail AssignationDetail
	err := r.assignationDetails(ctx, companyID).
		Where("mission_assignations.mission_id = ?", missionID).
		Where("mission_assignations.employee_id = ?", employeeID).
		Order("mission_assignations.departure_at DESC").
		Take(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, missionerrors.ErrAssignationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *repository) ExpenseTypeIDsByCode(ctx context.Context, companyID string) (map[string]uuid.UUID, error) {
	var types []ExpenseType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("code IN ?", DailyExpenseCodes).
		Find(&types).Error
	if err != nil {
		return nil, err
	}

	ids := make(map[string]uuid.UUID, len(types))
	for _, t := range types {
		ids[t.Code] = t.ID
	}
	return ids, nil
}

package rbac

import (
	"context"

	"go-mission/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetEmployeeRoles(ctx context.Context, companyID string) ([]EmployeeRoleRow, error)
	GetRolePermissions(ctx context.Context, companyID string) ([]RolePermissionRow, error)
	ListPermissions(ctx context.Context) ([]PermissionRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type PermissionRow struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Resource string
	Action   string
	Label    string
	Category string
}

func (PermissionRow) TableName() string {
	return "permissions"
}

type EmployeeRoleRow struct {
	EmployeeID string
	RoleID     string
}

type RolePermissionRow struct {
	RoleID   string
	Resource string
	Action   string
}

// GetEmployeeRoles returns the casbin grouping rows (employee -> role) of one
// company.
func (r *repository) GetEmployeeRoles(ctx context.Context, companyID string) ([]EmployeeRoleRow, error) {
	var rows []EmployeeRoleRow
	err := r.db.WithContext(ctx).
		Table("employee_roles er").
		Select("er.employee_id, er.role_id").
		Joins("JOIN roles ON roles.id = er.role_id").
		Scopes(tenant.Scope(companyID, "roles")).
		Order("er.employee_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) GetRolePermissions(ctx context.Context, companyID string) ([]RolePermissionRow, error) {
	var rows []RolePermissionRow
	err := r.db.WithContext(ctx).
		Table("role_permissions rp").
		Select("rp.role_id, p.resource, p.action").
		Joins("JOIN roles ON roles.id = rp.role_id").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Scopes(tenant.Scope(companyID, "roles")).
		Order("rp.role_id, p.resource, p.action").
		Scan(&rows).Error
	return rows, err
}

// ListPermissions is the global permission catalogue; it is not tenant scoped.
func (r *repository) ListPermissions(ctx context.Context) ([]PermissionRow, error) {
	var rows []PermissionRow
	err := r.db.WithContext(ctx).Order("category, label").Find(&rows).Error
	return rows, err
}

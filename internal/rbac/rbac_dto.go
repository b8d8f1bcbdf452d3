package rbac

import "go-mission/internal/domain"

type (
	EnforceRequest  = domain.EnforceRequest
	EnforceResponse = domain.EnforceResponse
)

type PermissionResponse struct {
	ID       string `json:"id"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

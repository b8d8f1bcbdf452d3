package middleware

import (
	"context"
	"net/http"

	"go-mission/internal/domain"
	"go-mission/internal/shared/apperror"
	"go-mission/internal/shared/contextutil"
	"go-mission/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by anything that can answer an enforce request,
// which keeps this package free of an rbac import.
type RBACService interface {
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetString("employee_id")
		companyID := c.GetString("company_id")
		if employeeID == "" || companyID == "" {
			response.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context")
			return
		}

		allowed, err := service.Enforce(c.Request.Context(), domain.EnforceRequest{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Resource:   resource,
			Action:     action,
		})
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), zap.L()).Error("rbac enforce failed",
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			response.Abort(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message)
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, apperror.ErrForbidden.Message, map[string]string{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

package rbac_http

import (
	"go-mission/internal/middleware"
	"go-mission/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *rbac.Handler, service rbac.Service, logger *zap.Logger) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	group.Use(middleware.ContextLogger(logger))
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/permissions", middleware.RBACAuthorize(service, "role", "read"), handler.ListPermissions)
	}
}

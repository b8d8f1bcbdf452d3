package scale

import (
	"go-mission/internal/middleware"
	"go-mission/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	scales := r.Group("/compensation-scales")
	scales.Use(middleware.AuthMiddleware())
	scales.Use(middleware.ContextLogger(logger))
	{
		scales.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "compensation_scale", "read"),
			handler.GetAll,
		)

		scales.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "compensation_scale", "create"),
			handler.Create,
		)
	}
}

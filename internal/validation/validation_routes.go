package validation

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
	missions := r.Group("/missions/:id/validations")
	missions.Use(middleware.AuthMiddleware())
	missions.Use(middleware.ContextLogger(logger))
	{
		missions.GET("",
			middleware.RBACAuthorize(rbacService, "mission_validation", "read"),
			handler.GetChain,
		)
		missions.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "mission_validation", "submit"),
			handler.Submit,
		)
	}

	steps := r.Group("/mission-validations")
	steps.Use(middleware.AuthMiddleware())
	steps.Use(middleware.ContextLogger(logger))
	{
		steps.PATCH("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "mission_validation", "decide"),
			handler.Advance,
		)
	}
}

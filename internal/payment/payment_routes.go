package payment

import (
	"go-mission/internal/middleware"
	"go-mission/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RegisterRoutes mounts the payment views. exportRPS bounds per-user export
// requests; zero falls back to one every two seconds.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
	exportRPS float64,
) {
	if exportRPS <= 0 {
		exportRPS = 0.5
	}

	views := r.Group("/payment-views")
	views.Use(middleware.AuthMiddleware())
	views.Use(middleware.ContextLogger(logger))
	{
		views.GET("",
			middleware.RBACAuthorize(rbacService, "payment_view", "read"),
			handler.GetPaymentView,
		)
		views.GET("/pairs",
			middleware.RBACAuthorize(rbacService, "payment_view", "read"),
			handler.ListPairs,
		)
		views.GET("/export",
			middleware.RateLimitByUser(rate.Limit(exportRPS), 2),
			middleware.RBACAuthorize(rbacService, "payment_view", "export"),
			handler.Export,
		)
		views.POST("/export/archive",
			middleware.RateLimitByUser(rate.Limit(exportRPS), 1),
			middleware.RBACAuthorize(rbacService, "payment_view", "export"),
			handler.Archive,
		)
	}

	// Older clients read the view under the compensation resource.
	legacy := r.Group("/compensations")
	legacy.Use(middleware.AuthMiddleware())
	legacy.Use(middleware.ContextLogger(logger))
	legacy.GET("/payment-view",
		middleware.RBACAuthorize(rbacService, "payment_view", "read"),
		handler.GetPaymentView,
	)
}

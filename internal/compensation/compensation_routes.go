package compensation

import (
	"go-mission/internal/middleware"
	"go-mission/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	compensations := r.Group("/compensations")
	compensations.Use(middleware.AuthMiddleware())
	compensations.Use(middleware.ContextLogger(logger))
	{
		compensations.GET("",
			middleware.RBACAuthorize(rbacService, "compensation", "read"),
			handler.List,
		)
		compensations.GET("/totals",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "compensation", "read"),
			handler.Totals,
		)
		compensations.POST("/recompute",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "compensation", "recompute"),
			handler.Recompute,
		)
		if redisClient != nil {
			compensations.POST("/mark-paid",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "compensation", "pay"),
				handler.MarkPaid,
			)
		} else {
			compensations.POST("/mark-paid",
				middleware.RBACAuthorize(rbacService, "compensation", "pay"),
				handler.MarkPaid,
			)
		}
	}
}

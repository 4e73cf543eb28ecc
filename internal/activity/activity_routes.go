package activity

import (
	"go-gemtrack/internal/domain"
	"go-gemtrack/internal/middleware"
	"go-gemtrack/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	auth gin.HandlerFunc,
	logger *zap.Logger,
) {
	activities := r.Group("/activities")
	activities.Use(auth)
	activities.Use(middleware.ContextLogger(logger))
	{
		activities.GET("",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceActivity, domain.ActionRead),
			handler.GetAll,
		)
	}
}

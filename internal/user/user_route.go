package user

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
	profile := r.Group("/profile")
	profile.Use(auth)
	profile.Use(middleware.ContextLogger(logger))
	{
		profile.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionRead),
			handler.GetProfile,
		)

		profile.PUT("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionUpdate),
			handler.UpdateProfile,
		)
	}
}

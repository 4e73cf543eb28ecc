package address

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
	addresses := r.Group("/addresses")
	addresses.Use(auth)
	addresses.Use(middleware.ContextLogger(logger))
	{
		addresses.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceAddress, domain.ActionRead),
			handler.GetById,
		)

		addresses.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceAddress, domain.ActionUpdate),
			handler.Update,
		)
	}
}

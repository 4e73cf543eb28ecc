package client

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
	clients := r.Group("/clients")
	clients.Use(auth)
	clients.Use(middleware.ContextLogger(logger))
	{
		clients.GET("",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceClient, domain.ActionRead),
			handler.GetAll,
		)

		clients.GET("/options",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceClient, domain.ActionRead),
			handler.GetOptions,
		)

		clients.GET("/by-client-id/:clientId",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceClient, domain.ActionRead),
			handler.GetByClientId,
		)

		clients.GET("/:id",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceClient, domain.ActionRead),
			handler.GetById,
		)

		clients.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourceClient, domain.ActionCreate),
			handler.Create,
		)

		clients.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourceClient, domain.ActionUpdate),
			handler.Update,
		)

		clients.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceClient, domain.ActionDelete),
			handler.Delete,
		)
	}
}

package process

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
	processes := r.Group("/processes")
	processes.Use(auth)
	processes.Use(middleware.ContextLogger(logger))
	{
		processes.GET("",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceProcess, domain.ActionRead),
			handler.GetAll,
		)

		processes.GET("/options",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceProcess, domain.ActionRead),
			handler.GetOptions,
		)

		processes.GET("/:id",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceProcess, domain.ActionRead),
			handler.GetById,
		)

		processes.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourceProcess, domain.ActionCreate),
			handler.Create,
		)

		processes.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourceProcess, domain.ActionUpdate),
			handler.Update,
		)

		processes.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceProcess, domain.ActionDelete),
			handler.Delete,
		)
	}
}

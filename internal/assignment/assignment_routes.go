package assignment

import (
	"go-gemtrack/internal/domain"
	"go-gemtrack/internal/middleware"
	"go-gemtrack/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes mounts assignments under their packet. The packet segment
// reuses the :id wildcard of the packet routes.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	auth gin.HandlerFunc,
	logger *zap.Logger,
) {
	assignments := r.Group("/diamond-packets/:id/processes")
	assignments.Use(auth)
	assignments.Use(middleware.ContextLogger(logger))
	{
		assignments.GET("",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceAssignment, domain.ActionRead),
			handler.GetAll,
		)

		assignments.GET("/:assignmentId",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceAssignment, domain.ActionRead),
			handler.GetById,
		)

		assignments.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourceAssignment, domain.ActionCreate),
			handler.Create,
		)

		assignments.PUT("/:assignmentId",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourceAssignment, domain.ActionUpdate),
			handler.Update,
		)

		assignments.DELETE("/:assignmentId",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceAssignment, domain.ActionDelete),
			handler.Delete,
		)
	}
}

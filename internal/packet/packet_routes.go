package packet

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
	packets := r.Group("/diamond-packets")
	packets.Use(auth)
	packets.Use(middleware.ContextLogger(logger))
	{
		packets.GET("",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourcePacket, domain.ActionRead),
			handler.GetAll,
		)

		packets.GET("/options",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourcePacket, domain.ActionRead),
			handler.GetOptions,
		)

		packets.GET("/:id",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourcePacket, domain.ActionRead),
			handler.GetById,
		)

		packets.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourcePacket, domain.ActionCreate),
			handler.Create,
		)

		packets.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourcePacket, domain.ActionUpdate),
			handler.Update,
		)

		packets.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourcePacket, domain.ActionDelete),
			handler.Delete,
		)
	}
}

package auth

import (
	"go-gemtrack/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, logger *zap.Logger) {
	group := r.Group("/auth")
	{
		group.POST("/register", middleware.RateLimitByIP(0.1, 3), handler.Register)
		group.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		group.POST("/logout", handler.Logout)
		group.GET("/me",
			auth,
			middleware.ContextLogger(logger),
			middleware.RateLimitByUser(2, 5),
			handler.Me,
		)
	}
}

package activity

import (
	"go-gemtrack/internal/middleware"
	"go-gemtrack/internal/shared/apperror"
	"go-gemtrack/internal/shared/query"
	"go-gemtrack/internal/shared/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("activity.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activity.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	req, err := query.Bind(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	meta := response.NewPaginationMeta(page.Total, page.CurrentPage, page.Limit)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("activity request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

package settings

import (
	"github.com/gin-gonic/gin"

	"github.com/ksaito/salon-api/internal/model"
	"github.com/ksaito/salon-api/internal/service/settings"
	"github.com/ksaito/salon-api/pkg/httputil"
)

type Handler struct {
	service *settings.Service
}

func NewHandler(service *settings.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/settings")
	{
		group.GET("/calendar", h.GetCalendarSettings)
		group.PUT("/calendar", h.UpdateCalendarSettings)
	}
}

func (h *Handler) GetCalendarSettings(c *gin.Context) {
	current, err := h.service.Get(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, current)
}

func (h *Handler) UpdateCalendarSettings(c *gin.Context) {
	var req model.UpdateCalendarSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

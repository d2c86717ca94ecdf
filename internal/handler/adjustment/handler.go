package adjustment

import (
	"github.com/gin-gonic/gin"

	"github.com/ksaito/salon-api/internal/model"
	"github.com/ksaito/salon-api/internal/service/adjustment"
	"github.com/ksaito/salon-api/pkg/httputil"
)

type Handler struct {
	engine *adjustment.Engine
}

func NewHandler(engine *adjustment.Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	adjustments := r.Group("/adjustments")
	{
		adjustments.POST("/preview", h.PreviewAdjustment)
		adjustments.POST("/apply", h.ApplyAdjustment)
	}
}

// PreviewAdjustment shows per-service and total before/after values without
// applying anything.
func (h *Handler) PreviewAdjustment(c *gin.Context) {
	var req model.BulkAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}
	if !req.Directive.Mode.Valid() {
		httputil.RespondWithBadRequest(c, "unknown adjustment mode")
		return
	}

	httputil.RespondWithSuccess(c, h.engine.Preview(req.Services, req.Directive))
}

// ApplyAdjustment applies one directive uniformly across the submitted
// selection and returns the adjusted services.
func (h *Handler) ApplyAdjustment(c *gin.Context) {
	var req model.BulkAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}
	if !req.Directive.Mode.Valid() {
		httputil.RespondWithBadRequest(c, "unknown adjustment mode")
		return
	}

	httputil.RespondWithSuccess(c, h.engine.BulkApply(req.Services, req.Directive))
}

package history

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ksaito/salon-api/internal/model"
	"github.com/ksaito/salon-api/internal/service/history"
	"github.com/ksaito/salon-api/pkg/httputil"
)

type Handler struct {
	analyzer *history.Analyzer
}

func NewHandler(analyzer *history.Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	customers := r.Group("/customers")
	{
		customers.GET("/:id/history", h.GetCustomerHistory)
		customers.GET("/:id/adjustments", h.AnalyzeAdjustments)
	}
}

func (h *Handler) GetCustomerHistory(c *gin.Context) {
	completedOnly, _ := strconv.ParseBool(c.DefaultQuery("completed_only", "false"))

	appointments, err := h.analyzer.History(c.Request.Context(), c.Param("id"), completedOnly)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

// AnalyzedAdjustment pairs the per-service statistics with ready-made
// override directives the booking flow can apply directly.
type AnalyzedAdjustment struct {
	model.HistoricalAdjustment
	Suggestions struct {
		Latest  model.AdjustmentDirective `json:"latest"`
		Average model.AdjustmentDirective `json:"average"`
	} `json:"suggestions"`
}

func (h *Handler) AnalyzeAdjustments(c *gin.Context) {
	raw := c.Query("service_ids")
	if raw == "" {
		httputil.RespondWithBadRequest(c, "service_ids is required")
		return
	}
	var serviceIDs []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			serviceIDs = append(serviceIDs, id)
		}
	}

	records, err := h.analyzer.Analyze(c.Request.Context(), c.Param("id"), serviceIDs)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	out := make([]AnalyzedAdjustment, 0, len(records))
	for _, record := range records {
		analyzed := AnalyzedAdjustment{HistoricalAdjustment: record}
		analyzed.Suggestions.Latest = history.SuggestLatest(record)
		analyzed.Suggestions.Average = history.SuggestAverage(record)
		out = append(out, analyzed)
	}
	httputil.RespondWithSuccess(c, out)
}

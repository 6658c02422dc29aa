package handlers

import (
	"github.com/gin-gonic/gin"

	"paneerflow/internal/domain/reports"
)

// ReportsHandler handles reporting endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetTotals handles GET /api/report
func (h *ReportsHandler) GetTotals(c *gin.Context) {
	totals, err := h.service.Totals(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, totals)
}

// GetDashboardStats handles GET /api/dashboard/stats
func (h *ReportsHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, stats)
}

// GetDailyReport handles GET /api/reports/daily
func (h *ReportsHandler) GetDailyReport(c *gin.Context) {
	days := h.ParseIntQuery(c, "days", 0)

	entries, err := h.service.DailyReport(c.Request.Context(), days)
	if err != nil {
		h.Error(c, err)
		return
	}

	if entries == nil {
		entries = []reports.DailyEntry{}
	}
	h.OK(c, entries)
}

package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/learnhub-service/internal/services"
	"github.com/SAP-F-2025/learnhub-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardHandler struct {
	BaseHandler
	service services.AnalyticsService
}

func NewDashboardHandler(service services.AnalyticsService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== DASHBOARD ENDPOINTS =====

// GetDashboardStats returns the admin headline figures
// @Summary Get dashboard statistics
// @Description Totals plus a seven-day registration chart
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /admin/stats [get]
func (h *DashboardHandler) GetDashboardStats(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard stats")

	stats, err := h.service.DashboardStats(c.Request.Context(), GetUserFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetAnalytics returns the four analytics series
// @Summary Get analytics
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.AnalyticsData
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /admin/analytics [get]
func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	h.LogRequest(c, "Getting analytics")

	data, err := h.service.Analytics(c.Request.Context(), GetUserFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// ExportAnalytics downloads the analytics series as a workbook
// @Summary Export analytics
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /admin/analytics/export [get]
func (h *DashboardHandler) ExportAnalytics(c *gin.Context) {
	h.LogRequest(c, "Exporting analytics")

	// render fully before writing so errors can still become JSON
	var buf bytes.Buffer
	if err := h.service.ExportAnalyticsXLSX(c.Request.Context(), GetUserFromContext(c), &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, "learnhub-analytics.xlsx"))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

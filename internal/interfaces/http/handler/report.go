package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dreamshub/backend/internal/application/report"
)

// ReportHandler serves the derived analytics endpoints
type ReportHandler struct {
	BaseHandler
	analytics *report.AnalyticsService
}

// NewReportHandler creates a report handler
func NewReportHandler(analytics *report.AnalyticsService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		analytics:   analytics,
	}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/sales-series", h.SalesSeries)
		reports.GET("/category-breakdown", h.Breakdown)
		reports.GET("/expiry", h.Expiry)
		reports.GET("/alerts", h.Alerts)
		reports.GET("/orders", h.Orders)
	}
}

// Dashboard returns the headline metrics
func (h *ReportHandler) Dashboard(c *gin.Context) {
	metrics, err := h.analytics.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, metrics)
}

// SalesSeries returns the last seven days of sales totals
func (h *ReportHandler) SalesSeries(c *gin.Context) {
	series, err := h.analytics.SalesSeries(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// Breakdown returns stock value grouped by category
func (h *ReportHandler) Breakdown(c *gin.Context) {
	rows, err := h.analytics.Breakdown(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Expiry returns products approaching or past their expiry date
func (h *ReportHandler) Expiry(c *gin.Context) {
	alerts, err := h.analytics.Expiry(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}

// Alerts returns low-stock and out-of-stock products
func (h *ReportHandler) Alerts(c *gin.Context) {
	alerts, err := h.analytics.Alerts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}

// Orders returns sale operations reconstructed from the ledger
func (h *ReportHandler) Orders(c *gin.Context) {
	orders, err := h.analytics.Orders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

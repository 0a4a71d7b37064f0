package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrail/internal/services"
)

type MetricsHandler struct {
	Metrics *services.MetricsService
}

func NewMetricsHandler(metrics *services.MetricsService) *MetricsHandler {
	return &MetricsHandler{Metrics: metrics}
}

// Summary is GET /metrics?period=today|week|month (default month).
func (h *MetricsHandler) Summary(c *gin.Context) {
	summary, err := h.Metrics.Summary(c.DefaultQuery("period", "month"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch metrics"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

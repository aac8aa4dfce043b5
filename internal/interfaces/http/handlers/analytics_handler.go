package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"analytics-gate.backend/internal/domain/entities"
	"analytics-gate.backend/internal/interfaces/http/middleware"
	"analytics-gate.backend/internal/interfaces/http/response"
	"analytics-gate.backend/internal/usecases"
	"analytics-gate.backend/pkg/logger"
	"analytics-gate.backend/pkg/metrics"
)

// AnalyticsHandler serves the data plane behind API key authentication.
type AnalyticsHandler struct {
	analyticsUsecase *usecases.AnalyticsUsecase
	metrics          *metrics.Metrics
}

func NewAnalyticsHandler(analyticsUsecase *usecases.AnalyticsUsecase, m *metrics.Metrics) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUsecase: analyticsUsecase,
		metrics:          m,
	}
}

// CollectEvent ingests a single analytics event
func (h *AnalyticsHandler) CollectEvent(c *gin.Context) {
	appID, ok := middleware.GetApplicationID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
		return
	}

	var input entities.CollectEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.analyticsUsecase.Collect(c.Request.Context(), appID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.EventsIngested.Inc()
	}
	logger.Debug(c.Request.Context(), "event collected")
	c.JSON(http.StatusCreated, resp)
}

// GetEventSummary aggregates one event name for the caller's application.
// Filters arrive as query parameters: event, startDate, endDate.
func (h *AnalyticsHandler) GetEventSummary(c *gin.Context) {
	appID, ok := middleware.GetApplicationID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
		return
	}

	resp, err := h.analyticsUsecase.EventSummary(
		c.Request.Context(),
		appID,
		c.Query("event"),
		c.Query("startDate"),
		c.Query("endDate"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUserStats profiles a single end user via the userId query parameter
func (h *AnalyticsHandler) GetUserStats(c *gin.Context) {
	appID, ok := middleware.GetApplicationID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
		return
	}

	resp, err := h.analyticsUsecase.UserStats(c.Request.Context(), appID, c.Query("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/analytics"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandlers covers event ingestion and the admin dashboard.
type AnalyticsHandlers struct {
	analytics *services.AnalyticsService
	abtests   *services.AbTestService
	sessions  *services.SessionService
}

// NewAnalyticsHandlers creates a new analytics handlers instance.
func NewAnalyticsHandlers(analyticsSvc *services.AnalyticsService, abtests *services.AbTestService, sessions *services.SessionService) *AnalyticsHandlers {
	return &AnalyticsHandlers{analytics: analyticsSvc, abtests: abtests, sessions: sessions}
}

// TrackEvent handles POST /api/v1/events
func (h *AnalyticsHandlers) TrackEvent(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var event analytics.CustomEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}
	if event.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event name is required"})
		return
	}
	if event.SessionID == "" {
		event.SessionID = c.GetHeader(SessionHeader)
	}

	if err := h.analytics.TrackEvent(storeCtx, &event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"id": event.ID})
}

// RecordConversion handles POST /api/v1/events/conversion
func (h *AnalyticsHandlers) RecordConversion(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var req struct {
		TestID string `json:"testId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "testId is required"})
		return
	}

	session := h.sessions.GetOrCreate(storeCtx, c.GetHeader(SessionHeader), "")
	if err := h.abtests.RecordConversion(storeCtx, session, req.TestID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// GetEventCounts handles GET /api/v1/analytics/counts
func (h *AnalyticsHandlers) GetEventCounts(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	query := analytics.EventQuery{
		Names: c.QueryArray("name"),
		Until: time.Now().UTC(),
	}
	hours := parseIntQuery(c, "hours", 24)
	query.Since = query.Until.Add(-time.Duration(hours) * time.Hour)

	counts, err := h.analytics.GetEventCounts(storeCtx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"counts": counts, "since": query.Since, "until": query.Until})
}

// GetDashboard handles GET /api/v1/analytics/dashboard
func (h *AnalyticsHandlers) GetDashboard(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	hours := parseIntQuery(c, "hours", 24)
	dashboard, err := h.analytics.GetDashboard(storeCtx, hours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetRecentEvents handles GET /api/v1/analytics/recent
func (h *AnalyticsHandlers) GetRecentEvents(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	limit := parseIntQuery(c, "limit", 50)
	events, err := h.analytics.GetRecentEvents(storeCtx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

// PurgeEvents handles POST /api/v1/admin/analytics/purge, dropping
// raw events older than the retention window along with expired bins.
func (h *AnalyticsHandlers) PurgeEvents(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	purged, err := h.analytics.PurgeOldEvents(storeCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"purged": purged})
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

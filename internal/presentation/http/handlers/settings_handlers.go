package handlers

import (
	"net/http"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SettingsHandlers exposes per-store configuration values.
type SettingsHandlers struct {
	configs *services.ConfigService
}

// NewSettingsHandlers creates a new settings handlers instance.
func NewSettingsHandlers(configs *services.ConfigService) *SettingsHandlers {
	return &SettingsHandlers{configs: configs}
}

// GetSettings handles GET /api/v1/settings
func (h *SettingsHandlers) GetSettings(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	settings, err := h.configs.GetSettings(storeCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSetting handles PUT /api/v1/settings/:key
func (h *SettingsHandlers) UpdateSetting(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var req struct {
		Value any `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid setting payload"})
		return
	}

	key := c.Param("key")
	if err := h.configs.UpdateSetting(storeCtx, key, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}

// DeleteSetting handles DELETE /api/v1/settings/:key
func (h *SettingsHandlers) DeleteSetting(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	if err := h.configs.DeleteSetting(storeCtx, c.Param("key")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

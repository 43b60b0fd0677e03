package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// LayoutHandlers exposes the slot layout editing surface.
type LayoutHandlers struct {
	layouts *services.LayoutService
}

// NewLayoutHandlers creates a new layout handlers instance.
func NewLayoutHandlers(layouts *services.LayoutService) *LayoutHandlers {
	return &LayoutHandlers{layouts: layouts}
}

type layoutRequest struct {
	PageType string          `json:"pageType"`
	Name     string          `json:"name"`
	Slots    json.RawMessage `json:"slots"`
}

// ListLayouts handles GET /api/v1/layouts
func (h *LayoutHandlers) ListLayouts(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	layouts, err := h.layouts.ListLayouts(storeCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"layouts": layouts, "count": len(layouts)})
}

// GetLayout handles GET /api/v1/layouts/:id
func (h *LayoutHandlers) GetLayout(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	layout, err := h.layouts.GetLayout(storeCtx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if layout == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "layout not found"})
		return
	}

	c.JSON(http.StatusOK, layout)
}

// CreateLayout handles POST /api/v1/layouts
func (h *LayoutHandlers) CreateLayout(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	req, payload, ok := bindLayoutRequest(c)
	if !ok {
		return
	}

	layout, err := h.layouts.CreateLayout(storeCtx, req.PageType, req.Name, payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, layout)
}

// UpdateLayout handles PUT /api/v1/layouts/:id
func (h *LayoutHandlers) UpdateLayout(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	req, payload, ok := bindLayoutRequest(c)
	if !ok {
		return
	}

	layout, err := h.layouts.UpdateLayout(storeCtx, c.Param("id"), req.Name, payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, layout)
}

// PublishLayout handles POST /api/v1/layouts/:id/publish
func (h *LayoutHandlers) PublishLayout(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	layout, err := h.layouts.Publish(storeCtx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, layout)
}

// UnpublishLayout handles POST /api/v1/layouts/:id/unpublish
func (h *LayoutHandlers) UnpublishLayout(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	if err := h.layouts.Unpublish(storeCtx, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "unpublished"})
}

// DeleteLayout handles DELETE /api/v1/layouts/:id
func (h *LayoutHandlers) DeleteLayout(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	if err := h.layouts.DeleteLayout(storeCtx, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// CheckLayout handles POST /api/v1/layouts/check, a dry-run lint for
// the editor that reports integrity problems without persisting.
func (h *LayoutHandlers) CheckLayout(c *gin.Context) {
	_, payload, ok := bindLayoutRequest(c)
	if !ok {
		return
	}

	report, err := h.layouts.CheckIntegrity(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clean": report.Clean(), "summary": report.Summary(), "report": report})
}

// bindLayoutRequest extracts the raw slot JSON from the layout
// envelope so the service layer parses the authored bytes directly.
func bindLayoutRequest(c *gin.Context) (*layoutRequest, []byte, bool) {
	var req layoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid layout payload"})
		return nil, nil, false
	}
	if len(req.Slots) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slots are required"})
		return nil, nil, false
	}
	return &req, []byte(req.Slots), true
}

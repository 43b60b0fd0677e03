package handlers

import (
	"net/http"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// MediaHandlers covers product image upload and branding assets.
type MediaHandlers struct {
	media *services.MediaService
}

// NewMediaHandlers creates a new media handlers instance.
func NewMediaHandlers(media *services.MediaService) *MediaHandlers {
	return &MediaHandlers{media: media}
}

// AddProductImage handles POST /api/v1/products/:id/images
func (h *MediaHandlers) AddProductImage(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var req struct {
		Data string `json:"data" binding:"required"`
		Alt  string `json:"alt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image data is required"})
		return
	}

	image, err := h.media.AddProductImage(storeCtx, c.Param("id"), req.Data, req.Alt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, image)
}

// RemoveProductImage handles DELETE /api/v1/products/:id/images/:imageId
func (h *MediaHandlers) RemoveProductImage(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	if err := h.media.RemoveProductImage(storeCtx, c.Param("id"), c.Param("imageId")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// UploadBrandingAsset handles POST /api/v1/branding
func (h *MediaHandlers) UploadBrandingAsset(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var req struct {
		Data     string `json:"data" binding:"required"`
		Filename string `json:"filename" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data and filename are required"})
		return
	}

	url, err := h.media.UploadBrandingAsset(storeCtx, req.Data, req.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

package handlers

import (
	"net/http"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/i18n"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// TranslationHandlers exposes languages, translation values, and the
// credit-metered quick-translate operation.
type TranslationHandlers struct {
	translations *services.TranslationService
}

// NewTranslationHandlers creates a new translation handlers instance.
func NewTranslationHandlers(translations *services.TranslationService) *TranslationHandlers {
	return &TranslationHandlers{translations: translations}
}

// ListLanguages handles GET /api/v1/languages
func (h *TranslationHandlers) ListLanguages(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	languages, err := h.translations.ListLanguages(storeCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"languages": languages, "count": len(languages)})
}

// CreateLanguage handles POST /api/v1/languages
func (h *TranslationHandlers) CreateLanguage(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var language i18n.Language
	if err := c.ShouldBindJSON(&language); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid language payload"})
		return
	}

	if err := h.translations.CreateLanguage(storeCtx, &language); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, language)
}

// UpdateLanguage handles PUT /api/v1/languages/:id
func (h *TranslationHandlers) UpdateLanguage(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var language i18n.Language
	if err := c.ShouldBindJSON(&language); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid language payload"})
		return
	}
	language.ID = c.Param("id")

	if err := h.translations.UpdateLanguage(storeCtx, &language); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, language)
}

// DeleteLanguage handles DELETE /api/v1/languages/:id
func (h *TranslationHandlers) DeleteLanguage(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	if err := h.translations.DeleteLanguage(storeCtx, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListTranslations handles GET /api/v1/translations?language=xx
func (h *TranslationHandlers) ListTranslations(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	language := c.Query("language")
	if language == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language is required"})
		return
	}

	translations, err := h.translations.ListTranslations(storeCtx, language)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"translations": translations, "count": len(translations)})
}

// UpsertTranslation handles PUT /api/v1/translations
func (h *TranslationHandlers) UpsertTranslation(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var translation i18n.Translation
	if err := c.ShouldBindJSON(&translation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid translation payload"})
		return
	}

	if err := h.translations.UpsertTranslation(storeCtx, &translation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, translation)
}

// DeleteTranslation handles DELETE /api/v1/translations/:id
func (h *TranslationHandlers) DeleteTranslation(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	if err := h.translations.DeleteTranslation(storeCtx, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// QuickTranslate handles POST /api/v1/translations/quick-translate
func (h *TranslationHandlers) QuickTranslate(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var req struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language is required"})
		return
	}

	filled, err := h.translations.QuickTranslate(storeCtx, req.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"language": req.Language, "filled": filled})
}

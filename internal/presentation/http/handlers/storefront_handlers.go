// Package handlers contains the HTTP layer: thin wrappers that parse
// requests, call application services, and shape responses.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/types"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/observability/logging"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SessionHeader carries the shopper session between requests.
const SessionHeader = "X-DainoStore-Session-ID"

// StorefrontHandlers serves rendered page fragments to shoppers.
type StorefrontHandlers struct {
	fragments *services.FragmentService
	sessions  *services.SessionService
	abtests   *services.AbTestService
	logger    *logging.ChanneledLogger
}

// NewStorefrontHandlers creates a new storefront handlers instance.
func NewStorefrontHandlers(fragments *services.FragmentService, sessions *services.SessionService, abtests *services.AbTestService, logger *logging.ChanneledLogger) *StorefrontHandlers {
	return &StorefrontHandlers{
		fragments: fragments,
		sessions:  sessions,
		abtests:   abtests,
		logger:    logger,
	}
}

// GetHomePage handles GET /api/v1/pages/home
func (h *StorefrontHandlers) GetHomePage(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	session := h.resolveSession(c)
	html, err := h.fragments.RenderHomePage(storeCtx, session)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Header(SessionHeader, session.SessionID)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GetCategoryPage handles GET /api/v1/pages/category/:slug
func (h *StorefrontHandlers) GetCategoryPage(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category slug is required"})
		return
	}

	session := h.resolveSession(c)
	query := parseProductQuery(c)

	html, err := h.fragments.RenderCategoryPage(storeCtx, slug, session, query)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Header(SessionHeader, session.SessionID)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GetProductPage handles GET /api/v1/pages/product/:slug
func (h *StorefrontHandlers) GetProductPage(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product slug is required"})
		return
	}

	session := h.resolveSession(c)
	html, err := h.fragments.RenderProductPage(storeCtx, slug, session)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Header(SessionHeader, session.SessionID)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GetProductMeta handles GET /api/v1/pages/product/:slug/meta
func (h *StorefrontHandlers) GetProductMeta(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	session := h.resolveSession(c)
	meta, err := h.fragments.ResolveProductMeta(storeCtx, c.Param("slug"), session)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Header(SessionHeader, session.SessionID)
	c.JSON(http.StatusOK, meta)
}

// GetCategoryMeta handles GET /api/v1/pages/category/:slug/meta
func (h *StorefrontHandlers) GetCategoryMeta(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	session := h.resolveSession(c)
	meta, err := h.fragments.ResolveCategoryMeta(storeCtx, c.Param("slug"), session)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Header(SessionHeader, session.SessionID)
	c.JSON(http.StatusOK, meta)
}

// resolveSession loads or creates the shopper session and enters it
// into any running experiments before the page renders.
func (h *StorefrontHandlers) resolveSession(c *gin.Context) *types.SessionData {
	storeCtx, _ := middleware.GetStoreContext(c)
	session := h.sessions.GetOrCreate(storeCtx, c.GetHeader(SessionHeader), "")
	h.sessions.Touch(storeCtx, session)

	if err := h.abtests.AssignVariants(storeCtx, session); err != nil {
		h.logger.Analytics().Warn("Variant assignment failed",
			"error", err.Error(), "sessionId", session.SessionID)
	}
	return session
}

// parseProductQuery reads layered navigation, search, sort, and paging
// from the query string. Filters use filter[code]=value pairs.
func parseProductQuery(c *gin.Context) services.ProductQuery {
	query := services.ProductQuery{
		Search: c.Query("q"),
		SortBy: c.Query("sort"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		query.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("perPage")); err == nil && perPage > 0 {
		query.PerPage = perPage
	}

	filters := make(map[string][]string)
	for code, value := range c.QueryMap("filter") {
		if value != "" {
			filters[code] = append(filters[code], value)
		}
	}
	if len(filters) > 0 {
		query.Filters = filters
	}
	return query
}

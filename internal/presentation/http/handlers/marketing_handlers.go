package handlers

import (
	"net/http"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MarketingHandlers covers coupons, SEO templates, and A/B tests.
type MarketingHandlers struct {
	coupons *services.CouponService
	seo     *services.SeoService
	abtests *services.AbTestService
}

// NewMarketingHandlers creates a new marketing handlers instance.
func NewMarketingHandlers(coupons *services.CouponService, seo *services.SeoService, abtests *services.AbTestService) *MarketingHandlers {
	return &MarketingHandlers{coupons: coupons, seo: seo, abtests: abtests}
}

// ValidateCoupon handles POST /api/v1/coupons/validate
func (h *MarketingHandlers) ValidateCoupon(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var req struct {
		Code     string          `json:"code" binding:"required"`
		Subtotal decimal.Decimal `json:"subtotal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	coupon, discount, err := h.coupons.Validate(storeCtx, req.Code, req.Subtotal)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"code":     coupon.Code,
		"type":     coupon.Type,
		"discount": discount,
	})
}

// RedeemCoupon handles POST /api/v1/coupons/redeem, counting one use
// of a coupon once the order it discounted is placed.
func (h *MarketingHandlers) RedeemCoupon(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var req struct {
		Code     string          `json:"code" binding:"required"`
		Subtotal decimal.Decimal `json:"subtotal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	coupon, discount, err := h.coupons.Validate(storeCtx, req.Code, req.Subtotal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.coupons.Redeem(storeCtx, coupon); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": coupon.Code, "discount": discount, "status": "redeemed"})
}

// ListCoupons handles GET /api/v1/coupons
func (h *MarketingHandlers) ListCoupons(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	coupons, err := h.coupons.ListCoupons(storeCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coupons": coupons, "count": len(coupons)})
}

// CreateCoupon handles POST /api/v1/coupons
func (h *MarketingHandlers) CreateCoupon(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var coupon catalog.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon payload"})
		return
	}

	if err := h.coupons.CreateCoupon(storeCtx, &coupon); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

// UpdateCoupon handles PUT /api/v1/coupons/:id
func (h *MarketingHandlers) UpdateCoupon(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var coupon catalog.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon payload"})
		return
	}
	coupon.ID = c.Param("id")

	if err := h.coupons.UpdateCoupon(storeCtx, &coupon); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, coupon)
}

// DeleteCoupon handles DELETE /api/v1/coupons/:id
func (h *MarketingHandlers) DeleteCoupon(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	if err := h.coupons.DeleteCoupon(storeCtx, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListSeoTemplates handles GET /api/v1/seo/templates
func (h *MarketingHandlers) ListSeoTemplates(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	templates, err := h.seo.ListTemplates(storeCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates, "count": len(templates)})
}

// CreateSeoTemplate handles POST /api/v1/seo/templates
func (h *MarketingHandlers) CreateSeoTemplate(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var template catalog.SeoTemplate
	if err := c.ShouldBindJSON(&template); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template payload"})
		return
	}

	if err := h.seo.CreateTemplate(storeCtx, &template); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, template)
}

// UpdateSeoTemplate handles PUT /api/v1/seo/templates/:id
func (h *MarketingHandlers) UpdateSeoTemplate(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var template catalog.SeoTemplate
	if err := c.ShouldBindJSON(&template); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template payload"})
		return
	}
	template.ID = c.Param("id")

	if err := h.seo.UpdateTemplate(storeCtx, &template); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteSeoTemplate handles DELETE /api/v1/seo/templates/:id
func (h *MarketingHandlers) DeleteSeoTemplate(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	if err := h.seo.DeleteTemplate(storeCtx, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListAbTests handles GET /api/v1/abtests
func (h *MarketingHandlers) ListAbTests(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	tests, err := h.abtests.ListTests(storeCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tests": tests, "count": len(tests)})
}

// GetAbTest handles GET /api/v1/abtests/:id
func (h *MarketingHandlers) GetAbTest(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	test, err := h.abtests.GetTest(storeCtx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if test == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "test not found"})
		return
	}

	c.JSON(http.StatusOK, test)
}

// CreateAbTest handles POST /api/v1/abtests
func (h *MarketingHandlers) CreateAbTest(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var test catalog.AbTest
	if err := c.ShouldBindJSON(&test); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid test payload"})
		return
	}

	if err := h.abtests.CreateTest(storeCtx, &test); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, test)
}

// UpdateAbTest handles PUT /api/v1/abtests/:id
func (h *MarketingHandlers) UpdateAbTest(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var test catalog.AbTest
	if err := c.ShouldBindJSON(&test); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid test payload"})
		return
	}
	test.ID = c.Param("id")

	if err := h.abtests.UpdateTest(storeCtx, &test); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, test)
}

// DeleteAbTest handles DELETE /api/v1/abtests/:id
func (h *MarketingHandlers) DeleteAbTest(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	if err := h.abtests.DeleteTest(storeCtx, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

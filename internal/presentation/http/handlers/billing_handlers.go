package handlers

import (
	"net/http"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// BillingHandlers exposes the credit balance, cost table, and ledger.
type BillingHandlers struct {
	credits *services.CreditService
}

// NewBillingHandlers creates a new billing handlers instance.
func NewBillingHandlers(credits *services.CreditService) *BillingHandlers {
	return &BillingHandlers{credits: credits}
}

// GetBalance handles GET /api/v1/billing/balance
func (h *BillingHandlers) GetBalance(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	balance, err := h.credits.GetBalance(storeCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, balance)
}

// GetCosts handles GET /api/v1/billing/costs
func (h *BillingHandlers) GetCosts(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	costs, err := h.credits.GetCosts(storeCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"costs": costs, "count": len(costs)})
}

// GetLedger handles GET /api/v1/billing/ledger
func (h *BillingHandlers) GetLedger(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	limit := parseIntQuery(c, "limit", 100)
	entries, err := h.credits.GetLedger(storeCtx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// CheckAffordability handles GET /api/v1/admin/billing/afford
func (h *BillingHandlers) CheckAffordability(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	operation := c.Query("operation")
	if operation == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "operation is required"})
		return
	}

	affordable, err := h.credits.CanAfford(storeCtx, operation)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"operation": operation, "affordable": affordable})
}

// GrantCredits handles POST /api/v1/billing/grant
func (h *BillingHandlers) GrantCredits(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var req struct {
		Credits int    `json:"credits" binding:"required"`
		Note    string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "credits are required"})
		return
	}

	entry, err := h.credits.Grant(storeCtx, req.Credits, req.Note)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

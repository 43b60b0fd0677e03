package handlers

import (
	"net/http"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/gin-gonic/gin"
)

// ProvisioningHandlers covers the platform-level store lifecycle.
// These routes resolve no store context; they operate on the registry.
type ProvisioningHandlers struct {
	provisioning *services.ProvisioningService
}

// NewProvisioningHandlers creates a new provisioning handlers instance.
func NewProvisioningHandlers(provisioning *services.ProvisioningService) *ProvisioningHandlers {
	return &ProvisioningHandlers{provisioning: provisioning}
}

// GetCapacity handles GET /api/v1/provisioning/capacity
func (h *ProvisioningHandlers) GetCapacity(c *gin.Context) {
	capacity, err := h.provisioning.GetCapacity()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, capacity)
}

// ReserveStore handles POST /api/v1/provisioning/reserve
func (h *ProvisioningHandlers) ReserveStore(c *gin.Context) {
	var reservation services.StoreReservation
	if err := c.ShouldBindJSON(&reservation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation payload"})
		return
	}

	if err := h.provisioning.ReserveStore(&reservation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"storeId": reservation.StoreID,
		"status":  "reserved",
	})
}

// ActivateStore handles GET /api/v1/provisioning/activate
// The activation email links here, so this accepts a plain GET with
// storeId and token query parameters.
func (h *ProvisioningHandlers) ActivateStore(c *gin.Context) {
	storeID := c.Query("storeId")
	token := c.Query("token")
	if storeID == "" || token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "storeId and token are required"})
		return
	}

	if err := h.provisioning.Activate(storeID, token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"storeId": storeID,
		"status":  "activating",
	})
}

// GetStatus handles GET /api/v1/provisioning/status/:storeId
func (h *ProvisioningHandlers) GetStatus(c *gin.Context) {
	status := h.provisioning.GetStatus(c.Param("storeId"))
	c.JSON(http.StatusOK, status)
}

package handlers

import (
	"net/http"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/DainoStore/dainostore-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandlers manages admin and editor authentication endpoints.
type AuthHandlers struct {
	auth *services.AuthService
}

// NewAuthHandlers creates a new auth handlers instance.
func NewAuthHandlers(auth *services.AuthService) *AuthHandlers {
	return &AuthHandlers{auth: auth}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var req struct {
		Role     string `json:"role" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role and password are required"})
		return
	}

	token, err := h.auth.Login(storeCtx, req.Role, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "role": req.Role})
}

// ChangePassword handles POST /api/v1/auth/password
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	storeCtx, exists := middleware.GetStoreContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store context not found"})
		return
	}

	var req struct {
		Role     string `json:"role" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role and password are required"})
		return
	}

	if err := h.auth.ChangePassword(storeCtx, req.Role, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "password updated"})
}

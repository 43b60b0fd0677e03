package middleware

import (
	"net/http"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/application/services"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware gates dashboard routes behind a bearer token issued
// by the auth service. acceptedRoles lists the roles allowed through;
// an admin token always passes.
func AuthMiddleware(authService *services.AuthService, acceptedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeCtx, ok := GetStoreContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "store context missing"})
			c.Abort()
			return
		}

		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		role, err := authService.Verify(storeCtx, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		if !roleAccepted(role, acceptedRoles) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			c.Abort()
			return
		}

		c.Set("role", role)
		c.Next()
	}
}

func roleAccepted(role string, accepted []string) bool {
	if role == security.RoleAdmin {
		return true
	}
	for _, a := range accepted {
		if role == a {
			return true
		}
	}
	return false
}

// GetRole returns the dashboard role set by AuthMiddleware.
func GetRole(c *gin.Context) string {
	if role, ok := c.Get("role"); ok {
		if s, ok := role.(string); ok {
			return s
		}
	}
	return ""
}

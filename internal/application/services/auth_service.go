package services

import (
	"fmt"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/security"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// AuthService exchanges dashboard passwords for store-scoped JWTs.
// Each store carries its own admin and editor passwords plus a signing
// secret, so a token never crosses store boundaries.
type AuthService struct{}

// NewAuthService creates a new auth service.
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login verifies the password for a role and returns a signed token.
// Failures are uniform so a caller cannot probe which part was wrong.
func (s *AuthService) Login(storeCtx *tenant.Context, role, password string) (string, error) {
	var stored string
	switch role {
	case security.RoleAdmin:
		stored = storeCtx.Config.AdminPassword
	case security.RoleEditor:
		stored = storeCtx.Config.EditorPassword
	default:
		return "", fmt.Errorf("unknown dashboard role: %s", role)
	}

	if !security.CheckPassword(stored, password) {
		storeCtx.Logger.LogAuthOperation("login", storeCtx.StoreID, role, false, nil)
		return "", fmt.Errorf("invalid credentials")
	}

	token, err := security.GenerateAuthToken(storeCtx.StoreID, role, storeCtx.Config.JWTSecret, config.JWTExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate auth token: %w", err)
	}

	storeCtx.Logger.LogAuthOperation("login", storeCtx.StoreID, role, true, nil)
	return token, nil
}

// Verify validates a token against the store's secret and returns the
// role it carries. Tokens issued for another store are rejected.
func (s *AuthService) Verify(storeCtx *tenant.Context, token string) (string, error) {
	claims, err := security.ValidateJWT(token, storeCtx.Config.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("invalid auth token: %w", err)
	}
	if security.GetStoreIDFromClaims(claims) != storeCtx.StoreID {
		return "", fmt.Errorf("token issued for a different store")
	}

	role := security.GetRoleFromClaims(claims)
	if role != security.RoleAdmin && role != security.RoleEditor {
		return "", fmt.Errorf("token carries no dashboard role")
	}
	return role, nil
}

// ChangePassword rehashes and persists a role's password.
func (s *AuthService) ChangePassword(storeCtx *tenant.Context, role, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	switch role {
	case security.RoleAdmin:
		storeCtx.Config.AdminPassword = hash
	case security.RoleEditor:
		storeCtx.Config.EditorPassword = hash
	default:
		return fmt.Errorf("unknown dashboard role: %s", role)
	}

	if err := tenant.SaveStoreConfig(storeCtx.Config); err != nil {
		return fmt.Errorf("failed to save store config: %w", err)
	}

	storeCtx.Logger.LogAuthOperation("password_change", storeCtx.StoreID, role, true, nil)
	return nil
}

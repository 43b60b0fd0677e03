// Package security provides JWT token utilities
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Dashboard roles carried in auth tokens.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// ValidateJWT validates a JWT token against a store's secret and returns the claims
func ValidateJWT(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GenerateAuthToken creates a signed dashboard token for one store and role
func GenerateAuthToken(storeID, role, jwtSecret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"storeId": storeID,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// GetStoreIDFromClaims extracts the store ID a token was issued for
func GetStoreIDFromClaims(claims jwt.MapClaims) string {
	if storeID, ok := claims["storeId"].(string); ok {
		return storeID
	}
	return ""
}

// GetRoleFromClaims extracts the dashboard role from token claims
func GetRoleFromClaims(claims jwt.MapClaims) string {
	if role, ok := claims["role"].(string); ok {
		return role
	}
	return ""
}

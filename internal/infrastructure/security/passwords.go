// Package security provides password hashing utilities
package security

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a dashboard password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash.
// Store configs may also carry plaintext passwords from initial
// provisioning, so a direct match is accepted for non-hashed values.
func CheckPassword(stored, password string) bool {
	if stored == "" {
		return false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err == nil {
		return true
	}
	if len(stored) < 4 || stored[0] != '$' {
		return stored == password
	}
	return false
}

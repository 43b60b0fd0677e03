package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateULIDIsUnique(t *testing.T) {
	a := GenerateULID()
	b := GenerateULID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestAuthTokenRoundTrip(t *testing.T) {
	secret, err := GenerateSecureKey(64)
	require.NoError(t, err)

	token, err := GenerateAuthToken("store-1", RoleAdmin, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "store-1", GetStoreIDFromClaims(claims))
	assert.Equal(t, RoleAdmin, GetRoleFromClaims(claims))
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAuthToken("store-1", RoleEditor, "secret-a", time.Hour)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "secret-b")
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	token, err := GenerateAuthToken("store-1", RoleAdmin, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "secret")
	assert.Error(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := GenerateSecureKey(64)
	require.NoError(t, err)

	encrypted, err := Encrypt("activation-payload", key)
	require.NoError(t, err)
	assert.NotEqual(t, "activation-payload", encrypted)

	decrypted, err := Decrypt(encrypted, key)
	require.NoError(t, err)
	assert.Equal(t, "activation-payload", decrypted)
}

func TestEncryptRejectsBadKey(t *testing.T) {
	_, err := Encrypt("data", "")
	assert.Error(t, err)

	_, err = Encrypt("data", "short")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestCheckPasswordAcceptsPlaintextConfigValue(t *testing.T) {
	assert.True(t, CheckPassword("provisioned-pass", "provisioned-pass"))
	assert.False(t, CheckPassword("", "anything"))
}

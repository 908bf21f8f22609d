package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 1)

	tokenString, err := manager.GenerateToken("ext-1", "a@example.com", "Alice")
	require.NoError(t, err)

	claims, err := manager.VerifyToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "ext-1", claims.ExternalID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	tokenString, err := NewJWTManager("secret-a", 1).GenerateToken("ext-1", "", "")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", 1).VerifyToken(tokenString)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	manager := NewJWTManager("test-secret", 1)
	claims := IdentityClaims{
		ExternalID: "ext-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = manager.VerifyToken(tokenString)
	assert.Error(t, err)
}

func TestVerifyTokenMissingExternalID(t *testing.T) {
	manager := NewJWTManager("test-secret", 1)
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = manager.VerifyToken(tokenString)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := NewJWTManager("test-secret", 1).VerifyToken("not-a-jwt")
	assert.Error(t, err)
}

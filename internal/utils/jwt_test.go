package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signoff/internal/config"
)

func TestJWT_RoundTrip(t *testing.T) {
	config.JWTKey = []byte("test-secret")
	config.JWTExpiration = time.Hour

	token, err := GenerateJWT(42, "manager@example.org", "MANAGER")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "manager@example.org", claims.Email)
	assert.Equal(t, "MANAGER", claims.Role)
}

func TestJWT_RejectsTamperedToken(t *testing.T) {
	config.JWTKey = []byte("test-secret")
	config.JWTExpiration = time.Hour

	token, err := GenerateJWT(42, "manager@example.org", "MANAGER")
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	config.JWTKey = []byte("test-secret")
	config.JWTExpiration = -time.Minute

	token, err := GenerateJWT(42, "manager@example.org", "MANAGER")
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestPasswordHash_RoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}

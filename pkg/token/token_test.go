package token

import (
	"testing"
	"time"

	"github.com/anhngq/blogary/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:    "7b0ad9a8-3a7e-4f3f-9c3c-2f9a5a1a0001",
		Email: "ann@example.com",
		Role:  models.RoleUser,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Minute)

	signed, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "7b0ad9a8-3a7e-4f3f-9c3c-2f9a5a1a0001", claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewManager("secret-a", time.Minute).GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Minute).Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	signed, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Minute).Verify("not-a-token")
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Minute)

	signed, err := m.GenerateRefreshToken("user-1", time.Hour)
	require.NoError(t, err)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

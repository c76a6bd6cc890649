package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken("guest-1", "guest@example.com", "Test Guest", "guest")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "guest-1", claims.GuestID)
	assert.Equal(t, "guest@example.com", claims.Email)
	assert.Equal(t, "Test Guest", claims.Name)
	assert.Equal(t, "guest", claims.Role)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, "guest-1", claims.Subject)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateRefreshToken("guest-1", "guest@example.com")
	require.NoError(t, err)

	claims, err := service.ValidateRefreshToken(token)
	require.NoError(t, err)

	assert.Equal(t, "guest-1", claims.GuestID)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	service := newTestService()

	accessToken, err := service.GenerateAccessToken("guest-1", "guest@example.com", "Test Guest", "guest")
	require.NoError(t, err)

	refreshToken, err := service.GenerateRefreshToken("guest-1", "guest@example.com")
	require.NoError(t, err)

	_, err = service.ValidateRefreshToken(accessToken)
	assert.Error(t, err)

	_, err = service.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	service := newTestService()
	other := NewService("different-secret", "different-refresh", 15*time.Minute, 7*24*time.Hour)

	token, err := service.GenerateAccessToken("guest-1", "guest@example.com", "Test Guest", "guest")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	service := NewService("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	token, err := service.GenerateAccessToken("guest-1", "guest@example.com", "Test Guest", "guest")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.True(t, service.IsTokenExpired(token))
}

func TestIsTokenExpired(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken("guest-1", "guest@example.com", "Test Guest", "guest")
	require.NoError(t, err)

	assert.False(t, service.IsTokenExpired(token))
	assert.True(t, service.IsTokenExpired("garbage"))
}

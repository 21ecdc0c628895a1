package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapidjobs_backend/internal/config"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessTTLMin = 15
	cfg.JWT.RefreshTTLDay = 7
	config.AppConfig = cfg
}

func TestGenerateAndParseTokens(t *testing.T) {
	pair, err := GenerateTokens("user-1", "+77001234567")
	require.NoError(t, err)

	claims, err := ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "+77001234567", claims.Phone)

	refreshClaims, err := ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.UserID)
	assert.Empty(t, refreshClaims.Phone)
}

func TestTokensUseSeparateSecrets(t *testing.T) {
	pair, err := GenerateTokens("user-1", "+77001234567")
	require.NoError(t, err)

	_, err = ParseToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = ParseRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	first, err := GenerateTokens("user-1", "+77001234567")
	require.NoError(t, err)
	second, err := GenerateTokens("user-1", "+77001234567")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestRefreshTokenHashRoundTrip(t *testing.T) {
	pair, err := GenerateTokens("user-1", "+77001234567")
	require.NoError(t, err)

	hash, err := HashRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	assert.True(t, CheckRefreshToken(pair.RefreshToken, hash))
	assert.False(t, CheckRefreshToken(pair.RefreshToken+"x", hash))
	assert.False(t, CheckRefreshToken(pair.RefreshToken, ""))
}

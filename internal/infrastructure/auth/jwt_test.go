package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/runmarket/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		RefreshSecret:          "test-refresh-secret-for-unit-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "runmarket-test",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "ada@example.com",
		Role:   "customer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	t.Run("access token round trips claims", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "ada@example.com", claims.Email)
		assert.Equal(t, "customer", claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)

		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("refresh token validates as refresh only", func(t *testing.T) {
		claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)

		_, err = svc.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		_, err := svc.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})
}

func TestValidateAccessToken_Invalid(t *testing.T) {
	svc := newTestJWTService()

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "a-completely-different-secret-value",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "runmarket-test",
		})
		pair, err := other.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Role: "customer"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-for-unit-tests-only",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "runmarket-test",
		})
		pair, err := expired.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Role: "customer"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryTokenBlacklist()

	t.Run("jti blacklisting", func(t *testing.T) {
		jti := uuid.New().String()

		listed, err := bl.IsBlacklisted(ctx, jti)
		require.NoError(t, err)
		assert.False(t, listed)

		require.NoError(t, bl.AddToBlacklist(ctx, jti, time.Minute))

		listed, err = bl.IsBlacklisted(ctx, jti)
		require.NoError(t, err)
		assert.True(t, listed)
	})

	t.Run("expired entries are dropped", func(t *testing.T) {
		jti := uuid.New().String()
		require.NoError(t, bl.AddToBlacklist(ctx, jti, -time.Second))

		listed, err := bl.IsBlacklisted(ctx, jti)
		require.NoError(t, err)
		assert.False(t, listed)
	})

	t.Run("user-wide invalidation", func(t *testing.T) {
		userID := uuid.New().String()
		issuedBefore := time.Now().Add(-time.Minute)

		require.NoError(t, bl.AddUserTokensToBlacklist(ctx, userID, time.Hour))

		invalid, err := bl.IsUserTokenInvalidated(ctx, userID, issuedBefore)
		require.NoError(t, err)
		assert.True(t, invalid)

		invalid, err = bl.IsUserTokenInvalidated(ctx, userID, time.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, invalid)
	})
}

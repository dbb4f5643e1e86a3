package jwt

import (
	"testing"
	"time"

	"healthflow-backend/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWTService(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour}
	service := NewJWTService(cfg)

	t.Run("round trips claims through a signed token", func(t *testing.T) {
		userID := uuid.New()

		token, tokenID, err := service.GenerateAccessToken(userID, "doctor@example.com", 2)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotEmpty(t, tokenID)

		claims, err := service.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "doctor@example.com", claims.Email)
		assert.Equal(t, 2, claims.RoleID)
		assert.Equal(t, tokenID, claims.TokenID)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "other-secret", AccessExpiry: time.Hour})
		token, _, err := other.GenerateAccessToken(uuid.New(), "user@example.com", 4)
		assert.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: -time.Minute})
		token, _, err := expired.GenerateAccessToken(uuid.New(), "user@example.com", 4)
		assert.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}

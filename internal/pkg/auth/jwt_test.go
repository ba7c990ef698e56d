// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/config"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Storefront API"},
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-with-enough-length",
			AccessTokenExpiry: time.Hour,
		},
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	mgr := NewJWTManager(testJWTConfig())

	token, err := mgr.GenerateAccessToken(42, "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "access", claims.TokenType)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	mgr := NewJWTManager(testJWTConfig())

	token, err := mgr.GenerateAccessToken(42, "ada@example.com")
	require.NoError(t, err)

	other := testJWTConfig()
	other.JWT.Secret = "a-completely-different-secret-value"

	_, err = NewJWTManager(other).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.AccessTokenExpiry = -time.Minute
	mgr := NewJWTManager(cfg)

	token, err := mgr.GenerateAccessToken(42, "ada@example.com")
	require.NoError(t, err)

	_, err = mgr.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	mgr := NewJWTManager(testJWTConfig())

	_, err := mgr.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "abc123", ExtractTokenFromHeader("bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}

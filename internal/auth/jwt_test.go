package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("user-abc", DefaultTokenTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-abc", sub)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestSecretReadFromEnvironmentAtUse(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	fallbackToken, err := GenerateToken("user-abc", time.Hour)
	require.NoError(t, err)

	// Secrets set after package init (e.g. loaded from .env in main) must
	// take effect: the fallback-signed token stops verifying and new tokens
	// round-trip under the configured secret.
	t.Setenv("JWT_SECRET", "configured-secret")
	_, err = ValidateToken(fallbackToken)
	assert.Error(t, err)

	token, err := GenerateToken("user-abc", time.Hour)
	require.NoError(t, err)
	sub, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-abc", sub)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken("user-abc", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

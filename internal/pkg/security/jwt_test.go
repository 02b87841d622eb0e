package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, []string{"USER", "ADMIN"})
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, []string{"USER", "ADMIN"}, claims.Roles)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken(1, nil)
	require.NoError(t, err)

	sig, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	_, err = ExtractSignature("two.parts")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NoError(t, CheckPasswordHash("secret123", hash))
	assert.Error(t, CheckPasswordHash("wrong", hash))
}

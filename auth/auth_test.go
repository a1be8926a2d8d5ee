package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("64f1c29c8c1a2b0012345678", "a@x.com", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, email, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "64f1c29c8c1a2b0012345678", userID)
	assert.Equal(t, "a@x.com", email)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("64f1c29c8c1a2b0012345678", "a@x.com", testSecret, -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken("64f1c29c8c1a2b0012345678", "a@x.com", testSecret, time.Hour)
	require.NoError(t, err)

	_, _, err = ParseToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, _, err := ParseToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.True(t, CheckPasswordHash("secret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

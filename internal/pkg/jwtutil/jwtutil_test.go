package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, 42, "a@b.com", "user")
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, 42, "a@b.com", "user")
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken("secret", -time.Minute, 42, "a@b.com", "user")
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not.a.jwt")
	assert.Error(t, err)
}

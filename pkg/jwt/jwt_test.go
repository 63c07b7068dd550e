package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charsheet/backend/internal/config"
	"charsheet/backend/pkg/jwt"
)

func TestGenerateAndParseToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	token, err := jwt.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := jwt.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseToken_Invalid(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	_, err := jwt.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
	token, err := jwt.GenerateToken(7)
	require.NoError(t, err)

	config.AppConfig = &config.Config{JWTSecret: "other-secret"}
	_, err = jwt.ParseToken(token)
	assert.Error(t, err)
}

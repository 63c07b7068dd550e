package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"charsheet/backend/internal/service"
	"charsheet/backend/pkg/jwt"
)

func TestAuthService_Login_Success(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.createUser(t, "login@example.com", "password123")

	session, err := e.auth.Login(ctx, "login@example.com", "password123")
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.RefreshToken)
	require.NotNil(t, session.User)
	assert.Equal(t, "login@example.com", session.User.Email)

	// the access token must resolve back to the user
	userID, err := jwt.ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, userID)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	e := newEnv()

	_, err := e.auth.Login(context.Background(), "nobody@example.com", "password123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrUserNotFound))
}

func TestAuthService_Login_IncorrectPassword(t *testing.T) {
	e := newEnv()
	e.createUser(t, "login@example.com", "password123")

	_, err := e.auth.Login(context.Background(), "login@example.com", "wrongpassword")
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrIncorrectPassword))
	assert.False(t, errors.Is(err, service.ErrUserNotFound))
}

func TestAuthService_RefreshToken_Rotation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.createUser(t, "refresh@example.com", "password123")

	session, err := e.auth.Login(ctx, "refresh@example.com", "password123")
	require.NoError(t, err)

	refreshed, err := e.auth.RefreshAccessToken(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token)
	assert.NotEqual(t, session.RefreshToken, refreshed.RefreshToken)

	// single use: the presented token was invalidated by the rotation
	_, err = e.auth.RefreshAccessToken(ctx, session.RefreshToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidRefreshToken))

	// the replacement still works
	_, err = e.auth.RefreshAccessToken(ctx, refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_RefreshToken_Unknown(t *testing.T) {
	e := newEnv()

	_, err := e.auth.RefreshAccessToken(context.Background(), "deadbeef")
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidRefreshToken))
}

func TestAuthService_Logout(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	user := e.createUser(t, "logout@example.com", "password123")

	session, err := e.auth.Login(ctx, "logout@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, e.auth.Logout(ctx, user.ID))

	_, err = e.auth.RefreshAccessToken(ctx, session.RefreshToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidRefreshToken))

	stored, err := e.store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)
	assert.Nil(t, stored.RefreshTokenExpiry)
}

func TestAuthService_ChangePassword(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	user := e.createUser(t, "change@example.com", "oldpassword")

	_, err := e.auth.ChangePassword(ctx, user.ID, "wrongpassword", "newpassword")
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrIncorrectPassword))

	session, err := e.auth.ChangePassword(ctx, user.ID, "oldpassword", "newpassword")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.RefreshToken)

	stored, err := e.store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpassword")))

	_, err = e.auth.Login(ctx, "change@example.com", "oldpassword")
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrIncorrectPassword))
}

package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"charsheet/backend/internal/models"
	"charsheet/backend/internal/store"
	"charsheet/backend/pkg/jwt"
	"charsheet/backend/pkg/token"
)

const (
	refreshTokenBytes = 40
	refreshTokenTTL   = 7 * 24 * time.Hour
)

// Session is the result of a successful authentication: a short-lived access
// token and a single-use refresh token. User is only populated on login.
type Session struct {
	Token        string
	RefreshToken string
	User         *models.User
}

// AuthService implements login, refresh-token rotation, logout and password
// change over the credential store.
type AuthService struct {
	users store.UserStore
}

func NewAuthService(users store.UserStore) *AuthService {
	return &AuthService{users: users}
}

// Login validates the credentials and opens a session. A missing email and a
// wrong password are distinct failures.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		zap.L().Warn("login failed: incorrect password", zap.Uint("userID", user.ID))
		return nil, ErrIncorrectPassword
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	zap.L().Info("user logged in", zap.Uint("userID", user.ID))
	session.User = user
	return session, nil
}

// RefreshAccessToken exchanges a refresh token for a fresh session. Refresh
// tokens are single-use: the presented one is invalidated by the rotation
// regardless of which replacement the caller keeps.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*Session, error) {
	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if user.RefreshTokenExpiry == nil || time.Now().After(*user.RefreshTokenExpiry) {
		return nil, ErrInvalidRefreshToken
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	zap.L().Info("access token refreshed", zap.Uint("userID", user.ID))
	return session, nil
}

// Logout clears the stored refresh token so the session cannot be renewed.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	user.RefreshToken = nil
	user.RefreshTokenExpiry = nil
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	zap.L().Info("user logged out", zap.Uint("userID", userID))
	return nil
}

// ChangePassword verifies the old password, stores a fresh hash of the new
// one and issues a new token pair exactly as login would.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) (*Session, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.CheckPassword(oldPassword) {
		return nil, ErrIncorrectPassword
	}
	if newPassword == "" {
		return nil, &models.MissingFieldError{Field: "newPassword"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hash)

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	zap.L().Info("password changed", zap.Uint("userID", userID))
	return session, nil
}

// issueSession mints an access token and rotates the refresh token, saving
// the user record with the new token state (and any other pending changes).
func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*Session, error) {
	accessToken, err := jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := token.Generate(refreshTokenBytes)
	if err != nil {
		return nil, err
	}

	expiry := time.Now().Add(refreshTokenTTL)
	user.RefreshToken = &refreshToken
	user.RefreshTokenExpiry = &expiry

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	return &Session{Token: accessToken, RefreshToken: refreshToken}, nil
}

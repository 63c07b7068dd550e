package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"charsheet/backend/internal/service"
)

// region --- DTOs ---

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required" example:"catti@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// RefreshInput carries the refresh token to exchange.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordInput defines the structure for a password change.
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// TokenPairResponse carries a fresh access/refresh token pair.
type TokenPairResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResponse is a token pair plus the sanitized user.
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// endregion

// AuthHandler exposes the session routes.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates with email and password; returns an access token, a single-use refresh token and the user profile.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Credentials"
// @Success      200  {object}  LoginResponse
// @Failure      400  {object}  ErrorResponse "Missing credentials"
// @Failure      401  {object}  ErrorResponse "Unknown email or wrong password"
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		// Login never reveals whether the email exists via the status
		// code; both failures are 401.
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrIncorrectPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
		User:         newUserResponse(session.User),
	})
}

// RefreshToken godoc
// @Summary      Refresh the access token
// @Description  Exchanges a valid refresh token for a new token pair. The presented token is invalidated.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RefreshInput true "Refresh token"
// @Success      200  {object}  TokenPairResponse
// @Failure      400  {object}  ErrorResponse "Missing token"
// @Failure      401  {object}  ErrorResponse "Expired or invalid token"
// @Router       /refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.auth.RefreshAccessToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenPairResponse{
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Clears the stored refresh token; existing access tokens expire naturally.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
}

// ChangePassword godoc
// @Summary      Change the password
// @Description  Verifies the old password, stores the new one and issues a fresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ChangePasswordInput true "Passwords"
// @Success      200  {object}  TokenPairResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse "Wrong old password"
// @Router       /change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.auth.ChangePassword(c.Request.Context(), currentUserID(c), input.OldPassword, input.NewPassword)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenPairResponse{
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
	})
}

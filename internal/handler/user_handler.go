package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"charsheet/backend/internal/models"
	"charsheet/backend/internal/service"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Name      string `json:"name" binding:"required" example:"Catti-brie"`
	BirthDate string `json:"birthDate" binding:"required" example:"1990-04-02"`
	Email     string `json:"email" binding:"required,email" example:"catti@example.com"`
	Password  string `json:"password" binding:"required,min=8" example:"password123"`
}

// UpdateUserInput defines the partial-update structure for a user; omitted
// fields are left untouched.
type UpdateUserInput struct {
	Name      *string `json:"name"`
	BirthDate *string `json:"birthDate"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// UserResponse defines the sanitized user representation. The password hash
// and the verification fields are never exposed.
type UserResponse struct {
	ID             uint      `json:"id" example:"1"`
	Name           string    `json:"name" example:"Catti-brie"`
	BirthDate      time.Time `json:"birthDate"`
	Email          string    `json:"email" example:"catti@example.com"`
	CharacterCount int       `json:"characterCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		BirthDate:      user.BirthDate,
		Email:          user.Email,
		CharacterCount: user.CharacterCount,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// MessageResponse is a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message" example:"deleted successfully"`
}

// endregion

// UserHandler exposes the user CRUD routes.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// birthDateLayout is the plain-date format accepted alongside RFC 3339.
const birthDateLayout = "2006-01-02"

func parseBirthDate(value string) (time.Time, bool) {
	if t, err := time.Parse(birthDateLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// CreateUser godoc
// @Summary      Register a new user
// @Description  Creates a new user account. The password is hashed before storage.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  UserResponse
// @Failure      400  {object}  FieldErrorResponse "Missing required field"
// @Failure      422  {object}  FieldErrorResponse "Email already in use"
// @Failure      500  {object}  ErrorResponse
// @Router       /user [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birthDate, ok := parseBirthDate(input.BirthDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birthDate must be a date in YYYY-MM-DD format"})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), service.CreateUserInput{
		Name:      input.Name,
		BirthDate: birthDate,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

// GetUser godoc
// @Summary      Get a user by ID
// @Description  Retrieves a user's own profile. Users can only fetch themselves.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the profile owner"
// @Failure      404  {object}  ErrorResponse
// @Router       /user/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.selfOnly(c)
	if !ok {
		return
	}

	user, err := h.users.FindUser(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Partially updates a user's own profile. A new password is rehashed.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "User ID"
// @Param        input body      UpdateUserInput true  "Fields to update"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  FieldErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the profile owner"
// @Failure      422  {object}  FieldErrorResponse "Email already in use"
// @Router       /user/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.selfOnly(c)
	if !ok {
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := service.UpdateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	}
	if input.BirthDate != nil {
		birthDate, ok := parseBirthDate(*input.BirthDate)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "birthDate must be a date in YYYY-MM-DD format"})
			return
		}
		update.BirthDate = &birthDate
	}

	user, err := h.users.UpdateUser(c.Request.Context(), id, update)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Deletes a user's own account, cascading to all owned characters and their items.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the profile owner"
// @Failure      404  {object}  ErrorResponse
// @Router       /user/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.selfOnly(c)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "user deleted successfully"})
}

// selfOnly parses the path id and rejects callers targeting someone else's
// profile.
func (h *UserHandler) selfOnly(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	if uint(id) != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access another profile"})
		return 0, false
	}
	return uint(id), true
}

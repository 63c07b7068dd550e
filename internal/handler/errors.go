package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"charsheet/backend/internal/models"
	"charsheet/backend/internal/service"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// FieldErrorResponse is returned for validation failures that concern a
// single field.
type FieldErrorResponse struct {
	Error   string `json:"error" example:"MissingFieldError"`
	Field   string `json:"field" example:"name"`
	Message string `json:"message" example:"name is a required field"`
}

// handleServiceError translates service-layer errors into HTTP responses.
// Anything unclassified is logged and hidden behind a generic 500.
func handleServiceError(c *gin.Context, err error) {
	var missingField *models.MissingFieldError
	var duplicateKey *models.DuplicateKeyError
	var unknownType *models.UnknownItemTypeError

	switch {
	case errors.As(err, &missingField):
		c.JSON(http.StatusBadRequest, FieldErrorResponse{
			Error:   "MissingFieldError",
			Field:   missingField.Field,
			Message: missingField.Error(),
		})
	case errors.As(err, &duplicateKey):
		c.JSON(http.StatusUnprocessableEntity, FieldErrorResponse{
			Error:   "DuplicateKeyError",
			Field:   duplicateKey.Field,
			Message: duplicateKey.Error(),
		})
	case errors.As(err, &unknownType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCharacterNotFound),
		errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrIncorrectPassword),
		errors.Is(err, service.ErrInvalidRefreshToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		zap.L().Error("unhandled service error",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

// currentUserID returns the id set by the auth middleware.
func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	return userID.(uint)
}

package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"charsheet/backend/internal/service"
)

// CharacterHandler exposes the character routes. All of them are scoped to
// the authenticated owner.
type CharacterHandler struct {
	characters *service.CharacterService
}

func NewCharacterHandler(characters *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{characters: characters}
}

// CreateCharacter godoc
// @Summary      Create a character
// @Description  Creates a character sheet for the authenticated user, optionally with an inline list of items.
// @Tags         characters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body service.CreateCharacterInput true "Character sheet"
// @Success      201  {object}  models.Character
// @Failure      400  {object}  FieldErrorResponse "Missing required field"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Owner not found"
// @Router       /character [post]
func (h *CharacterHandler) CreateCharacter(c *gin.Context) {
	var input service.CreateCharacterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	character, err := h.characters.CreateCharacter(c.Request.Context(), input, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, character)
}

// GetCharacter godoc
// @Summary      Get a character
// @Description  Retrieves a full character sheet, items included. Characters owned by other users resolve to 404.
// @Tags         characters
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Character ID"
// @Success      200  {object}  models.Character
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /character/{id} [get]
func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	id, ok := characterID(c)
	if !ok {
		return
	}

	character, err := h.characters.FindCharacter(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, character)
}

// GetCharacters godoc
// @Summary      List characters
// @Description  Lists the authenticated user's characters as summaries, paginated. The heavy system and items fields are excluded.
// @Tags         characters
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[models.CharacterSummary]
// @Failure      401  {object}  ErrorResponse
// @Router       /characters [get]
func (h *CharacterHandler) GetCharacters(c *gin.Context) {
	page, limit := pageParams(c)

	summaries, totalItems, err := h.characters.GetAllCharacters(c.Request.Context(), currentUserID(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(summaries, totalItems, page, limit))
}

// UpdateCharacter godoc
// @Summary      Update a character
// @Description  Merges the request body into the stored sheet and re-runs the save-time normalization.
// @Tags         characters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Character ID"
// @Param        input body      service.CreateCharacterInput true  "Fields to merge"
// @Success      200  {object}  models.Character
// @Failure      400  {object}  FieldErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /character/{id} [put]
func (h *CharacterHandler) UpdateCharacter(c *gin.Context) {
	id, ok := characterID(c)
	if !ok {
		return
	}

	patch, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(patch) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	character, err := h.characters.UpdateCharacter(c.Request.Context(), id, currentUserID(c), patch)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, character)
}

// DeleteCharacter godoc
// @Summary      Delete a character
// @Description  Deletes a character and every item attached to it.
// @Tags         characters
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Character ID"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /character/{id} [delete]
func (h *CharacterHandler) DeleteCharacter(c *gin.Context) {
	id, ok := characterID(c)
	if !ok {
		return
	}

	if err := h.characters.DeleteCharacter(c.Request.Context(), id, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "character deleted successfully"})
}

// characterID parses the character id path parameter.
func characterID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid character ID"})
		return 0, false
	}
	return uint(id), true
}

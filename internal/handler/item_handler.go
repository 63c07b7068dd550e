package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"charsheet/backend/internal/service"
)

// ItemHandler exposes the item routes, all nested under a character.
type ItemHandler struct {
	items *service.ItemService
}

func NewItemHandler(items *service.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// CreateItem godoc
// @Summary      Create an item
// @Description  Creates a typed item under a character. Container items are accepted but not persisted.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "Character ID"
// @Param        input body      service.CreateItemInput true  "Item payload"
// @Success      201  {object}  models.Item
// @Failure      400  {object}  ErrorResponse "Missing or unknown item type"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Character not found"
// @Router       /character/{id}/item [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	charID, ok := characterID(c)
	if !ok {
		return
	}

	var input service.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.items.CreateItem(c.Request.Context(), input, charID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// CreateManyItems godoc
// @Summary      Create several items
// @Description  Creates the items strictly in order. A failure partway through leaves the earlier items persisted.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Character ID"
// @Param        input body      []service.CreateItemInput true  "Item payloads"
// @Success      201  {array}   models.Item
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Character not found"
// @Router       /character/{id}/items [post]
func (h *ItemHandler) CreateManyItems(c *gin.Context) {
	charID, ok := characterID(c)
	if !ok {
		return
	}

	var inputs []service.CreateItemInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.items.CreateManyItems(c.Request.Context(), inputs, charID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, items)
}

// GetItems godoc
// @Summary      List a character's items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Character ID"
// @Success      200  {array}   models.Item
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Character not found"
// @Router       /character/{id}/items [get]
func (h *ItemHandler) GetItems(c *gin.Context) {
	charID, ok := characterID(c)
	if !ok {
		return
	}

	items, err := h.items.GetAllItems(c.Request.Context(), charID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// UpdateItem godoc
// @Summary      Update an item
// @Description  Merges the request body into the stored item and revalidates its type-specific schema.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int  true  "Character ID"
// @Param        itemId path      int  true  "Item ID"
// @Success      200  {object}  models.Item
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Item not found"
// @Router       /character/{id}/item/{itemId} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	charID, itemID, ok := itemIDs(c)
	if !ok {
		return
	}

	patch, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(patch) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	item, err := h.items.UpdateItem(c.Request.Context(), itemID, charID, currentUserID(c), patch)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary      Delete an item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int  true  "Character ID"
// @Param        itemId path      int  true  "Item ID"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Item not found"
// @Router       /character/{id}/item/{itemId} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	charID, itemID, ok := itemIDs(c)
	if !ok {
		return
	}

	if err := h.items.DeleteItem(c.Request.Context(), itemID, charID, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "item deleted successfully"})
}

// itemIDs parses the character and item id path parameters.
func itemIDs(c *gin.Context) (charID, itemID uint, ok bool) {
	charID, ok = characterID(c)
	if !ok {
		return 0, 0, false
	}
	id, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return 0, 0, false
	}
	return charID, uint(id), true
}

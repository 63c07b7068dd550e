package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charsheet/backend/internal/models"
	"charsheet/backend/internal/service"
)

func itemEnv(t *testing.T) (*env, *models.User, *models.Character) {
	t.Helper()
	e := newEnv()
	user := e.createUser(t, "player@example.com", "password123")
	character := e.createCharacter(t, user.ID, service.CreateCharacterInput{Name: "Bruenor"})
	return e, user, character
}

func TestItemService_CreateItem(t *testing.T) {
	e, user, character := itemEnv(t)
	ctx := context.Background()

	item, err := e.items.CreateItem(ctx, service.CreateItemInput{
		Name:   "Battleaxe",
		Type:   models.ItemTypeWeapon,
		System: json.RawMessage(`{"quantity":2}`),
	}, character.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.NotZero(t, item.ID)
	assert.Equal(t, character.ID, item.CharacterID)

	var sys models.WeaponSystem
	require.NoError(t, json.Unmarshal(item.System, &sys))
	assert.Equal(t, 2, sys.Quantity)
	assert.Equal(t, "commom", sys.Rarity)
}

func TestItemService_CreateItem_FoundryIDFromExternalID(t *testing.T) {
	e, user, character := itemEnv(t)
	ctx := context.Background()

	item, err := e.items.CreateItem(ctx, service.CreateItemInput{
		ID:   "abc123xyz",
		Name: "Imported Blade",
		Type: models.ItemTypeWeapon,
	}, character.ID, user.ID)
	require.NoError(t, err)

	// the external "id" becomes the origin reference, never the primary key
	assert.Equal(t, "abc123xyz", item.FoundryID)
	assert.NotEqual(t, uint(0), item.ID)

	explicit, err := e.items.CreateItem(ctx, service.CreateItemInput{
		ID:        "ignored",
		FoundryID: "explicit-ref",
		Name:      "Other Blade",
		Type:      models.ItemTypeWeapon,
	}, character.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "explicit-ref", explicit.FoundryID)
}

func TestItemService_CreateItem_TypeGate(t *testing.T) {
	e, user, character := itemEnv(t)
	ctx := context.Background()

	_, err := e.items.CreateItem(ctx, service.CreateItemInput{Name: "Untyped"}, character.ID, user.ID)
	var missing *models.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "type", missing.Field)

	_, err = e.items.CreateItem(ctx, service.CreateItemInput{
		Name: "Cart",
		Type: models.ItemType("vehicle"),
	}, character.ID, user.ID)
	var unknownType *models.UnknownItemTypeError
	require.True(t, errors.As(err, &unknownType))
	assert.Equal(t, "vehicle", unknownType.Type)

	_, err = e.items.CreateItem(ctx, service.CreateItemInput{
		Type: models.ItemTypeWeapon,
	}, character.ID, user.ID)
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "name", missing.Field)
}

func TestItemService_CreateItem_ContainerSkipped(t *testing.T) {
	e, user, character := itemEnv(t)
	ctx := context.Background()

	item, err := e.items.CreateItem(ctx, service.CreateItemInput{
		Name: "Backpack",
		Type: models.ItemTypeContainer,
	}, character.ID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, item)

	items, err := e.items.GetAllItems(ctx, character.ID, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemService_CreateItem_CharacterScoped(t *testing.T) {
	e, _, character := itemEnv(t)
	other := e.createUser(t, "other@example.com", "password123")

	_, err := e.items.CreateItem(context.Background(), service.CreateItemInput{
		Name: "Stolen Sword",
		Type: models.ItemTypeWeapon,
	}, character.ID, other.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrCharacterNotFound))
}

func TestItemService_CreateManyItems(t *testing.T) {
	e, user, character := itemEnv(t)
	ctx := context.Background()

	created, err := e.items.CreateManyItems(ctx, []service.CreateItemInput{
		{Name: "Fighter", Type: models.ItemTypeClass, System: json.RawMessage(`{"levels":3}`)},
		{Name: "Backpack", Type: models.ItemTypeContainer},
		{Name: "Dwarf", Type: models.ItemTypeRace},
	}, character.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, created, 2)

	// derived fields recomputed once after the batch
	updated, err := e.characters.FindCharacter(ctx, character.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Level)
	assert.Equal(t, "Dwarf", updated.Race)
	assert.Equal(t, "Fighter", updated.Classes)
}

func TestItemService_CreateManyItems_PartialFailure(t *testing.T) {
	e, user, character := itemEnv(t)
	ctx := context.Background()

	_, err := e.items.CreateManyItems(ctx, []service.CreateItemInput{
		{Name: "Axe", Type: models.ItemTypeWeapon},
		{Name: "Cart", Type: models.ItemType("vehicle")},
	}, character.ID, user.ID)
	require.Error(t, err)

	// no rollback: the item created before the failure stays
	items, err := e.items.GetAllItems(ctx, character.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Axe", items[0].Name)
}

func TestItemService_UpdateItem(t *testing.T) {
	e, user, character := itemEnv(t)
	ctx := context.Background()

	item, err := e.items.CreateItem(ctx, service.CreateItemInput{
		Name:   "Fighter",
		Type:   models.ItemTypeClass,
		System: json.RawMessage(`{"levels":1}`),
	}, character.ID, user.ID)
	require.NoError(t, err)

	updated, err := e.items.UpdateItem(ctx, item.ID, character.ID, user.ID,
		json.RawMessage(`{"system":{"levels":4}}`))
	require.NoError(t, err)
	assert.Equal(t, "Fighter", updated.Name)
	assert.Equal(t, 4, updated.ClassLevels())

	// the level-up propagates to the character
	c, err := e.characters.FindCharacter(ctx, character.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Level)
}

func TestItemService_UpdateItem_RejectsUnknownType(t *testing.T) {
	e, user, character := itemEnv(t)
	ctx := context.Background()

	item, err := e.items.CreateItem(ctx, service.CreateItemInput{
		Name: "Axe",
		Type: models.ItemTypeWeapon,
	}, character.ID, user.ID)
	require.NoError(t, err)

	_, err = e.items.UpdateItem(ctx, item.ID, character.ID, user.ID,
		json.RawMessage(`{"type":"vehicle"}`))
	require.Error(t, err)

	var unknownType *models.UnknownItemTypeError
	assert.True(t, errors.As(err, &unknownType))
}

func TestItemService_DeleteItem(t *testing.T) {
	e, user, character := itemEnv(t)
	ctx := context.Background()

	item, err := e.items.CreateItem(ctx, service.CreateItemInput{
		Name:   "Fighter",
		Type:   models.ItemTypeClass,
		System: json.RawMessage(`{"levels":5}`),
	}, character.ID, user.ID)
	require.NoError(t, err)

	c, err := e.characters.FindCharacter(ctx, character.ID, user.ID)
	require.NoError(t, err)
	require.Equal(t, 5, c.Level)

	require.NoError(t, e.items.DeleteItem(ctx, item.ID, character.ID, user.ID))

	_, err = e.items.FindItem(ctx, item.ID, character.ID)
	assert.True(t, errors.Is(err, service.ErrItemNotFound))

	// with the last class gone the level floors back to 1
	c, err = e.characters.FindCharacter(ctx, character.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Level)
	assert.Empty(t, c.Classes)
}

func TestItemService_DeleteItem_NotFound(t *testing.T) {
	e, user, character := itemEnv(t)

	err := e.items.DeleteItem(context.Background(), 42, character.ID, user.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrItemNotFound))
}

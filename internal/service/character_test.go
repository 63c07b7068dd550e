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

func TestCharacterService_CreateCharacter_Defaults(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	user := e.createUser(t, "player@example.com", "password123")

	character := e.createCharacter(t, user.ID, service.CreateCharacterInput{Name: "Bruenor"})

	assert.Equal(t, "Bruenor", character.Name)
	assert.Equal(t, "character", character.Type)
	assert.Equal(t, user.ID, character.UserID)

	// no class items yet: level floors at 1, race and classes stay empty
	assert.Equal(t, 1, character.Level)
	assert.Empty(t, character.Race)
	assert.Empty(t, character.Classes)

	// schema defaults
	assert.Equal(t, 10, character.System.Abilities.Str.Value)
	assert.Equal(t, "ft", character.System.Attributes.Movement.Units)
	assert.Equal(t, 3, character.System.Attributes.Attunement.Max)

	// save-time normalization fills the optional slots
	require.NotNil(t, character.System.Attributes.HP.Max)
	assert.Equal(t, character.System.Attributes.HP.Value, *character.System.Attributes.HP.Max)
	require.NotNil(t, character.System.Spells.Spell1.Available)

	stored, err := e.users.FindUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CharacterCount)
}

func TestCharacterService_CreateCharacter_SystemMerge(t *testing.T) {
	e := newEnv()
	user := e.createUser(t, "player@example.com", "password123")

	character := e.createCharacter(t, user.ID, service.CreateCharacterInput{
		Name:   "Vex",
		System: json.RawMessage(`{"abilities":{"dex":{"value":18}},"attributes":{"hp":{"value":24}}}`),
	})

	assert.Equal(t, 18, character.System.Abilities.Dex.Value)
	// untouched abilities keep the schema default
	assert.Equal(t, 10, character.System.Abilities.Str.Value)
	assert.Equal(t, 24, character.System.Attributes.HP.Value)
	require.NotNil(t, character.System.Attributes.HP.Max)
	assert.Equal(t, 24, *character.System.Attributes.HP.Max)
}

func TestCharacterService_CreateCharacter_WithItems(t *testing.T) {
	e := newEnv()
	user := e.createUser(t, "player@example.com", "password123")

	character := e.createCharacter(t, user.ID, service.CreateCharacterInput{
		Name: "Bruenor",
		Items: []service.CreateItemInput{
			{Name: "Fighter", Type: models.ItemTypeClass, System: json.RawMessage(`{"levels":3}`)},
			{Name: "Barbarian", Type: models.ItemTypeClass, System: json.RawMessage(`{"levels":2}`)},
			{Name: "Dwarf", Type: models.ItemTypeRace},
			{Name: "Backpack", Type: models.ItemTypeContainer},
		},
	})

	// container skipped, the rest persisted
	require.Len(t, character.Items, 3)

	assert.Equal(t, 5, character.Level)
	assert.Equal(t, "Dwarf", character.Race)
	assert.Equal(t, "Fighter, Barbarian", character.Classes)
	assert.Equal(t, 5, character.System.Details.Level)
	assert.Equal(t, "Dwarf", character.System.Details.Race)
}

func TestCharacterService_CreateCharacter_Validation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	user := e.createUser(t, "player@example.com", "password123")

	_, err := e.characters.CreateCharacter(ctx, service.CreateCharacterInput{}, user.ID)
	var missing *models.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "name", missing.Field)

	_, err = e.characters.CreateCharacter(ctx, service.CreateCharacterInput{Name: "Orphan"}, 42)
	assert.True(t, errors.Is(err, service.ErrUserNotFound))
}

func TestCharacterService_OwnershipIsolation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.createUser(t, "owner@example.com", "password123")
	other := e.createUser(t, "other@example.com", "password123")

	character := e.createCharacter(t, owner.ID, service.CreateCharacterInput{Name: "Private"})

	_, err := e.characters.FindCharacter(ctx, character.ID, other.ID)
	assert.True(t, errors.Is(err, service.ErrCharacterNotFound))

	err = e.characters.DeleteCharacter(ctx, character.ID, other.ID)
	assert.True(t, errors.Is(err, service.ErrCharacterNotFound))

	summaries, total, err := e.characters.GetAllCharacters(ctx, other.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.EqualValues(t, 0, total)
}

func TestCharacterService_GetAllCharacters_Pagination(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	user := e.createUser(t, "player@example.com", "password123")

	for _, name := range []string{"One", "Two", "Three"} {
		e.createCharacter(t, user.ID, service.CreateCharacterInput{Name: name})
	}

	page1, total, err := e.characters.GetAllCharacters(ctx, user.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page1, 2)
	assert.Equal(t, "One", page1[0].Name)

	page2, _, err := e.characters.GetAllCharacters(ctx, user.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "Three", page2[0].Name)
}

func TestCharacterService_UpdateCharacter_PartialMerge(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	user := e.createUser(t, "player@example.com", "password123")
	character := e.createCharacter(t, user.ID, service.CreateCharacterInput{
		Name: "Bruenor",
		Img:  "bruenor.png",
	})

	updated, err := e.characters.UpdateCharacter(ctx, character.ID, user.ID,
		json.RawMessage(`{"img":"bruenor-v2.png","id":999,"user":999}`))
	require.NoError(t, err)

	// untouched fields survive, identity fields in the patch are ignored
	assert.Equal(t, "Bruenor", updated.Name)
	assert.Equal(t, "bruenor-v2.png", updated.Img)
	assert.Equal(t, character.ID, updated.ID)
	assert.Equal(t, user.ID, updated.UserID)
}

func TestCharacterService_UpdateCharacter_BlankName(t *testing.T) {
	e := newEnv()
	user := e.createUser(t, "player@example.com", "password123")
	character := e.createCharacter(t, user.ID, service.CreateCharacterInput{Name: "Bruenor"})

	_, err := e.characters.UpdateCharacter(context.Background(), character.ID, user.ID,
		json.RawMessage(`{"name":""}`))
	require.Error(t, err)

	var missing *models.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "name", missing.Field)
}

func TestUpdateCharacterDerivedFields_Idempotent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	user := e.createUser(t, "player@example.com", "password123")
	character := e.createCharacter(t, user.ID, service.CreateCharacterInput{
		Name: "Bruenor",
		Items: []service.CreateItemInput{
			{Name: "Fighter", Type: models.ItemTypeClass, System: json.RawMessage(`{"levels":3}`)},
			{Name: "Barbarian", Type: models.ItemTypeClass, System: json.RawMessage(`{"levels":2}`)},
			{Name: "Dwarf", Type: models.ItemTypeRace},
		},
	})

	first, err := service.UpdateCharacterDerivedFields(ctx, e.store.Characters(), character.ID, user.ID)
	require.NoError(t, err)

	// no intervening item change: a second run must produce the same record
	second, err := service.UpdateCharacterDerivedFields(ctx, e.store.Characters(), character.ID, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 5, first.Level)
	assert.Equal(t, first.Level, second.Level)
	assert.Equal(t, first.Race, second.Race)
	assert.Equal(t, first.Classes, second.Classes)
	assert.Equal(t, first.System, second.System)
}

func TestCharacterService_DeleteCharacter(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	user := e.createUser(t, "player@example.com", "password123")
	character := e.createCharacter(t, user.ID, service.CreateCharacterInput{
		Name:  "Doomed",
		Items: []service.CreateItemInput{{Name: "Axe", Type: models.ItemTypeWeapon}},
	})
	require.Len(t, character.Items, 1)
	itemID := character.Items[0].ID

	require.NoError(t, e.characters.DeleteCharacter(ctx, character.ID, user.ID))

	_, err := e.characters.FindCharacter(ctx, character.ID, user.ID)
	assert.True(t, errors.Is(err, service.ErrCharacterNotFound))

	_, err = e.items.FindItem(ctx, itemID, character.ID)
	assert.True(t, errors.Is(err, service.ErrItemNotFound))

	stored, err := e.users.FindUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CharacterCount)
}

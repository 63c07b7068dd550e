package models_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charsheet/backend/internal/models"
)

func TestDecodeSystem_ClassDefaults(t *testing.T) {
	raw, err := models.DecodeSystem(models.ItemTypeClass, nil)
	require.NoError(t, err)

	var sys models.ClassSystem
	require.NoError(t, json.Unmarshal(raw, &sys))

	assert.Equal(t, 1, sys.Levels)
	assert.Equal(t, "d6", sys.HD.Denomination)
	assert.True(t, sys.PrimaryAbility.All)
}

func TestDecodeSystem_PayloadOverridesDefaults(t *testing.T) {
	raw, err := models.DecodeSystem(models.ItemTypeClass, json.RawMessage(`{"levels":5,"identifier":"wizard"}`))
	require.NoError(t, err)

	var sys models.ClassSystem
	require.NoError(t, json.Unmarshal(raw, &sys))

	assert.Equal(t, 5, sys.Levels)
	assert.Equal(t, "wizard", sys.Identifier)
	// defaults untouched by the payload survive the merge
	assert.Equal(t, "d6", sys.HD.Denomination)
}

func TestDecodeSystem_DropsUnknownKeys(t *testing.T) {
	raw, err := models.DecodeSystem(models.ItemTypeWeapon, json.RawMessage(`{"quantity":3,"bogusKey":"dropped"}`))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.NotContains(t, decoded, "bogusKey")
	assert.EqualValues(t, 3, decoded["quantity"])
}

func TestDecodeSystem_WeaponDefaults(t *testing.T) {
	raw, err := models.DecodeSystem(models.ItemTypeWeapon, json.RawMessage(`{}`))
	require.NoError(t, err)

	var sys models.WeaponSystem
	require.NoError(t, json.Unmarshal(raw, &sys))

	assert.Equal(t, 1, sys.Quantity)
	assert.Equal(t, "commom", sys.Rarity)
	assert.Equal(t, 10, sys.Armor.Value)
	assert.Equal(t, 10, sys.HP.Value)
}

func TestDecodeSystem_UnknownType(t *testing.T) {
	_, err := models.DecodeSystem(models.ItemType("vehicle"), nil)
	require.Error(t, err)

	var unknownType *models.UnknownItemTypeError
	require.True(t, errors.As(err, &unknownType))
	assert.Equal(t, "vehicle", unknownType.Type)
}

func TestDecodeSystem_MalformedPayload(t *testing.T) {
	_, err := models.DecodeSystem(models.ItemTypeSpell, json.RawMessage(`{"level":`))
	assert.Error(t, err)
}

func TestKnownItemType(t *testing.T) {
	assert.True(t, models.KnownItemType(models.ItemTypeClass))
	assert.False(t, models.KnownItemType(models.ItemTypeContainer))
	assert.False(t, models.KnownItemType(models.ItemType("vehicle")))
	assert.False(t, models.KnownItemType(models.ItemType("")))
}

func TestItemClassLevels(t *testing.T) {
	class := &models.Item{Type: models.ItemTypeClass, System: json.RawMessage(`{"levels":3}`)}
	assert.Equal(t, 3, class.ClassLevels())

	weapon := &models.Item{Type: models.ItemTypeWeapon, System: json.RawMessage(`{"levels":7}`)}
	assert.Equal(t, 0, weapon.ClassLevels())

	empty := &models.Item{Type: models.ItemTypeClass}
	assert.Equal(t, 0, empty.ClassLevels())
}

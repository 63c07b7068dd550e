package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"charsheet/backend/internal/models"
	"charsheet/backend/internal/store"
)

// UpdateCharacterDerivedFields re-fetches a character with its current item
// collection, recomputes level, race and classes from the items and persists
// the result. It runs after every item mutation and is idempotent: calling
// it twice with no intervening change produces the same record.
func UpdateCharacterDerivedFields(ctx context.Context, characters store.CharacterStore, characterID, userID uint) (*models.Character, error) {
	character, err := characters.FindByID(ctx, characterID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}

	normalizeCharacter(character)

	if err := characters.Save(ctx, character); err != nil {
		return nil, err
	}

	zap.L().Info("derived fields recomputed",
		zap.Uint("characterID", characterID),
		zap.Int("level", character.Level),
		zap.String("race", character.Race),
		zap.String("classes", character.Classes))
	return character, nil
}

// normalizeCharacter applies the save-time defaulting rules. These are
// recomputed from scratch on every save, never incrementally:
//   - level from the class items when they are loaded (sum of class levels,
//     floored at 1), otherwise from details.level
//   - race from the first race item, classes from all class items
//   - spell-slot available counts default to the slot value
//   - max hit points defaults to the current hit points
func normalizeCharacter(c *models.Character) {
	if c.Items != nil {
		level := 0
		race := ""
		var classNames []string
		for _, item := range c.Items {
			switch item.Type {
			case models.ItemTypeClass:
				level += item.ClassLevels()
				classNames = append(classNames, item.Name)
			case models.ItemTypeRace:
				if race == "" {
					race = item.Name
				}
			}
		}
		if level < 1 {
			level = 1
		}
		c.Level = level
		c.Race = race
		c.Classes = strings.Join(classNames, ", ")
		c.System.Details.Level = level
		c.System.Details.Race = race
	} else {
		c.Level = c.System.Details.Level
		if c.Level < 1 {
			c.Level = 1
		}
	}

	slots := []*models.SpellSlot{
		&c.System.Spells.Spell1, &c.System.Spells.Spell2, &c.System.Spells.Spell3,
		&c.System.Spells.Spell4, &c.System.Spells.Spell5, &c.System.Spells.Spell6,
		&c.System.Spells.Spell7, &c.System.Spells.Spell8, &c.System.Spells.Spell9,
		&c.System.Spells.Pact,
	}
	for _, slot := range slots {
		if slot.Available == nil {
			available := slot.Value
			slot.Available = &available
		}
	}

	if c.System.Attributes.HP.Max == nil {
		max := c.System.Attributes.HP.Value
		c.System.Attributes.HP.Max = &max
	}
}

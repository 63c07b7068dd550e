package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"charsheet/backend/internal/models"
	"charsheet/backend/internal/store"
)

// CharacterService owns the character aggregate: creation with optional
// inline items, owner-scoped lookups, partial updates and cascading deletes.
type CharacterService struct {
	characters store.CharacterStore
	users      store.UserStore
	items      *ItemService
}

func NewCharacterService(characters store.CharacterStore, users store.UserStore, items *ItemService) *CharacterService {
	return &CharacterService{characters: characters, users: users, items: items}
}

// CreateCharacterInput carries a new sheet. System merges over the schema
// defaults; Items are created through the item catalog after the shell is
// persisted.
type CreateCharacterInput struct {
	Name   string            `json:"name"`
	Img    string            `json:"img"`
	System json.RawMessage   `json:"system"`
	Items  []CreateItemInput `json:"items"`
}

// CreateCharacter persists the sheet in two phases: the shell is saved
// first, then the inline items are created one by one, then the character is
// saved again with its derived fields recomputed. A failure in the item loop
// leaves the previously created items in place; there is no rollback.
func (s *CharacterService) CreateCharacter(ctx context.Context, input CreateCharacterInput, userID uint) (*models.Character, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if input.Name == "" {
		return nil, &models.MissingFieldError{Field: "name"}
	}

	system := models.NewCharacterSystem()
	if len(input.System) > 0 {
		if err := json.Unmarshal(input.System, &system); err != nil {
			return nil, err
		}
	}

	character := &models.Character{
		Name:   input.Name,
		Type:   "character",
		Img:    input.Img,
		UserID: userID,
		System: system,
	}
	normalizeCharacter(character)

	if err := s.characters.Create(ctx, character); err != nil {
		return nil, err
	}

	for _, itemInput := range input.Items {
		if _, err := s.items.createOne(ctx, itemInput, character.ID); err != nil {
			return nil, err
		}
	}

	// Second phase: reload with the attached items and persist the
	// recomputed derived fields.
	character, err := s.characters.FindByID(ctx, character.ID, userID)
	if err != nil {
		return nil, err
	}
	normalizeCharacter(character)
	if err := s.characters.Save(ctx, character); err != nil {
		return nil, err
	}

	if err := s.adjustCharacterCount(ctx, userID, 1); err != nil {
		return nil, err
	}

	zap.L().Info("character created",
		zap.Uint("characterID", character.ID),
		zap.String("name", character.Name),
		zap.Uint("userID", userID))
	return character, nil
}

// FindCharacter is owner-scoped: a character owned by someone else resolves
// to not-found, hiding its existence.
func (s *CharacterService) FindCharacter(ctx context.Context, id, userID uint) (*models.Character, error) {
	character, err := s.characters.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}
	return character, nil
}

// GetAllCharacters returns the summary projection of the user's characters
// plus the total count for pagination.
func (s *CharacterService) GetAllCharacters(ctx context.Context, userID uint, page, limit int) ([]models.CharacterSummary, int64, error) {
	return s.characters.ListByUser(ctx, userID, page, limit)
}

// UpdateCharacter merges the patch into the stored record and persists it,
// re-running the save-time normalization. Identity and ownership fields in
// the patch are ignored.
func (s *CharacterService) UpdateCharacter(ctx context.Context, id, userID uint, patch json.RawMessage) (*models.Character, error) {
	character, err := s.FindCharacter(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	items := character.Items
	if err := json.Unmarshal(patch, character); err != nil {
		return nil, err
	}
	character.ID = id
	character.UserID = userID
	character.Items = items

	if character.Name == "" {
		return nil, &models.MissingFieldError{Field: "name"}
	}

	normalizeCharacter(character)
	if err := s.characters.Save(ctx, character); err != nil {
		return nil, err
	}

	zap.L().Info("character updated", zap.Uint("characterID", id), zap.Uint("userID", userID))
	return character, nil
}

// DeleteCharacter removes the character and all items attached to it, then
// decrements the owner's character counter.
func (s *CharacterService) DeleteCharacter(ctx context.Context, id, userID uint) error {
	exists, err := s.characters.Exists(ctx, id, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCharacterNotFound
	}

	if err := s.items.items.DeleteByCharacter(ctx, id); err != nil {
		return err
	}
	if err := s.characters.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCharacterNotFound
		}
		return err
	}

	if err := s.adjustCharacterCount(ctx, userID, -1); err != nil {
		return err
	}

	zap.L().Info("character deleted", zap.Uint("characterID", id), zap.Uint("userID", userID))
	return nil
}

func (s *CharacterService) adjustCharacterCount(ctx context.Context, userID uint, delta int) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.CharacterCount += delta
	if user.CharacterCount < 0 {
		user.CharacterCount = 0
	}
	return s.users.Save(ctx, user)
}

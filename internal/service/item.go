package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"charsheet/backend/internal/models"
	"charsheet/backend/internal/store"
)

// ItemService owns the polymorphic item catalog. Every mutation triggers a
// derived-field recomputation on the owning character afterwards; the two
// writes are not atomic.
type ItemService struct {
	items      store.ItemStore
	characters store.CharacterStore
}

func NewItemService(items store.ItemStore, characters store.CharacterStore) *ItemService {
	return &ItemService{items: items, characters: characters}
}

// CreateItemInput is an incoming item payload. An external identifier
// supplied as "id" is repurposed as the foundry origin reference, never as
// the primary key.
type CreateItemInput struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      models.ItemType `json:"type"`
	FoundryID string          `json:"foundryId"`
	System    json.RawMessage `json:"system"`
}

// CreateItem validates the type tag, normalizes the system payload against
// the type's schema and persists the item under the given character.
// Container items are deliberately skipped: the result is (nil, nil).
func (s *ItemService) CreateItem(ctx context.Context, input CreateItemInput, characterID, userID uint) (*models.Item, error) {
	if err := s.requireCharacter(ctx, characterID, userID); err != nil {
		return nil, err
	}

	item, err := s.createOne(ctx, input, characterID)
	if err != nil {
		return nil, err
	}
	if item != nil {
		s.recomputeDerived(ctx, characterID, userID)
	}
	return item, nil
}

// CreateManyItems creates the payloads strictly sequentially and recomputes
// the derived fields once at the end. A failure partway through leaves the
// prior items persisted; there is no compensating rollback.
func (s *ItemService) CreateManyItems(ctx context.Context, inputs []CreateItemInput, characterID, userID uint) ([]models.Item, error) {
	if err := s.requireCharacter(ctx, characterID, userID); err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(inputs))
	for _, input := range inputs {
		item, err := s.createOne(ctx, input, characterID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, *item)
		}
	}

	s.recomputeDerived(ctx, characterID, userID)
	return items, nil
}

// FindItem resolves an item under its owning character.
func (s *ItemService) FindItem(ctx context.Context, itemID, characterID uint) (*models.Item, error) {
	item, err := s.items.FindByID(ctx, itemID, characterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// GetAllItems returns every item attached to the character, possibly empty.
func (s *ItemService) GetAllItems(ctx context.Context, characterID, userID uint) ([]models.Item, error) {
	if err := s.requireCharacter(ctx, characterID, userID); err != nil {
		return nil, err
	}
	return s.items.ListByCharacter(ctx, characterID)
}

// UpdateItem merges the patch into the stored record, revalidates the type
// and system, persists and recomputes the character's derived fields.
func (s *ItemService) UpdateItem(ctx context.Context, itemID, characterID, userID uint, patch json.RawMessage) (*models.Item, error) {
	item, err := s.FindItem(ctx, itemID, characterID)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(patch, item); err != nil {
		return nil, err
	}
	item.ID = itemID
	item.CharacterID = characterID

	if item.Name == "" {
		return nil, &models.MissingFieldError{Field: "name"}
	}
	if !models.KnownItemType(item.Type) {
		return nil, &models.UnknownItemTypeError{Type: string(item.Type)}
	}
	system, err := models.DecodeSystem(item.Type, item.System)
	if err != nil {
		return nil, err
	}
	item.System = system

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}

	s.recomputeDerived(ctx, characterID, userID)
	zap.L().Info("item updated", zap.Uint("itemID", itemID), zap.Uint("characterID", characterID))
	return item, nil
}

// DeleteItem removes the record and recomputes the character's derived
// fields afterwards.
func (s *ItemService) DeleteItem(ctx context.Context, itemID, characterID, userID uint) error {
	if err := s.items.Delete(ctx, itemID, characterID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	s.recomputeDerived(ctx, characterID, userID)
	zap.L().Info("item deleted", zap.Uint("itemID", itemID), zap.Uint("characterID", characterID))
	return nil
}

// createOne validates and persists a single item without touching the
// owning character. The caller is responsible for the character existence
// check and the derived-field recomputation.
func (s *ItemService) createOne(ctx context.Context, input CreateItemInput, characterID uint) (*models.Item, error) {
	if input.Type == "" {
		return nil, &models.MissingFieldError{Field: "type"}
	}
	if input.Type == models.ItemTypeContainer {
		zap.L().Debug("skipping container item", zap.Uint("characterID", characterID))
		return nil, nil
	}
	if !models.KnownItemType(input.Type) {
		return nil, &models.UnknownItemTypeError{Type: string(input.Type)}
	}
	if input.Name == "" {
		return nil, &models.MissingFieldError{Field: "name"}
	}

	system, err := models.DecodeSystem(input.Type, input.System)
	if err != nil {
		return nil, err
	}

	foundryID := input.FoundryID
	if foundryID == "" {
		foundryID = input.ID
	}

	item := &models.Item{
		Name:        input.Name,
		FoundryID:   foundryID,
		Type:        input.Type,
		CharacterID: characterID,
		System:      system,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	zap.L().Info("item created",
		zap.Uint("itemID", item.ID),
		zap.String("name", item.Name),
		zap.String("type", string(item.Type)),
		zap.Uint("characterID", characterID))
	return item, nil
}

func (s *ItemService) requireCharacter(ctx context.Context, characterID, userID uint) error {
	exists, err := s.characters.Exists(ctx, characterID, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCharacterNotFound
	}
	return nil
}

// recomputeDerived runs the derived-field recomputation as a best-effort
// side effect. The mutation has already committed, so a failure here only
// leaves the character stale until the next save; it is logged, not
// surfaced.
func (s *ItemService) recomputeDerived(ctx context.Context, characterID, userID uint) {
	if _, err := UpdateCharacterDerivedFields(ctx, s.characters, characterID, userID); err != nil {
		zap.L().Warn("derived-field recompute failed",
			zap.Uint("characterID", characterID),
			zap.Error(err))
	}
}

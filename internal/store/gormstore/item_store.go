package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"charsheet/backend/internal/models"
	"charsheet/backend/internal/store"
)

type ItemStore struct {
	db *gorm.DB
}

func NewItemStore(db *gorm.DB) *ItemStore {
	return &ItemStore{db: db}
}

func (s *ItemStore) Create(ctx context.Context, item *models.Item) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return translate("create item", err)
	}
	return nil
}

func (s *ItemStore) FindByID(ctx context.Context, itemID, characterID uint) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).
		Where("id = ? AND character_id = ?", itemID, characterID).
		First(&item).Error
	if err != nil {
		return nil, translate(fmt.Sprintf("find item %d", itemID), err)
	}
	return &item, nil
}

func (s *ItemStore) ListByCharacter(ctx context.Context, characterID uint) ([]models.Item, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).
		Where("character_id = ?", characterID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, translate("list items", err)
	}
	return items, nil
}

func (s *ItemStore) Save(ctx context.Context, item *models.Item) error {
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return translate(fmt.Sprintf("save item %d", item.ID), err)
	}
	return nil
}

func (s *ItemStore) Delete(ctx context.Context, itemID, characterID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND character_id = ?", itemID, characterID).
		Delete(&models.Item{})
	if res.Error != nil {
		return translate(fmt.Sprintf("delete item %d", itemID), res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ItemStore) DeleteByCharacter(ctx context.Context, characterID uint) error {
	err := s.db.WithContext(ctx).
		Where("character_id = ?", characterID).
		Delete(&models.Item{}).Error
	if err != nil {
		return translate(fmt.Sprintf("delete items of character %d", characterID), err)
	}
	return nil
}

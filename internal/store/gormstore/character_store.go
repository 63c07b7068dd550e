package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"charsheet/backend/internal/models"
	"charsheet/backend/internal/store"
)

type CharacterStore struct {
	db *gorm.DB
}

func NewCharacterStore(db *gorm.DB) *CharacterStore {
	return &CharacterStore{db: db}
}

func (s *CharacterStore) Create(ctx context.Context, character *models.Character) error {
	if err := s.db.WithContext(ctx).Create(character).Error; err != nil {
		return translate("create character", err)
	}
	return nil
}

func (s *CharacterStore) FindByID(ctx context.Context, id, userID uint) (*models.Character, error) {
	var character models.Character
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&character).Error
	if err != nil {
		return nil, translate(fmt.Sprintf("find character %d", id), err)
	}
	return &character, nil
}

func (s *CharacterStore) ListByUser(ctx context.Context, userID uint, page, limit int) ([]models.CharacterSummary, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Character{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, 0, translate("count characters", err)
	}

	offset := (page - 1) * limit
	var summaries []models.CharacterSummary
	err := query.
		Select("id", "name", "img", "level", "race", "classes", "updated_at").
		Order("id").
		Limit(limit).Offset(offset).
		Find(&summaries).Error
	if err != nil {
		return nil, 0, translate("list characters", err)
	}
	return summaries, totalItems, nil
}

func (s *CharacterStore) ListIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.Character{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, translate("list character ids", err)
	}
	return ids, nil
}

func (s *CharacterStore) Exists(ctx context.Context, id, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Character{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	if err != nil {
		return false, translate(fmt.Sprintf("character %d exists", id), err)
	}
	return count > 0, nil
}

func (s *CharacterStore) Save(ctx context.Context, character *models.Character) error {
	// Omit the association so a save never re-writes item rows; the item
	// store owns those.
	err := s.db.WithContext(ctx).Omit("Items").Save(character).Error
	if err != nil {
		return translate(fmt.Sprintf("save character %d", character.ID), err)
	}
	return nil
}

func (s *CharacterStore) Delete(ctx context.Context, id, userID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Character{})
	if res.Error != nil {
		return translate(fmt.Sprintf("delete character %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

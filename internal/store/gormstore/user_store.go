// Package gormstore implements the store interfaces on gorm/postgres.
// Driver errors are translated to the store sentinels at this boundary so the
// services never see gorm types.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"charsheet/backend/internal/models"
	"charsheet/backend/internal/store"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate("create user", err)
	}
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(fmt.Sprintf("find user %d", id), err)
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate("find user by email", err)
	}
	return &user, nil
}

func (s *UserStore) FindByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("refresh_token = ?", token).First(&user).Error
	if err != nil {
		return nil, translate("find user by refresh token", err)
	}
	return &user, nil
}

func (s *UserStore) Save(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return translate(fmt.Sprintf("save user %d", user.ID), err)
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return translate(fmt.Sprintf("delete user %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// translate maps gorm errors to the store sentinels, wrapping anything else
// with the failing operation.
func translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicateKey
	default:
		return fmt.Errorf("gormstore: %s: %w", op, err)
	}
}

// Package store defines the persistence interfaces the services depend on.
// Implementations live in gormstore (postgres) and memstore (in-memory, used
// by tests and local development).
package store

import (
	"context"
	"errors"

	"charsheet/backend/internal/models"
)

var (
	// ErrNotFound is returned when a record does not resolve under the
	// given scope.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicateKey is returned when a write violates a uniqueness
	// constraint.
	ErrDuplicateKey = errors.New("store: duplicate key")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*models.User, error)
	// Save persists every field of an existing user.
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type CharacterStore interface {
	Create(ctx context.Context, character *models.Character) error
	// FindByID is owner-scoped: a character only resolves for its owning
	// user. Items are loaded.
	FindByID(ctx context.Context, id, userID uint) (*models.Character, error)
	// ListByUser returns the summary projection plus the total count for
	// pagination.
	ListByUser(ctx context.Context, userID uint, page, limit int) ([]models.CharacterSummary, int64, error)
	// ListIDsByUser returns the ids of every character owned by a user.
	ListIDsByUser(ctx context.Context, userID uint) ([]uint, error)
	Exists(ctx context.Context, id, userID uint) (bool, error)
	Save(ctx context.Context, character *models.Character) error
	Delete(ctx context.Context, id, userID uint) error
}

type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error
	// FindByID resolves an item only under its owning character.
	FindByID(ctx context.Context, itemID, characterID uint) (*models.Item, error)
	ListByCharacter(ctx context.Context, characterID uint) ([]models.Item, error)
	Save(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, itemID, characterID uint) error
	DeleteByCharacter(ctx context.Context, characterID uint) error
}
